package console

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/user7217/arduino-ecg/pkg/sensor"
)

func captureStdout(f func()) string {
	r, w, _ := os.Pipe()
	stdout := os.Stdout
	os.Stdout = w
	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()
	f()
	_ = w.Close()
	os.Stdout = stdout
	return <-outC
}

func TestConsolePublish(t *testing.T) {
	tests := []struct {
		raw  int32
		want string
	}{
		{12345, "12345\n"},
		{-482, "-482\n"},
		{-2147483648, "-2147483648\n"},
		{2147483647, "2147483647\n"},
	}
	c := NewConsole()
	for _, tt := range tests {
		out := captureStdout(func() { _ = c.Publish(sensor.Reading{Raw: tt.raw}) })
		if out != tt.want {
			t.Fatalf("console output mismatch:\n got: %q\nwant: %q", out, tt.want)
		}
	}
}
