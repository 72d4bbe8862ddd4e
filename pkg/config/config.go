package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
)

type SPIConfig struct {
	Port    string `json:"port"`
	CSPin   string `json:"cs_pin"`
	HoldPin string `json:"hold_pin,omitempty"`
}

type MQTTConfig struct {
	Server   string `json:"server"`
	Username string `json:"username"`
	Password string `json:"password"`
	ClientID string `json:"client_id"`
	Topic    string `json:"topic"`
}

type OutputConfig struct {
	Type string      `json:"type"`
	Path string      `json:"path,omitempty"`
	MQTT *MQTTConfig `json:"mqtt,omitempty"`
}

type Config struct {
	SPI        SPIConfig      `json:"spi"`
	SensorType string         `json:"sensor_type"`
	Analysis   bool           `json:"analysis"`
	Outputs    []OutputConfig `json:"outputs"`
}

func DefaultConfig() Config {
	return Config{
		SPI: SPIConfig{
			Port:  "",
			CSPin: "GPIO7",
		},
		SensorType: "real",
		Analysis:   false,
		Outputs:    []OutputConfig{{Type: "console"}},
	}
}

// LoadFromFlags loads configuration from a JSON file (optional) and flags.
// Flags override values present in the JSON file.
func LoadFromFlags() (Config, error) {
	cfgPath := flag.String("config", "", "Path to JSON config file")
	flagSPIPort := flag.String("spi-port", "", "SPI port name ('' -> first available, 'SPI0.0', '/dev/spidev0.0')")
	flagCSPin := flag.String("cs-pin", "", "Chip-select GPIO pin name (e.g. GPIO7)")
	flagHoldPin := flag.String("hold-pin", "", "Co-located peripheral select pin to hold inactive (optional)")
	flagSensorType := flag.String("sensor-type", "", "sensor type: real|simulation")
	flagAnalysis := flag.Bool("analysis", false, "enable beat detection, BPM and HRV annotation")
	flagOutputs := flag.String("outputs", "", "Comma-separated outputs (console,csv,mqtt)")
	flagCSVPath := flag.String("csv-path", "", "CSV log file path")
	flagMQTTServer := flag.String("mqtt-server", "", "MQTT server (tcp://host:port)")
	flagMQTTUser := flag.String("mqtt-user", "", "MQTT username")
	flagMQTTPass := flag.String("mqtt-pass", "", "MQTT password")
	flagClientID := flag.String("mqtt-client-id", "", "MQTT client id")
	flagTopic := flag.String("mqtt-topic", "", "MQTT topic")

	flag.Parse()

	cfg := DefaultConfig()

	if *cfgPath != "" {
		b, err := os.ReadFile(*cfgPath)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if *flagSPIPort != "" {
		cfg.SPI.Port = *flagSPIPort
	}
	if *flagCSPin != "" {
		cfg.SPI.CSPin = *flagCSPin
	}
	if *flagHoldPin != "" {
		cfg.SPI.HoldPin = *flagHoldPin
	}
	if *flagSensorType != "" {
		cfg.SensorType = *flagSensorType
	}
	if *flagAnalysis {
		cfg.Analysis = true
	}
	if *flagOutputs != "" {
		parts := parseCSV(*flagOutputs)
		outs := make([]OutputConfig, 0, len(parts))
		for _, p := range parts {
			outs = append(outs, OutputConfig{Type: p})
		}
		cfg.Outputs = outs
	}
	if *flagCSVPath != "" {
		applied := false
		for i := range cfg.Outputs {
			if strings.EqualFold(cfg.Outputs[i].Type, "csv") {
				cfg.Outputs[i].Path = *flagCSVPath
				applied = true
			}
		}
		if !applied {
			cfg.Outputs = append(cfg.Outputs, OutputConfig{Type: "csv", Path: *flagCSVPath})
		}
	}
	// map mqtt flags into mqtt outputs (create one if missing)
	if *flagMQTTServer != "" || *flagMQTTUser != "" || *flagMQTTPass != "" || *flagClientID != "" || *flagTopic != "" {
		applied := false
		for i := range cfg.Outputs {
			if strings.EqualFold(cfg.Outputs[i].Type, "mqtt") {
				if cfg.Outputs[i].MQTT == nil {
					cfg.Outputs[i].MQTT = &MQTTConfig{}
				}
				applyMQTTFlags(cfg.Outputs[i].MQTT, *flagMQTTServer, *flagMQTTUser, *flagMQTTPass, *flagClientID, *flagTopic)
				applied = true
			}
		}
		if !applied {
			mqttOut := OutputConfig{Type: "mqtt", MQTT: &MQTTConfig{}}
			applyMQTTFlags(mqttOut.MQTT, *flagMQTTServer, *flagMQTTUser, *flagMQTTPass, *flagClientID, *flagTopic)
			cfg.Outputs = append(cfg.Outputs, mqttOut)
		}
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate rejects configurations the acquisition loop cannot act on.
func Validate(cfg Config) error {
	switch cfg.SensorType {
	case "real", "simulation":
	default:
		return fmt.Errorf("sensor-type must be real or simulation, got %q", cfg.SensorType)
	}
	if cfg.SensorType == "real" && cfg.SPI.CSPin == "" {
		return fmt.Errorf("cs-pin is required for a real sensor")
	}
	if len(cfg.Outputs) == 0 {
		return fmt.Errorf("at least one output is required")
	}
	for _, o := range cfg.Outputs {
		switch strings.ToLower(o.Type) {
		case "console", "mqtt":
		case "csv":
			if o.Path == "" {
				return fmt.Errorf("csv output requires a path")
			}
		default:
			return fmt.Errorf("unknown output type %q", o.Type)
		}
	}
	return nil
}

func applyMQTTFlags(m *MQTTConfig, server, user, pass, clientID, topic string) {
	if server != "" {
		m.Server = server
	}
	if user != "" {
		m.Username = user
	}
	if pass != "" {
		m.Password = pass
	}
	if clientID != "" {
		m.ClientID = clientID
	}
	if topic != "" {
		m.Topic = topic
	}
}

func parseCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
