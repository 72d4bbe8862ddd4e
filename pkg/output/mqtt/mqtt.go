package mqtt

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/user7217/arduino-ecg/pkg/config"
	"github.com/user7217/arduino-ecg/pkg/output"
	"github.com/user7217/arduino-ecg/pkg/sensor"
)

const (
	DefaultServer   = "tcp://localhost:1883"
	DefaultClientID = "max30003-client"
	DefaultTopic    = "ecg/samples"
)

type MQTTOutput struct {
	client mqtt.Client
	topic  string
}

func NewMQTT(cfg config.MQTTConfig) (output.Output, error) {
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	if cfg.ClientID == "" {
		cfg.ClientID = DefaultClientID
	}
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}

	opts := mqtt.NewClientOptions().AddBroker(cfg.Server).SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	return &MQTTOutput{client: client, topic: cfg.Topic}, nil
}

func (m *MQTTOutput) Publish(r sensor.Reading) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	token := m.client.Publish(m.topic, 0, false, b)
	token.Wait()
	return token.Error()
}

func (m *MQTTOutput) Close() error {
	if m.client != nil {
		m.client.Disconnect(250)
	}
	return nil
}
