package ingestion

import (
	"encoding/json"
	"fmt"
	"strings"

	"sahel-cargo/internal/config"
	"sahel-cargo/internal/logger"
	"sahel-cargo/pkg/mqtt"

	"go.uber.org/zap"
)

// Feed subscribes to the container tracker topic and pushes parsed
// positions into the processor.
type Feed struct {
	client    *mqtt.Client
	processor *Processor
	topic     string
	qos       byte
}

// NewFeed creates a new position feed
func NewFeed(cfg *config.MQTTConfig, processor *Processor) *Feed {
	topic := cfg.PositionTopic
	if topic == "" {
		topic = "containers/+/position"
	}

	client := mqtt.NewClient(&mqtt.Config{
		Broker:         cfg.Broker,
		ClientID:       cfg.ClientID,
		Username:       cfg.Username,
		Password:       cfg.Password,
		ConnectTimeout: cfg.ConnectTimeoutDuration(),
	}, logger.Named("mqtt"))

	return &Feed{
		client:    client,
		processor: processor,
		topic:     topic,
		qos:       byte(cfg.QoS),
	}
}

// Start connects to the broker and subscribes to the position topic.
func (f *Feed) Start() error {
	f.processor.Start()

	if err := f.client.Connect(); err != nil {
		return err
	}
	if err := f.client.Subscribe(f.topic, f.qos, f.handleMessage); err != nil {
		return err
	}

	logger.Info("Position feed started", zap.String("topic", f.topic))
	return nil
}

// Stop unsubscribes and shuts the workers down.
func (f *Feed) Stop() {
	if f.client.IsConnected() {
		if err := f.client.Unsubscribe(f.topic); err != nil {
			logger.Warn("Failed to unsubscribe from position topic", zap.Error(err))
		}
		f.client.Disconnect()
	}
	f.processor.Stop()
}

func (f *Feed) handleMessage(topic string, payload []byte) {
	number, err := containerNumberFromTopic(topic)
	if err != nil {
		logger.Warn("Position message on unexpected topic", zap.String("topic", topic))
		return
	}

	var msg PositionMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		logger.Warn("Malformed position payload",
			zap.String("container_number", number),
			zap.Error(err),
		)
		return
	}
	msg.ContainerNumber = number

	if err := ValidatePosition(&msg); err != nil {
		logger.Warn("Invalid position message",
			zap.String("container_number", number),
			zap.Error(err),
		)
		return
	}

	f.processor.Enqueue(&msg)
}

// containerNumberFromTopic extracts the number from containers/<number>/position.
func containerNumberFromTopic(topic string) (string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != "containers" || parts[2] != "position" || parts[1] == "" {
		return "", fmt.Errorf("unexpected topic shape: %s", topic)
	}
	return strings.ToUpper(parts[1]), nil
}
