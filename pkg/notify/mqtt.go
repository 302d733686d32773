package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// MQTT defaults
const (
	DefaultMQTTTopic    = "homesim/notifications"
	mqttConnectTimeout  = 10 * time.Second
	mqttConnectAttempts = 5
	mqttDisconnectQuiet = 250 // milliseconds
)

// ErrMQTTNotConnected is returned by MQTTSink when the broker is unreachable
var ErrMQTTNotConnected = errors.New("mqtt: client not connected")

// MQTTOptions configures the MQTT announcement sink.
type MQTTOptions struct {
	Broker   string // e.g. tcp://localhost:1883
	ClientID string
	Topic    string
	Username string
	Password string
	QoS      byte
}

// publisher is the subset of the paho client the sink needs.
type publisher interface {
	IsConnected() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token
	Disconnect(quiesce uint)
}

// MQTTSink publishes announcements as JSON to a topic so other home
// systems (displays, phones, speakers) can relay them.
type MQTTSink struct {
	client publisher
	topic  string
	qos    byte
	now    func() time.Time
}

type mqttPayload struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// DialMQTT connects to the broker, retrying with exponential backoff.
func DialMQTT(ctx context.Context, opts MQTTOptions) (*MQTTSink, error) {
	if opts.Topic == "" {
		opts.Topic = DefaultMQTTTopic
	}

	po := pahomqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttConnectTimeout)
	if opts.Username != "" {
		po.SetUsername(opts.Username)
		po.SetPassword(opts.Password)
	}
	po.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		log.Warn().Err(err).Str("broker", opts.Broker).Msg("MQTT connection lost")
	})

	client := pahomqtt.NewClient(po)

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), mqttConnectAttempts-1),
		ctx,
	)
	err := backoff.Retry(func() error {
		token := client.Connect()
		if !token.WaitTimeout(mqttConnectTimeout) {
			return fmt.Errorf("connect timeout after %v", mqttConnectTimeout)
		}
		if err := token.Error(); err != nil {
			log.Warn().Err(err).Str("broker", opts.Broker).Msg("MQTT connect failed, retrying")
			return err
		}
		return nil
	}, bo)
	if err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", opts.Broker, err)
	}

	log.Info().Str("broker", opts.Broker).Str("topic", opts.Topic).Msg("MQTT announcement sink connected")

	return newMQTTSink(client, opts.Topic, opts.QoS), nil
}

func newMQTTSink(client publisher, topic string, qos byte) *MQTTSink {
	return &MQTTSink{client: client, topic: topic, qos: qos, now: time.Now}
}

func (s *MQTTSink) Say(ctx context.Context, text string) error {
	if !s.client.IsConnected() {
		return ErrMQTTNotConnected
	}

	payload, err := json.Marshal(mqttPayload{Message: text, Timestamp: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("mqtt: encode payload: %w", err)
	}

	token := s.client.Publish(s.topic, s.qos, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("mqtt: publish to %s: %w", s.topic, ctx.Err())
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt: publish to %s: %w", s.topic, err)
	}
	return nil
}

// Close disconnects from the broker.
func (s *MQTTSink) Close() {
	s.client.Disconnect(mqttDisconnectQuiet)
}
