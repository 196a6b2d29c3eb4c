package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/layertx/layer"
	"github.com/matt-g-everett/layertx/script"
	"github.com/rs/zerolog/log"
)

const publishTimeout = time.Second

// Streamer publishes preview frames and layer snapshots over MQTT and feeds
// commands received over MQTT into the Controller.
type Streamer struct {
	config     Config
	client     mqtt.Client
	controller *Controller
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client mqtt.Client, controller *Controller) *Streamer {
	s := new(Streamer)
	s.config = config
	s.client = client
	s.controller = controller
	controller.OnFrame(s.SendFrame)
	return s
}

// SendFrame publishes a frame as binary and the snapshots as JSON.
func (s *Streamer) SendFrame(frame *Frame, snaps []layer.Snapshot) {
	if !s.client.IsConnected() {
		return
	}

	topics := s.config.Mqtt.Topics
	if topics.Stream != "" {
		b, err := frame.MarshalBinary()
		if err != nil {
			log.Error().Err(err).Msg("marshal frame")
			return
		}
		s.publish(topics.Stream, b)
	}
	if topics.Snapshot != "" {
		b, err := json.Marshal(snaps)
		if err != nil {
			log.Error().Err(err).Msg("marshal snapshots")
			return
		}
		s.publish(topics.Snapshot, b)
	}
}

func (s *Streamer) publish(topic string, payload []byte) {
	token := s.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		log.Warn().Str("topic", topic).Msg("publish timed out")
		return
	}
	if err := token.Error(); err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("publish failed")
	}
}

// ErrSharedTopic is returned by Subscribe when the command and control topics
// are the same.
var ErrSharedTopic = errors.New("command and control topics must differ")

// Subscribe listens on the command and control topics. Call it from the
// on-connect handler so subscriptions survive reconnects.
func (s *Streamer) Subscribe() error {
	topics := s.config.Mqtt.Topics
	if topics.Command != "" && topics.Command == topics.Control {
		return fmt.Errorf("subscribe %s: %w", topics.Command, ErrSharedTopic)
	}

	subscriptions := []struct {
		topic   string
		handler mqtt.MessageHandler
	}{
		{topics.Command, s.handleCommand},
		{topics.Control, s.handleControl},
	}
	for _, sub := range subscriptions {
		if sub.topic == "" {
			continue
		}
		if token := s.client.Subscribe(sub.topic, 1, sub.handler); token.Wait() && token.Error() != nil {
			return fmt.Errorf("subscribe %s: %w", sub.topic, token.Error())
		}
		log.Info().Str("topic", sub.topic).Msg("subscribed")
	}
	return nil
}

func (s *Streamer) handleCommand(_ mqtt.Client, msg mqtt.Message) {
	block, err := script.DecodeBlock(msg.Payload())
	if err != nil {
		log.Warn().Err(err).Str("topic", msg.Topic()).Msg("dropping command message")
		return
	}
	if err := s.controller.Send(block.Layer, block.Commands...); err != nil {
		log.Warn().Err(err).Str("topic", msg.Topic()).Msg("dropping command message")
		return
	}
	log.Debug().Int("layer", block.Layer).Int("commands", len(block.Commands)).Msg("queued")
}

func (s *Streamer) handleControl(_ mqtt.Client, msg mqtt.Message) {
	switch action := strings.TrimSpace(string(msg.Payload())); action {
	case "finalize":
		s.controller.Finalize()
		log.Info().Msg("finalize requested")
	default:
		log.Warn().Str("action", action).Msg("unknown control message")
	}
}
