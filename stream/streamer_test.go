package stream

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/layertx/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doneToken struct{ err error }

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t doneToken) Error() error { return t.err }

type fakeClient struct {
	mqtt.Client
	published     map[string][][]byte
	subscriptions map[string]mqtt.MessageHandler
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		published:     map[string][][]byte{},
		subscriptions: map[string]mqtt.MessageHandler{},
	}
}

func (c *fakeClient) IsConnected() bool { return true }

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.published[topic] = append(c.published[topic], payload.([]byte))
	return doneToken{}
}

func (c *fakeClient) Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	c.subscriptions[topic] = callback
	return doneToken{}
}

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 1 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func streamerConfig() Config {
	c := testConfig()
	c.Mqtt.Topics.Stream = "vn/stream"
	c.Mqtt.Topics.Snapshot = "vn/layers"
	c.Mqtt.Topics.Command = "vn/command"
	c.Mqtt.Topics.Control = "vn/control"
	return c
}

func TestStreamerCommandsAndFrames(t *testing.T) {
	config := streamerConfig()
	client := newFakeClient()
	controller := NewController(config)
	s := NewStreamer(config, client, controller)

	require.NoError(t, s.Subscribe())
	require.Contains(t, client.subscriptions, "vn/command")
	require.Contains(t, client.subscriptions, "vn/control")

	command := client.subscriptions["vn/command"]
	command(client, fakeMessage{topic: "vn/command", payload: []byte(`{layer: 2, commands: [{load: x.s25}, {delay: 1h}, {move: [7, 8]}]}`)})
	command(client, fakeMessage{topic: "vn/command", payload: []byte(`{layer: 2, commands: [{bogus: 1}]}`)})
	command(client, fakeMessage{topic: "vn/command", payload: []byte(`{layer: 40, commands: [{clear: true}]}`)})

	controller.Tick(epoch)
	snap, _ := controller.Snapshot(2)
	assert.Equal(t, "x.s25", snap.Filename)
	assert.Equal(t, "timer", snap.State)

	control := client.subscriptions["vn/control"]
	control(client, fakeMessage{topic: "vn/control", payload: []byte("rewind")})
	control(client, fakeMessage{topic: "vn/control", payload: []byte("finalize\n")})

	controller.Tick(epoch)
	snap, _ = controller.Snapshot(2)
	assert.Equal(t, 7.0, snap.X)
	assert.Equal(t, "idle", snap.State)

	require.Len(t, client.published["vn/stream"], 2)
	assert.Len(t, client.published["vn/stream"][1], 2+3*config.Preview.Pixels)

	require.Len(t, client.published["vn/layers"], 2)
	var snaps []layer.Snapshot
	require.NoError(t, json.Unmarshal(client.published["vn/layers"][1], &snaps))
	require.Len(t, snaps, config.Layers)
	assert.Equal(t, 8.0, snaps[2].Y)
}

func TestStreamerRejectsSharedTopic(t *testing.T) {
	config := streamerConfig()
	config.Mqtt.Topics.Control = config.Mqtt.Topics.Command
	client := newFakeClient()
	s := NewStreamer(config, client, NewController(config))

	assert.ErrorIs(t, s.Subscribe(), ErrSharedTopic)
	assert.Empty(t, client.subscriptions)
}
