package mqtt

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/jrk.go/pkg/l0/jrk"
	"github.com/robotalks/jrk.go/pkg/l1"
	"github.com/robotalks/jrk.go/pkg/l1/msgs"
	"github.com/robotalks/jrk.go/pkg/l1/servo"
	"github.com/robotalks/jrk.go/pkg/sim/jrksim"
)

func newTestEndpoint(t *testing.T) (*Endpoint, *jrksim.Device) {
	dev := jrksim.NewDevice(1000)
	dev.Speed = 0
	info := l1.ControllerInfo{Ref: l1.ControllerRef{Type: "jrk", ID: "test"}}
	e, err := NewEndpoint("mqtt://localhost:1883/robo/", info, &servo.Commander{Servo: servo.New(dev)})
	require.NoError(t, err)
	return e, dev
}

func decodeReply(t *testing.T, data []byte) (*msgs.Typed, msgs.Message) {
	typed, err := msgs.DecodeTyped(data)
	require.NoError(t, err)
	msg, err := typed.Decode()
	require.NoError(t, err)
	return typed, msg
}

func TestEndpointTopics(t *testing.T) {
	e, _ := newTestEndpoint(t)
	require.Equal(t, "robo/", e.Queue.TopicPrefix)
	require.Equal(t, "jrk/test/cmd", e.Topic(TopicCmd))
	require.Equal(t, "mqtt", e.Name())
}

func TestEndpointReply(t *testing.T) {
	e, dev := newTestEndpoint(t)

	cmd, err := msgs.Encode(&msgs.ServoSetTarget{Target: 3210}, 42)
	require.NoError(t, err)
	typed, msg := decodeReply(t, e.Reply(cmd))
	require.Equal(t, uint32(42), typed.Sequence)
	require.Equal(t, &msgs.ServoTargetReply{Target: 3210}, msg)
	require.Equal(t, jrk.SensorValue(3210), dev.Target())

	cmd, err = msgs.Encode(&msgs.ServoSetTarget{Target: 9999}, 43)
	require.NoError(t, err)
	typed, msg = decodeReply(t, e.Reply(cmd))
	require.Equal(t, uint32(43), typed.Sequence)
	require.IsType(t, &msgs.CommandErr{}, msg)
}

func TestEndpointIgnores(t *testing.T) {
	e, _ := newTestEndpoint(t)
	require.Nil(t, e.Reply([]byte{0xff, 0xff, 0xff}))

	event, err := msgs.Encode(&msgs.ServoState{}, 0)
	require.NoError(t, err)
	require.Nil(t, e.Reply(event))

	reply, err := msgs.Encode(&msgs.CommandOK{}, 1)
	require.NoError(t, err)
	require.Nil(t, e.Reply(reply))
}

func TestEndpointUnknownCommand(t *testing.T) {
	e, _ := newTestEndpoint(t)
	typed := &msgs.Typed{TypeId: msgs.GroupServo | 0x0100, Sequence: 5}
	data, err := typed.Encode()
	require.NoError(t, err)
	replyTyped, msg := decodeReply(t, e.Reply(data))
	require.Equal(t, uint32(5), replyTyped.Sequence)
	require.IsType(t, &msgs.CommandErr{}, msg)
}

func TestEndpointReportsConnectFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	info := l1.ControllerInfo{Ref: l1.ControllerRef{Type: "jrk", ID: "test"}}
	dev := jrksim.NewDevice(1000)
	e, err := NewEndpoint("mqtt://"+addr+"/robo/", info, &servo.Commander{Servo: servo.New(dev)})
	require.NoError(t, err)
	errCh := make(chan error, 1)
	e.OnConnectError = func(err error) { errCh <- err }

	ctx, cancel := context.WithCancel(context.Background())
	runCh := make(chan error, 1)
	go func() { runCh <- e.Run(ctx) }()

	select {
	case err := <-errCh:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("connect failure not reported")
	}
	cancel()
	select {
	case err := <-runCh:
		require.Equal(t, context.Canceled, err)
	case <-time.After(5 * time.Second):
		t.Fatal("endpoint didn't stop")
	}
}
