package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/jrk.go/pkg/l1"
	"github.com/robotalks/jrk.go/pkg/l1/msgs"
	"github.com/robotalks/jrk.go/pkg/l1/servo"
)

// Topics under <type>/<id>/
const (
	TopicMeta  = "meta"
	TopicState = "state"
	TopicCmd   = "cmd"
	TopicReply = "reply"
)

// PublishTimeout bounds waiting for a publish to complete.
const PublishTimeout = time.Second

// Endpoint exposes a servo over MQTT: states are published as events,
// commands are executed by Handler and replied with the same sequence.
type Endpoint struct {
	Queue   *Queue
	Info    l1.ControllerInfo
	Handler servo.CommandHandler
	// OnConnectError is called if the first connect fails,
	// default logs the error.
	OnConnectError func(error)

	metaJSON []byte
}

// NewEndpoint creates an Endpoint.
func NewEndpoint(brokerURL string, info l1.ControllerInfo, handler servo.CommandHandler) (*Endpoint, error) {
	meta, err := json.Marshal(&info.Meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MQTT URL: %w", err)
	}
	// the broker clears meta if we disappear.
	opts.SetBinaryWill(topicPrefix+info.Ref.Name()+"/"+TopicMeta, nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("jrk:" + info.Ref.Name())
	}
	e := &Endpoint{
		Queue:    NewQueue(opts, topicPrefix),
		Info:     info,
		Handler:  handler,
		metaJSON: meta,
	}
	e.Queue.OnConnect = func(q *Queue) {
		q.PubWith(e.Topic(TopicMeta), e.metaJSON, 1, true)
	}
	return e, nil
}

// Name implements framework.Named.
func (e *Endpoint) Name() string {
	return "mqtt"
}

// Topic returns the topic for this controller.
func (e *Endpoint) Topic(name string) string {
	return e.Info.Ref.Name() + "/" + name
}

// Run implements framework.Runnable.
func (e *Endpoint) Run(ctx context.Context) error {
	sub := e.Queue.Sub(e.Topic(TopicCmd), e.handleCmd)
	token := e.Queue.Connect()
	go func() {
		if token.Wait() && token.Error() != nil {
			e.onConnectError(token.Error())
		}
	}()
	<-ctx.Done()
	sub.Close()
	e.Queue.PubWith(e.Topic(TopicMeta), nil, 1, true).WaitTimeout(PublishTimeout)
	e.Queue.Close()
	return ctx.Err()
}

func (e *Endpoint) onConnectError(err error) {
	if h := e.OnConnectError; h != nil {
		h(err)
		return
	}
	glog.Errorf("mqtt connect: %v", err)
}

// PublishState implements servo.StateSink.
// States are dropped while disconnected.
func (e *Endpoint) PublishState(ctx context.Context, st servo.State) error {
	if !e.Queue.Client.IsConnected() {
		return nil
	}
	data, err := msgs.Encode(st.Message(), 0)
	if err != nil {
		return err
	}
	token := e.Queue.Pub(e.Topic(TopicState), data)
	if !token.WaitTimeout(PublishTimeout) {
		return fmt.Errorf("publish state: timeout")
	}
	return token.Error()
}

func (e *Endpoint) handleCmd(_ string, payload []byte) {
	reply := e.Reply(payload)
	if reply == nil {
		return
	}
	e.Queue.Pub(e.Topic(TopicReply), reply)
}

// Reply executes an encoded command and returns the encoded reply.
// It returns nil for anything which isn't a command.
func (e *Endpoint) Reply(payload []byte) []byte {
	typed, err := msgs.DecodeTyped(payload)
	if err != nil {
		glog.Warningf("bad command: %v", err)
		return nil
	}
	if !typed.IsCommand() || typed.IsReply() {
		return nil
	}
	var reply msgs.Message
	if msg, err := typed.Decode(); err != nil {
		reply = msgs.NewCommandErr(err)
	} else {
		reply = e.Handler.HandleCommand(msg)
	}
	data, err := msgs.Encode(reply, typed.Sequence)
	if err != nil {
		glog.Errorf("encode reply: %v", err)
		return nil
	}
	return data
}
