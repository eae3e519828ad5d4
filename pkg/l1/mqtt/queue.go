// Package mqtt exposes L1 controllers over MQTT.
package mqtt

import (
	"net/url"
	"strings"
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// Handler is the callback when a message is received.
// topic has the queue's TopicPrefix removed.
type Handler func(topic string, payload []byte)

// Queue wraps MQTT client with a topic prefix and local dispatching,
// subscriptions survive reconnects.
type Queue struct {
	Client      paho.Client
	TopicPrefix string
	OnConnect   func(*Queue)

	subsLock sync.RWMutex
	subs     map[string][]*Subscription
}

// Subscription is a subscribed topic filter.
type Subscription struct {
	Token paho.Token

	queue   *Queue
	filter  string
	handler Handler
}

// MatchTopic matches topic with an MQTT filter, supporting + and #.
func MatchTopic(topic, filter string) bool {
	tokensT, tokensF := strings.Split(topic, "/"), strings.Split(filter, "/")
	for i, token := range tokensF {
		if token == "#" && i+1 == len(tokensF) {
			return true
		}
		if i >= len(tokensT) {
			return false
		}
		if token != "+" && token != tokensT[i] {
			return false
		}
	}
	return len(tokensF) == len(tokensT)
}

// ClientOptionsFromURL creates ClientOptions from URL:
//
//   mqtt://[user:pass@]host:port/topic-prefix/?client-id=ID
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	scheme := u.Scheme
	if scheme == "" || scheme == "mqtt" {
		scheme = "tcp"
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(scheme + "://" + u.Host).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}
	if clientID := u.Query().Get("client-id"); clientID != "" {
		opts.SetClientID(clientID)
	}
	return opts, strings.TrimPrefix(u.Path, "/"), nil
}

// NewQueue creates Queue.
func NewQueue(options *paho.ClientOptions, topicPrefix string) *Queue {
	q := &Queue{TopicPrefix: topicPrefix}
	options.SetOnConnectHandler(q.onConnect)
	options.SetConnectionLostHandler(q.onConnectionLost)
	q.Client = paho.NewClient(options)
	return q
}

// NewQueueFromURL creates Queue from URL.
func NewQueueFromURL(brokerURL string) (*Queue, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return NewQueue(opts, topicPrefix), nil
}

// Connect connects the client.
func (q *Queue) Connect() paho.Token {
	return q.Client.Connect()
}

// Close implements io.Closer.
func (q *Queue) Close() error {
	q.Client.Disconnect(250)
	return nil
}

// Sub subscribes a topic filter.
func (q *Queue) Sub(filter string, handler Handler) *Subscription {
	sub := &Subscription{queue: q, filter: filter, handler: handler}
	q.subsLock.Lock()
	if q.subs == nil {
		q.subs = make(map[string][]*Subscription)
	}
	newSub := len(q.subs[filter]) == 0
	q.subs[filter] = append(q.subs[filter], sub)
	q.subsLock.Unlock()

	if newSub {
		glog.V(2).Infof("SUB %q", q.TopicPrefix+filter)
		sub.Token = q.Client.Subscribe(q.TopicPrefix+filter, 0, q.dispatch)
	}
	return sub
}

// Pub publishes to a topic.
func (q *Queue) Pub(topic string, payload []byte) paho.Token {
	return q.PubWith(topic, payload, 0, false)
}

// PubWith publishes with QoS and retain settings.
func (q *Queue) PubWith(topic string, payload []byte, qos byte, retain bool) paho.Token {
	glog.V(2).Infof("PUB %q", q.TopicPrefix+topic)
	return q.Client.Publish(q.TopicPrefix+topic, qos, retain, payload)
}

func (q *Queue) onConnect(paho.Client) {
	glog.Info("mqtt connected")
	filters := make(map[string]byte)
	q.subsLock.RLock()
	for filter := range q.subs {
		filters[q.TopicPrefix+filter] = 0
	}
	q.subsLock.RUnlock()
	if len(filters) > 0 {
		q.Client.SubscribeMultiple(filters, q.dispatch)
	}
	if h := q.OnConnect; h != nil {
		h(q)
	}
}

func (q *Queue) onConnectionLost(c paho.Client, err error) {
	glog.Warningf("mqtt connection lost: %v", err)
}

func (q *Queue) dispatch(c paho.Client, msg paho.Message) {
	topic := msg.Topic()
	if !strings.HasPrefix(topic, q.TopicPrefix) {
		return
	}
	glog.V(2).Infof("RCV %q", topic)
	q.deliver(topic[len(q.TopicPrefix):], msg.Payload())
}

func (q *Queue) deliver(topic string, payload []byte) {
	var handlers []Handler
	q.subsLock.RLock()
	for filter, subs := range q.subs {
		if MatchTopic(topic, filter) {
			for _, sub := range subs {
				handlers = append(handlers, sub.handler)
			}
		}
	}
	q.subsLock.RUnlock()
	for _, h := range handlers {
		h(topic, payload)
	}
}

// Close unsubscribes the handler, and the filter if it's the last one.
func (s *Subscription) Close() error {
	q := s.queue
	q.subsLock.Lock()
	subs := q.subs[s.filter]
	for i, sub := range subs {
		if sub == s {
			subs = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	unsub := len(subs) == 0
	if unsub {
		delete(q.subs, s.filter)
	} else {
		q.subs[s.filter] = subs
	}
	q.subsLock.Unlock()
	if !unsub {
		return nil
	}
	glog.V(2).Infof("UNSUB %q", q.TopicPrefix+s.filter)
	token := q.Client.Unsubscribe(q.TopicPrefix + s.filter)
	token.Wait()
	return token.Error()
}
