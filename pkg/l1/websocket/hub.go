// Package websocket streams servo states to websocket clients.
package websocket

import (
	"context"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/jrk.go/pkg/framework"
	"github.com/robotalks/jrk.go/pkg/l1/msgs"
	"github.com/robotalks/jrk.go/pkg/l1/servo"
)

// SendQueueLen is the number of frames buffered per client.
// Frames are dropped for slow clients.
const SendQueueLen = 16

// Hub sends every published state to all connected clients as an
// encoded msgs.Typed binary frame.
type Hub struct {
	handler websocket.Handler

	lock    sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	conn   *websocket.Conn
	sendCh chan []byte
}

// NewHub creates a Hub.
func NewHub() *Hub {
	h := &Hub{clients: make(map[*client]struct{})}
	h.handler = websocket.Handler(h.serve)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.clients)
}

// PublishState implements servo.StateSink.
func (h *Hub) PublishState(ctx context.Context, st servo.State) error {
	data, err := msgs.Encode(st.Message(), 0)
	if err != nil {
		return err
	}
	h.lock.RLock()
	defer h.lock.RUnlock()
	for c := range h.clients {
		select {
		case c.sendCh <- data:
		default:
			glog.V(2).Infof("websocket %s: frame dropped", c.conn.Request().RemoteAddr)
		}
	}
	return nil
}

func (h *Hub) serve(conn *websocket.Conn) {
	c := &client{conn: conn, sendCh: make(chan []byte, SendQueueLen)}
	remote := conn.Request().RemoteAddr
	glog.V(2).Infof("websocket %s: connected", remote)
	h.lock.Lock()
	h.clients[c] = struct{}{}
	h.lock.Unlock()
	defer func() {
		h.lock.Lock()
		delete(h.clients, c)
		h.lock.Unlock()
		conn.Close()
		glog.V(2).Infof("websocket %s: disconnected", remote)
	}()

	// clients don't talk, reading only detects a close.
	doneCh := make(chan struct{})
	go func() {
		defer close(doneCh)
		var discard []byte
		for {
			if err := websocket.Message.Receive(conn, &discard); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-doneCh:
			return
		case data := <-c.sendCh:
			if err := websocket.Message.Send(conn, data); err != nil {
				glog.V(2).Infof("websocket %s: %v", remote, err)
				return
			}
		}
	}
}

// Server serves a Hub on /state.
type Server struct {
	Addr string
	Hub  *Hub
}

// Name implements framework.Named.
func (s *Server) Name() string {
	return "websocket"
}

// Run implements framework.Runnable.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/state", s.Hub)
	srv := &http.Server{Addr: s.Addr, Handler: mux}
	glog.Infof("websocket listening on %s", s.Addr)
	return fx.RunWithContextCloser(ctx, srv, srv.ListenAndServe)
}
