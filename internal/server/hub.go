package server

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/gui"
)

const clientBuffer = 64

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan []byte, clientBuffer),
		done: make(chan struct{}),
	}
}

// push queues b without blocking. It reports false when the client is gone
// or too slow to keep up.
func (c *client) push(b []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// writeLoop is the only writer on the connection.
func (c *client) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case b := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				c.close()
				return
			}
		}
	}
}

var _ gui.View = (*hub)(nil)

// hub is a gui.View that fans view changes out to every connected client.
// The View methods run on the loop thread; the client set is shared with
// connection goroutines.
type hub struct {
	view *gui.StateView

	mx         sync.Mutex
	clients    map[*client]struct{}
	last       []byte
	maxClients int
	logger     log.Log
}

func newHub(maxClients int, logger log.Log) *hub {
	return &hub{
		view:       gui.NewStateView(),
		clients:    make(map[*client]struct{}),
		maxClients: maxClients,
		logger:     logger,
	}
}

func (h *hub) SetModeLabel(text string) {
	h.view.SetModeLabel(text)
	h.publish()
}

func (h *hub) SetToggle(widget gui.Widget, on bool) {
	h.view.SetToggle(widget, on)
	h.publish()
}

func (h *hub) SetPoints(points int) {
	h.view.SetPoints(points)
	h.publish()
}

func (h *hub) ShowBehaviourMenu(show bool, animate bool) {
	h.view.ShowBehaviourMenu(show, animate)
	h.publish()
}

func (h *hub) publish() {
	state := h.view.Snapshot()
	b, err := json.Marshal(Message{Type: TypeView, State: &state})
	if err != nil {
		h.logger.Error("failed to encode view", log.Error(err))
		return
	}

	h.mx.Lock()
	defer h.mx.Unlock()
	h.last = b
	for c := range h.clients {
		if !c.push(b) {
			h.logger.Warn("dropping slow client", log.String("remote", c.conn.RemoteAddr().String()))
			c.close()
			delete(h.clients, c)
		}
	}
}

// add registers c and queues the latest view for it.
func (h *hub) add(c *client) error {
	h.mx.Lock()
	defer h.mx.Unlock()
	if h.maxClients > 0 && len(h.clients) >= h.maxClients {
		return ErrMaxClientsReached
	}

	h.clients[c] = struct{}{}
	if h.last != nil {
		c.push(h.last)
	}
	return nil
}

func (h *hub) remove(c *client) {
	h.mx.Lock()
	delete(h.clients, c)
	h.mx.Unlock()
	c.close()
}

func (h *hub) len() int {
	h.mx.Lock()
	defer h.mx.Unlock()
	return len(h.clients)
}

func (h *hub) closeAll() {
	h.mx.Lock()
	defer h.mx.Unlock()
	for c := range h.clients {
		c.close()
		delete(h.clients, c)
	}
}
