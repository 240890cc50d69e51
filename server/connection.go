package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"snakeos/game"
)

// writeWait bounds a single socket write. A client that stops reading is dropped once it expires.
const writeWait = 5 * time.Second

// Conn is one browser tab: a socket plus the game loop it drives.
// It is the loop's sink, so frames and events go straight out on the socket.
type Conn struct {
	ID     string
	IP     string
	ws     *websocket.Conn
	loop   *game.Loop
	mu     sync.Mutex // serializes ws writes
	closed atomic.Bool
	once   sync.Once
}

// NewConn wraps a socket. Attach a loop with Bind before reading.
func NewConn(ws *websocket.Conn, ip string) *Conn {
	return &Conn{
		ID: uuid.New().String(),
		IP: ip,
		ws: ws,
	}
}

// Bind gives the connection its own session and loop. The loop is returned stopped.
func (c *Conn) Bind(cfg game.Config, rate int) *game.Loop {
	c.loop = game.NewLoop(game.NewSession(cfg), c, rate)
	return c.loop
}

// Send serializes msg to JSON and writes it to the WebSocket
func (c *Conn) Send(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed.Load() {
		return nil
	}
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		// A failed or timed out write leaves the socket unusable.
		c.Close()
		return err
	}
	return nil
}

// Present implements game.Sink.
func (c *Conn) Present(f game.Frame) {
	if err := c.Send(frameMsg(f)); err != nil {
		log.Printf("frame write for %s: %v", c.ID, err)
	}
}

// Notify implements game.Sink.
func (c *Conn) Notify(e game.Event) {
	if e.Kind == game.EventState && e.To == game.GameOver {
		log.Printf("game over %s: score=%d eaten=%d", c.ID, e.Status.Score, e.Status.FoodsEaten)
	}
	if err := c.Send(eventMsg(e)); err != nil {
		log.Printf("event write for %s: %v", c.ID, err)
	}
}

// Close marks the connection closed and shuts the socket. It does not wait for a
// write in progress: closing the socket is what unblocks it.
func (c *Conn) Close() {
	c.once.Do(func() {
		c.closed.Store(true)
		c.ws.Close()
	})
}

// ConnManager manages all active connections
type ConnManager struct {
	mu    sync.RWMutex
	conns map[string]*Conn
}

// NewConnManager creates an empty connection manager
func NewConnManager() *ConnManager {
	return &ConnManager{conns: make(map[string]*Conn)}
}

// Add registers a connection unless limit connections are already live.
func (m *ConnManager) Add(c *Conn, limit int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > 0 && len(m.conns) >= limit {
		return false
	}
	m.conns[c.ID] = c
	return true
}

// Remove unregisters a connection
func (m *ConnManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, id)
}

// Count returns the number of active connections
func (m *ConnManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// CloseAll drops every connection. Used on shutdown.
func (m *ConnManager) CloseAll() {
	m.mu.RLock()
	list := make([]*Conn, 0, len(m.conns))
	for _, c := range m.conns {
		list = append(list, c)
	}
	m.mu.RUnlock()
	for _, c := range list {
		c.Close()
	}
}

// ReadLoop handles incoming messages for a connection until it disconnects.
// Compact protocol: single-char "t" field for message type
// ("s" start, "d" steer, "c" close popup, "z" resize).
// The loop is stopped before ReadLoop returns.
func (c *Conn) ReadLoop(ctx context.Context, onDisconnect func(conn *Conn)) {
	defer func() {
		c.loop.Stop()
		onDisconnect(c)
		c.Close()
	}()

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error for %s: %v", c.ID, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("bad message from %s: %v", c.ID, err)
			continue
		}
		if err := c.dispatch(ctx, msg); err != nil {
			_ = c.Send(ErrorMsg{Type: MsgError, Message: err.Error()})
		}
	}
}

func (c *Conn) dispatch(ctx context.Context, msg ClientMessage) error {
	switch msg.Type {
	case MsgStart: // "s"
		if err := c.loop.Restart(ctx); err != nil {
			return err
		}
		log.Printf("run started: %s", c.ID)

	case MsgSteer: // "d"
		x, y := msg.X, msg.Y
		if msg.Dir != "" {
			d, err := game.ParseDirection(msg.Dir)
			if err != nil {
				return err
			}
			x, y = d.X, d.Y
		}
		c.loop.SetDirection(x, y)

	case MsgClose: // "c"
		return c.loop.Resume()

	case MsgResize: // "z"
		if msg.Width <= 0 || msg.Height <= 0 {
			return errBadSize
		}
		c.loop.Resize(msg.Width, msg.Height)

	default:
		log.Printf("unknown message type %q from %s", msg.Type, c.ID)
	}
	return nil
}

var errBadSize = errors.New("resize: width and height must be positive")
