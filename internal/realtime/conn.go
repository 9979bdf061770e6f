package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 32
)

// outbound is a marshalled-on-write event envelope.
type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Conn wraps a single websocket connection with a buffered outbound queue.
// All writes go through the write pump; deliver never blocks — a full buffer
// drops the event.
type Conn struct {
	id   string
	ws   *websocket.Conn
	send chan outbound
	done chan struct{}
	once sync.Once
	log  zerolog.Logger
}

func newConn(ws *websocket.Conn, log zerolog.Logger) *Conn {
	return &Conn{
		id:   uuid.NewString(),
		ws:   ws,
		send: make(chan outbound, sendBuffer),
		done: make(chan struct{}),
		log:  log,
	}
}

// ID returns the connection's unique identifier.
func (c *Conn) ID() string { return c.id }

// deliver queues an event for the write pump. Returns false when the
// connection is closed or its buffer is full.
func (c *Conn) deliver(event string, data any) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- outbound{Event: event, Data: data}:
		return true
	default:
		return false
	}
}

// writePump serialises all writes to the underlying websocket. It exits when
// the connection closes or a write fails.
func (c *Conn) writePump() {
	for {
		select {
		case <-c.done:
			return
		case ev := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(ev); err != nil {
				c.log.Debug().Err(err).Str("conn_id", c.id).Msg("websocket write failed")
				c.close()
				return
			}
		}
	}
}

func (c *Conn) close() {
	c.once.Do(func() {
		close(c.done)
		if c.ws != nil {
			_ = c.ws.Close()
		}
	})
}
