// Package realtime maintains the WebSocket channel to the dashboard backend.
// The connection carries analysis traffic for the chat view; everything else
// goes over plain HTTP. Reconnection is enabled with a fixed retry delay.
package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event types delivered on the channel.
const (
	EventConnect          = "connect"
	EventDisconnect       = "disconnect"
	EventAnalysisStarted  = "analysis_started"
	EventContextFound     = "context_found"
	EventAnalysisComplete = "analysis_complete"
	EventAnalysisError    = "analysis_error"
)

// Event is one message from the backend. Payload stays raw so each consumer
// decodes only the shape it cares about.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"data,omitempty"`
}

// AnalysisPayload is the body of analysis_started/analysis_complete events.
type AnalysisPayload struct {
	Question string `json:"question"`
	Analysis string `json:"analysis"`
}

// ErrorPayload is the body of analysis_error events.
type ErrorPayload struct {
	Error string `json:"error"`
}

// Client is the shared bidirectional channel handle. One instance lives for
// the whole session.
type Client struct {
	url            string
	reconnectDelay time.Duration
	dial           func(url string) (conn, error)

	mu        sync.Mutex
	conn      conn
	connected bool

	events chan Event
	send   chan Event
	done   chan struct{}
	once   sync.Once
}

// conn narrows *websocket.Conn to what the client uses, so tests can fake
// the transport.
type conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// New builds a client for a ws:// or wss:// URL.
func New(url string, reconnectDelay time.Duration) *Client {
	if reconnectDelay <= 0 {
		reconnectDelay = 3 * time.Second
	}
	return &Client{
		url:            url,
		reconnectDelay: reconnectDelay,
		dial: func(u string) (conn, error) {
			c, _, err := websocket.DefaultDialer.Dial(u, nil)
			return c, err
		},
		events: make(chan Event, 32),
		send:   make(chan Event, 8),
		done:   make(chan struct{}),
	}
}

// Events is the stream of backend events, including synthesized connect and
// disconnect markers.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Connected reports the current link state.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Start launches the connect/reconnect loop.
func (c *Client) Start() {
	go c.loop()
}

// Stop closes the channel handle. Safe to call more than once.
func (c *Client) Stop() {
	c.once.Do(func() { close(c.done) })
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.mu.Unlock()
}

// RequestAnalysis submits a question over the channel. The buffer is small
// on purpose; if the channel is saturated the request is dropped and the
// caller falls back to HTTP.
func (c *Client) RequestAnalysis(question string) bool {
	ev := Event{Type: "request_analysis"}
	payload, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return false
	}
	ev.Payload = payload
	select {
	case c.send <- ev:
		return true
	default:
		return false
	}
}

func (c *Client) loop() {
	for {
		select {
		case <-c.done:
			return
		default:
		}

		cn, err := c.dial(c.url)
		if err != nil {
			log.Printf("realtime: dial %s: %v (retrying in %v)", c.url, err, c.reconnectDelay)
			select {
			case <-c.done:
				return
			case <-time.After(c.reconnectDelay):
			}
			continue
		}

		c.mu.Lock()
		c.conn = cn
		c.connected = true
		c.mu.Unlock()
		c.emit(Event{Type: EventConnect})

		c.run(cn)

		c.mu.Lock()
		c.connected = false
		c.conn = nil
		c.mu.Unlock()
		c.emit(Event{Type: EventDisconnect})

		select {
		case <-c.done:
			return
		case <-time.After(c.reconnectDelay):
		}
	}
}

// run pumps reads and writes until the connection drops.
func (c *Client) run(cn conn) {
	defer cn.Close()
	readErr := make(chan struct{})

	go func() {
		defer close(readErr)
		for {
			_, data, err := cn.ReadMessage()
			if err != nil {
				return
			}
			var ev Event
			if err := json.Unmarshal(data, &ev); err != nil {
				log.Printf("realtime: bad frame: %v", err)
				continue
			}
			c.emit(ev)
		}
	}()

	for {
		select {
		case <-c.done:
			return
		case <-readErr:
			return
		case ev := <-c.send:
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			cn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := cn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("realtime: write: %v", err)
				return
			}
		}
	}
}

// emit drops events rather than blocking the pumps when the UI lags.
func (c *Client) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		log.Printf("realtime: event buffer full, dropping %s", ev.Type)
	}
}
