package realtime

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// fakeConn scripts incoming frames and records outgoing ones.
type fakeConn struct {
	incoming chan []byte
	written  chan []byte
	closed   chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		incoming: make(chan []byte, 8),
		written:  make(chan []byte, 8),
		closed:   make(chan struct{}),
	}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case data, ok := <-f.incoming:
		if !ok {
			return 0, nil, errors.New("connection closed")
		}
		return websocket.TextMessage, data, nil
	case <-f.closed:
		return 0, nil, errors.New("connection closed")
	}
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.written <- data
	return nil
}

func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (f *fakeConn) Close() error {
	select {
	case <-f.closed:
	default:
		close(f.closed)
	}
	return nil
}

func waitEvent(t *testing.T, c *Client, want string) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-c.Events():
			if ev.Type == want {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestClientEmitsConnectAndForwardsEvents(t *testing.T) {
	fc := newFakeConn()
	c := New("ws://test/ws", 10*time.Millisecond)
	dialed := make(chan struct{}, 4)
	first := true
	c.dial = func(string) (conn, error) {
		dialed <- struct{}{}
		if !first {
			return nil, errors.New("no more connections")
		}
		first = false
		return fc, nil
	}
	c.Start()
	defer c.Stop()

	<-dialed
	waitEvent(t, c, EventConnect)

	frame, _ := json.Marshal(Event{Type: EventAnalysisStarted, Payload: json.RawMessage(`{"question":"q"}`)})
	fc.incoming <- frame
	ev := waitEvent(t, c, EventAnalysisStarted)

	var payload AnalysisPayload
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.Question != "q" {
		t.Fatalf("question = %q", payload.Question)
	}
}

func TestClientEmitsDisconnectAndRedials(t *testing.T) {
	fc := newFakeConn()
	c := New("ws://test/ws", time.Millisecond)
	dials := make(chan struct{}, 16)
	calls := 0
	c.dial = func(string) (conn, error) {
		dials <- struct{}{}
		calls++
		if calls == 1 {
			return fc, nil
		}
		return nil, errors.New("backend down")
	}
	c.Start()
	defer c.Stop()

	waitEvent(t, c, EventConnect)
	fc.Close()
	waitEvent(t, c, EventDisconnect)

	// Reconnection stays enabled after a drop.
	deadline := time.After(2 * time.Second)
	for seen := 0; seen < 2; {
		select {
		case <-dials:
			seen++
		case <-deadline:
			t.Fatal("client did not attempt to reconnect")
		}
	}
}

func TestRequestAnalysisWritesFrame(t *testing.T) {
	fc := newFakeConn()
	c := New("ws://test/ws", 10*time.Millisecond)
	first := true
	c.dial = func(string) (conn, error) {
		if !first {
			return nil, errors.New("done")
		}
		first = false
		return fc, nil
	}
	c.Start()
	defer c.Stop()
	waitEvent(t, c, EventConnect)

	if !c.RequestAnalysis("why is consumption up?") {
		t.Fatal("request should be accepted")
	}
	select {
	case data := <-fc.written:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("frame: %v", err)
		}
		if ev.Type != "request_analysis" {
			t.Fatalf("frame type = %s", ev.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no frame written")
	}
}
