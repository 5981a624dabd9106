package server

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Skipf("skipping test; websocket dial unavailable: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func sendEvent(t *testing.T, conn *websocket.Conn, eventType string, data any) {
	t.Helper()
	payload, err := json.Marshal(newEvent(eventType, data))
	if err != nil {
		t.Fatalf("marshal %s event: %v", eventType, err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		t.Fatalf("write %s event: %v", eventType, err)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn, timeout time.Duration) (string, json.RawMessage) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read websocket event: %v", err)
	}
	var envelope eventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		t.Fatalf("decode websocket event: %v", err)
	}
	return envelope.Type, envelope.Data
}

func expectEvent(t *testing.T, conn *websocket.Conn, wantType string) json.RawMessage {
	t.Helper()
	gotType, data := readEvent(t, conn, 5*time.Second)
	if gotType != wantType {
		t.Fatalf("expected %s event, got %s", wantType, gotType)
	}
	return data
}

func expectNoWSMessage(t *testing.T, conn *websocket.Conn, timeout time.Duration) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected no websocket message within %s", timeout)
	} else {
		netErr, ok := err.(net.Error)
		if !ok || !netErr.Timeout() {
			t.Fatalf("expected websocket timeout, got %v", err)
		}
	}
}

func decodeInto(t *testing.T, data json.RawMessage, dest any) {
	t.Helper()
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("decode event payload: %v", err)
	}
}
