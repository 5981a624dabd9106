package server

import (
	"io"
	"net/http"
	"testing"

	"letter-rush/internal/config"
)

func TestHealthz(t *testing.T) {
	srv := New(config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", string(body))
	}
}

func TestJoinQRUnknownRoom(t *testing.T) {
	srv := New(config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/qr/ZZZZ99")
	if err != nil {
		t.Fatalf("get qr: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestJoinQRKnownRoom(t *testing.T) {
	srv := New(config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	room := srv.store.CreateRoom(RoomConfig{ArbiterPlays: true})
	resp, err := http.Get(ts.URL + "/qr/" + room.Code)
	if err != nil {
		t.Fatalf("get qr: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "image/png" {
		t.Fatalf("expected image/png, got %q", got)
	}
}
