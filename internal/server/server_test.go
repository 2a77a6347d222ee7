package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"

	"github.com/snickbit/dungeon/internal/config"
	"github.com/snickbit/dungeon/internal/database"
	"github.com/snickbit/dungeon/internal/dungeon"
)

// dial starts the server on a test listener and opens a client socket.
func dial(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(s.handleWebSocket))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req Request) Response {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	var resp Response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return resp
}

func newTestServer() *Server {
	return NewServer(config.ServerConfig{MaxStageSize: 101}, dungeon.DefaultOptions())
}

func TestGenerate(t *testing.T) {
	conn := dial(t, newTestServer())

	resp := roundTrip(t, conn, Request{Op: "generate", Width: 21, Height: 21, Seed: "ws-1"})
	if resp.Error != "" {
		t.Fatalf("generate failed: %s", resp.Error)
	}
	if !resp.OK || resp.Seed != "ws-1" {
		t.Errorf("resp = %+v", resp)
	}

	var payload struct {
		Seed   string          `json:"seed"`
		Width  int             `json:"width"`
		Height int             `json:"height"`
		Rooms  []dungeon.Room  `json:"rooms"`
		Tiles  json.RawMessage `json:"tiles"`
	}
	if err := json.Unmarshal(resp.Dungeon, &payload); err != nil {
		t.Fatalf("dungeon payload is not valid JSON: %v", err)
	}
	if payload.Width != 21 || payload.Height != 21 {
		t.Errorf("payload size = %dx%d", payload.Width, payload.Height)
	}
	if payload.Seed != "ws-1" {
		t.Errorf("payload seed = %q", payload.Seed)
	}
}

func TestGenerateValidation(t *testing.T) {
	conn := dial(t, newTestServer())

	resp := roundTrip(t, conn, Request{Op: "generate", Width: 4, Height: 21})
	if resp.Error == "" || !strings.Contains(resp.Error, "width") {
		t.Errorf("undersized width error = %q", resp.Error)
	}

	resp = roundTrip(t, conn, Request{Op: "generate", Width: 999, Height: 21})
	if resp.Error == "" || !strings.Contains(resp.Error, "maximum") {
		t.Errorf("oversized stage error = %q", resp.Error)
	}
}

func TestUnknownOp(t *testing.T) {
	conn := dial(t, newTestServer())

	resp := roundTrip(t, conn, Request{Op: "conjure"})
	if resp.Error == "" || !strings.Contains(resp.Error, "conjure") {
		t.Errorf("unknown op error = %q", resp.Error)
	}
}

func TestAccessKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	s := NewServer(config.ServerConfig{AccessKeyHash: string(hash), MaxStageSize: 101}, dungeon.DefaultOptions())
	conn := dial(t, s)

	// Operations before auth are rejected.
	resp := roundTrip(t, conn, Request{Op: "generate", Width: 11, Height: 11})
	if resp.Error == "" || !strings.Contains(resp.Error, "authentication") {
		t.Errorf("unauthenticated generate error = %q", resp.Error)
	}

	// A wrong key does not authenticate.
	resp = roundTrip(t, conn, Request{Op: "auth", Key: "wrong"})
	if resp.OK || resp.Error == "" {
		t.Errorf("wrong key response = %+v", resp)
	}

	// The right key unlocks generation.
	resp = roundTrip(t, conn, Request{Op: "auth", Key: "open-sesame"})
	if !resp.OK {
		t.Fatalf("auth failed: %+v", resp)
	}
	resp = roundTrip(t, conn, Request{Op: "generate", Width: 11, Height: 11, Seed: "authed"})
	if !resp.OK {
		t.Errorf("authed generate failed: %+v", resp)
	}
}

func TestFetchWithoutArchive(t *testing.T) {
	conn := dial(t, newTestServer())

	resp := roundTrip(t, conn, Request{Op: "fetch", Seed: "anything"})
	if resp.Error == "" || !strings.Contains(resp.Error, "archive") {
		t.Errorf("fetch without archive error = %q", resp.Error)
	}
}

func TestGenerateArchiveFetch(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "server.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	s := newTestServer()
	s.SetDatabase(db)
	conn := dial(t, s)

	gen := roundTrip(t, conn, Request{Op: "generate", Width: 15, Height: 15, Seed: "keep", Archive: true})
	if !gen.OK {
		t.Fatalf("generate failed: %+v", gen)
	}

	fetched := roundTrip(t, conn, Request{Op: "fetch", Seed: "keep"})
	if !fetched.OK {
		t.Fatalf("fetch failed: %+v", fetched)
	}
	if string(fetched.Dungeon) != string(gen.Dungeon) {
		t.Error("fetched dungeon differs from the generated payload")
	}

	missing := roundTrip(t, conn, Request{Op: "fetch", Seed: "absent"})
	if missing.OK || missing.Error == "" {
		t.Errorf("fetch of unknown seed = %+v", missing)
	}
}

func TestOptionsOverride(t *testing.T) {
	conn := dial(t, newTestServer())

	opts := dungeon.DefaultOptions()
	opts.RemoveDeadEnds = true
	resp := roundTrip(t, conn, Request{Op: "generate", Width: 21, Height: 21, Seed: "pruned", Options: &opts})
	if !resp.OK {
		t.Fatalf("generate with options failed: %+v", resp)
	}

	base := roundTrip(t, conn, Request{Op: "generate", Width: 21, Height: 21, Seed: "pruned"})
	if !base.OK {
		t.Fatalf("generate failed: %+v", base)
	}
	if string(resp.Dungeon) == string(base.Dungeon) {
		t.Error("dead-end pruning produced an identical dungeon")
	}
}

func TestConnectionLimit(t *testing.T) {
	s := NewServer(config.ServerConfig{MaxConnections: 1, MaxStageSize: 101}, dungeon.DefaultOptions())
	ts := httptest.NewServer(http.HandlerFunc(s.handleWebSocket))
	t.Cleanup(ts.Close)
	url := "ws" + strings.TrimPrefix(ts.URL, "http")

	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { first.Close() })

	if _, resp, err := websocket.DefaultDialer.Dial(url, nil); err == nil {
		t.Error("second connection should be rejected")
	} else if resp != nil && resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("second connection status = %d, want 503", resp.StatusCode)
	}
}
