// Package server exposes the dungeon generator as a WebSocket service.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"

	"github.com/snickbit/dungeon/internal/config"
	"github.com/snickbit/dungeon/internal/database"
	"github.com/snickbit/dungeon/internal/dungeon"
	"github.com/snickbit/dungeon/internal/logger"
)

// Server accepts WebSocket connections and runs generation requests.
// Each connection gets its own goroutine and its own generator, so
// independent dungeons build concurrently while a single build never
// runs concurrently with itself.
type Server struct {
	cfg      config.ServerConfig
	defaults dungeon.Options
	db       *database.Database
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns int

	httpServer *http.Server
}

// NewServer creates a server with the given settings and default
// generation options.
func NewServer(cfg config.ServerConfig, defaults dungeon.Options) *Server {
	s := &Server{cfg: cfg, defaults: defaults}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return s.cfg.IsOriginAllowed(r.Header.Get("Origin"), r.Host)
		},
	}
	return s
}

// SetDatabase attaches the dungeon archive. Without one, fetch reports
// an error to the client and generate ignores its archive flag.
func (s *Server) SetDatabase(db *database.Database) {
	s.db = db
}

// ListenAndServe starts the HTTP listener and blocks until Close.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", s.handleWebSocket)

	s.httpServer = &http.Server{Addr: s.cfg.Address, Handler: mux}
	logger.Info("Dungeon service listening", "address", s.cfg.Address)

	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Close shuts the HTTP listener down.
func (s *Server) Close() error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Close()
}

// tryAcquire claims a connection slot, or reports the server full.
func (s *Server) tryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.MaxConnections > 0 && s.conns >= s.cfg.MaxConnections {
		return false
	}
	s.conns++
	return true
}

// release frees a connection slot.
func (s *Server) release() {
	s.mu.Lock()
	s.conns--
	s.mu.Unlock()
}

// handleWebSocket upgrades the request and serves the connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.tryAcquire() {
		http.Error(w, "server full", http.StatusServiceUnavailable)
		return
	}
	defer s.release()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warning("WebSocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	client := NewClient(conn)
	defer client.Close()

	logger.Debug("Client connected", "remote", client.RemoteAddr())
	s.serveClient(client)
	logger.Debug("Client disconnected", "remote", client.RemoteAddr())
}

// serveClient runs the request loop for one connection.
func (s *Server) serveClient(client *Client) {
	authed := s.cfg.AccessKeyHash == ""

	for {
		var req Request
		if err := client.ReadJSON(&req); err != nil {
			return
		}

		switch req.Op {
		case "auth":
			authed = s.checkAccessKey(req.Key)
			if authed {
				client.WriteJSON(Response{Op: "auth", OK: true})
			} else {
				client.WriteJSON(Response{Op: "auth", Error: "invalid access key"})
			}
		case "generate":
			if !authed {
				client.WriteJSON(Response{Op: req.Op, Error: "authentication required"})
				continue
			}
			client.WriteJSON(s.handleGenerate(req))
		case "fetch":
			if !authed {
				client.WriteJSON(Response{Op: req.Op, Error: "authentication required"})
				continue
			}
			client.WriteJSON(s.handleFetch(req))
		default:
			client.WriteJSON(Response{Op: req.Op, Error: fmt.Sprintf("unknown op %q", req.Op)})
		}
	}
}

// checkAccessKey verifies a key against the configured bcrypt hash.
func (s *Server) checkAccessKey(key string) bool {
	if s.cfg.AccessKeyHash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(s.cfg.AccessKeyHash), []byte(key)) == nil
}

// handleGenerate builds a dungeon and optionally archives it.
func (s *Server) handleGenerate(req Request) Response {
	if s.cfg.MaxStageSize > 0 && (req.Width > s.cfg.MaxStageSize || req.Height > s.cfg.MaxStageSize) {
		return Response{Op: req.Op, Error: fmt.Sprintf("stage exceeds maximum size %d", s.cfg.MaxStageSize)}
	}

	opts := s.defaults
	if req.Options != nil {
		opts = *req.Options
	}

	generator := dungeon.New(&opts)
	results, err := generator.Build(dungeon.Stage{Width: req.Width, Height: req.Height, Seed: req.Seed})
	if err != nil {
		return Response{Op: req.Op, Error: err.Error()}
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return Response{Op: req.Op, Error: "failed to encode dungeon"}
	}

	if req.Archive && s.db != nil {
		if _, err := s.db.SaveDungeon(results, generator.Options()); err != nil && err != database.ErrDuplicate {
			logger.Error("Failed to archive dungeon", "seed", results.Seed(), "error", err)
		}
	}

	logger.Info("Dungeon generated",
		"seed", results.Seed(), "width", results.Width(), "height", results.Height(),
		"rooms", len(results.Rooms()))

	return Response{Op: req.Op, OK: true, Seed: results.Seed(), Dungeon: payload}
}

// handleFetch loads an archived dungeon by seed.
func (s *Server) handleFetch(req Request) Response {
	if s.db == nil {
		return Response{Op: req.Op, Error: "archive not configured"}
	}
	archived, err := s.db.GetDungeon(req.Seed)
	if err == database.ErrNotFound {
		return Response{Op: req.Op, Error: fmt.Sprintf("no dungeon archived for seed %q", req.Seed)}
	}
	if err != nil {
		logger.Error("Failed to fetch dungeon", "seed", req.Seed, "error", err)
		return Response{Op: req.Op, Error: "archive lookup failed"}
	}
	return Response{Op: req.Op, OK: true, Seed: archived.Seed, Dungeon: json.RawMessage(archived.Tiles)}
}
