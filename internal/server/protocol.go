package server

import (
	"encoding/json"

	"github.com/snickbit/dungeon/internal/dungeon"
)

// Request is one client message.
//
// Ops:
//   - "auth": presents the shared access key.
//   - "generate": builds a dungeon for the stage; Options overrides the
//     server defaults wholesale when present; Archive stores the result.
//   - "fetch": loads the most recent archived dungeon for Seed.
type Request struct {
	Op      string           `json:"op"`
	Key     string           `json:"key,omitempty"`
	Width   int              `json:"width,omitempty"`
	Height  int              `json:"height,omitempty"`
	Seed    string           `json:"seed,omitempty"`
	Options *dungeon.Options `json:"options,omitempty"`
	Archive bool             `json:"archive,omitempty"`
}

// Response is one server message. Exactly one of OK or Error is
// meaningful; Dungeon carries the encoded result for generate/fetch.
type Response struct {
	Op      string          `json:"op"`
	OK      bool            `json:"ok,omitempty"`
	Seed    string          `json:"seed,omitempty"`
	Dungeon json.RawMessage `json:"dungeon,omitempty"`
	Error   string          `json:"error,omitempty"`
}
