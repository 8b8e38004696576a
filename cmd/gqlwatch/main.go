// Command gqlwatch polls a source directory and pushes the current
// diagnostic list to any connected WebSocket client on change
// (SPEC_FULL.md §6 "cmd/gqlwatch"), for editor integrations that want
// live validation without reimplementing a Language Server. WebSocket
// transport uses github.com/gorilla/websocket; structured logging uses
// go.uber.org/zap, same as cmd/gqlcheckd.
package main

import (
	"crypto/sha256"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	graphql "github.com/shyptr/gqlcompiler"
	"github.com/shyptr/gqlcompiler/internal/config"
	"github.com/shyptr/gqlcompiler/internal/diagjson"
	"github.com/shyptr/gqlcompiler/parser"
	"github.com/shyptr/gqlcompiler/source"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// hub tracks connected WebSocket clients and the most recently computed
// diagnostic snapshot, broadcasting whenever the watched directory changes.
type hub struct {
	logger *zap.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	last    string // sha256 digest of the last broadcast content, to skip no-op broadcasts
}

func newHub(logger *zap.Logger) *hub {
	return &hub{logger: logger, clients: make(map[*websocket.Conn]struct{})}
}

func (h *hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	// Drain and discard incoming frames until the client disconnects, so
	// the read side notices a close frame and we can drop the client.
	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcastIfChanged skips broadcasting when payload is identical to the
// last one sent, so a quiet directory doesn't spam idle connections every
// poll interval.
func (h *hub) broadcastIfChanged(payload []byte) {
	digest := fmt.Sprintf("%x", sha256.Sum256(payload))
	h.mu.Lock()
	if digest == h.last {
		h.mu.Unlock()
		return
	}
	h.last = digest
	h.mu.Unlock()
	h.broadcast(payload)
}

func (h *hub) broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Warn("broadcast failed, dropping client", zap.Error(err))
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func main() {
	configPath := flag.String("config", ".graphqlconfig.yaml", "path to .graphqlconfig.yaml")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("loading config", zap.Error(err))
	}

	addr := cfg.Watch.ListenAddr
	if addr == "" {
		addr = "localhost:7778"
	}

	h := newHub(logger)
	go pollLoop(h, cfg, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/watch", h.handleWS)
	logger.Info("gqlwatch listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("serving", zap.Error(err))
	}
}

func pollLoop(h *hub, cfg *config.Config, logger *zap.Logger) {
	interval := time.Duration(cfg.Watch.PollSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		diags := checkLocalSources(cfg, logger)
		payload, err := json.Marshal(diags)
		if err != nil {
			logger.Warn("marshaling diagnostics", zap.Error(err))
			continue
		}
		h.broadcastIfChanged(payload)
	}
}

// checkLocalSources re-reads every `file://`-rooted source on disk and
// rebuilds+validates the combined schema plus each operation file, the
// same two-phase check cmd/gqlcheck performs. Non-file:// roots are
// skipped — polling a remote bucket on a timer is out of scope for a live
// editor feed.
func checkLocalSources(cfg *config.Config, logger *zap.Logger) []diagjson.Diagnostic {
	var schemaText strings.Builder
	var opFiles []struct{ path, text string }

	for _, root := range cfg.Sources {
		if !strings.HasPrefix(root, "file://") {
			continue
		}
		dir := strings.TrimPrefix(root, "file://")
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			switch {
			case strings.HasSuffix(path, ".graphqls"):
				data, rerr := os.ReadFile(path)
				if rerr != nil {
					return rerr
				}
				schemaText.Write(data)
				schemaText.WriteString("\n")
			case strings.HasSuffix(path, ".graphql"):
				data, rerr := os.ReadFile(path)
				if rerr != nil {
					return rerr
				}
				opFiles = append(opFiles, struct{ path, text string }{path, string(data)})
			}
			return nil
		})
		if err != nil {
			logger.Warn("walking source root", zap.String("root", root), zap.Error(err))
		}
	}

	sources := source.NewMap()
	p := parser.New()
	var diags []diagjson.Diagnostic

	validSchema, err := graphql.ParseAndValidateSchema(p, sources, "<schema>", schemaText.String())
	if err != nil {
		return diagjson.FromSchemaErr(err, sources)
	}
	for _, f := range opFiles {
		if _, err := graphql.ParseAndValidateExecutable(p, sources, validSchema, f.path, f.text); err != nil {
			diags = append(diags, diagjson.FromExecutableErr(err, sources)...)
		}
	}
	return diags
}
