package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"mockzork/zork"
)

const (
	serverName    = "mockzork"
	serverVersion = "v1.0.0"
)

// sessionGame is one player's game. mu serializes Steps from concurrent tool calls.
type sessionGame struct {
	mu   sync.Mutex
	game *zork.Game

	// lastUsed is guarded by MCPServer.mu.
	lastUsed time.Time
}

// MCPServer hosts one game per MCP session over a shared world.
type MCPServer struct {
	world  *zork.World
	logger *zap.Logger

	mu    sync.Mutex
	games map[string]*sessionGame
	now   func() time.Time
}

func NewMCPServer(world *zork.World, logger *zap.Logger) *MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MCPServer{
		world:  world,
		logger: logger,
		games:  make(map[string]*sessionGame),
		now:    time.Now,
	}
}

// sessionID returns the MCP session of req. Stdio and stateless HTTP have no session id
// and share the "" game.
func sessionID(req *mcp.CallToolRequest) string {
	if req == nil || req.Session == nil {
		return ""
	}
	return req.Session.ID()
}

// session returns the game for id, creating and resetting it on first use.
func (s *MCPServer) session(id string) *sessionGame {
	s.mu.Lock()
	defer s.mu.Unlock()
	sg, ok := s.games[id]
	if !ok {
		game := zork.NewGame(s.world, zork.WithLogger(s.logger.With(zap.String("session", id))))
		game.Reset()
		sg = &sessionGame{game: game}
		s.games[id] = sg
		s.logger.Info("session started", zap.String("session", id), zap.String("game", game.ID()))
	}
	sg.lastUsed = s.now()
	return sg
}

// Step runs cmd against the session's game.
func (s *MCPServer) Step(_ context.Context, id, cmd string) zork.GameState {
	sg := s.session(id)
	sg.mu.Lock()
	defer sg.mu.Unlock()
	return sg.game.Step(cmd)
}

// Reset restarts the session's game.
func (s *MCPServer) Reset(_ context.Context, id string) zork.GameState {
	sg := s.session(id)
	sg.mu.Lock()
	defer sg.mu.Unlock()
	return sg.game.Reset()
}

// Forget drops the game held for id.
func (s *MCPServer) Forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

// Expire drops every session game not used within idle and returns how many went.
// The shared "" game of stdio and stateless HTTP is never expired.
func (s *MCPServer) Expire(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sg := range s.games {
		if id == "" || !sg.lastUsed.Before(cutoff) {
			continue
		}
		delete(s.games, id)
		n++
		s.logger.Info("session expired", zap.String("session", id), zap.Duration("idle", idle))
	}
	return n
}

// Sessions reports how many games are held.
func (s *MCPServer) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// expireIdle sweeps idle sessions until ctx is done.
func (s *MCPServer) expireIdle(ctx context.Context, idle time.Duration) {
	interval := idle / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Expire(idle)
		}
	}
}

func (s *MCPServer) HandleReset(ctx context.Context, req *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, zork.GameState, error) {
	st := s.Reset(ctx, sessionID(req))
	return observationResult(st.Observation), st, nil
}

func (s *MCPServer) HandleValidActions(_ context.Context, req *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, ValidActionsOutput, error) {
	sg := s.session(sessionID(req))
	sg.mu.Lock()
	defer sg.mu.Unlock()

	actions := sg.game.ValidActions()
	if actions == nil {
		actions = []string{}
	}
	out := ValidActionsOutput{
		ValidActions: actions,
		Inventory:    sg.game.Inventory(),
		Location:     sg.game.Location(),
	}
	return observationResult(strings.Join(actions, "\n")), out, nil
}

// newMCP builds the protocol server with every game tool registered.
func (s *MCPServer) newMCP() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)
	registerTools(server, s)
	return server
}

// RunMCPStdio serves the tools over stdin/stdout until ctx is done or the client disconnects.
func RunMCPStdio(ctx context.Context, s *MCPServer) error {
	s.logger.Info("serving MCP over stdio")
	return s.newMCP().Run(ctx, &mcp.StdioTransport{})
}

// mcpHandler returns the streamable HTTP endpoint wrapped in the origin and token guard.
func mcpHandler(s *MCPServer, cfg MCPConfig) http.Handler {
	server := s.newMCP()
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless:    cfg.Stateless,
		JSONResponse: cfg.JSONResponse,
	})

	originSet := map[string]struct{}{}
	for _, origin := range cfg.Origins {
		originSet[origin] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAllowedOrigin(r, originSet) {
			s.logger.Warn("rejected origin", zap.String("origin", r.Header.Get("Origin")))
			http.Error(w, "Forbidden origin", http.StatusForbidden)
			return
		}
		if cfg.Token != "" && r.Header.Get("Authorization") != "Bearer "+cfg.Token {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		// DELETE ends a streamable HTTP session.
		if r.Method == http.MethodDelete {
			if id := r.Header.Get("Mcp-Session-Id"); id != "" {
				defer s.Forget(id)
			}
		}
		handler.ServeHTTP(w, r)
	})
}

// RunMCPHTTP serves the tools over streamable HTTP at cfg.Addr and cfg.Path until ctx is done.
func RunMCPHTTP(ctx context.Context, s *MCPServer, cfg MCPConfig) error {
	path := cfg.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	mux := http.NewServeMux()
	mux.Handle(path, mcpHandler(s, cfg))

	serverHTTP := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.SessionIdle > 0 && !cfg.Stateless {
		go s.expireIdle(ctx, cfg.SessionIdle)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = serverHTTP.Shutdown(shutdownCtx)
	}()

	s.logger.Info("serving MCP over HTTP", zap.String("addr", cfg.Addr), zap.String("path", path))
	if err := serverHTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func isAllowedOrigin(r *http.Request, allowed map[string]struct{}) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	_, ok := allowed[origin]
	return ok
}
