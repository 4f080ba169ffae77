package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockzork/zork"
)

// connect starts s on an in-memory transport and returns a client session to it.
func connect(t *testing.T, s *MCPServer) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	st, ct := mcp.NewInMemoryTransports()

	ss, err := s.newMCP().Connect(ctx, st, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func callTool(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text
}

func structured(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	m, ok := res.StructuredContent.(map[string]any)
	require.True(t, ok, "structured content is %T", res.StructuredContent)
	return m
}

func TestMCP_ListTools(t *testing.T) {
	cs := connect(t, NewMCPServer(zork.DefaultWorld(), nil))
	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	for _, want := range []string{
		"navigate", "look", "examine", "inventory", "take", "drop", "put", "open", "close",
		"lamp", "read", "move", "score", "help", "valid_actions", "reset", "command",
	} {
		assert.Contains(t, names, want)
	}
}

func TestMCP_ScenarioLeaflet(t *testing.T) {
	cs := connect(t, NewMCPServer(zork.DefaultWorld(), nil))

	res := callTool(t, cs, "open", map[string]any{"object": "mailbox"})
	assert.False(t, res.IsError)
	assert.Equal(t, "Opening the mailbox reveals a small leaflet.", resultText(t, res))

	res = callTool(t, cs, "take", map[string]any{"object": " Leaflet "})
	assert.Equal(t, "Taken.", resultText(t, res))

	res = callTool(t, cs, "read", map[string]any{"object": "leaflet"})
	assert.Contains(t, resultText(t, res), "WELCOME TO ZORK")
	st := structured(t, res)
	assert.EqualValues(t, 1, st["score"])
	assert.EqualValues(t, 3, st["moves"])
	assert.Equal(t, []any{"leaflet"}, st["inventory"])
	assert.Equal(t, "west_of_house", st["location"])
}

func TestMCP_NavigateWindowAndLamp(t *testing.T) {
	cs := connect(t, NewMCPServer(zork.DefaultWorld(), nil))

	callTool(t, cs, "navigate", map[string]any{"direction": "east"})
	res := callTool(t, cs, "navigate", map[string]any{"direction": "window"})
	assert.Equal(t, "kitchen", structured(t, res)["location"])
	callTool(t, cs, "navigate", map[string]any{"direction": "west"})

	callTool(t, cs, "take", map[string]any{"object": "lamp"})
	res = callTool(t, cs, "lamp", map[string]any{"action": "on"})
	assert.Equal(t, "The lamp is now on and providing light.", resultText(t, res))

	res = callTool(t, cs, "move", nil)
	assert.Contains(t, resultText(t, res), "revealing a closed trapdoor")

	res = callTool(t, cs, "navigate", map[string]any{"direction": "down"})
	assert.Equal(t, "cellar", structured(t, res)["location"])
	assert.NotContains(t, resultText(t, res), "grue")
}

func TestMCP_PutAndCommand(t *testing.T) {
	cs := connect(t, NewMCPServer(zork.DefaultWorld(), nil))
	callTool(t, cs, "command", map[string]any{"command": "east"})
	callTool(t, cs, "command", map[string]any{"command": "enter window"})
	callTool(t, cs, "command", map[string]any{"command": "west"})
	callTool(t, cs, "take", map[string]any{"object": "sword"})

	res := callTool(t, cs, "put", map[string]any{"object": "sword", "container": "trophy_case"})
	assert.Equal(t, "Done.", resultText(t, res))
}

func TestMCP_InvalidArgumentsDoNotTakeATurn(t *testing.T) {
	cs := connect(t, NewMCPServer(zork.DefaultWorld(), nil))

	cases := []struct {
		tool string
		args map[string]any
	}{
		{"navigate", map[string]any{"direction": "sideways"}},
		{"take", map[string]any{"object": ""}},
		{"take", map[string]any{"object": "small leaflet"}},
		{"lamp", map[string]any{"action": "dim"}},
		{"put", map[string]any{"object": "sword", "container": " "}},
	}
	for _, tc := range cases {
		res := callTool(t, cs, tc.tool, tc.args)
		assert.True(t, res.IsError, "%s %v", tc.tool, tc.args)
		assert.Contains(t, resultText(t, res), "invalid argument")
	}

	res := callTool(t, cs, "score", nil)
	assert.Equal(t, "Your score is 0 (in 1 moves).", resultText(t, res))
}

func TestMCP_InWorldFailureIsNotAnError(t *testing.T) {
	cs := connect(t, NewMCPServer(zork.DefaultWorld(), nil))
	res := callTool(t, cs, "take", map[string]any{"object": "mailbox"})
	assert.False(t, res.IsError)
	assert.Equal(t, "You can't take that.", resultText(t, res))
	assert.EqualValues(t, 1, structured(t, res)["moves"])
}

func TestMCP_ValidActionsAndReset(t *testing.T) {
	cs := connect(t, NewMCPServer(zork.DefaultWorld(), nil))

	res := callTool(t, cs, "valid_actions", nil)
	assert.Contains(t, resultText(t, res), "open mailbox")
	out := structured(t, res)
	assert.Equal(t, "west_of_house", out["location"])

	callTool(t, cs, "navigate", map[string]any{"direction": "north"})
	res = callTool(t, cs, "reset", nil)
	st := structured(t, res)
	assert.EqualValues(t, 0, st["moves"])
	assert.Equal(t, "west_of_house", st["location"])
	assert.Contains(t, resultText(t, res), "white house")
}

func TestMCPServer_SessionsAreIsolated(t *testing.T) {
	s := NewMCPServer(zork.DefaultWorld(), nil)
	ctx := context.Background()

	s.Step(ctx, "a", "north")
	st := s.Step(ctx, "b", "look")
	assert.Equal(t, "west_of_house", st.Location)
	assert.Equal(t, 1, st.Moves)

	s.Forget("a")
	st = s.Step(ctx, "a", "look")
	assert.Equal(t, 1, st.Moves)
}

func TestMCPServer_ExpireDropsIdleSessions(t *testing.T) {
	s := NewMCPServer(zork.DefaultWorld(), nil)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	ctx := context.Background()

	s.Step(ctx, "", "north")
	s.Step(ctx, "stale", "north")
	clock = clock.Add(20 * time.Minute)
	s.Step(ctx, "fresh", "north")
	clock = clock.Add(15 * time.Minute)
	require.Equal(t, 3, s.Sessions())

	assert.Equal(t, 1, s.Expire(30*time.Minute))
	assert.Equal(t, 2, s.Sessions())

	// fresh was used 15 minutes ago and keeps its game
	assert.Equal(t, 2, s.Step(ctx, "fresh", "look").Moves)
	// stale starts over
	assert.Equal(t, 1, s.Step(ctx, "stale", "look").Moves)
	// the shared game never expires
	clock = clock.Add(time.Hour)
	s.Expire(time.Minute)
	assert.Equal(t, 2, s.Step(ctx, "", "look").Moves)
}

func TestMCPServer_ExpireIdleStopsWithContext(t *testing.T) {
	s := NewMCPServer(zork.DefaultWorld(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.expireIdle(ctx, time.Minute)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("expireIdle did not return after cancel")
	}
}

func TestMCPServer_ConcurrentStepsOnOneSession(t *testing.T) {
	s := NewMCPServer(zork.DefaultWorld(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Step(ctx, "shared", "look")
		}()
	}
	wg.Wait()
	assert.Equal(t, 21, s.Step(ctx, "shared", "look").Moves)
}

func TestMCPHandler_Guard(t *testing.T) {
	s := NewMCPServer(zork.DefaultWorld(), nil)
	h := mcpHandler(s, MCPConfig{
		Addr:    "127.0.0.1:0",
		Path:    "/mcp",
		Token:   "secret",
		Origins: []string{"http://localhost"},
	})

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("{}"))
	req.Header.Set("Origin", "http://evil.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("{}"))
	req.Header.Set("Origin", "http://localhost")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIsAllowedOrigin(t *testing.T) {
	allowed := map[string]struct{}{"http://localhost": {}}

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	assert.True(t, isAllowedOrigin(req, allowed))

	req.Header.Set("Origin", "http://localhost")
	assert.True(t, isAllowedOrigin(req, allowed))

	req.Header.Set("Origin", "http://example.test")
	assert.False(t, isAllowedOrigin(req, allowed))
}
