package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

type stringSlice []string

func (s *stringSlice) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ",")
}

func (s *stringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// cliOptions is the result of parsing the command line.
type cliOptions struct {
	configPath string
	// overrides maps config keys to values for flags given explicitly.
	overrides map[string]any
}

// flagKeys maps each flag onto the config key it overrides.
var flagKeys = map[string]string{
	"mode":              "server.mode",
	"mcp-addr":          "mcp.addr",
	"mcp-path":          "mcp.path",
	"mcp-token":         "mcp.token",
	"mcp-json-response": "mcp.json_response",
	"mcp-stateless":     "mcp.stateless",
	"mcp-session-idle":  "mcp.session_idle",
	"log-level":         "logging.level",
	"log-format":        "logging.format",
	"world":             "game.world_file",
	"wrap":              "game.wrap_width",
}

// parseFlags parses args (without the program name). Only flags that were set end up in
// overrides, so unset flags never mask the config file or environment.
func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	fs := flag.NewFlagSet("mockzork", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "Path to a config file (yaml, json or toml)")
	mode := fs.String("mode", "cli", "Frontend: cli, headless, tui, mcp-stdio or mcp-http")
	headless := fs.Bool("headless", false, "Shorthand for -mode headless")
	mcpHTTP := fs.Bool("mcp-http", false, "Shorthand for -mode mcp-http")
	mcpStdio := fs.Bool("mcp-stdio", false, "Shorthand for -mode mcp-stdio")
	mcpAddr := fs.String("mcp-addr", "127.0.0.1:8765", "MCP listen address")
	mcpPath := fs.String("mcp-path", "/mcp", "MCP endpoint path")
	mcpToken := fs.String("mcp-token", "", "Bearer token for MCP requests (optional)")
	mcpJSON := fs.Bool("mcp-json-response", false, "Force JSON responses instead of SSE")
	mcpStateless := fs.Bool("mcp-stateless", false, "Run MCP server in stateless mode (no sessions/SSE)")
	mcpIdle := fs.Duration("mcp-session-idle", 30*time.Minute, "Drop HTTP session games idle this long (0 disables)")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat := fs.String("log-format", "console", "Log format: json or console")
	world := fs.String("world", "", "Load the world from this ini file instead of the built-in one")
	wrapWidth := fs.Int("wrap", 79, "Wrap output at this column (0 disables)")
	var origins stringSlice
	fs.Var(&origins, "mcp-origin", "Allowed Origin for MCP requests (repeatable)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: mockzork [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	values := map[string]any{
		"mode":              *mode,
		"mcp-addr":          *mcpAddr,
		"mcp-path":          *mcpPath,
		"mcp-token":         *mcpToken,
		"mcp-json-response": *mcpJSON,
		"mcp-stateless":     *mcpStateless,
		"mcp-session-idle":  *mcpIdle,
		"log-level":         *logLevel,
		"log-format":        *logFormat,
		"world":             *world,
		"wrap":              *wrapWidth,
	}

	opts := cliOptions{configPath: *configPath, overrides: map[string]any{}}
	var shorthand []string
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			opts.overrides[key] = values[f.Name]
		}
		switch f.Name {
		case "headless", "mcp-http", "mcp-stdio":
			shorthand = append(shorthand, f.Name)
		}
	})
	if len(origins) > 0 {
		opts.overrides["mcp.origins"] = []string(origins)
	}

	switch {
	case len(shorthand) > 1:
		return cliOptions{}, fmt.Errorf("flags -%s are mutually exclusive", strings.Join(shorthand, ", -"))
	case *headless:
		opts.overrides["server.mode"] = "headless"
	case *mcpHTTP:
		opts.overrides["server.mode"] = "mcp-http"
	case *mcpStdio:
		opts.overrides["server.mode"] = "mcp-stdio"
	}
	return opts, nil
}
