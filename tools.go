package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"mockzork/zork"
)

// errInvalidArgument marks tool arguments rejected before they reach the simulator.
var errInvalidArgument = errors.New("invalid argument")

var directions = []string{"north", "south", "east", "west", "up", "down", "window"}

type NavigateInput struct {
	Direction string `json:"direction" jsonschema:"One of north, south, east, west, up, down or window"`
}

type ObjectInput struct {
	Object string `json:"object" jsonschema:"Object id, e.g. mailbox, leaflet, lamp, trophy_case"`
}

type PutInput struct {
	Object    string `json:"object" jsonschema:"Carried object to put away"`
	Container string `json:"container" jsonschema:"Open container to put it in"`
}

type LampInput struct {
	Action string `json:"action" jsonschema:"on or off"`
}

type MoveInput struct {
	Object string `json:"object,omitempty" jsonschema:"Object to move; defaults to rug"`
}

type CommandInput struct {
	Command string `json:"command" jsonschema:"Free-form game command, e.g. 'open mailbox'"`
}

type NoInput struct{}

type ValidActionsOutput struct {
	ValidActions []string `json:"valid_actions" jsonschema:"Advisory list of commands that make sense now"`
	Inventory    []string `json:"inventory" jsonschema:"Carried object ids in pickup order"`
	Location     string   `json:"location" jsonschema:"Current location id"`
}

// commandTemplate turns validated tool arguments into a command line for Step.
func commandTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(sprig.TxtFuncMap()).Parse(text))
}

func renderCommand(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s command: %w", tmpl.Name(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errInvalidArgument, fmt.Sprintf(format, args...))
}

// objectArg checks that s names a single object token.
func objectArg(field, s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return invalidArgument("%s must not be empty", field)
	}
	if len(strings.Fields(s)) != 1 {
		return invalidArgument("%s must be a single object id, got %q", field, s)
	}
	return nil
}

func validateNavigate(in *NavigateInput) error {
	dir := strings.ToLower(strings.TrimSpace(in.Direction))
	if !slices.Contains(directions, dir) {
		return invalidArgument("direction must be one of [%s], got %q", strings.Join(directions, ", "), in.Direction)
	}
	return nil
}

func validateObject(in *ObjectInput) error {
	return objectArg("object", in.Object)
}

func validatePut(in *PutInput) error {
	return errors.Join(objectArg("object", in.Object), objectArg("container", in.Container))
}

func validateLamp(in *LampInput) error {
	switch strings.ToLower(strings.TrimSpace(in.Action)) {
	case "on", "off":
		return nil
	}
	return invalidArgument("action must be on or off, got %q", in.Action)
}

func validateMove(in *MoveInput) error {
	if strings.TrimSpace(in.Object) == "" {
		return nil
	}
	return objectArg("object", in.Object)
}

// toolDef describes one game tool. Tools with a template run one Step; the command
// string is rendered from the validated arguments.
type toolDef struct {
	name        string
	description string
	template    string
}

var (
	navigateTool  = toolDef{"navigate", "Move in a direction. Use window to climb through the kitchen window.", `{{ $d := .Direction | trim | lower }}{{ if eq $d "window" }}enter window{{ else }}go {{ $d }}{{ end }}`}
	lookTool      = toolDef{"look", "Describe the current location.", `look`}
	examineTool   = toolDef{"examine", "Examine a visible or carried object.", `examine {{ .Object | trim | lower }}`}
	inventoryTool = toolDef{"inventory", "List what you are carrying.", `inventory`}
	takeTool      = toolDef{"take", "Pick up a visible object.", `take {{ .Object | trim | lower }}`}
	dropTool      = toolDef{"drop", "Drop a carried object here.", `drop {{ .Object | trim | lower }}`}
	putTool       = toolDef{"put", "Put a carried object into an open container.", `put {{ .Object | trim | lower }} in {{ .Container | trim | lower }}`}
	openTool      = toolDef{"open", "Open an object such as the mailbox.", `open {{ .Object | trim | lower }}`}
	closeTool     = toolDef{"close", "Close an openable object.", `close {{ .Object | trim | lower }}`}
	lampTool      = toolDef{"lamp", "Turn the carried lamp on or off.", `turn {{ .Action | trim | lower }} lamp`}
	readTool      = toolDef{"read", "Read a visible object.", `read {{ .Object | trim | lower }}`}
	moveTool      = toolDef{"move", "Move an object aside.", `move {{ .Object | trim | lower | default "rug" }}`}
	scoreTool     = toolDef{"score", "Report the current score.", `score`}
	helpTool      = toolDef{"help", "List the commands the game understands.", `help`}
	commandTool   = toolDef{"command", "Send a free-form command line to the game.", `{{ .Command }}`}
)

// registerTools adds every game tool to server. Each tool runs against the game bound
// to the caller's session.
func registerTools(server *mcp.Server, s *MCPServer) {
	addStepTool(server, s, navigateTool, validateNavigate)
	addStepTool[NoInput](server, s, lookTool, nil)
	addStepTool(server, s, examineTool, validateObject)
	addStepTool[NoInput](server, s, inventoryTool, nil)
	addStepTool(server, s, takeTool, validateObject)
	addStepTool(server, s, dropTool, validateObject)
	addStepTool(server, s, putTool, validatePut)
	addStepTool(server, s, openTool, validateObject)
	addStepTool(server, s, closeTool, validateObject)
	addStepTool(server, s, lampTool, validateLamp)
	addStepTool(server, s, readTool, validateObject)
	addStepTool(server, s, moveTool, validateMove)
	addStepTool[NoInput](server, s, scoreTool, nil)
	addStepTool[NoInput](server, s, helpTool, nil)
	addStepTool[CommandInput](server, s, commandTool, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "valid_actions",
		Description: "List advisory commands for the current state without taking a turn.",
	}, s.HandleValidActions)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset",
		Description: "Start a new game for this session.",
	}, s.HandleReset)
}

func addStepTool[In any](server *mcp.Server, s *MCPServer, def toolDef, validate func(*In) error) {
	tmpl := commandTemplate(def.name, def.template)
	mcp.AddTool(server, &mcp.Tool{
		Name:        def.name,
		Description: def.description,
	}, func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, zork.GameState, error) {
		if validate != nil {
			if err := validate(&in); err != nil {
				return nil, zork.GameState{}, fmt.Errorf("%s: %w", def.name, err)
			}
		}
		cmd, err := renderCommand(tmpl, in)
		if err != nil {
			return nil, zork.GameState{}, err
		}
		st := s.Step(ctx, sessionID(req), cmd)
		return observationResult(st.Observation), st, nil
	})
}

func observationResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
