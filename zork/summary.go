package zork

// GameState is the snapshot returned by Reset and Step. Its field set is the wire contract
// for protocol adapters.
type GameState struct {
	Observation  string   `json:"observation" jsonschema:"Narration produced by the last command"`
	Score        int      `json:"score" jsonschema:"Current score"`
	Done         bool     `json:"done" jsonschema:"Whether the game has ended"`
	Moves        int      `json:"moves" jsonschema:"Number of commands processed"`
	ValidActions []string `json:"valid_actions" jsonschema:"Advisory list of commands that make sense now"`
	Inventory    []string `json:"inventory" jsonschema:"Carried object ids in pickup order"`
	Location     string   `json:"location" jsonschema:"Current location id"`
}

func (g *Game) snapshot(observation string) GameState {
	actions := g.ValidActions()
	if actions == nil {
		actions = []string{}
	}
	return GameState{
		Observation:  observation,
		Score:        g.score,
		Done:         g.done,
		Moves:        g.moves,
		ValidActions: actions,
		Inventory:    g.Inventory(),
		Location:     g.location,
	}
}
