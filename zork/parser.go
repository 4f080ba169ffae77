package zork

import (
	"slices"
	"strings"
)

// Kind identifies which handler a parsed command dispatches to.
type Kind int

const (
	KindUnknown Kind = iota
	KindEmpty
	KindMove
	KindLook
	KindExamine
	KindInventory
	KindTake
	KindDrop
	KindPutIn
	KindOpen
	KindClose
	KindLampOn
	KindLampOff
	KindRead
	KindMoveRug
	KindScore
	KindHelp
	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:   "unknown",
	KindEmpty:     "empty",
	KindMove:      "move",
	KindLook:      "look",
	KindExamine:   "examine",
	KindInventory: "inventory",
	KindTake:      "take",
	KindDrop:      "drop",
	KindPutIn:     "put",
	KindOpen:      "open",
	KindClose:     "close",
	KindLampOn:    "lamp_on",
	KindLampOff:   "lamp_off",
	KindRead:      "read",
	KindMoveRug:   "move_rug",
	KindScore:     "score",
	KindHelp:      "help",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "invalid"
	}
	return kindNames[k]
}

// Command is the parsed form of one line of player input.
type Command struct {
	Kind Kind
	// Verb is the first token.
	Verb string
	// Object is the last token, or for "put X in Y" the token before the preposition.
	Object string
	// Container is set only for KindPutIn.
	Container string
	// Direction is set only for KindMove. Empty means no direction was given.
	Direction string
	Words     []string
}

var movementVerbs = map[string]bool{
	"go": true, "walk": true, "enter": true,
	"north": true, "south": true, "east": true, "west": true,
	"up": true, "down": true,
}

// verbs that take the direction from the last token
var travelVerbs = map[string]bool{"go": true, "move": true, "walk": true, "enter": true}

// Parse tokenizes input and classifies it. isExit reports whether a bare word names an
// exit of the current location; it may be nil.
//
// Postcondition: Returns a Command; Kind is KindEmpty for blank input and KindUnknown
// for anything unrecognized.
func Parse(input string, isExit func(string) bool) Command {
	words := strings.Fields(strings.ToLower(input))
	if len(words) == 0 {
		return Command{Kind: KindEmpty}
	}

	verb := words[0]
	cmd := Command{Verb: verb, Words: words}
	if len(words) > 1 {
		cmd.Object = words[len(words)-1]
	}
	obj := cmd.Object

	switch {
	case (verb == "move" || verb == "lift") && obj == objRug:
		cmd.Kind = KindMoveRug
	case movementVerbs[verb] || (isExit != nil && isExit(verb)):
		cmd.Kind = KindMove
		cmd.Direction = direction(words)
	case (verb == "look" || verb == "l") && len(words) == 1:
		cmd.Kind = KindLook
	case (verb == "examine" || verb == "look") && obj != "" && obj != "at":
		cmd.Kind = KindExamine
	case verb == "inventory" || verb == "i":
		cmd.Kind = KindInventory
	case verb == "take" || verb == "get" || verb == "pick":
		cmd.Kind = KindTake
	case verb == "drop":
		cmd.Kind = KindDrop
	case verb == "put":
		cmd.Kind = KindDrop
		if i := prepositionIndex(words); i >= 2 && i < len(words)-1 {
			cmd.Kind = KindPutIn
			cmd.Object = words[i-1]
			cmd.Container = obj
		}
	case verb == "open":
		cmd.Kind = KindOpen
	case verb == "close":
		cmd.Kind = KindClose
	case verb == "turn" && len(words) > 1 && words[1] == "on" && obj == objLamp:
		cmd.Kind = KindLampOn
	case verb == "turn" && len(words) > 1 && words[1] == "off" && obj == objLamp:
		cmd.Kind = KindLampOff
	case verb == "read":
		cmd.Kind = KindRead
	case verb == "score":
		cmd.Kind = KindScore
	case verb == "help":
		cmd.Kind = KindHelp
	default:
		cmd.Kind = KindUnknown
	}
	return cmd
}

// direction extracts the movement direction: the first word, or the last word after a
// travel verb. "enter window" and "go through window" both resolve to "window".
func direction(words []string) string {
	dir := words[0]
	if travelVerbs[dir] {
		dir = ""
		if len(words) > 1 {
			dir = words[len(words)-1]
		}
	}
	if (slices.Contains(words, "enter") || slices.Contains(words, "through")) && slices.Contains(words, dirWindow) {
		dir = dirWindow
	}
	return dir
}

func prepositionIndex(words []string) int {
	for i, w := range words {
		if w == "in" || w == "into" {
			return i
		}
	}
	return -1
}
