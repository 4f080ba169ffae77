package zork

import (
	"fmt"
	"strings"
)

type commandHandler func(g *Game, cmd Command) string

var commands [kindCount]commandHandler

func init() {
	commands = [kindCount]commandHandler{
		KindUnknown:   cmdUnknown,
		KindEmpty:     cmdEmpty,
		KindMove:      cmdMove,
		KindLook:      cmdLook,
		KindExamine:   cmdExamine,
		KindInventory: cmdInventory,
		KindTake:      cmdTake,
		KindDrop:      cmdDrop,
		KindPutIn:     cmdPutIn,
		KindOpen:      cmdOpen,
		KindClose:     cmdClose,
		KindLampOn:    cmdLampOn,
		KindLampOff:   cmdLampOff,
		KindRead:      cmdRead,
		KindMoveRug:   cmdMoveRug,
		KindScore:     cmdScore,
		KindHelp:      cmdHelp,
	}
}

const (
	textNotHere       = "You don't see that here."
	textNotCarrying   = "You're not carrying that."
	textCantGo        = "You can't go that way."
	textNotUnderstood = "I don't understand that command."

	textWelcome = "WELCOME TO ZORK!\n\n" +
		"ZORK is a game of adventure, danger, and low cunning. " +
		"In it you will explore some of the most amazing territory ever seen by mortals. " +
		"No computer should be without one!"

	textHelp = "Some useful commands:\n" +
		"- Movement: north, south, east, west, up, down\n" +
		"- Actions: look, examine [object], take [object], drop [object]\n" +
		"- Inventory: inventory or i\n" +
		"- Object interaction: open [object], close [object], read [object]\n" +
		"- Containers: put [object] in [container]\n" +
		"- Lamp: turn on lamp, turn off lamp\n" +
		"- Other: score, help"
)

// execute runs one parsed command against the game and returns the narration.
func (g *Game) execute(cmd Command) string {
	handler := commands[KindUnknown]
	if cmd.Kind >= 0 && cmd.Kind < kindCount && commands[cmd.Kind] != nil {
		handler = commands[cmd.Kind]
	}
	return handler(g, cmd)
}

func cmdUnknown(g *Game, cmd Command) string {
	return textNotUnderstood
}

func cmdEmpty(g *Game, cmd Command) string {
	return "I don't understand that."
}

func cmdMove(g *Game, cmd Command) string {
	if cmd.Direction == "" {
		return "Go where?"
	}
	target, exists := g.exitFor(g.location, cmd.Direction)
	if !exists {
		return textCantGo
	}
	if target == "" {
		if text, ok := g.world.Location(g.location).Blocked[cmd.Direction]; ok {
			return text
		}
		return textCantGo
	}
	g.location = target
	return g.Describe()
}

func cmdLook(g *Game, cmd Command) string {
	return g.Describe()
}

func cmdExamine(g *Game, cmd Command) string {
	id := cmd.Object
	if !g.visibleOrCarried(id) {
		return textNotHere
	}
	st := g.objects[id]
	switch id {
	case objMailbox:
		desc := fmt.Sprintf("It's a small %s mailbox.", openWord(st.Open))
		if st.Open {
			for _, inner := range g.contents(id) {
				desc += fmt.Sprintf(" There is a %s inside.", g.world.objects[inner].Name)
			}
		}
		return desc
	case objLamp:
		status := "off"
		if st.On {
			status = "on"
		}
		return fmt.Sprintf("It's a brass lamp. It is currently %s.", status)
	case objRug:
		status := "lying in the center of the room"
		if st.Moved {
			status = "moved aside, revealing a trapdoor"
		}
		return fmt.Sprintf("It's a large oriental rug, %s.", status)
	}
	if inside := g.contents(id); g.isOpenContainer(id) && len(inside) > 0 {
		names := make([]string, len(inside))
		for i, inner := range inside {
			names[i] = "a " + g.world.objects[inner].Name
		}
		return fmt.Sprintf("The %s contains %s.", g.world.objects[id].Name, strings.Join(names, ", "))
	}
	if text := g.world.objects[id].Examine; text != "" {
		return text
	}
	return fmt.Sprintf("You see nothing special about the %s.", id)
}

func cmdInventory(g *Game, cmd Command) string {
	if len(g.inventory) == 0 {
		return "You are not carrying anything."
	}
	var b strings.Builder
	b.WriteString("You are carrying:\n")
	for _, id := range g.inventory {
		b.WriteString("  ")
		switch {
		case id == objLamp:
			status := " (turned off)"
			if g.objects[objLamp].On {
				status = " (providing light)"
			}
			b.WriteString("A brass lamp" + status)
		case g.world.objects[id].Carried != "":
			b.WriteString(g.world.objects[id].Carried)
		default:
			b.WriteString(id)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func cmdTake(g *Game, cmd Command) string {
	id := cmd.Object
	if !g.isVisible(id) {
		return textNotHere
	}
	if g.carrying(id) {
		return "You're already carrying that."
	}
	tmpl := g.world.objects[id]
	if !tmpl.Takeable {
		return "You can't take that."
	}
	if holder, ok := strings.CutPrefix(g.objects[id].Location, containerPrefix); ok && !g.objects[holder].Open {
		return fmt.Sprintf("The %s is closed.", g.world.objects[holder].Name)
	}
	// Water can be seen and examined but never carried.
	if id == objWater {
		return "The water slips through your fingers."
	}

	g.addToInventory(id)
	if id == objEgg {
		g.score += ScoreEgg
	}
	return "Taken."
}

func cmdDrop(g *Game, cmd Command) string {
	id := cmd.Object
	if !g.carrying(id) {
		return textNotCarrying
	}
	g.removeFromInventory(id, g.location)
	return "Dropped."
}

func cmdPutIn(g *Game, cmd Command) string {
	id, holder := cmd.Object, cmd.Container
	if !g.carrying(id) {
		return textNotCarrying
	}
	if !g.isVisible(holder) {
		return textNotHere
	}
	if id == holder || !g.world.objects[holder].Container {
		return "You can't put things in that."
	}
	if !g.objects[holder].Open {
		return fmt.Sprintf("The %s is closed.", g.world.objects[holder].Name)
	}
	g.removeFromInventory(id, containerMarker(holder))
	return "Done."
}

func cmdOpen(g *Game, cmd Command) string {
	id := cmd.Object
	if !g.visibleOrCarried(id) {
		return textNotHere
	}
	tmpl, st := g.world.objects[id], g.objects[id]
	if !tmpl.Openable {
		if tmpl.Container && st.Open {
			return fmt.Sprintf("The %s is already open.", tmpl.Name)
		}
		return "You can't open that."
	}
	if st.Open {
		return "It's already open."
	}
	st.Open = true
	inside := g.contents(id)
	if len(inside) == 0 {
		return "Opened."
	}
	names := make([]string, len(inside))
	for i, inner := range inside {
		names[i] = "a " + g.world.objects[inner].Name
	}
	return fmt.Sprintf("Opening the %s reveals %s.", tmpl.Name, strings.Join(names, " and "))
}

func cmdClose(g *Game, cmd Command) string {
	id := cmd.Object
	if !g.visibleOrCarried(id) {
		return textNotHere
	}
	if !g.world.objects[id].Openable {
		return "You can't close that."
	}
	st := g.objects[id]
	if !st.Open {
		return "It's already closed."
	}
	st.Open = false
	return "Closed."
}

func cmdLampOn(g *Game, cmd Command) string {
	if !g.carrying(objLamp) {
		return textNotCarrying
	}
	lamp := g.objects[objLamp]
	if lamp.On {
		return "The lamp is already on."
	}
	lamp.On = true
	return "The lamp is now on and providing light."
}

func cmdLampOff(g *Game, cmd Command) string {
	if !g.carrying(objLamp) {
		return textNotCarrying
	}
	lamp := g.objects[objLamp]
	if !lamp.On {
		return "The lamp is already off."
	}
	lamp.On = false
	if g.world.IsDarkLocation(g.location) {
		return "The lamp is now off. " + textPitchBlack
	}
	return "The lamp is now off."
}

// cmdRead only has text for the leaflet; every other visible object reads as blank.
func cmdRead(g *Game, cmd Command) string {
	id := cmd.Object
	if !g.visibleOrCarried(id) {
		return textNotHere
	}
	if id != objLeaflet {
		return fmt.Sprintf("There's nothing written on the %s.", id)
	}
	leaflet := g.objects[objLeaflet]
	if !leaflet.Read {
		leaflet.Read = true
		g.score += ScoreLeaflet
	}
	return textWelcome
}

func cmdMoveRug(g *Game, cmd Command) string {
	if !g.isVisible(objRug) {
		return textNotHere
	}
	rug := g.objects[objRug]
	if rug.Moved {
		return "The rug has already been moved aside."
	}
	rug.Moved = true
	g.score += ScoreRug
	return "You move the rug aside, revealing a closed trapdoor in the floor."
}

func cmdScore(g *Game, cmd Command) string {
	return fmt.Sprintf("Your score is %d (in %d moves).", g.score, g.moves)
}

func cmdHelp(g *Game, cmd Command) string {
	return textHelp
}
