package zork

import (
	"fmt"
	"slices"
	"strings"
)

const (
	textPitchBlack = "It is pitch black."
)

// HasLight reports whether the player carries the lamp and it is on.
func (g *Game) HasLight() bool {
	return g.carrying(objLamp) && g.objects[objLamp].On
}

// IsDark reports whether the current location is dark and the player has no light.
func (g *Game) IsDark() bool {
	return g.isDark(g.location)
}

func (g *Game) isDark(locID string) bool {
	return g.world.IsDarkLocation(locID) && !g.HasLight()
}

// exitFor resolves direction dir from location locID. The living room trapdoor opens
// once the rug has been moved; every other exit comes straight from the world graph.
//
// Postcondition: exists is false if locID has no exit named dir; target is "" for a blocked exit.
func (g *Game) exitFor(locID, dir string) (target string, exists bool) {
	loc := g.world.Location(locID)
	if loc == nil {
		return "", false
	}
	e, ok := loc.exit(dir)
	if !ok {
		return "", false
	}
	if rug, ok := g.objects[objRug]; ok && rug.Moved && locID == locLiving && dir == trapdoorDir {
		return locCellar, true
	}
	return e.Target, true
}

// sitedObjects returns objects whose location is exactly locID: the manifest first,
// then anything dropped here, in world order.
func (g *Game) sitedObjects(locID string) []string {
	loc := g.world.Location(locID)
	var out []string
	seen := make(map[string]bool)
	for _, id := range loc.Objects {
		if g.objects[id].Location == locID {
			out = append(out, id)
			seen[id] = true
		}
	}
	for _, id := range g.world.objectOrder {
		if !seen[id] && g.objects[id].Location == locID {
			out = append(out, id)
		}
	}
	return out
}

// contents returns the objects inside container id, in world order.
func (g *Game) contents(id string) []string {
	marker := containerMarker(id)
	var out []string
	for _, objID := range g.world.objectOrder {
		if g.objects[objID].Location == marker {
			out = append(out, objID)
		}
	}
	return out
}

func (g *Game) isOpenContainer(id string) bool {
	return g.world.objects[id].Container && g.objects[id].Open
}

// VisibleObjects lists what the player can currently see or handle: objects sited here,
// the contents of open containers sited here, and everything carried. It is empty in the dark.
func (g *Game) VisibleObjects() []string {
	if g.IsDark() {
		return nil
	}
	sited := g.sitedObjects(g.location)
	out := append([]string(nil), sited...)
	for _, id := range sited {
		if g.isOpenContainer(id) {
			out = append(out, g.contents(id)...)
		}
	}
	for _, id := range g.inventory {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func (g *Game) isVisible(id string) bool {
	return slices.Contains(g.VisibleObjects(), id)
}

func (g *Game) visibleOrCarried(id string) bool {
	return g.carrying(id) || g.isVisible(id)
}

// Describe returns the description of the current location.
func (g *Game) Describe() string {
	return g.describe(g.location)
}

func (g *Game) describe(locID string) string {
	if g.isDark(locID) {
		return textPitchBlack
	}
	desc := g.world.Location(locID).Description

	var lines []string
	for _, id := range g.sitedObjects(locID) {
		lines = append(lines, g.hereLine(id))
		if g.isOpenContainer(id) {
			for _, inner := range g.contents(id) {
				lines = append(lines, fmt.Sprintf("There is a %s in the %s.", g.world.objects[inner].Name, g.world.objects[id].Name))
			}
		}
	}
	if len(lines) > 0 {
		desc += "\n\n" + strings.Join(lines, "\n")
	}
	return desc
}

func (g *Game) hereLine(id string) string {
	st := g.objects[id]
	switch id {
	case objMailbox:
		return fmt.Sprintf("There is a %s mailbox here.", openWord(st.Open))
	case objLamp:
		status := "turned off"
		if st.On {
			status = "lit"
		}
		return fmt.Sprintf("There is a brass lamp here (%s).", status)
	case objRug:
		status := "lying in the center of the room"
		if st.Moved {
			status = "moved aside"
		}
		return fmt.Sprintf("There is a large oriental rug %s.", status)
	}
	if here := g.world.objects[id].Here; here != "" {
		return here
	}
	return fmt.Sprintf("There is a %s here.", id)
}

// ValidActions returns advisory commands for the current state. The interpreter does
// not consult this list. It is empty once the game is over.
func (g *Game) ValidActions() []string {
	if g.done {
		return nil
	}
	var actions []string

	loc := g.world.Location(g.location)
	for _, e := range loc.Exits {
		target, _ := g.exitFor(loc.ID, e.Direction)
		if target == "" {
			continue
		}
		if e.Direction == dirWindow {
			actions = append(actions, "enter window", "go through window")
		} else {
			actions = append(actions, "go "+e.Direction, e.Direction)
		}
	}

	for _, id := range g.VisibleObjects() {
		actions = append(actions, "examine "+id, "look at "+id)
		carried := g.carrying(id)
		if carried {
			actions = append(actions, "drop "+id)
		} else {
			actions = append(actions, "take "+id, "get "+id)
		}
		if g.world.objects[id].Openable {
			actions = append(actions, "open "+id, "close "+id)
		}
		switch id {
		case objLamp:
			if carried {
				actions = append(actions, "turn on "+id, "turn off "+id)
			}
		case objLeaflet:
			actions = append(actions, "read "+id)
		case objRug:
			actions = append(actions, "move "+id, "lift "+id)
		}
	}

	return append(actions, "look", "inventory", "i", "help", "score")
}

func openWord(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}
