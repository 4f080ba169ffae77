package zork_test

import (
	"slices"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"mockzork/zork"
)

var commandPool = []string{
	"north", "south", "east", "west", "up", "down", "go east", "enter window",
	"look", "inventory", "score", "help", "xyzzy", "",
	"open mailbox", "close mailbox", "take leaflet", "read leaflet", "drop leaflet",
	"take lamp", "drop lamp", "turn on lamp", "turn off lamp", "examine lamp",
	"move rug", "examine rug", "take sword", "drop sword", "put sword in trophy_case",
	"take egg", "drop egg", "take mailbox", "take water",
}

func drawCommands(rt *rapid.T) []string {
	return rapid.SliceOfN(rapid.SampledFrom(commandPool), 0, 60).Draw(rt, "commands")
}

func TestProperty_Determinism(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cmds := drawCommands(rt)
		w := zork.DefaultWorld()
		a, b := zork.NewGame(w), zork.NewGame(w)
		a.Reset()
		b.Reset()
		for _, c := range cmds {
			sa, sb := a.Step(c), b.Step(c)
			if !equalStates(sa, sb) {
				rt.Fatalf("divergence on %q: %+v vs %+v", c, sa, sb)
			}
		}
	})
}

func TestProperty_MovesAndScoreMonotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := zork.NewGame(zork.DefaultWorld())
		prev := g.Reset()
		for _, c := range drawCommands(rt) {
			st := g.Step(c)
			if prev.Done {
				if st.Moves != prev.Moves {
					rt.Fatalf("moves advanced after game over: %d -> %d", prev.Moves, st.Moves)
				}
			} else if st.Moves != prev.Moves+1 {
				rt.Fatalf("moves went %d -> %d on %q", prev.Moves, st.Moves, c)
			}
			if st.Score < prev.Score {
				rt.Fatalf("score decreased %d -> %d on %q", prev.Score, st.Score, c)
			}
			prev = st
		}
	})
}

func TestProperty_BonusesAwardedOnce(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := zork.NewGame(zork.DefaultWorld())
		prev := g.Reset()
		paid := map[int]int{}
		for _, c := range drawCommands(rt) {
			st := g.Step(c)
			delta := st.Score - prev.Score
			tookEgg := !slices.Contains(prev.Inventory, "egg") && slices.Contains(st.Inventory, "egg")
			switch {
			case tookEgg:
				if delta != zork.ScoreEgg {
					rt.Fatalf("taking the egg on %q scored %d, want %d", c, delta, zork.ScoreEgg)
				}
			case delta == zork.ScoreLeaflet || delta == zork.ScoreRug:
				paid[delta]++
				if paid[delta] > 1 {
					rt.Fatalf("bonus %d paid twice, last on %q", delta, c)
				}
			case delta != 0:
				rt.Fatalf("unexpected score change %d on %q", delta, c)
			}
			prev = st
		}
	})
}

func TestProperty_InventoryConsistency(t *testing.T) {
	w := zork.DefaultWorld()
	rapid.Check(t, func(rt *rapid.T) {
		g := zork.NewGame(w)
		g.Reset()
		for _, c := range drawCommands(rt) {
			st := g.Step(c)
			for _, id := range w.Objects() {
				carried := slices.Contains(st.Inventory, id)
				atInventory := g.ObjectLocation(id) == zork.InventoryLocation
				if carried != atInventory {
					rt.Fatalf("object %q: in inventory=%v, location=%q", id, carried, g.ObjectLocation(id))
				}
			}
		}
	})
}

func TestProperty_DarknessGating(t *testing.T) {
	w := zork.DefaultWorld()
	rapid.Check(t, func(rt *rapid.T) {
		g := zork.NewGame(w)
		g.Reset()
		for _, c := range drawCommands(rt) {
			g.Step(c)
			if !g.IsDark() {
				continue
			}
			if len(g.VisibleObjects()) != 0 {
				rt.Fatalf("objects visible in the dark: %v", g.VisibleObjects())
			}
			for _, a := range g.ValidActions() {
				for _, id := range w.Objects() {
					if strings.HasSuffix(a, " "+id) {
						rt.Fatalf("object action %q offered in the dark", a)
					}
				}
			}
		}
	})
}

func equalStates(a, b zork.GameState) bool {
	return a.Observation == b.Observation &&
		a.Score == b.Score &&
		a.Done == b.Done &&
		a.Moves == b.Moves &&
		a.Location == b.Location &&
		slices.Equal(a.ValidActions, b.ValidActions) &&
		slices.Equal(a.Inventory, b.Inventory)
}
