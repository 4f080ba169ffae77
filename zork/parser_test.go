package zork

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func noExits(string) bool { return false }

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		assert.Equal(t, KindEmpty, Parse(in, noExits).Kind, "input %q", in)
	}
}

func TestParse_Kinds(t *testing.T) {
	cases := []struct {
		input string
		kind  Kind
	}{
		{"look", KindLook},
		{"l", KindLook},
		{"LOOK", KindLook},
		{"look at mailbox", KindExamine},
		{"examine lamp", KindExamine},
		{"inventory", KindInventory},
		{"i", KindInventory},
		{"take leaflet", KindTake},
		{"get egg", KindTake},
		{"pick up lamp", KindTake},
		{"drop sword", KindDrop},
		{"put sword", KindDrop},
		{"put egg in trophy_case", KindPutIn},
		{"open mailbox", KindOpen},
		{"close mailbox", KindClose},
		{"turn on lamp", KindLampOn},
		{"turn off lamp", KindLampOff},
		{"turn on sword", KindUnknown},
		{"read leaflet", KindRead},
		{"move rug", KindMoveRug},
		{"lift rug", KindMoveRug},
		{"score", KindScore},
		{"help", KindHelp},
		{"xyzzy", KindUnknown},
		{"north", KindMove},
		{"go east", KindMove},
		{"enter window", KindMove},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.kind, Parse(tc.input, noExits).Kind)
		})
	}
}

func TestParse_Directions(t *testing.T) {
	cases := map[string]string{
		"north":             "north",
		"go north":          "north",
		"walk up":           "up",
		"enter window":      "window",
		"go through window": "window",
		"go":                "",
	}
	for in, want := range cases {
		cmd := Parse(in, noExits)
		assert.Equal(t, KindMove, cmd.Kind, in)
		assert.Equal(t, want, cmd.Direction, in)
	}
}

func TestParse_BareExitName(t *testing.T) {
	isExit := func(w string) bool { return w == "window" }
	cmd := Parse("window", isExit)
	assert.Equal(t, KindMove, cmd.Kind)
	assert.Equal(t, "window", cmd.Direction)

	assert.Equal(t, KindUnknown, Parse("window", noExits).Kind)
}

func TestParse_ObjectIsLastToken(t *testing.T) {
	cmd := Parse("take the small leaflet", noExits)
	assert.Equal(t, KindTake, cmd.Kind)
	assert.Equal(t, "take", cmd.Verb)
	assert.Equal(t, "leaflet", cmd.Object)
}

func TestParse_PutIn(t *testing.T) {
	cmd := Parse("put egg into trophy_case", noExits)
	assert.Equal(t, KindPutIn, cmd.Kind)
	assert.Equal(t, "egg", cmd.Object)
	assert.Equal(t, "trophy_case", cmd.Container)

	// no container after the preposition
	cmd = Parse("put egg in", noExits)
	assert.Equal(t, KindDrop, cmd.Kind)
	assert.Empty(t, cmd.Container)
}

func TestParse_MoveOnlyAppliesToRug(t *testing.T) {
	cmd := Parse("move north", noExits)
	assert.Equal(t, KindUnknown, cmd.Kind)
	assert.Equal(t, KindMoveRug, Parse("move the rug", noExits).Kind)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "move_rug", KindMoveRug.String())
	assert.Equal(t, "invalid", Kind(-1).String())
	assert.Equal(t, "invalid", kindCount.String())
}

func TestProperty_Parse_NeverPanicsAndKindInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		in := rapid.String().Draw(rt, "input")
		cmd := Parse(in, noExits)
		if cmd.Kind < 0 || cmd.Kind >= kindCount {
			rt.Fatalf("kind %d out of range for %q", cmd.Kind, in)
		}
		if cmd.Kind == KindPutIn && cmd.Container == "" {
			rt.Fatalf("put-in without container for %q", in)
		}
	})
}
