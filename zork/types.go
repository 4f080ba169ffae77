package zork

const (
	// InventoryLocation is the location marker for carried objects.
	InventoryLocation = "inventory"
	// containerPrefix marks an object sited inside another object, e.g. "in_mailbox".
	containerPrefix = "in_"

	MaxMoves     = 1000
	GruePeriod   = 3
	ScoreEgg     = 5
	ScoreLeaflet = 1
	ScoreRug     = 2
)

// Object ids the interpreter dispatches on directly.
const (
	objMailbox    = "mailbox"
	objLeaflet    = "leaflet"
	objLamp       = "lamp"
	objTrophyCase = "trophy_case"
	objRug        = "rug"
	objEgg        = "egg"
	objWater      = "water"
)

const (
	dirDown     = "down"
	dirWindow   = "window"
	locLiving   = "living_room"
	locCellar   = "cellar"
	trapdoorDir = dirDown
)

// Exit is a passage out of a location. An empty Target means the exit exists but is blocked.
type Exit struct {
	Direction string
	Target    string
}

// Location is a node in the static world graph.
type Location struct {
	ID          string
	Description string
	Exits       []Exit
	// Objects is the ordered manifest of objects nominally sited here.
	Objects []string
	Dark    bool
	// Blocked holds special refusal text for blocked exits, keyed by direction.
	Blocked map[string]string
}

// Object is the static template for an interactable object.
type Object struct {
	ID        string
	Name      string
	Location  string
	Takeable  bool
	Container bool
	Openable  bool
	Open      bool
	Here      string
	Examine   string
	Carried   string
}

// objectState is the mutable per-game state of an object.
type objectState struct {
	Location string
	Open     bool
	Read     bool
	On       bool
	Moved    bool
}

func containerMarker(id string) string {
	return containerPrefix + id
}
