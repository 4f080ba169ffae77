package zork

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	locationSectionPrefix = "location."
	objectSectionPrefix   = "object."
)

//go:embed data/world.ini
var defaultWorldINI []byte

// World is the static world graph: locations, their exits and manifests, and object templates.
// A World is immutable once loaded and may be shared by any number of games.
type World struct {
	start         string
	locations     map[string]*Location
	locationOrder []string
	objects       map[string]*Object
	objectOrder   []string
}

// DefaultWorld returns the built-in world.
//
// Postcondition: Returns a validated World; panics if the embedded data is malformed.
func DefaultWorld() *World {
	w, err := LoadWorld(defaultWorldINI)
	if err != nil {
		panic(fmt.Sprintf("loading embedded world: %v", err))
	}
	return w
}

// LoadWorldFile reads a world definition from an ini file on disk.
func LoadWorldFile(path string) (*World, error) {
	w, err := LoadWorld(path)
	if err != nil {
		return nil, fmt.Errorf("loading world file %s: %w", path, err)
	}
	return w, nil
}

// LoadWorld parses a world definition from any source accepted by ini.Load
// (a file path, []byte, or io.Reader) and validates it.
func LoadWorld(src any) (*World, error) {
	cfg, err := ini.Load(src)
	if err != nil {
		return nil, fmt.Errorf("parsing world ini: %w", err)
	}

	w := &World{
		locations: make(map[string]*Location),
		objects:   make(map[string]*Object),
	}

	worldSec := cfg.Section("world")
	w.start = worldSec.Key("Start").String()
	dark := worldSec.Key("Dark").Strings(",")

	// First pass: locations
	for _, sec := range cfg.Sections() {
		name := sec.Name()
		if !strings.HasPrefix(name, locationSectionPrefix) {
			continue
		}
		id := strings.TrimPrefix(name, locationSectionPrefix)
		loc := &Location{
			ID:          id,
			Description: sec.Key("Description").String(),
			Objects:     sec.Key("Objects").Strings(","),
			Blocked:     make(map[string]string),
		}
		for _, raw := range sec.Key("Exits").Strings(",") {
			dir, target, _ := strings.Cut(raw, ":")
			loc.Exits = append(loc.Exits, Exit{
				Direction: strings.TrimSpace(dir),
				Target:    strings.TrimSpace(target),
			})
		}
		for _, key := range sec.Keys() {
			if dir, ok := strings.CutPrefix(key.Name(), "Blocked."); ok {
				loc.Blocked[dir] = key.String()
			}
		}
		w.locations[id] = loc
		w.locationOrder = append(w.locationOrder, id)
	}

	// Second pass: objects
	for _, sec := range cfg.Sections() {
		name := sec.Name()
		if !strings.HasPrefix(name, objectSectionPrefix) {
			continue
		}
		id := strings.TrimPrefix(name, objectSectionPrefix)
		obj := &Object{
			ID:        id,
			Name:      sec.Key("Name").MustString(strings.ReplaceAll(id, "_", " ")),
			Location:  sec.Key("Location").String(),
			Takeable:  sec.Key("Takeable").MustBool(false),
			Container: sec.Key("Container").MustBool(false),
			Openable:  sec.Key("Openable").MustBool(false),
			Open:      sec.Key("Open").MustBool(false),
			Here:      sec.Key("Here").String(),
			Examine:   sec.Key("Examine").String(),
			Carried:   sec.Key("Carried").String(),
		}
		w.objects[id] = obj
		w.objectOrder = append(w.objectOrder, id)
	}

	for _, id := range dark {
		if loc, ok := w.locations[id]; ok {
			loc.Dark = true
		} else {
			return nil, fmt.Errorf("validating world: dark location %q is not defined", id)
		}
	}

	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("validating world: %w", err)
	}
	return w, nil
}

// Validate checks the graph for dangling references.
//
// Postcondition: Returns nil if the world is consistent, or an error describing all violations.
func (w *World) Validate() error {
	var errs []string
	if _, ok := w.locations[w.start]; !ok {
		errs = append(errs, fmt.Sprintf("start location %q is not defined", w.start))
	}
	for _, id := range w.locationOrder {
		loc := w.locations[id]
		for _, e := range loc.Exits {
			if e.Direction == "" {
				errs = append(errs, fmt.Sprintf("location %q has an exit with no direction", id))
				continue
			}
			if e.Target != "" {
				if _, ok := w.locations[e.Target]; !ok {
					errs = append(errs, fmt.Sprintf("location %q exit %q leads to unknown location %q", id, e.Direction, e.Target))
				}
			}
		}
		for _, objID := range loc.Objects {
			if _, ok := w.objects[objID]; !ok {
				errs = append(errs, fmt.Sprintf("location %q lists unknown object %q", id, objID))
			}
		}
	}
	for _, id := range w.objectOrder {
		obj := w.objects[id]
		switch {
		case obj.Location == InventoryLocation:
		case strings.HasPrefix(obj.Location, containerPrefix):
			holder, ok := w.objects[strings.TrimPrefix(obj.Location, containerPrefix)]
			if !ok || !holder.Container {
				errs = append(errs, fmt.Sprintf("object %q is inside %q which is not a container", id, obj.Location))
			}
		default:
			if _, ok := w.locations[obj.Location]; !ok {
				errs = append(errs, fmt.Sprintf("object %q is sited at unknown location %q", id, obj.Location))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Start returns the id of the starting location.
func (w *World) Start() string {
	return w.start
}

// Location returns the location with the given id, or nil.
func (w *World) Location(id string) *Location {
	return w.locations[id]
}

// Object returns the object template with the given id, or nil.
func (w *World) Object(id string) *Object {
	return w.objects[id]
}

// Locations returns all location ids in definition order.
func (w *World) Locations() []string {
	return append([]string(nil), w.locationOrder...)
}

// Objects returns all object ids in definition order.
func (w *World) Objects() []string {
	return append([]string(nil), w.objectOrder...)
}

// IsDarkLocation reports whether id is one of the locations that are dark without a light.
func (w *World) IsDarkLocation(id string) bool {
	loc := w.locations[id]
	return loc != nil && loc.Dark
}

// exit returns the static exit in direction dir from location id.
func (l *Location) exit(dir string) (Exit, bool) {
	for _, e := range l.Exits {
		if e.Direction == dir {
			return e, true
		}
	}
	return Exit{}, false
}
