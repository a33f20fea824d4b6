package process

import (
	"fmt"
	"strings"
)

// Kind is the closed set of activity shapes
type Kind string

const (
	// KindResource is extraction from a resource (ore patch, well, fluid tile)
	KindResource Kind = "resource"

	// KindPlant is growing and harvesting a plant
	KindPlant Kind = "plant"

	// KindRecipe is crafting in a machine
	KindRecipe Kind = "recipe"
)

// Kinds lists every process kind
var Kinds = []Kind{KindResource, KindPlant, KindRecipe}

// IsValid reports whether k is one of Kinds
func (k Kind) IsValid() bool {
	switch k {
	case KindResource, KindPlant, KindRecipe:
		return true
	}
	return false
}

// ParseKind parses a kind name, ignoring case
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", &InvalidKindError{Value: s}
	}
	return k, nil
}

// Key is the identity of a process. Productivity is not part of it.
type Key struct {
	Kind Kind
	Name string
}

func (k Key) String() string {
	return string(k.Kind) + "/" + k.Name
}

// ParseKey parses the "<kind>/<name>" form produced by Key.String
func ParseKey(s string) (Key, error) {
	kind, name, found := strings.Cut(s, "/")
	if !found || name == "" {
		return Key{}, fmt.Errorf("malformed process key %q", s)
	}
	k, err := ParseKind(kind)
	if err != nil {
		return Key{}, err
	}
	return Key{Kind: k, Name: name}, nil
}

// MarshalText lets Key be used as a JSON object key
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the text form written by MarshalText
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Process is one selected activity.
//
// Productivity is a fraction (0.1 = +10%) computed from equipped modules and beacons
// before the solve. Ingredients and products are not stored; they come from the catalog.
type Process struct {
	Kind         Kind    `json:"kind"`
	Name         string  `json:"name"`
	Productivity float64 `json:"productivity"`
}

// New creates a process with zero productivity
func New(kind Kind, name string) Process {
	return Process{Kind: kind, Name: name}
}

// Key returns the identity of the process
func (p Process) Key() Key {
	return Key{Kind: p.Kind, Name: p.Name}
}

// Same reports whether two processes denote the same activity
func (p Process) Same(other Process) bool {
	return p.Key() == other.Key()
}

func (p Process) String() string {
	return p.Key().String()
}
