package material

import (
	"sort"
	"strings"
)

// Key identifies a material independent of the quantity it appears in.
// It is comparable and safe to use as a map key.
type Key struct {
	Kind Kind
	Name string
}

// ItemKey builds the key of an item
func ItemKey(name string) Key {
	return Key{Kind: KindItem, Name: name}
}

// FluidKey builds the key of a fluid
func FluidKey(name string) Key {
	return Key{Kind: KindFluid, Name: name}
}

// ID renders the key as "item:<name>" or "fluid:<name>"
func (k Key) ID() string {
	return string(k.Kind) + ":" + k.Name
}

func (k Key) String() string {
	return k.ID()
}

// ParseKey parses an identifier produced by Key.ID.
// The kind is everything before the first ':'; the rest is the name.
func ParseKey(id string) (Key, error) {
	kind, name, found := strings.Cut(id, ":")
	if !found {
		return Key{}, &MalformedIDError{ID: id, Reason: "missing ':' separator"}
	}

	k := Key{Kind: Kind(kind), Name: name}
	if !k.Kind.IsValid() {
		return Key{}, &MalformedIDError{ID: id, Reason: "invalid material type '" + kind + "'"}
	}
	if name == "" {
		return Key{}, &MalformedIDError{ID: id, Reason: "empty material name"}
	}

	return k, nil
}

// MustParseKey is ParseKey for identifiers known to be well formed (tests, fixtures)
func MustParseKey(id string) Key {
	k, err := ParseKey(id)
	if err != nil {
		panic(err)
	}
	return k
}

// MarshalText lets Key be used as a JSON object key
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.ID()), nil
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

// SortKeys orders keys by their identifier
func SortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].ID() < keys[j].ID()
	})
}

// SortedKeys returns the keys of a key-indexed map in identifier order
func SortedKeys[V any](m map[Key]V) []Key {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}
