package sources

import (
	"sort"
)

// FieldsKind tells how a source listed its properties or selectors.
type FieldsKind int

const (
	// OrderedList is a plain list of identifiers; caller order is kept.
	OrderedList FieldsKind = iota
	// KeyedMapping maps identifiers to per-field configuration; insertion order is kept.
	KeyedMapping
)

// String returns the string representation of the kind.
func (k FieldsKind) String() string {
	switch k {
	case OrderedList:
		return "list"
	case KeyedMapping:
		return "mapping"
	}
	return "unknown"
}

// FieldConfig is the per-identifier configuration of a keyed mapping.
type FieldConfig struct {
	// Name is an optional display name given as a plain string value.
	Name string

	// Codes is the optional coding table of a categorical field.
	// Nil means no table was given; an empty, non-nil table was given empty.
	Codes Codes
}

// HasCodes reports whether a coding table was configured.
func (c FieldConfig) HasCodes() bool {
	return c.Codes != nil
}

// FieldEntry is one identifier of a keyed mapping with its configuration.
type FieldEntry struct {
	ID     string
	Config FieldConfig
}

// Fields is the property or selector collection of a source. It is either an
// OrderedList or a KeyedMapping; comparisons between sources use set semantics.
type Fields struct {
	kind    FieldsKind
	ids     []string
	configs map[string]FieldConfig
}

// NewList creates OrderedList fields.
func NewList(ids ...string) Fields {
	return Fields{kind: OrderedList, ids: append([]string(nil), ids...)}
}

// NewMapping creates KeyedMapping fields. A repeated identifier keeps its first
// position and its last configuration.
func NewMapping(entries ...FieldEntry) Fields {
	f := Fields{kind: KeyedMapping, configs: make(map[string]FieldConfig, len(entries))}
	for _, e := range entries {
		if _, seen := f.configs[e.ID]; !seen {
			f.ids = append(f.ids, e.ID)
		}
		f.configs[e.ID] = e.Config
	}
	return f
}

// Kind returns whether the fields were given as a list or a mapping.
func (f Fields) Kind() FieldsKind {
	return f.kind
}

// IDs returns the identifiers in display order.
func (f Fields) IDs() []string {
	return append([]string(nil), f.ids...)
}

// Len returns the number of identifiers as given.
func (f Fields) Len() int {
	return len(f.ids)
}

// Set returns the identifiers as a set.
func (f Fields) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(f.ids))
	for _, id := range f.ids {
		set[id] = struct{}{}
	}
	return set
}

// Sorted returns the distinct identifiers in lexical order.
func (f Fields) Sorted() []string {
	set := f.Set()
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both collections hold the same identifier set,
// ignoring order, duplicates and kind.
func (f Fields) Equal(other Fields) bool {
	a, b := f.Set(), other.Set()
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}

// Config returns the configuration of an identifier. Lists carry no configuration.
func (f Fields) Config(id string) (FieldConfig, bool) {
	if f.kind != KeyedMapping {
		return FieldConfig{}, false
	}
	cfg, ok := f.configs[id]
	return cfg, ok
}
