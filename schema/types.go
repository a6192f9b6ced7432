// Package schema defines the model and association metadata consumed by the
// hydration engine. A Registry holds the registered models and the typed
// associations between them; it is populated up front through the fluent
// builder and treated as read-only while a hydration is in flight.
package schema

import "fmt"

// AssociationKind identifies how two models relate to each other.
type AssociationKind int

const (
	// BelongsTo links a source row to at most one target row via a key the
	// source carries.
	BelongsTo AssociationKind = iota
	// HasOne links a source row to at most one target row via a key the
	// target carries.
	HasOne
	// HasMany links a source row to any number of target rows.
	HasMany
	// BelongsToMany links source and target rows through a join model.
	BelongsToMany
)

// String returns the string representation of the association kind
func (k AssociationKind) String() string {
	switch k {
	case BelongsTo:
		return "belongsTo"
	case HasOne:
		return "hasOne"
	case HasMany:
		return "hasMany"
	case BelongsToMany:
		return "belongsToMany"
	default:
		return "unknown"
	}
}

// ParseAssociationKind converts a string to an AssociationKind
func ParseAssociationKind(s string) (AssociationKind, error) {
	switch s {
	case "belongsTo":
		return BelongsTo, nil
	case "hasOne":
		return HasOne, nil
	case "hasMany":
		return HasMany, nil
	case "belongsToMany":
		return BelongsToMany, nil
	default:
		return 0, fmt.Errorf("unknown association kind: %s", s)
	}
}

// Model describes one entity: its name, the attributes it may project from a
// row set, and the attribute that identifies a single instance.
type Model struct {
	Name       string
	Attributes []string
	PrimaryKey string
}

// HasAttribute returns true if the model declares an attribute with the given name
func (m *Model) HasAttribute(name string) bool {
	for _, attr := range m.Attributes {
		if attr == name {
			return true
		}
	}
	return false
}

func (m *Model) clone() *Model {
	c := *m
	c.Attributes = make([]string, len(m.Attributes))
	copy(c.Attributes, m.Attributes)
	return &c
}

// Through describes the join model of a BelongsToMany association: which
// registered model holds the join rows, the column prefix its data appears
// under, and the two foreign-key columns pointing at the source and target.
// Empty fields fall back to conventions at hydration time (the model name as
// alias, "{ModelName}{ForeignKeySuffix}" for the keys).
type Through struct {
	Model     string
	Alias     string
	ParentKey string
	ChildKey  string
}

func (t *Through) clone() *Through {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Association is a typed edge between two registered models. As is the name
// the association is declared under on the source model; it doubles as the
// default output key when a schema node does not override it. SourceKey and
// TargetKey default to the respective model's primary key when empty.
// ForeignKey is informational metadata for query construction; the engine
// itself reads keys out of the rows, never out of a database.
type Association struct {
	As         string
	Kind       AssociationKind
	Source     string
	Target     string
	SourceKey  string
	TargetKey  string
	ForeignKey string
	Through    *Through
}

func (a *Association) clone() *Association {
	c := *a
	c.Through = a.Through.clone()
	return &c
}
