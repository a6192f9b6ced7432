// Package schema provides the fluent registration builder
package schema

import "errors"

// Assoc carries the optional configuration of an association declaration.
// Zero fields fall back to conventions: As defaults to the target model name
// (mandatory for HasMany), SourceKey and TargetKey default to the respective
// model's primary key.
type Assoc struct {
	As         string
	SourceKey  string
	TargetKey  string
	ForeignKey string
	Through    *Through
}

// ModelBuilder is the fluent handle returned by Registry.Define. Errors are
// collected as the chain runs and surfaced by Err; after the first failure
// the remaining calls are no-ops.
type ModelBuilder struct {
	reg   *Registry
	model *Model
	errs  []error
}

// Define registers a model with the given attributes and returns a builder
// for declaring its primary key and associations.
func (r *Registry) Define(name string, attributes ...string) *ModelBuilder {
	mb := &ModelBuilder{reg: r}
	m := &Model{Name: name, Attributes: attributes}
	if err := r.RegisterModel(m); err != nil {
		mb.errs = append(mb.errs, err)
		return mb
	}
	mb.model = m
	return mb
}

// PrimaryKey overrides the model's identity attribute.
func (mb *ModelBuilder) PrimaryKey(name string) *ModelBuilder {
	if mb.model != nil {
		mb.model.PrimaryKey = name
	}
	return mb
}

// BelongsTo declares that this model references a single target row.
func (mb *ModelBuilder) BelongsTo(target string, cfg ...Assoc) *ModelBuilder {
	return mb.associate(BelongsTo, target, cfg)
}

// HasOne declares that a single target row references this model.
func (mb *ModelBuilder) HasOne(target string, cfg ...Assoc) *ModelBuilder {
	return mb.associate(HasOne, target, cfg)
}

// HasMany declares that any number of target rows reference this model.
// The configuration must name the association via As.
func (mb *ModelBuilder) HasMany(target string, cfg ...Assoc) *ModelBuilder {
	return mb.associate(HasMany, target, cfg)
}

// BelongsToMany declares a many-to-many association resolved through the
// named join model. The join model may be registered later; it only has to
// resolve by the time a hydration dereferences it.
func (mb *ModelBuilder) BelongsToMany(target, through string, cfg ...Assoc) *ModelBuilder {
	if mb.model == nil {
		return mb
	}
	c := firstAssoc(cfg)
	t := &Through{Model: through}
	if c.Through != nil {
		t = c.Through.clone()
		if t.Model == "" {
			t.Model = through
		}
	}
	a := &Association{
		As:         c.As,
		Kind:       BelongsToMany,
		Source:     mb.model.Name,
		Target:     target,
		SourceKey:  c.SourceKey,
		TargetKey:  c.TargetKey,
		ForeignKey: c.ForeignKey,
		Through:    t,
	}
	if err := mb.reg.RegisterAssociation(a); err != nil {
		mb.errs = append(mb.errs, err)
	}
	return mb
}

// Err returns the accumulated registration errors, or nil if the whole chain
// succeeded.
func (mb *ModelBuilder) Err() error {
	return errors.Join(mb.errs...)
}

func (mb *ModelBuilder) associate(kind AssociationKind, target string, cfg []Assoc) *ModelBuilder {
	if mb.model == nil {
		return mb
	}
	c := firstAssoc(cfg)
	a := &Association{
		As:         c.As,
		Kind:       kind,
		Source:     mb.model.Name,
		Target:     target,
		SourceKey:  c.SourceKey,
		TargetKey:  c.TargetKey,
		ForeignKey: c.ForeignKey,
		Through:    c.Through.clone(),
	}
	if err := mb.reg.RegisterAssociation(a); err != nil {
		mb.errs = append(mb.errs, err)
	}
	return mb
}

func firstAssoc(cfg []Assoc) Assoc {
	if len(cfg) > 0 {
		return cfg[0]
	}
	return Assoc{}
}
