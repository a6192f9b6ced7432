// Package schema provides a registry for managing models and associations
package schema

import (
	"errors"
	"fmt"
	"sync"
)

// Defaults applied when a model or association omits its key configuration.
const (
	DefaultPrimaryKey       = "id"
	DefaultForeignKeySuffix = "Id"
)

// ErrHasManyMissingAlias is returned when a has-many association is
// registered without a disambiguating name.
var ErrHasManyMissingAlias = errors.New("has-many association requires an alias")

// Registry manages all registered models and their associations. It is safe
// for concurrent reads; registration and reads must not overlap with an
// in-flight hydration.
type Registry struct {
	models       map[string]*Model
	associations map[string]map[string]*Association // source model -> as -> association
	primaryKey   string
	fkSuffix     string
	mu           sync.RWMutex
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithDefaultPrimaryKey overrides the primary-key name assigned to models
// that do not declare one.
func WithDefaultPrimaryKey(name string) Option {
	return func(r *Registry) {
		r.primaryKey = name
	}
}

// WithForeignKeySuffix overrides the suffix used to derive conventional join
// foreign-key column names ("{ModelName}{suffix}").
func WithForeignKeySuffix(suffix string) Option {
	return func(r *Registry) {
		r.fkSuffix = suffix
	}
}

// NewRegistry creates a new empty registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		models:       make(map[string]*Model),
		associations: make(map[string]map[string]*Association),
		primaryKey:   DefaultPrimaryKey,
		fkSuffix:     DefaultForeignKeySuffix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterModel registers a new model. The model's primary key defaults to
// the registry-wide default when empty.
func (r *Registry) RegisterModel(m *Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.Name == "" {
		return errors.New("model name must not be empty")
	}
	if _, exists := r.models[m.Name]; exists {
		return fmt.Errorf("model %s is already registered", m.Name)
	}
	if m.PrimaryKey == "" {
		m.PrimaryKey = r.primaryKey
	}
	r.models[m.Name] = m
	return nil
}

// RegisterAssociation registers an association on its source model. The
// association name (As) must be unique per source model; has-many
// associations must carry a non-empty As.
func (r *Registry) RegisterAssociation(a *Association) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.models[a.Source]; !exists {
		return fmt.Errorf("source model %s is not registered", a.Source)
	}
	if a.As == "" {
		if a.Kind == HasMany {
			return fmt.Errorf("%w: %s -> %s", ErrHasManyMissingAlias, a.Source, a.Target)
		}
		a.As = a.Target
	}
	byAs := r.associations[a.Source]
	if byAs == nil {
		byAs = make(map[string]*Association)
		r.associations[a.Source] = byAs
	}
	if _, exists := byAs[a.As]; exists {
		return fmt.Errorf("association %s is already declared on %s", a.As, a.Source)
	}
	byAs[a.As] = a
	return nil
}

// Model retrieves a registered model by name
func (r *Registry) Model(name string) (*Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.models[name]
	return m, exists
}

// Association retrieves an association by source model and declared name
func (r *Registry) Association(source, as string) (*Association, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.associations[source][as]
	return a, exists
}

// Models returns the names of all registered models
func (r *Registry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	return names
}

// ForeignKeySuffix returns the suffix used for conventional foreign-key names
func (r *Registry) ForeignKeySuffix() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.fkSuffix
}

// Clone returns a fully independent deep copy of the registry. Mutating the
// original after cloning never affects the clone, and vice versa.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := &Registry{
		models:       make(map[string]*Model, len(r.models)),
		associations: make(map[string]map[string]*Association, len(r.associations)),
		primaryKey:   r.primaryKey,
		fkSuffix:     r.fkSuffix,
	}
	for name, m := range r.models {
		c.models[name] = m.clone()
	}
	for source, byAs := range r.associations {
		copied := make(map[string]*Association, len(byAs))
		for as, a := range byAs {
			copied[as] = a.clone()
		}
		c.associations[source] = copied
	}
	return c
}
