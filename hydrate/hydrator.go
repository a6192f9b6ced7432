// Package hydrate reconstructs nested object trees from flat, alias-prefixed
// row sets. Rows are string-keyed maps whose keys have the form
// "Alias.attribute"; a caller-supplied schema tree declares which models and
// associations to materialize, and the schema.Registry supplies the model
// metadata. The engine groups rows by identity and reconciles each
// association kind recursively; it performs no I/O and never mutates its
// inputs.
package hydrate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dphaener/hydrate/schema"
)

// Row is one denormalized input row, keyed by "Alias.attribute".
type Row map[string]interface{}

// Object is one hydrated output object. Attribute keys come from the model's
// attribute set; association keys follow the schema node's alias rules.
type Object map[string]interface{}

// PostProcess transforms a freshly built object before it is attached to its
// parent. parents exposes every ancestor object by alias, outermost first,
// with the current node included. The return value replaces the built object
// wholesale; the engine does not inspect its shape.
type PostProcess func(obj Object, parents *Parents) Object

// Node is one level of the caller-supplied schema tree. Alias overrides both
// the column prefix the node reads from and the key its output is attached
// under; when empty, the model name is used. Children must correspond to
// associations declared on this node's model.
type Node struct {
	Model       string
	Alias       string
	PostProcess PostProcess
	Children    []*Node
}

func (n *Node) effectiveAlias() string {
	if n.Alias != "" {
		return n.Alias
	}
	return n.Model
}

// Parents is an ordered, read-only view of the ancestor objects built above
// (and including) the node a post-process callback runs for, keyed by
// effective alias.
type Parents struct {
	aliases []string
	objects map[string]Object
}

// Get returns the ancestor object built under the given alias
func (p *Parents) Get(alias string) (Object, bool) {
	if p == nil {
		return nil, false
	}
	obj, ok := p.objects[alias]
	return obj, ok
}

// Aliases returns the ancestor aliases in outermost-first order
func (p *Parents) Aliases() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.aliases))
	copy(out, p.aliases)
	return out
}

// with returns a new chain extended by one entry; the receiver, which may be
// nil for the root, is unchanged.
func (p *Parents) with(alias string, obj Object) *Parents {
	if obj == nil {
		return p
	}
	var size int
	if p != nil {
		size = len(p.aliases)
	}
	next := &Parents{
		aliases: make([]string, 0, size+1),
		objects: make(map[string]Object, size+1),
	}
	if p != nil {
		for _, a := range p.aliases {
			next.aliases = append(next.aliases, a)
			next.objects[a] = p.objects[a]
		}
	}
	next.aliases = append(next.aliases, alias)
	next.objects[alias] = obj
	return next
}

// Hydrator is the hydration entry point, bound to one registry. The registry
// must not be mutated while a hydration is in flight; this is a caller
// contract, not enforced by locking.
type Hydrator struct {
	registry *schema.Registry
	logger   *zap.Logger
}

// Option configures a Hydrator
type Option func(*Hydrator)

// WithLogger attaches a logger for debug-level hydration tracing
func WithLogger(logger *zap.Logger) Option {
	return func(h *Hydrator) {
		h.logger = logger
	}
}

// New creates a Hydrator over the given registry
func New(registry *schema.Registry, opts ...Option) *Hydrator {
	h := &Hydrator{
		registry: registry,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hydrate turns rows into one nested object per distinct root identity, in
// first-appearance order. All rows must share an identical key set. Empty
// input yields an empty, non-nil result.
func (h *Hydrator) Hydrate(rows []Row, root *Node) ([]Object, error) {
	if err := checkRowShape(rows); err != nil {
		return nil, err
	}
	if err := validateAliases(root, rows); err != nil {
		return nil, err
	}

	model, ok := h.registry.Model(root.Model)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSchemaModelNotFound, root.Model)
	}

	groups, err := groupByIdentity(rows, model, root.effectiveAlias())
	if err != nil {
		return nil, err
	}
	h.logger.Debug("grouped root rows",
		zap.String("model", model.Name),
		zap.Int("rows", len(rows)),
		zap.Int("identities", len(groups)))

	results := make([]Object, 0, len(groups))
	for _, group := range groups {
		obj, err := h.build(root, group, nil)
		if err != nil {
			return nil, err
		}
		results = append(results, obj)
	}
	return results, nil
}
