package hydrate

import (
	"fmt"
	"strings"

	"github.com/dphaener/hydrate/schema"
)

// build materializes one object from a group of rows that already share a
// single identity for node. Attributes are projected sparsely from the first
// row; each child node is reconciled according to its association kind.
// parents carries the ancestor objects for post-process callbacks.
func (h *Hydrator) build(node *Node, rows []Row, parents *Parents) (Object, error) {
	model, ok := h.registry.Model(node.Model)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeModelNotFound, node.Model)
	}
	alias := node.effectiveAlias()

	rep := rows[0]
	obj := make(Object, len(model.Attributes))
	for _, attr := range model.Attributes {
		if v, present := rep[alias+"."+attr]; present {
			obj[attr] = v
		}
	}

	// Extend the chain before recursing so descendant post-process callbacks
	// can see this object as it fills in.
	scope := parents.with(alias, obj)

	for _, child := range node.Children {
		childAlias := child.effectiveAlias()
		if !hasColumnsFor(rows, childAlias) {
			// Absent columns mean the association was not queried.
			continue
		}

		assoc, declared := h.registry.Association(node.Model, childAlias)
		if !declared {
			return nil, fmt.Errorf("%w: %s has no association %q", ErrAssociationNotDeclared, node.Model, childAlias)
		}

		// An explicit schema alias always wins over the declared name, so the
		// same association can surface under several keys.
		outputKey := assoc.As
		if child.Alias != "" {
			outputKey = child.Alias
		}

		switch assoc.Kind {
		case schema.BelongsTo, schema.HasOne:
			groups, err := h.groupForNode(child, rows, childAlias)
			if err != nil {
				return nil, err
			}
			if len(groups) == 0 {
				continue
			}
			childObj, err := h.build(child, groups[0], scope)
			if err != nil {
				return nil, err
			}
			obj[outputKey] = childObj

		case schema.HasMany:
			groups, err := h.groupForNode(child, rows, childAlias)
			if err != nil {
				return nil, err
			}
			list := make([]Object, 0, len(groups))
			for _, group := range groups {
				childObj, err := h.build(child, group, scope)
				if err != nil {
					return nil, err
				}
				list = append(list, childObj)
			}
			obj[outputKey] = list

		case schema.BelongsToMany:
			list, err := h.buildThrough(child, assoc, model, alias, childAlias, rows, scope)
			if err != nil {
				return nil, err
			}
			obj[outputKey] = list

		default:
			return nil, fmt.Errorf("invalid association kind: %s", assoc.Kind)
		}
	}

	if node.PostProcess != nil {
		return node.PostProcess(obj, scope), nil
	}
	return obj, nil
}

// buildThrough reconciles a belongs-to-many association: rows are matched
// against the join model's foreign-key columns, then grouped by the target
// key. A null join child-key column is tolerated so callers may omit that
// projection from their query.
func (h *Hydrator) buildThrough(
	child *Node,
	assoc *schema.Association,
	parent *schema.Model,
	parentAlias, childAlias string,
	rows []Row,
	scope *Parents,
) ([]Object, error) {
	through := assoc.Through
	if through == nil || through.Model == "" {
		return nil, fmt.Errorf("%w: %s.%s", ErrThroughModelMissing, assoc.Source, assoc.As)
	}
	joinModel, ok := h.registry.Model(through.Model)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s through %s", ErrThroughModelMissing, assoc.Source, assoc.As, through.Model)
	}
	target, ok := h.registry.Model(child.Model)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeModelNotFound, child.Model)
	}

	sourceKey := assoc.SourceKey
	if sourceKey == "" {
		sourceKey = parent.PrimaryKey
	}
	targetKey := assoc.TargetKey
	if targetKey == "" {
		targetKey = target.PrimaryKey
	}
	joinAlias := through.Alias
	if joinAlias == "" {
		joinAlias = joinModel.Name
	}
	suffix := h.registry.ForeignKeySuffix()
	parentKey := through.ParentKey
	if parentKey == "" {
		parentKey = parent.Name + suffix
	}
	childKey := through.ChildKey
	if childKey == "" {
		childKey = target.Name + suffix
	}

	parentValue := rows[0][parentAlias+"."+sourceKey]
	parentCol := joinAlias + "." + parentKey
	childCol := joinAlias + "." + childKey
	targetCol := childAlias + "." + targetKey

	matched := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row[parentCol] != parentValue {
			continue
		}
		targetValue := row[targetCol]
		if targetValue == nil {
			continue
		}
		if joinValue := row[childCol]; joinValue != nil && joinValue != targetValue {
			continue
		}
		matched = append(matched, row)
	}

	groups := groupByColumn(matched, targetCol)
	list := make([]Object, 0, len(groups))
	for _, group := range groups {
		obj, err := h.build(child, group, scope)
		if err != nil {
			return nil, err
		}
		list = append(list, obj)
	}
	return list, nil
}

// groupForNode regroups a parent's rows by the node's alias and its model's
// primary key.
func (h *Hydrator) groupForNode(node *Node, rows []Row, alias string) ([][]Row, error) {
	model, ok := h.registry.Model(node.Model)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeModelNotFound, node.Model)
	}
	return groupByIdentity(rows, model, alias)
}

// hasColumnsFor reports whether any row carries a column under the given
// alias prefix.
func hasColumnsFor(rows []Row, alias string) bool {
	prefix := alias + "."
	for _, row := range rows {
		for key := range row {
			if strings.HasPrefix(key, prefix) {
				return true
			}
		}
	}
	return false
}
