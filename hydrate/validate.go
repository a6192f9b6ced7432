package hydrate

import (
	"fmt"
	"strings"
)

// checkRowShape verifies that every row carries the same key set as the
// first. Later stages sample single rows and rely on this invariant.
func checkRowShape(rows []Row) error {
	if len(rows) < 2 {
		return nil
	}
	first := rows[0]
	for i, row := range rows[1:] {
		if len(row) != len(first) {
			return fmt.Errorf("%w: row %d has %d columns, expected %d",
				ErrRowShapeMismatch, i+1, len(row), len(first))
		}
		for key := range first {
			if _, ok := row[key]; !ok {
				return fmt.Errorf("%w: row %d is missing column %q", ErrRowShapeMismatch, i+1, key)
			}
		}
	}
	return nil
}

// validateAliases checks that every schema-node alias appears as a column
// prefix in the input. Only the first row is consulted; per-parent emptiness
// is handled later as a soft miss. Empty input skips validation entirely.
func validateAliases(root *Node, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	prefixes := make(map[string]bool)
	for key := range rows[0] {
		if prefix, _, found := strings.Cut(key, "."); found {
			prefixes[prefix] = true
		}
	}
	return walkAliases(root, prefixes)
}

func walkAliases(node *Node, prefixes map[string]bool) error {
	if !prefixes[node.effectiveAlias()] {
		return fmt.Errorf("%w: %q", ErrSchemaAliasMissing, node.effectiveAlias())
	}
	for _, child := range node.Children {
		if err := walkAliases(child, prefixes); err != nil {
			return err
		}
	}
	return nil
}
