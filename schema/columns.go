package schema

import "fmt"

// ColumnProcessor rewrites the select-list entry emitted for one attribute.
type ColumnProcessor func(alias, attribute string) string

// ColumnNames returns a select-list entry for every attribute of m, qualified
// and re-aliased so the resulting row keys carry the "Alias.attribute" form
// the hydration engine expects:
//
//	`Customer`.`code` as `Customer.code`
//
// An empty alias falls back to the model name. A non-nil proc replaces the
// default formatting per attribute.
func ColumnNames(m *Model, alias string, proc ColumnProcessor) []string {
	if alias == "" {
		alias = m.Name
	}
	cols := make([]string, 0, len(m.Attributes))
	for _, attr := range m.Attributes {
		if proc != nil {
			cols = append(cols, proc(alias, attr))
			continue
		}
		cols = append(cols, fmt.Sprintf("`%s`.`%s` as `%s.%s`", alias, attr, alias, attr))
	}
	return cols
}
