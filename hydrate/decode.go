package hydrate

import "github.com/mitchellh/mapstructure"

// Decode maps hydrated objects onto a caller-defined slice of structs. out
// must be a pointer to a slice; fields are matched by name or by
// `mapstructure` tags, with nested association objects decoded into nested
// struct or slice fields.
func Decode(objs []Object, out interface{}) error {
	return mapstructure.Decode(objs, out)
}
