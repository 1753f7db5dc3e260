package tree

import "reflect"

// Config is a node's configuration: nested string-keyed mappings of
// scalars, strings and further mappings, mirroring the structure of the
// YAML file the materializer eventually writes.
type Config map[string]any

// Merge returns a new config holding base deep-merged with override.
// Neither input is mutated and no map is shared with the result: nested
// mappings merge recursively, any other value in override wins. A nil
// override yields a deep copy of base.
func Merge(base, override Config) Config {
	out := make(Config, len(base)+len(override))
	for k, v := range base {
		out[k] = deepCopyValue(v)
	}
	for k, v := range override {
		if sub, ok := v.(map[string]any); ok {
			if cur, ok := out[k].(map[string]any); ok {
				out[k] = map[string]any(Merge(cur, sub))
				continue
			}
		}
		out[k] = deepCopyValue(v)
	}
	return out
}

// Copy returns a deep copy of the config.
func (c Config) Copy() Config {
	return Merge(c, nil)
}

// Equal reports whether two configs are deeply equal.
func (c Config) Equal(other Config) bool {
	if len(c) == 0 && len(other) == 0 {
		return true
	}
	return reflect.DeepEqual(map[string]any(c), map[string]any(other))
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(Merge(t, nil))
	case Config:
		return map[string]any(Merge(t, nil))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}
