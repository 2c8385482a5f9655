// Package jsonvalue provides a tagged representation of arbitrary JSON.
//
// Unlike decoding into map[string]any, a Value keeps object members in the
// order they appear in the source text and keeps every occurrence of a
// repeated key. Consumers switch on Kind instead of doing type assertions:
//
//	v, err := jsonvalue.Parse(data)
//	if err != nil {
//		return err
//	}
//	if exp, ok := v.Get("exp"); ok && exp.Kind() == jsonvalue.Number {
//		deadline := time.Unix(int64(exp.Float()), 0)
//		_ = deadline
//	}
//
// Parsing is backed by github.com/tidwall/gjson, which walks the raw text
// without building an intermediate map.
//
// Lookup with Get and serialization with MarshalJSON follow the usual JSON
// decoder convention for repeated keys: the last occurrence wins, emitted at
// the position of the first one. DuplicateKeys reports the repeated names.
//
// Parse refuses documents nested deeper than MaxDepth or holding more than
// MaxValues values.
package jsonvalue
