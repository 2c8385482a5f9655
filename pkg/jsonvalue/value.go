package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Limits applied by Parse. Derivation trees and their renderings grow with
// both, so documents beyond them are rejected rather than built.
const (
	MaxDepth  = 32
	MaxValues = 10000
)

var (
	// ErrInvalidJSON is returned by Parse for text that is not a single JSON value.
	ErrInvalidJSON = errors.New("invalid json")
	ErrTooDeep     = fmt.Errorf("%w: nesting deeper than %d levels", ErrInvalidJSON, MaxDepth)
	ErrTooLarge    = fmt.Errorf("%w: more than %d values", ErrInvalidJSON, MaxValues)
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

var kindNames = [...]string{
	Null:   "null",
	Bool:   "boolean",
	Number: "number",
	String: "string",
	Array:  "array",
	Object: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Member is a single key/value pair of an object, in source order.
type Member struct {
	Key   string
	Value *Value
}

// Value is an immutable JSON value.
type Value struct {
	kind    Kind
	boolean bool
	num     float64
	raw     string // number literal as written
	str     string
	items   []*Value
	members []Member
}

// Parse decodes data into a Value. Leading and trailing whitespace is allowed,
// anything else after the value is not. Documents nested deeper than
// MaxDepth or holding more than MaxValues values fail with ErrTooDeep or
// ErrTooLarge, both of which match ErrInvalidJSON.
func Parse(data []byte) (*Value, error) {
	if nestingExceeds(data, MaxDepth) {
		return nil, ErrTooDeep
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	var b builder
	v := b.build(gjson.ParseBytes(data))
	if b.err != nil {
		return nil, b.err
	}
	return v, nil
}

// ParseString is Parse for string input.
func ParseString(s string) (*Value, error) {
	return Parse([]byte(s))
}

// nestingExceeds scans raw text, skipping string contents, and reports
// whether arrays and objects nest deeper than limit.
func nestingExceeds(data []byte, limit int) bool {
	depth := 0
	inString, escaped := false, false
	for _, c := range data {
		switch {
		case inString:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
		case c == '"':
			inString = true
		case c == '[' || c == '{':
			depth++
			if depth > limit {
				return true
			}
		case c == ']' || c == '}':
			depth--
		}
	}
	return false
}

type builder struct {
	values int
	err    error
}

func (b *builder) build(r gjson.Result) *Value {
	b.values++
	if b.values > MaxValues {
		b.err = ErrTooLarge
		return nil
	}

	switch r.Type {
	case gjson.Null:
		return &Value{kind: Null}
	case gjson.True, gjson.False:
		return &Value{kind: Bool, boolean: r.Bool()}
	case gjson.Number:
		return &Value{kind: Number, num: r.Num, raw: r.Raw}
	case gjson.String:
		return &Value{kind: String, str: r.Str}
	}

	if r.IsArray() {
		v := &Value{kind: Array, items: []*Value{}}
		r.ForEach(func(_, item gjson.Result) bool {
			v.items = append(v.items, b.build(item))
			return b.err == nil
		})
		return v
	}

	v := &Value{kind: Object, members: []Member{}}
	r.ForEach(func(key, val gjson.Result) bool {
		v.members = append(v.members, Member{Key: key.String(), Value: b.build(val)})
		return b.err == nil
	})
	return v
}

// NewString returns a string value.
func NewString(s string) *Value { return &Value{kind: String, str: s} }

// NewNumber returns a number value.
func NewNumber(f float64) *Value {
	return &Value{kind: Number, num: f, raw: strconv.FormatFloat(f, 'f', -1, 64)}
}

// NewBool returns a boolean value.
func NewBool(b bool) *Value { return &Value{kind: Bool, boolean: b} }

// NewNull returns the null value.
func NewNull() *Value { return &Value{kind: Null} }

// NewArray returns an array holding items.
func NewArray(items ...*Value) *Value {
	return &Value{kind: Array, items: append([]*Value{}, items...)}
}

// NewObject returns an object holding members in the given order.
func NewObject(members ...Member) *Value {
	return &Value{kind: Object, members: append([]Member{}, members...)}
}

// Kind reports the variant. A nil Value is Null.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

// Bool returns the boolean payload; false for other kinds.
func (v *Value) Bool() bool { return v != nil && v.kind == Bool && v.boolean }

// Float returns the numeric payload; 0 for other kinds.
func (v *Value) Float() float64 {
	if v == nil || v.kind != Number {
		return 0
	}
	return v.num
}

// Raw returns the number literal exactly as it appeared in the source.
func (v *Value) Raw() string {
	if v == nil || v.kind != Number {
		return ""
	}
	return v.raw
}

// Str returns the string payload; empty for other kinds.
func (v *Value) Str() string {
	if v == nil || v.kind != String {
		return ""
	}
	return v.str
}

// Items returns array elements in order.
func (v *Value) Items() []*Value {
	if v == nil || v.kind != Array {
		return nil
	}
	return v.items
}

// Members returns every object member in source order, repeated keys included.
func (v *Value) Members() []Member {
	if v == nil || v.kind != Object {
		return nil
	}
	return v.members
}

// Len returns the number of array items or object members.
func (v *Value) Len() int {
	switch v.Kind() {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	}
	return 0
}

// Get returns the value of key in an object, the last occurrence if repeated.
func (v *Value) Get(key string) (*Value, bool) {
	members := v.Members()
	for i := len(members) - 1; i >= 0; i-- {
		if members[i].Key == key {
			return members[i].Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present in an object.
func (v *Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Keys returns distinct object keys in order of first appearance.
func (v *Value) Keys() []string {
	members := v.Members()
	seen := make(map[string]struct{}, len(members))
	keys := make([]string, 0, len(members))
	for _, m := range members {
		if _, ok := seen[m.Key]; ok {
			continue
		}
		seen[m.Key] = struct{}{}
		keys = append(keys, m.Key)
	}
	return keys
}

// DuplicateKeys returns the keys that occur more than once at this object's
// level, in order of their second appearance. Nested objects are not visited.
func (v *Value) DuplicateKeys() []string {
	seen := make(map[string]int)
	var dups []string
	for _, m := range v.Members() {
		seen[m.Key]++
		if seen[m.Key] == 2 {
			dups = append(dups, m.Key)
		}
	}
	return dups
}

// Interface converts the value into plain Go values: nil, bool, float64,
// string, []any and map[string]any. Key order is lost.
func (v *Value) Interface() any {
	switch v.Kind() {
	case Bool:
		return v.boolean
	case Number:
		return v.num
	case String:
		return v.str
	case Array:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	}
	return nil
}

// MarshalJSON writes the value preserving member order.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces v with the parsed form of data.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

func (v *Value) write(buf *bytes.Buffer) error {
	switch v.Kind() {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case Number:
		buf.WriteString(v.raw)
	case String:
		return writeString(buf, v.str)
	case Array:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, key := range v.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			val, _ := v.Get(key)
			if err := val.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
