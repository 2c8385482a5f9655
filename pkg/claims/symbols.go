package claims

import "github.com/dmitrymomot/jwtinspect/pkg/jsonvalue"

// Symbol is one top-level claim of the header or payload.
type Symbol struct {
	Name  string           `json:"name"`
	Type  string           `json:"type"`
	Value *jsonvalue.Value `json:"value"`
	Scope string           `json:"scope"`
}

// Symbols lists header claims, then payload claims, as "header.alg",
// "payload.sub" and so on. A repeated key appears once with its effective
// value.
func Symbols(header, payload *jsonvalue.Value) []Symbol {
	out := []Symbol{}
	for _, scope := range []struct {
		name string
		obj  *jsonvalue.Value
	}{{"header", header}, {"payload", payload}} {
		for _, key := range scope.obj.Keys() {
			val, _ := scope.obj.Get(key)
			out = append(out, Symbol{
				Name:  scope.name + "." + key,
				Type:  val.Kind().String(),
				Value: val,
				Scope: scope.name,
			})
		}
	}
	return out
}
