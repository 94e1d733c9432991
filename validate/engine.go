package validate

import "fmt"

// Source yields raw field values for validation. The second return
// reports whether the field was present at all, so callers can
// distinguish an absent field from one explicitly set to nil.
type Source interface {
	Get(field string) (any, bool)
}

// MapSource adapts a plain map to Source
type MapSource map[string]any

func (m MapSource) Get(field string) (any, bool) {
	v, ok := m[field]
	return v, ok
}

// Object is a Source that can also absorb the validated values.
// Validate patches it only when the whole schema passed.
type Object interface {
	Source
	Update(values map[string]any)
}

// Field binds one field name to its unit chain
type Field struct {
	Name     string
	Required bool
	Chain    []Unit
}

// F declares an optional field with its unit chain
func F(name string, units ...Unit) Field {
	return Field{Name: name, Chain: units}
}

// Req declares a required field with its unit chain
func Req(name string, units ...Unit) Field {
	return Field{Name: name, Required: true, Chain: units}
}

// Schema is an ordered set of field declarations. Order is the
// order fields are validated and reported in.
type Schema []Field

// Result carries the accepted values and the per-field errors of one
// Validate run. Failed fields keep their raw input in Values so the
// caller can echo back what was rejected.
type Result struct {
	values map[string]any
	errors map[string]any
}

// HasErrors reports whether any field failed
func (r Result) HasErrors() bool { return len(r.errors) > 0 }

// Values returns the accepted, coerced values keyed by field name.
// Failed fields carry their raw input value instead.
func (r Result) Values() map[string]any { return r.values }

// Errors returns per-field failures: an Entry for single-unit
// failures, a FieldErrors for compound units such as the address
func (r Result) Errors() map[string]any { return r.errors }

// Validate runs every schema field's unit chain against src. Chains
// run left to right and stop at the first failing unit. A required
// field that is absent or nil fails with CodeRequired without running
// its chain. When src is an Object and no field failed, the accepted
// values are written back through Update.
func Validate(src Source, schema Schema) Result {
	res := Result{
		values: make(map[string]any, len(schema)),
		errors: make(map[string]any),
	}

	for _, f := range schema {
		raw, present := src.Get(f.Name)

		if raw == nil {
			if f.Required {
				res.values[f.Name] = raw
				res.errors[f.Name] = Entry{Code: CodeRequired, Message: "value is required"}
			}
			if !present {
				continue
			}
			if !f.Required {
				res.values[f.Name] = nil
			}
			continue
		}

		value := raw
		var failed bool
		for i, unit := range f.Chain {
			if unit == nil {
				panic(fmt.Sprintf("validate: nil unit at position %d of field %q", i, f.Name))
			}
			out := unit(value)
			if !out.OK() {
				res.values[f.Name] = raw
				res.errors[f.Name] = out.Err()
				failed = true
				break
			}
			value = out.Value()
		}
		if !failed {
			res.values[f.Name] = value
		}
	}

	if obj, ok := src.(Object); ok && !res.HasErrors() {
		obj.Update(res.values)
	}
	return res
}
