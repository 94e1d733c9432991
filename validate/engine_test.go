package validate

import (
	"reflect"
	"testing"
)

// patchable is a Source that records the Update call
type patchable struct {
	fields  map[string]any
	patched map[string]any
}

func (p *patchable) Get(field string) (any, bool) {
	v, ok := p.fields[field]
	return v, ok
}

func (p *patchable) Update(values map[string]any) { p.patched = values }

func TestValidateAcceptsAndCoerces(t *testing.T) {
	t.Parallel()

	schema := Schema{
		Req("name", Required(), String(StringOpts{MinLen: 2})),
		F("age", Number(NumberOpts{Integer: true, Min: Bound(0)})),
	}
	res := Validate(MapSource{"name": "Jan", "age": "42"}, schema)

	if res.HasErrors() {
		t.Fatalf("unexpected errors: %#v", res.Errors())
	}
	want := map[string]any{"name": "Jan", "age": 42}
	if !reflect.DeepEqual(res.Values(), want) {
		t.Fatalf("values=%#v want %#v", res.Values(), want)
	}
}

func TestValidateRequiredPrecedence(t *testing.T) {
	t.Parallel()

	// the chain must not run for a missing required field
	var chainRan bool
	probe := func(v any) Outcome {
		chainRan = true
		return Pass(v)
	}

	res := Validate(MapSource{}, Schema{Req("name", probe)})
	if chainRan {
		t.Fatal("chain ran for missing required field")
	}
	e, ok := res.Errors()["name"].(Entry)
	if !ok || e.Code != CodeRequired {
		t.Fatalf("name error=%#v want CodeRequired entry", res.Errors()["name"])
	}
}

func TestValidateOptionalAbsent(t *testing.T) {
	t.Parallel()

	res := Validate(MapSource{}, Schema{F("nick", String(StringOpts{}))})
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %#v", res.Errors())
	}
	// absent optional fields stay out of the output entirely
	if _, ok := res.Values()["nick"]; ok {
		t.Fatalf("absent field leaked into values: %#v", res.Values())
	}

	// explicit nil is kept so callers can clear a field
	res = Validate(MapSource{"nick": nil}, Schema{F("nick", String(StringOpts{}))})
	if v, ok := res.Values()["nick"]; !ok || v != nil {
		t.Fatalf("explicit nil not preserved: %#v", res.Values())
	}
}

func TestValidateShortCircuit(t *testing.T) {
	t.Parallel()

	// only the first failing unit reports; later units never run
	var secondRan bool
	second := func(v any) Outcome {
		secondRan = true
		return Fail(CodeFail, "should not be reached")
	}

	res := Validate(
		MapSource{"name": "x"},
		Schema{F("name", String(StringOpts{MinLen: 3}), second)},
	)
	if secondRan {
		t.Fatal("unit after failure ran")
	}
	e, ok := res.Errors()["name"].(Entry)
	if !ok || e.Code != CodeStrTooShort {
		t.Fatalf("name error=%#v want CodeStrTooShort entry", res.Errors()["name"])
	}
	// the raw input is echoed back for the failed field
	if res.Values()["name"] != "x" {
		t.Fatalf("raw value not echoed: %#v", res.Values())
	}
}

func TestValidateChainPipesValues(t *testing.T) {
	t.Parallel()

	// each unit sees the previous unit's output, not the raw input
	res := Validate(
		MapSource{"limit": " 7 "},
		Schema{F("limit",
			Number(NumberOpts{Integer: true}),
			Number(NumberOpts{Integer: true, Max: Bound(10)}),
		)},
	)
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %#v", res.Errors())
	}
	if res.Values()["limit"] != 7 {
		t.Fatalf("limit=%#v want 7", res.Values()["limit"])
	}
}

func TestValidateAggregatesAcrossFields(t *testing.T) {
	t.Parallel()

	schema := Schema{
		Req("name", Required()),
		F("email", Email("")),
		F("age", Number(NumberOpts{Integer: true})),
	}
	res := Validate(MapSource{"email": "nope", "age": "9"}, schema)

	if len(res.Errors()) != 2 {
		t.Fatalf("errors=%#v want name and email", res.Errors())
	}
	if res.Values()["age"] != 9 {
		t.Fatalf("valid field lost next to failures: %#v", res.Values())
	}
}

func TestValidatePatchesObjectOnlyOnSuccess(t *testing.T) {
	t.Parallel()

	schema := Schema{Req("name", Required(), String(StringOpts{MinLen: 2}))}

	obj := &patchable{fields: map[string]any{"name": "Jan"}}
	if res := Validate(obj, schema); res.HasErrors() {
		t.Fatalf("unexpected errors: %#v", res.Errors())
	}
	if obj.patched == nil || obj.patched["name"] != "Jan" {
		t.Fatalf("object not patched: %#v", obj.patched)
	}

	// a single failing field must leave the object untouched
	bad := &patchable{fields: map[string]any{"name": "J"}}
	if res := Validate(bad, schema); !res.HasErrors() {
		t.Fatal("short name accepted")
	}
	if bad.patched != nil {
		t.Fatalf("object patched despite errors: %#v", bad.patched)
	}
}

func TestValidateNilUnitPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("nil unit did not panic")
		}
	}()
	Validate(MapSource{"x": 1}, Schema{F("x", nil)})
}

func TestValidateRepeatable(t *testing.T) {
	t.Parallel()

	// feeding accepted values back through the schema changes nothing
	schema := Schema{
		Req("name", Required(), String(StringOpts{MinLen: 2, StripTags: true})),
		F("age", Number(NumberOpts{Integer: true})),
	}
	first := Validate(MapSource{"name": "<i>Jan</i>", "age": "42"}, schema)
	if first.HasErrors() {
		t.Fatalf("unexpected errors: %#v", first.Errors())
	}
	second := Validate(MapSource(first.Values()), schema)
	if second.HasErrors() {
		t.Fatalf("re-run errors: %#v", second.Errors())
	}
	if !reflect.DeepEqual(first.Values(), second.Values()) {
		t.Fatalf("not repeatable: %#v vs %#v", first.Values(), second.Values())
	}
}
