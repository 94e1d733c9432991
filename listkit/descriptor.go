package listkit

// FieldType selects the coercion applied to an incoming filter value.
// The zero value passes the value through untouched.
type FieldType int

const (
	// TypeString passes the value through as-is
	TypeString FieldType = iota
	// TypeBool coerces bool-like input
	TypeBool
	// TypeInt coerces integer input
	TypeInt
	// TypeFloat coerces float input
	TypeFloat
	// TypeDate coerces ISO-8601 input to epoch seconds
	TypeDate
	// TypeUUID coerces uuid input to its canonical string form
	TypeUUID
)

// Mapping says where a logical filter field lands in storage. It is a
// closed union: Direct or Search.
type Mapping interface {
	mapping()
}

// Direct binds a logical field to one physical field
type Direct struct {
	Field string
	// Convert post-processes the coerced value before it enters the filter
	Convert func(v any) any
}

func (Direct) mapping() {}

// Search matches the value against any of several physical fields
type Search struct {
	Fields  []string
	Convert func(v any) any
}

func (Search) mapping() {}

// FieldFilter declares one filterable field of a listable resource.
// Nothing undeclared is ever honored.
type FieldFilter struct {
	Mapping Mapping
	Type    FieldType
	// Default applies when the caller supplied no value; nil means none
	Default any
	// FromQuery opts the field into untrusted query-string input
	FromQuery bool
}

// Sort is one sort term: a physical field and a direction (1 or -1)
type Sort struct {
	Field     string
	Direction int
}

// Descriptor is the static listing contract of one resource: which
// fields filter, which sort, and how ties default. Descriptors are
// built once and never mutated.
type Descriptor struct {
	Filters     map[string]FieldFilter
	Sortable    map[string]string
	DefaultSort Sort
}
