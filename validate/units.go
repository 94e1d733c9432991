package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"dockit/platform/strutil"
)

// Unit is one validator in a field's chain. A unit inspects or transforms
// a value and reports the outcome. Absence tolerance is the contract:
// every unit passes a nil value through untouched, except Required,
// so a field can be optional-but-well-formed
type Unit func(value any) Outcome

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// Required fails on nil or the empty string
func Required() Unit {
	return func(v any) Outcome {
		if v == nil || v == "" {
			return Fail(CodeRequired, "Missing required value")
		}
		return Pass(v)
	}
}

// StringOpts bounds and transforms for the String unit; zero values skip the check
type StringOpts struct {
	MinLen     int
	MaxLen     int
	EndsWith   string
	StartsWith string
	StripTags  bool
}

// String validates a string value.
// Check order: type, min length, max length, suffix, prefix; the
// tag-stripping transform runs last so length bounds see the raw input
func String(opts StringOpts) Unit {
	return func(v any) Outcome {
		if v == nil {
			return Pass(nil)
		}
		s, isStr := v.(string)
		if !isStr {
			return Fail(CodeStrNotString, "Value not a string")
		}
		if opts.MinLen > 0 && len(s) < opts.MinLen {
			return Failf(CodeStrTooShort, "Value is too short. Min length %d", opts.MinLen)
		}
		if opts.MaxLen > 0 && len(s) > opts.MaxLen {
			return Failf(CodeStrTooLong, "Value is too long. Max length %d", opts.MaxLen)
		}
		if opts.EndsWith != "" && !strings.HasSuffix(s, opts.EndsWith) {
			return Failf(CodeStrNotEndsWith, "Incorrect value. Value not ends with %s", opts.EndsWith)
		}
		if opts.StartsWith != "" && !strings.HasPrefix(s, opts.StartsWith) {
			return Failf(CodeStrNotStartsWith, "Incorrect value. Value not starts with %s", opts.StartsWith)
		}
		if opts.StripTags {
			s = strutil.RemoveTags(s)
		}
		return Pass(s)
	}
}

// Email validates an address; a non-empty domain constrains the suffix
func Email(domain string) Unit {
	return func(v any) Outcome {
		if v == nil {
			return Pass(nil)
		}
		s, isStr := v.(string)
		if !isStr || !emailRE.MatchString(s) {
			return Fail(CodeEmailNotValid, "Not valid email address")
		}
		if domain != "" && !strings.HasSuffix(s, domain) {
			return Fail(CodeEmailDomain, "Not valid domain")
		}
		return Pass(s)
	}
}

// Phone validates a phone number; country "POL" selects the strict
// nine-digit pattern, anything else the permissive one
func Phone(country string) Unit {
	strict := country == "POL"
	return func(v any) Outcome {
		if v == nil {
			return Pass(nil)
		}
		s, ok := strutil.ParsePhone(v, strict)
		if !ok {
			return Fail(CodePhoneFormat, "Invalid phone format")
		}
		return Pass(s)
	}
}

// DateOpts configures the Date unit. The zone offset is dropped unless
// KeepOffset is set; Before/After are exclusive bounds
type DateOpts struct {
	KeepOffset bool
	Before     *time.Time
	After      *time.Time
}

// Date parses an ISO-8601 timestamp with optional bounds.
// A bound violation is a distinct error kind from a parse failure
func Date(opts DateOpts) Unit {
	return func(v any) Outcome {
		if v == nil {
			return Pass(nil)
		}
		t, ok := strutil.ParseDate(v)
		if !ok {
			return Fail(CodeDateFormat, "Not valid date format")
		}
		if !opts.KeepOffset {
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		}
		if opts.Before != nil && opts.Before.Before(t) {
			return Failf(CodeDateBounds, "Date has to be before %s", opts.Before.Format(time.RFC3339))
		}
		if opts.After != nil && opts.After.After(t) {
			return Failf(CodeDateBounds, "Date has to be after %s", opts.After.Format(time.RFC3339))
		}
		return Pass(t)
	}
}

// NumberOpts configures the Number unit; nil bounds skip the check
// (zero is a meaningful bound, hence pointers)
type NumberOpts struct {
	Min     *float64
	Max     *float64
	Integer bool
}

// Bound is pointer sugar for NumberOpts bounds
func Bound(v float64) *float64 { return &v }

// Number parses a numeric value with optional bounds.
// A parse failure and a bound violation are distinct error kinds
func Number(opts NumberOpts) Unit {
	return func(v any) Outcome {
		if v == nil {
			return Pass(nil)
		}
		var out any
		var f float64
		if opts.Integer {
			n, ok := strutil.ParseInt(v)
			if !ok {
				return Fail(CodeNumberFormat, "Invalid number format")
			}
			out, f = n, float64(n)
		} else {
			x, ok := strutil.ParseFloat(v)
			if !ok {
				return Fail(CodeNumberFormat, "Invalid number format")
			}
			out, f = x, x
		}
		if opts.Min != nil && f < *opts.Min {
			return Failf(CodeNumberTooSmall, "Cannot be smaller than %v", *opts.Min)
		}
		if opts.Max != nil && f > *opts.Max {
			return Failf(CodeNumberTooBig, "Cannot be bigger than %v", *opts.Max)
		}
		return Pass(out)
	}
}

// Coerce is an injected parser for Fn and the list units
type Coerce func(v any) (any, bool)

// Fn delegates to a coercion function; a rejected coercion is an error
func Fn(coerce Coerce) Unit {
	return func(v any) Outcome {
		if v == nil {
			return Pass(nil)
		}
		out, ok := coerce(v)
		if !ok {
			return Fail(CodeInvalidValue, "Incorrect value")
		}
		return Pass(out)
	}
}

// UUID coerces a UUID identifier
func UUID() Unit {
	return Fn(func(v any) (any, bool) {
		u, ok := strutil.ParseUUID(v)
		return u, ok
	})
}

// ObjectID coerces an opaque storage object id
func ObjectID() Unit {
	return Fn(func(v any) (any, bool) {
		id, ok := strutil.ParseObjectID(v)
		return id, ok
	})
}

// Boolean coerces a bool-like value
func Boolean() Unit {
	return Fn(func(v any) (any, bool) {
		b, ok := strutil.ParseBool(v)
		return b, ok
	})
}

// ListOpts bounds the element count; zero values skip the check
type ListOpts struct {
	MinLen int
	MaxLen int
}

// listOf applies parse to every element of a sequence value.
// The first unparseable element fails with its position; exceeding
// MaxLen is a failure
func listOf(parse Coerce, opts ListOpts) Unit {
	return func(v any) Outcome {
		if v == nil {
			return Pass(nil)
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return Fail(CodeExpectedList, "Expected list")
		}
		n := rv.Len()
		if opts.MinLen > 0 && n < opts.MinLen {
			return Failf(CodeListTooShort, "List too short. Required at least %d elements", opts.MinLen)
		}
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			e, ok := parse(rv.Index(i).Interface())
			if !ok {
				return Failf(CodeListValueError, "Invalid value at position %d", i)
			}
			out = append(out, e)
		}
		if opts.MaxLen > 0 && len(out) > opts.MaxLen {
			return Failf(CodeListTooLong, "List too long. Expected maximum %d elements", opts.MaxLen)
		}
		return Pass(out)
	}
}

// ListOfUUIDs validates a list of UUID identifiers
func ListOfUUIDs(opts ListOpts) Unit {
	return listOf(func(v any) (any, bool) {
		u, ok := strutil.ParseUUID(v)
		return u, ok
	}, opts)
}

// ListOfObjectIDs validates a list of opaque storage object ids
func ListOfObjectIDs(opts ListOpts) Unit {
	return listOf(func(v any) (any, bool) {
		id, ok := strutil.ParseObjectID(v)
		return id, ok
	}, opts)
}

// ListOfNumbers validates a list of numeric values
func ListOfNumbers(integer bool, opts ListOpts) Unit {
	if integer {
		return listOf(func(v any) (any, bool) {
			n, ok := strutil.ParseInt(v)
			return n, ok
		}, opts)
	}
	return listOf(func(v any) (any, bool) {
		f, ok := strutil.ParseFloat(v)
		return f, ok
	}, opts)
}

// ListOfDates validates a list of ISO-8601 timestamps
func ListOfDates(opts ListOpts) Unit {
	return listOf(func(v any) (any, bool) {
		t, ok := strutil.ParseDate(v)
		return t, ok
	}, opts)
}

// ListOfStrings validates a list whose members must come from allowed
func ListOfStrings(allowed []string, opts ListOpts) Unit {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return listOf(func(v any) (any, bool) {
		s, isStr := v.(string)
		if !isStr {
			return nil, false
		}
		_, ok := set[s]
		return s, ok
	}, opts)
}

// ValuesIn fails unless the value is a member of allowed.
// An empty allowed set accepts anything (and yields nil)
func ValuesIn(allowed ...any) Unit {
	return func(v any) Outcome {
		if v == nil || len(allowed) == 0 {
			return Pass(nil)
		}
		for _, a := range allowed {
			if reflect.DeepEqual(a, v) {
				return Pass(v)
			}
		}
		parts := make([]string, len(allowed))
		for i, a := range allowed {
			parts[i] = fmt.Sprint(a)
		}
		return Failf(CodeValueIn, "Incorrect value. Expected %s", strings.Join(parts, ", "))
	}
}

// AddressOpts marks which sub-fields must be present
type AddressOpts struct {
	ReqCity     bool
	ReqCountry  bool
	ReqStreet   bool
	ReqDistrict bool
}

// Address validates a field-keyed address value. Sub-field errors are
// aggregated into one structured error instead of a single scalar;
// the country code, when present, must be an ISO-3166 alpha-3 member
func Address(opts AddressOpts) Unit {
	return func(v any) Outcome {
		if v == nil {
			return Pass(nil)
		}
		m, isMap := v.(map[string]any)
		if !isMap {
			return Fail(CodeAddrFormat, "Invalid format")
		}
		errs := FieldErrors{}
		if opts.ReqCity && m["city"] == nil {
			errs["city"] = Entry{Code: CodeAddrMissingCity, Message: "Missing required value"}
		}
		if opts.ReqCountry && m["country"] == nil {
			errs["country"] = Entry{Code: CodeAddrMissingCountry, Message: "Missing required value"}
		}
		if c, ok := m["country"].(string); ok && c != "" {
			if _, known := countriesByAlpha3[c]; !known {
				errs["country"] = Entry{Code: CodeAddrCountry, Message: "Incorrect value"}
			}
		}
		if opts.ReqStreet && m["street"] == nil {
			errs["street"] = Entry{Code: CodeAddrMissingStreet, Message: "Missing required value"}
		}
		if opts.ReqDistrict && m["district"] == nil {
			errs["district"] = Entry{Code: CodeAddrMissingDistrict, Message: "Missing required value"}
		}
		if len(errs) > 0 {
			return failFields(errs)
		}
		return Pass(v)
	}
}
