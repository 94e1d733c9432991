// Package strutil provides parsing and string helpers shared by the
// validation and list-query layers. Parsers are tolerant: they accept
// loosely-typed input (string, []byte, already-typed values) and report
// success with an ok flag instead of an error
package strutil

import (
	"crypto/rand"
	"html"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	phoneRE  = regexp.MustCompile(`^\+?[0-9 ]+$`)
	phone9RE = regexp.MustCompile(`^\+?[0-9 ]{9}$`)
	tagRE    = regexp.MustCompile(`(<!--.*?-->|<[^>]*>)`)
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// asString widens string-ish input; ok is false for anything else
func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}

// ParseBool coerces 1/"1"/"true"/"True"/true style values
// Anything else reports false
func ParseBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case int:
		return b == 1, true
	case int64:
		return b == 1, true
	case string:
		return b == "1" || b == "true" || b == "True", true
	default:
		return false, false
	}
}

// ParseInt coerces numeric input to int
func ParseInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	}
	s, ok := asString(v)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseFloat coerces numeric input to float64
func ParseFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	s, ok := asString(v)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseUUID coerces a uuid.UUID or its string form
func ParseUUID(v any) (uuid.UUID, bool) {
	if u, ok := v.(uuid.UUID); ok {
		return u, true
	}
	s, ok := asString(v)
	if !ok {
		return uuid.Nil, false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return u, true
}

// ParseObjectID coerces a primitive.ObjectID or its hex form
func ParseObjectID(v any) (primitive.ObjectID, bool) {
	if id, ok := v.(primitive.ObjectID); ok {
		return id, true
	}
	s, ok := asString(v)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// dateLayouts in decreasing specificity; tried in order
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-8601-ish timestamp; time.Time passes through
func ParseDate(v any) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t, true
	}
	s, ok := asString(v)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDateToUnix parses a date and converts it to epoch seconds
func ParseDateToUnix(v any) (int64, bool) {
	t, ok := ParseDate(v)
	if !ok {
		return 0, false
	}
	return t.Unix(), true
}

// ParsePhone validates a phone number; strict9 enforces exactly nine
// digit characters (the stricter local format), otherwise any run of
// digits and spaces with an optional leading plus is accepted
func ParsePhone(v any, strict9 bool) (string, bool) {
	s, ok := asString(v)
	if !ok {
		return "", false
	}
	re := phoneRE
	if strict9 {
		re = phone9RE
	}
	if !re.MatchString(s) {
		return "", false
	}
	return s, true
}

// RemoveTags strips markup tags and comments, escaping the remaining text
func RemoveTags(s string) string {
	if s == "" {
		return ""
	}
	return html.EscapeString(tagRE.ReplaceAllString(s, ""))
}

var foldSpecials = strings.NewReplacer("ł", "l", "Ł", "L")

// Fold removes diacritics, mapping to plain ASCII where possible
// Characters that decompose to base letter + combining mark lose the mark;
// a handful of letters with no decomposition are mapped explicitly
func Fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, foldSpecials.Replace(s))
	if err != nil {
		return s
	}
	return out
}

// RandomToken returns n characters drawn from [a-zA-Z0-9]
func RandomToken(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken
			panic(err)
		}
		sb.WriteByte(tokenAlphabet[idx.Int64()])
	}
	return sb.String()
}

// Token returns an unguessable opaque token (session/reset style)
func Token() string {
	return RandomToken(3) + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// FilterFields copies only the listed keys out of data
func FilterFields(data map[string]any, fields ...string) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := data[f]; ok {
			out[f] = v
		}
	}
	return out
}

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Ptr returns a pointer to s, or nil if s is empty
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
