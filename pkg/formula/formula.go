package formula

import (
	"strings"
)

// False is a predicate that matches no record. It is emitted when a filter has
// no values left, so an empty selection never turns into an unfiltered page.
const False = "FALSE()"

const (
	quote     = "'"
	joinSep   = ","
	recordID  = "RECORD_ID()"
	fnOr      = "OR"
	fnLower   = "LOWER"
	fnFind    = "FIND"
	fnArrJoin = "ARRAYJOIN"
)

var escaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Escape makes s safe to embed between single quotes: backslashes and single
// quotes are prefixed with a backslash.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Quote returns s as a single-quoted string literal.
func Quote(s string) string {
	return quote + Escape(s) + quote
}

// Field returns the reference to a named field.
func Field(name string) string {
	return "{" + name + "}"
}

// Eq returns a case-sensitive equality comparison of field against value.
func Eq(field, value string) string {
	return Field(field) + "=" + Quote(value)
}

// EqFold returns a case-insensitive equality comparison of field against value.
func EqFold(field, value string) string {
	return call(fnLower, Field(field)) + "=" + call(fnLower, Quote(value))
}

// Contains returns a predicate that is true when the list field (a linked
// record or lookup field) holds an element exactly equal to value. Elements are
// joined with commas and bracketed so a value never matches a fragment of a
// longer element.
func Contains(field, value string, fold bool) string {
	needle := Quote(joinSep + value + joinSep)
	haystack := Quote(joinSep) + "&" + call(fnArrJoin, Field(field), Quote(joinSep)) + "&" + Quote(joinSep)
	if fold {
		needle = call(fnLower, needle)
		haystack = call(fnLower, haystack)
	}
	return call(fnFind, needle, haystack) + ">0"
}

// Or joins predicates. No predicates yields False; one is returned unchanged.
func Or(terms ...string) string {
	switch len(terms) {
	case 0:
		return False
	case 1:
		return terms[0]
	default:
		return call(fnOr, terms...)
	}
}

// RecordIDIn matches records whose identifier is one of ids.
func RecordIDIn(ids []string) string {
	terms := make([]string, 0, len(ids))
	for _, id := range ids {
		terms = append(terms, recordID+"="+Quote(id))
	}
	return Or(terms...)
}

// Match describes how category values are compared against a field.
type Match struct {
	// Field is the field holding the category on the queried table.
	Field string
	// Linked selects list-containment instead of equality, for linked record
	// and lookup fields.
	Linked bool
	// CaseInsensitive compares lower-cased values.
	CaseInsensitive bool
}

// Build returns the filter selecting records whose field matches any of values.
// Values are used verbatim; callers trim and de-duplicate beforehand.
func (m Match) Build(values []string) string {
	terms := make([]string, 0, len(values))
	for _, v := range values {
		switch {
		case m.Linked:
			terms = append(terms, Contains(m.Field, v, m.CaseInsensitive))
		case m.CaseInsensitive:
			terms = append(terms, EqFold(m.Field, v))
		default:
			terms = append(terms, Eq(m.Field, v))
		}
	}
	return Or(terms...)
}

func call(fn string, args ...string) string {
	return fn + "(" + strings.Join(args, joinSep) + ")"
}
