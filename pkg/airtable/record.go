package airtable

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one row of a table: its identifier and its raw field values.
// Field values are decoded JSON: string, float64, bool, []any or map[string]any.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

type listResponse struct {
	Records []Record `json:"records"`
	// Offset is the continuation cursor. It is decoded but never followed.
	Offset string `json:"offset,omitempty"`
}

// Value returns the raw value of a field and whether it is present.
func (r Record) Value(name string) (any, bool) {
	if r.Fields == nil {
		return nil, false
	}
	v, ok := r.Fields[name]
	return v, ok && v != nil
}

// String returns a field rendered as text. Numbers and booleans are
// formatted, lists are joined with ", ". Missing or empty fields report false.
func (r Record) String(name string) (string, bool) {
	v, ok := r.Value(name)
	if !ok {
		return "", false
	}
	s := stringify(v)
	return s, s != ""
}

// Strings returns a field as a list of non-empty strings. A scalar yields a
// single element.
func (r Record) Strings(name string) []string {
	v, ok := r.Value(name)
	if !ok {
		return nil
	}
	list, isList := v.([]any)
	if !isList {
		if s := stringify(v); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s := stringify(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		// attachments and collaborators carry a display field
		for _, k := range []string{"url", "name", "email"} {
			if s, ok := t[k].(string); ok {
				return s
			}
		}
		return ""
	default:
		return fmt.Sprint(t)
	}
}
