package dishes

import (
	"strings"

	"golang.org/x/text/cases"
)

const labelSeparator = ","

// Category is the culture value carried by a submission. It is either a
// PlainCategory or a LinkedCategory.
type Category interface {
	isCategory()
}

// PlainCategory holds labels stored as text: a single select, a
// comma-separated string or a lookup array of names.
type PlainCategory struct {
	Labels []string
}

// LinkedCategory holds record identifiers of a linked-record field. Names is
// filled from a companion lookup field when the submission carries one.
type LinkedCategory struct {
	IDs   []string
	Names []string
}

func (PlainCategory) isCategory()  {}
func (LinkedCategory) isCategory() {}

// parseCategory interprets a raw culture field value. It returns nil when the
// value is absent or empty.
func parseCategory(raw any) Category {
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return PlainCategory{Labels: splitLabels(v)}
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					items = append(items, s)
				}
			}
		}
		if len(items) == 0 {
			return nil
		}
		if allRecordIDs(items) {
			return LinkedCategory{IDs: items}
		}
		return PlainCategory{Labels: items}
	default:
		return nil
	}
}

// isRecordID reports whether s looks like a store record identifier.
func isRecordID(s string) bool {
	const prefix = "rec"
	if len(s) != 17 || !strings.HasPrefix(s, prefix) {
		return false
	}
	for _, r := range s[len(prefix):] {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9') {
			return false
		}
	}
	return true
}

func allRecordIDs(items []string) bool {
	for _, s := range items {
		if !isRecordID(s) {
			return false
		}
	}
	return true
}

// splitLabels splits a comma-separated value into trimmed, non-empty labels.
func splitLabels(s string) []string {
	parts := strings.Split(s, labelSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeLabels trims, splits on commas and drops duplicates, keeping the
// first spelling seen. With fold set, labels differing only by case are
// duplicates.
func NormalizeLabels(values []string, fold bool) []string {
	caser := cases.Fold()
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, label := range splitLabels(v) {
			key := label
			if fold {
				key = caser.String(label)
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, label)
		}
	}
	return out
}
