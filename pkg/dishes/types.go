package dishes

import (
	"strings"

	"k8s.io/utils/ptr"

	"github.com/globetraiteurs/plats/pkg/airtable"
)

// Field names read from the store.
const (
	fieldSubmissionID = "submission_id"
	fieldCulture      = "culture"
	fieldCultureName  = "culture_name"
	fieldName         = "name"

	fieldNom         = "nom"
	fieldDescription = "description"
	fieldType        = "type"
	fieldPrix        = "prix"
	fieldAllergenes  = "allergenes"
	fieldTags        = "tags"
	fieldImageURL    = "image_url"
)

// Submission is a form response read from the Tally table.
type Submission struct {
	RecordID     string
	SubmissionID string
	Category     Category
	Fields       map[string]any
}

// Plat is one dish as returned by get_plats. Absent fields are null.
type Plat struct {
	Nom         *string  `json:"nom" yaml:"nom"`
	Description *string  `json:"description" yaml:"description"`
	Type        *string  `json:"type" yaml:"type"`
	Prix        any      `json:"prix" yaml:"prix"`
	Allergenes  []string `json:"allergenes" yaml:"allergenes"`
	Tags        []string `json:"tags" yaml:"tags"`
	ImageURL    *string  `json:"image_url" yaml:"image_url"`
	Culture     *string  `json:"culture" yaml:"culture"`
}

// PlatsEnvelope wraps the get_plats list with request metadata.
type PlatsEnvelope struct {
	SubmissionID string   `json:"submission_id" yaml:"submission_id"`
	Cultures     []string `json:"cultures" yaml:"cultures"`
	Count        int      `json:"count" yaml:"count"`
	Plats        []Plat   `json:"plats" yaml:"plats"`
}

// Dish is one dish as returned by recommendations/create.
type Dish struct {
	ID          string  `json:"id" yaml:"id"`
	Name        *string `json:"name" yaml:"name"`
	Culture     *string `json:"culture" yaml:"culture"`
	ImageURL    *string `json:"image_url" yaml:"image_url"`
	Description *string `json:"description" yaml:"description"`
}

// RecommendRequest is the body of POST /recommendations/create.
type RecommendRequest struct {
	SubmissionID string  `json:"submission_id" yaml:"submission_id"`
	Culture      string  `json:"culture" yaml:"culture"`
	Source       *string `json:"source,omitempty" yaml:"source,omitempty"`
	SubmittedAt  *string `json:"submitted_at,omitempty" yaml:"submitted_at,omitempty"`
}

// Recommendation is the response of POST /recommendations/create.
type Recommendation struct {
	OK           bool     `json:"ok" yaml:"ok"`
	SubmissionID string   `json:"submission_id" yaml:"submission_id"`
	Culture      string   `json:"culture" yaml:"culture"`
	Count        int      `json:"count" yaml:"count"`
	Dishes       []Dish   `json:"dishes" yaml:"dishes"`
	DishIDs      []string `json:"dish_ids" yaml:"dish_ids"`
}

// optString returns a field as text, or nil when absent or empty.
func optString(rec airtable.Record, name string) *string {
	if s, ok := rec.String(name); ok {
		return ptr.To(s)
	}
	return nil
}

// firstString returns the first element of a list field, or the scalar value.
// Attachment fields yield their first URL.
func firstString(rec airtable.Record, name string) *string {
	if values := rec.Strings(name); len(values) > 0 {
		return ptr.To(values[0])
	}
	return nil
}

// rawValue returns a field untouched so numbers stay numbers.
func rawValue(rec airtable.Record, name string) any {
	v, _ := rec.Value(name)
	return v
}

func toPlat(rec airtable.Record, culture *string) Plat {
	return Plat{
		Nom:         optString(rec, fieldNom),
		Description: optString(rec, fieldDescription),
		Type:        optString(rec, fieldType),
		Prix:        rawValue(rec, fieldPrix),
		Allergenes:  rec.Strings(fieldAllergenes),
		Tags:        rec.Strings(fieldTags),
		ImageURL:    firstString(rec, fieldImageURL),
		Culture:     culture,
	}
}

func toDish(rec airtable.Record) Dish {
	return Dish{
		ID:          rec.ID,
		Name:        optString(rec, fieldName),
		Culture:     optString(rec, fieldCulture),
		ImageURL:    firstString(rec, fieldImageURL),
		Description: optString(rec, fieldDescription),
	}
}

// platCulture picks the resolved label a dish matched on. A dish matching
// none of them (or several labels with no match) falls back to the joined
// label list.
func platCulture(rec airtable.Record, labels []string) *string {
	switch len(labels) {
	case 0:
		return nil
	case 1:
		return ptr.To(labels[0])
	}
	for _, v := range rec.Strings(fieldCulture) {
		for _, label := range labels {
			if v == label {
				return ptr.To(label)
			}
		}
	}
	return ptr.To(strings.Join(labels, ", "))
}
