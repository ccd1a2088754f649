// Package dishes turns a form submission into a handful of dish suggestions.
//
// A request flows through four steps: the submission is looked up in the
// Tally table, its culture field is resolved into one or more category
// labels, matching dishes are read with an escaped filter formula, and up to
// three of them are sampled at random and projected into the response shape.
//
// Two entry points share the pipeline:
//
//	GET  /api/get_plats?submission_id=ID      Service.HandleGetPlats
//	POST /recommendations/create              Service.HandleCreateRecommendations
//
// get_plats matches the Plats table case-sensitively and returns whatever it
// can (one to three dishes). recommendations/create matches the Dishes table
// case-insensitively and requires three candidates.
package dishes
