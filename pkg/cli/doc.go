// Package cli implements the plats operator command line.
//
// Commands:
//
//	plats serve                                   run the HTTP API
//	plats dishes --submission-id ID               dishes for a submission
//	plats recommend --submission-id ID --culture C
//	plats formula --culture C [--linked] [--ignore-case]
//
// dishes and recommend read the same environment as the API server
// (AIRTABLE_TOKEN, AIRTABLE_BASE_ID, ...) and print the API payload in
// JSON or YAML, to stdout or to --output.
package cli
