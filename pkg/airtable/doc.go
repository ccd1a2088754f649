// Package airtable is a read-only client for the tabular record store that
// holds form submissions and dishes.
//
// Every call is one GET against /{baseID}/{table} carrying the server-side
// access token as a bearer credential, a filterByFormula expression and
// either maxRecords=1 (FetchOne) or pageSize=N (FetchMany). Only the first
// page is read; continuation cursors are ignored.
//
// Any non-success status, transport failure or undecodable body is returned
// as an ErrCodeUpstream structured error whose message carries the upstream
// error text:
//
//	c, err := airtable.New(cfg.APIURL, cfg.BaseID, cfg.AirtableToken,
//	    airtable.WithPageSize(cfg.PageSize))
//	rec, err := c.FetchOne(ctx, "Tally", formula.Eq("submission_id", id))
//
// Calls are counted in plats_upstream_requests_total and timed in
// plats_upstream_request_duration_seconds.
package airtable
