package dishes

import (
	"context"
	"fmt"
	"sync"

	"github.com/globetraiteurs/plats/pkg/airtable"
	apperrors "github.com/globetraiteurs/plats/pkg/errors"
)

const (
	tallyTable    = "Tally"
	platsTable    = "Plats"
	dishesTable   = "Dishes"
	culturesTable = "Cultures"
)

var testTables = Tables{Tally: tallyTable, Plats: platsTable, Dishes: dishesTable}

// fakeStore serves canned records per table and records the filters it saw.
type fakeStore struct {
	mu      sync.Mutex
	records map[string][]airtable.Record
	errs    map[string]error
	filters map[string]string
	ids     map[string][]string
	calls   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: map[string][]airtable.Record{},
		errs:    map[string]error{},
		filters: map[string]string{},
		ids:     map[string][]string{},
	}
}

func (f *fakeStore) with(table string, recs ...airtable.Record) *fakeStore {
	f.records[table] = append(f.records[table], recs...)
	return f
}

func (f *fakeStore) failing(table string, status int) *fakeStore {
	cause := fmt.Errorf("%d INVALID_PERMISSIONS", status)
	f.errs[table] = apperrors.WrapWithContext(apperrors.ErrCodeUpstream,
		fmt.Sprintf("Airtable error (%s): %v", table, cause), cause,
		map[string]any{"table": table, "status": status})
	return f
}

func (f *fakeStore) FetchOne(_ context.Context, table, filter string) (*airtable.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters[table] = filter
	f.calls = append(f.calls, table)
	if err := f.errs[table]; err != nil {
		return nil, err
	}
	recs := f.records[table]
	if len(recs) == 0 {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeNotFound, "no matching record",
			map[string]any{"table": table})
	}
	return &recs[0], nil
}

func (f *fakeStore) FetchMany(_ context.Context, table, filter string) ([]airtable.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters[table] = filter
	f.calls = append(f.calls, table)
	if err := f.errs[table]; err != nil {
		return nil, err
	}
	return f.records[table], nil
}

func (f *fakeStore) FetchByIDs(_ context.Context, table string, ids []string) ([]airtable.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids[table] = ids
	f.calls = append(f.calls, table)
	if err := f.errs[table]; err != nil {
		return nil, err
	}
	return f.records[table], nil
}

func record(id string, fields map[string]any) airtable.Record {
	return airtable.Record{ID: id, Fields: fields}
}

func submission(culture any, extra ...any) airtable.Record {
	fields := map[string]any{"submission_id": "sub-1", "culture": culture}
	for i := 0; i+1 < len(extra); i += 2 {
		fields[extra[i].(string)] = extra[i+1]
	}
	return record("recTally000000001", fields)
}

func plat(id, nom, culture string) airtable.Record {
	return record(id, map[string]any{
		"nom":         nom,
		"description": nom + " maison",
		"culture":     culture,
	})
}

func dish(id, name, culture string) airtable.Record {
	return record(id, map[string]any{
		"name":        name,
		"culture":     culture,
		"description": name + " traditionnel",
		"image_url":   "https://img.example/" + id + ".jpg",
	})
}

// firstIndex makes sampling deterministic: items keep their input order.
func firstIndex(int) int { return 0 }
