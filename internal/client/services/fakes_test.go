package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pratish444/QuoteVault/internal/client/remote"
	"github.com/pratish444/QuoteVault/internal/client/repositories"
	"github.com/pratish444/QuoteVault/internal/client/repositories/sqlitetest"
	"github.com/pratish444/QuoteVault/internal/timex"
)

type call struct {
	op     string
	table  string
	row    remote.Row
	filter remote.Filter
}

// fakeRemote is an in-memory table store. Setting err fails every call;
// setting failOn[op+" "+table] fails only that call.
type fakeRemote struct {
	mu     sync.Mutex
	tables map[string][]remote.Row
	err    error
	failOn map[string]error
	calls  []call
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{tables: map[string][]remote.Row{}, failOn: map[string]error{}}
}

func (f *fakeRemote) seed(table string, rows ...remote.Row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[table] = append(f.tables[table], rows...)
}

func (f *fakeRemote) rows(table string) []remote.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]remote.Row(nil), f.tables[table]...)
}

func (f *fakeRemote) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.op + " " + c.table
	}
	return out
}

func (f *fakeRemote) record(c call) error {
	f.calls = append(f.calls, c)
	if err, ok := f.failOn[c.op+" "+c.table]; ok {
		return err
	}
	return f.err
}

func matches(row remote.Row, flt remote.Filter) bool {
	for _, c := range flt.Conds {
		if fmt.Sprint(row[c.Column]) != fmt.Sprint(c.Value) {
			return false
		}
	}
	return true
}

func (f *fakeRemote) Select(ctx context.Context, table string, flt remote.Filter) ([]remote.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(call{op: "select", table: table, filter: flt}); err != nil {
		return nil, err
	}
	var out []remote.Row
	for _, r := range f.tables[table] {
		if matches(r, flt) {
			out = append(out, r)
			if flt.Limit > 0 && len(out) == flt.Limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRemote) Insert(ctx context.Context, table string, row remote.Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(call{op: "insert", table: table, row: row}); err != nil {
		return err
	}
	f.tables[table] = append(f.tables[table], row)
	return nil
}

func (f *fakeRemote) Update(ctx context.Context, table string, row remote.Row, flt remote.Filter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(call{op: "update", table: table, row: row, filter: flt}); err != nil {
		return err
	}
	for i, r := range f.tables[table] {
		if matches(r, flt) {
			merged := remote.Row{}
			for k, v := range r {
				merged[k] = v
			}
			for k, v := range row {
				merged[k] = v
			}
			f.tables[table][i] = merged
		}
	}
	return nil
}

func (f *fakeRemote) Delete(ctx context.Context, table string, flt remote.Filter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(call{op: "delete", table: table, filter: flt}); err != nil {
		return err
	}
	kept := f.tables[table][:0]
	for _, r := range f.tables[table] {
		if !matches(r, flt) {
			kept = append(kept, r)
		}
	}
	f.tables[table] = kept
	return nil
}

func newRepos(t *testing.T) *repositories.Repositories {
	t.Helper()
	return repositories.New(sqlitetest.Open(t))
}

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func fixedClock(s string) *timex.FixedClock {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		panic(err)
	}
	return timex.NewFixedClock(t)
}
