package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okian/competency/internal/adapters/source"
	"github.com/okian/competency/internal/domain/catalog"
	"github.com/okian/competency/internal/domain/model"
)

func employeesTable() model.Table {
	return model.Table{
		Header: []string{"NIP", "Nama Pegawai", "Jabatan", "Nama Wilayah", "Level", "M1_0", "M1_1", "cat_M"},
		Rows: [][]string{
			{"199701012020121001", "Ani", "Statistisi", "Aceh", "Ahli Muda", "3", "2,5", "Optimal"},
			{"199802022021122002", "Budi", "Pranata", "Bali", "Ahli Pertama", "", "x"},
		},
	}
}

// countingReader serves tables in order and counts reads.
type countingReader struct {
	mu     sync.Mutex
	tables []model.Table
	errs   []error
	calls  int
}

func (c *countingReader) Read(context.Context) (model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.calls
	c.calls++
	if i < len(c.errs) && c.errs[i] != nil {
		return model.Table{}, c.errs[i]
	}
	if i >= len(c.tables) {
		i = len(c.tables) - 1
	}
	return c.tables[i], nil
}

func TestParseRecords(t *testing.T) {
	records, err := ParseRecords(employeesTable(), model.DefaultColumns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	ani := records[0]
	if ani.ID != "199701012020121001" || ani.Name != "Ani" || ani.Region != "Aceh" || ani.Level != "Ahli Muda" {
		t.Errorf("identity fields not mapped: %+v", ani)
	}
	if ani.Value("M1_0") != 3 || ani.Value("M1_1") != 2.5 {
		t.Errorf("expected scores 3 and 2.5, got %v", ani.Scores)
	}
	if ani.Attribute("cat_M") != "Optimal" {
		t.Errorf("expected cat_M attribute, got %q", ani.Attribute("cat_M"))
	}
	if ani.Has("NIP") {
		t.Error("identifier must not be a score")
	}

	budi := records[1]
	if budi.Has("M1_0") {
		t.Error("blank cell must not be a score")
	}
	if budi.Attribute("M1_1") != "x" || budi.Value("M1_1") != 0 {
		t.Errorf("non-numeric cell should be an attribute worth zero, got %v / %v", budi.Attributes, budi.Scores)
	}
}

func TestParseRecordsMissingIdentifier(t *testing.T) {
	_, err := ParseRecords(model.Table{Header: []string{"Nama Pegawai"}}, model.Columns{})
	if !errors.Is(err, ErrMissingIdentifier) {
		t.Fatalf("expected ErrMissingIdentifier, got %v", err)
	}
}

func TestParseNumber(t *testing.T) {
	cases := map[string]struct {
		want float64
		ok   bool
	}{
		"4":     {4, true},
		" 2.5 ": {2.5, true},
		"2,5":   {2.5, true},
		"1,2,3": {0, false},
		"abc":   {0, false},
		"NaN":   {0, false},
	}
	for in, tc := range cases {
		got, ok := ParseNumber(in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v, %v", in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestMissingColumns(t *testing.T) {
	missing := MissingColumns(employeesTable(), catalog.Set{catalog.Managerial()})
	// 9 items x 2 columns, M1 present
	if len(missing) != 16 {
		t.Fatalf("expected 16 missing columns, got %d: %v", len(missing), missing)
	}
	if missing[0] != "M2_0" {
		t.Errorf("expected M2_0 first, got %s", missing[0])
	}
}

func TestDatasetStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	loadedAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	reader := &countingReader{tables: []model.Table{employeesTable()}}
	store := NewDatasetStore(reader, WithClock(func() time.Time { return loadedAt }))

	if _, err := store.Snapshot(ctx); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded before load, got %v", err)
	}
	if st := store.Status(); st.Loaded || st.Name != DatasetName {
		t.Errorf("unexpected status before load: %+v", st)
	}

	first, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(first.Records) != 2 || first.Version == "" || !first.LoadedAt.Equal(loadedAt) {
		t.Errorf("unexpected snapshot: %+v", first.Meta)
	}

	// Load is idempotent once a snapshot exists.
	again, err := store.Load(ctx)
	if err != nil || again != first || reader.calls != 1 {
		t.Errorf("expected cached snapshot and one read, got calls=%d err=%v", reader.calls, err)
	}

	second, err := store.Reload(ctx)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if second.Version == first.Version {
		t.Error("reload must publish a new version")
	}
	if reader.calls != 2 {
		t.Errorf("expected 2 reads, got %d", reader.calls)
	}

	st := store.Status()
	if !st.Loaded || st.Records != 2 || st.Version != second.Version || st.LastError != "" {
		t.Errorf("unexpected status: %+v", st)
	}
}

func TestDatasetStore_FailedReloadKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	reader := &countingReader{
		tables: []model.Table{employeesTable(), employeesTable()},
		errs:   []error{nil, boom},
	}
	store := NewDatasetStore(reader)

	first, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, err := store.Reload(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected reload error, got %v", err)
	}

	cur, err := store.Snapshot(ctx)
	if err != nil || cur != first {
		t.Fatalf("expected previous snapshot to survive, got %v", err)
	}
	if st := store.Status(); st.LastError == "" || !st.Loaded {
		t.Errorf("status should keep the snapshot and report the error: %+v", st)
	}
}

func TestDatasetStore_LoadFailure(t *testing.T) {
	ctx := context.Background()
	store := NewDatasetStore(source.Static(model.Table{Header: []string{"Nama"}}))

	if _, err := store.Load(ctx); !errors.Is(err, ErrMissingIdentifier) {
		t.Fatalf("expected ErrMissingIdentifier, got %v", err)
	}
	if _, err := store.Snapshot(ctx); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded after failed load, got %v", err)
	}

	empty := NewDatasetStore(nil)
	if _, err := empty.Load(ctx); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
}

func TestDatasetStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewDatasetStore(source.Static(employeesTable()), WithName("concurrent"))
	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := store.Reload(ctx); err != nil {
				t.Errorf("reload failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			snap, err := store.Snapshot(ctx)
			if err != nil || len(snap.Records) != 2 {
				t.Errorf("snapshot read failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestSurveyStore(t *testing.T) {
	ctx := context.Background()
	tbl := model.Table{Header: []string{"Minat"}, Rows: [][]string{{"Statistik"}}}
	store := NewSurveyStore(source.Static(tbl))

	if _, err := store.Snapshot(ctx); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	snap, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if snap.Table.Len() != 1 || store.Status().Records != 1 || store.Status().Name != SurveyName {
		t.Errorf("unexpected survey snapshot: %+v", store.Status())
	}
}
