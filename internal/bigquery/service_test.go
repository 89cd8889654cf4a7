package bigquery

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	bq "cloud.google.com/go/bigquery"
	"github.com/go-logr/logr"

	"github.com/jmartel/databridge-mcp/internal/logging"
)

type fakeRunner struct {
	outcome  QueryOutcome
	queryErr error
	queries  []string

	table    TableInfo
	tableErr error

	tables  []TableInfo
	listErr error
	dataset DatasetInfo
	dsErr   error
}

func (f *fakeRunner) RunQuery(ctx context.Context, sql string) (QueryOutcome, error) {
	f.queries = append(f.queries, sql)
	return f.outcome, f.queryErr
}

func (f *fakeRunner) TableMetadata(ctx context.Context, tableID string) (TableInfo, error) {
	return f.table, f.tableErr
}

func (f *fakeRunner) ListTables(ctx context.Context) ([]TableInfo, error) {
	return f.tables, f.listErr
}

func (f *fakeRunner) DatasetMetadata(ctx context.Context) (DatasetInfo, error) {
	return f.dataset, f.dsErr
}

func newTestService(runner Runner) *Service {
	return NewService(runner, "proj", "ds", logging.New(logr.Discard()))
}

func TestQuery_ReadStatement(t *testing.T) {
	runner := &fakeRunner{outcome: QueryOutcome{
		TotalRows: 2,
		Schema:    []Field{{Name: "id", Type: "INTEGER"}, {Name: "name", Type: "STRING"}},
		Rows: []map[string]bq.Value{
			{"id": int64(1), "name": "a"},
			{"id": int64(2), "name": "b"},
		},
	}}
	svc := newTestService(runner)

	out, err := svc.Query(context.Background(), "SELECT * FROM orders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "Query executed successfully. Found 2 rows.") {
		t.Fatalf("missing row count header: %q", out)
	}
	if !strings.Contains(out, "Schema:\n  - id: INTEGER\n  - name: STRING\n") {
		t.Fatalf("missing schema listing: %q", out)
	}
	if !strings.Contains(out, "Results:") {
		t.Fatalf("missing results section: %q", out)
	}
	if len(runner.queries) != 1 || !strings.Contains(runner.queries[0], "`proj.ds.orders`") {
		t.Fatalf("query was not qualified: %v", runner.queries)
	}
}

func TestQuery_ReadStatementNoRows(t *testing.T) {
	svc := newTestService(&fakeRunner{outcome: QueryOutcome{
		Schema: []Field{{Name: "id", Type: "INTEGER"}},
	}})
	out, err := svc.Query(context.Background(), "SELECT id FROM orders WHERE false")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Found 0 rows.") {
		t.Fatalf("missing zero row count: %q", out)
	}
	if !strings.HasSuffix(out, "[]") {
		t.Fatalf("empty result set should serialize as []: %q", out)
	}
}

func TestQuery_DMLStatement(t *testing.T) {
	svc := newTestService(&fakeRunner{outcome: QueryOutcome{AffectedRows: 3}})
	out, err := svc.Query(context.Background(), "DELETE FROM orders WHERE id = 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Query executed successfully. Affected 3 rows." {
		t.Fatalf("unexpected DML response: %q", out)
	}
	if strings.Contains(out, "Schema") {
		t.Fatalf("DML response must not include a schema listing: %q", out)
	}
}

func TestQuery_DDLStatement(t *testing.T) {
	svc := newTestService(&fakeRunner{})
	out, err := svc.Query(context.Background(), "CREATE TABLE orders (id INT64)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Query executed successfully." {
		t.Fatalf("unexpected DDL response: %q", out)
	}
}

func TestQuery_RunnerError(t *testing.T) {
	svc := newTestService(&fakeRunner{queryErr: errors.New("syntax error")})
	if _, err := svc.Query(context.Background(), "SELECT nope"); err == nil {
		t.Fatalf("expected error to propagate")
	}
}

func TestTableSchema_Formatting(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeRunner{table: TableInfo{
		ID:       "orders",
		NumRows:  1234567,
		NumBytes: 5 * 1024 * 1024,
		Created:  created,
		Modified: created.Add(24 * time.Hour),
		Fields: []Field{
			{Name: "id", Type: "INTEGER", Mode: "REQUIRED"},
			{Name: "note", Type: "STRING", Mode: "NULLABLE", Description: "free text"},
		},
		PartitionField:   "created_at",
		PartitionType:    "DAY",
		ClusteringFields: []string{"id", "note"},
	}})

	out, err := svc.TableSchema(context.Background(), "orders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"Schema for table 'orders':",
		"Total rows: 1,234,567",
		"Size: 5.00 MB",
		"  - id (INTEGER) [REQUIRED]",
		"  - note (STRING) - free text",
		"Partitioned by: created_at (DAY)",
		"Clustered by: id, note",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "note (STRING) [NULLABLE]") {
		t.Fatalf("NULLABLE mode must not be printed: %q", out)
	}
}

func TestListTables_Formatting(t *testing.T) {
	svc := newTestService(&fakeRunner{tables: []TableInfo{
		{ID: "orders", Type: "TABLE", NumRows: 10, NumBytes: 1024},
		{ID: "users_view", Type: "VIEW"},
	}})

	out, err := svc.ListTables(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"Tables in dataset 'ds':",
		"- orders\n  Type: TABLE\n  Rows: 10",
		"- users_view",
		"Total tables: 2",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestDatasetInfo_Formatting(t *testing.T) {
	runner := &fakeRunner{
		dataset: DatasetInfo{Project: "proj", Location: "EU", Description: ""},
		outcome: QueryOutcome{Rows: []map[string]bq.Value{
			{"table_count": int64(4), "total_size_gb": 1.5},
		}},
	}
	svc := newTestService(runner)

	out, err := svc.DatasetInfo(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"Dataset Information for 'ds':",
		"Project: proj",
		"Location: EU",
		"Description: No description",
		"- Tables: 4",
		"- Total size: 1.50 GB",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if len(runner.queries) != 1 || !strings.Contains(runner.queries[0], "`proj.ds.__TABLES__`") {
		t.Fatalf("expected stats query against __TABLES__, got %v", runner.queries)
	}
}

func TestFormatComma(t *testing.T) {
	cases := map[uint64]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		1234567:    "1,234,567",
		1000000000: "1,000,000,000",
	}
	for n, want := range cases {
		if got := formatComma(n); got != want {
			t.Fatalf("formatComma(%d) = %q, want %q", n, got, want)
		}
	}
}
