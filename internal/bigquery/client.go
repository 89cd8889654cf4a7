package bigquery

import (
	"context"
	"fmt"
	"time"

	bq "cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// Field describes one schema column.
type Field struct {
	Name        string
	Type        string
	Mode        string
	Description string
}

// QueryOutcome carries everything the formatter needs from a finished job.
// DML/DDL statements produce an empty row set and, when reported, an
// affected-row count.
type QueryOutcome struct {
	TotalRows    uint64
	Schema       []Field
	Rows         []map[string]bq.Value
	AffectedRows int64
}

// TableInfo is table metadata; the listing path fills only the basic fields.
type TableInfo struct {
	ID               string
	Type             string
	NumRows          uint64
	NumBytes         int64
	Created          time.Time
	Modified         time.Time
	Fields           []Field
	PartitionField   string
	PartitionType    string
	ClusteringFields []string
}

// DatasetInfo is dataset-level metadata.
type DatasetInfo struct {
	Project     string
	Location    string
	Created     time.Time
	Modified    time.Time
	Description string
}

// Runner is the capability surface the service needs from BigQuery.
type Runner interface {
	RunQuery(ctx context.Context, sql string) (QueryOutcome, error)
	TableMetadata(ctx context.Context, tableID string) (TableInfo, error)
	ListTables(ctx context.Context) ([]TableInfo, error)
	DatasetMetadata(ctx context.Context) (DatasetInfo, error)
}

// GCPRunner implements Runner against the real BigQuery SDK, acquiring the
// shared client lazily through the provider.
type GCPRunner struct {
	provider *Provider
	dataset  string
}

func NewGCPRunner(provider *Provider, dataset string) *GCPRunner {
	return &GCPRunner{provider: provider, dataset: dataset}
}

func (r *GCPRunner) RunQuery(ctx context.Context, sql string) (QueryOutcome, error) {
	client, err := r.provider.Client(ctx)
	if err != nil {
		return QueryOutcome{}, err
	}

	q := client.Query(sql)
	q.UseLegacySQL = false
	q.DisableQueryCache = false

	job, err := q.Run(ctx)
	if err != nil {
		return QueryOutcome{}, fmt.Errorf("run query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return QueryOutcome{}, fmt.Errorf("wait for query: %w", err)
	}
	if err := status.Err(); err != nil {
		return QueryOutcome{}, err
	}

	outcome := QueryOutcome{}
	if stats, ok := status.Statistics.Details.(*bq.QueryStatistics); ok {
		outcome.AffectedRows = stats.NumDMLAffectedRows
	}

	it, err := job.Read(ctx)
	if err != nil {
		return QueryOutcome{}, fmt.Errorf("read results: %w", err)
	}
	for {
		row := map[string]bq.Value{}
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return QueryOutcome{}, fmt.Errorf("iterate results: %w", err)
		}
		outcome.Rows = append(outcome.Rows, row)
	}
	outcome.TotalRows = it.TotalRows
	outcome.Schema = fieldsFromSchema(it.Schema)
	return outcome, nil
}

func (r *GCPRunner) TableMetadata(ctx context.Context, tableID string) (TableInfo, error) {
	client, err := r.provider.Client(ctx)
	if err != nil {
		return TableInfo{}, err
	}
	md, err := client.Dataset(r.dataset).Table(tableID).Metadata(ctx)
	if err != nil {
		return TableInfo{}, fmt.Errorf("table metadata: %w", err)
	}

	info := TableInfo{
		ID:       tableID,
		Type:     string(md.Type),
		NumRows:  md.NumRows,
		NumBytes: md.NumBytes,
		Created:  md.CreationTime,
		Modified: md.LastModifiedTime,
		Fields:   fieldsFromSchema(md.Schema),
	}
	if md.TimePartitioning != nil {
		info.PartitionField = md.TimePartitioning.Field
		info.PartitionType = string(md.TimePartitioning.Type)
	}
	if md.Clustering != nil {
		info.ClusteringFields = md.Clustering.Fields
	}
	return info, nil
}

func (r *GCPRunner) ListTables(ctx context.Context) ([]TableInfo, error) {
	client, err := r.provider.Client(ctx)
	if err != nil {
		return nil, err
	}

	var infos []TableInfo
	it := client.Dataset(r.dataset).Tables(ctx)
	for {
		table, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		md, err := table.Metadata(ctx)
		if err != nil {
			return nil, fmt.Errorf("table metadata for %s: %w", table.TableID, err)
		}
		infos = append(infos, TableInfo{
			ID:       table.TableID,
			Type:     string(md.Type),
			NumRows:  md.NumRows,
			NumBytes: md.NumBytes,
		})
	}
	return infos, nil
}

func (r *GCPRunner) DatasetMetadata(ctx context.Context) (DatasetInfo, error) {
	client, err := r.provider.Client(ctx)
	if err != nil {
		return DatasetInfo{}, err
	}
	md, err := client.Dataset(r.dataset).Metadata(ctx)
	if err != nil {
		return DatasetInfo{}, fmt.Errorf("dataset metadata: %w", err)
	}
	return DatasetInfo{
		Project:     client.Project(),
		Location:    md.Location,
		Created:     md.CreationTime,
		Modified:    md.LastModifiedTime,
		Description: md.Description,
	}, nil
}

func fieldsFromSchema(schema bq.Schema) []Field {
	fields := make([]Field, 0, len(schema))
	for _, fs := range schema {
		mode := "NULLABLE"
		if fs.Repeated {
			mode = "REPEATED"
		} else if fs.Required {
			mode = "REQUIRED"
		}
		fields = append(fields, Field{
			Name:        fs.Name,
			Type:        string(fs.Type),
			Mode:        mode,
			Description: fs.Description,
		})
	}
	return fields
}
