package bigquery

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	bq "cloud.google.com/go/bigquery"

	"github.com/jmartel/databridge-mcp/internal/logging"
)

const timestampLayout = "2006-01-02 15:04:05 MST"

// Service executes queries and introspects the default dataset, shaping
// responses into the formatted text blocks the tools return.
type Service struct {
	runner  Runner
	project string
	dataset string
	log     logging.Logger
}

func NewService(runner Runner, project, dataset string, log logging.Logger) *Service {
	return &Service{runner: runner, project: project, dataset: dataset, log: log.WithName("bigquery.service")}
}

// Query rewrites bare table references, submits the statement with standard
// SQL and the server cache enabled, and formats the outcome by statement
// class: reads get row count, schema, and the full result set; DML/DDL gets
// an acknowledgment plus the affected-row count when reported.
func (s *Service) Query(ctx context.Context, query string) (string, error) {
	query = QualifyTables(query, s.project, s.dataset)
	s.log.Debug("executing query", "query", query)

	outcome, err := s.runner.RunQuery(ctx, query)
	if err != nil {
		return "", err
	}

	if !isReadStatement(query) {
		msg := "Query executed successfully."
		if outcome.AffectedRows > 0 {
			msg += fmt.Sprintf(" Affected %d rows.", outcome.AffectedRows)
		}
		return msg, nil
	}

	rows := outcome.Rows
	if rows == nil {
		rows = []map[string]bq.Value{}
	}
	encoded, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode rows: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Query executed successfully. Found %d rows.\n\n", outcome.TotalRows)
	b.WriteString("Schema:\n")
	for _, field := range outcome.Schema {
		fmt.Fprintf(&b, "  - %s: %s\n", field.Name, field.Type)
	}
	b.WriteString("\nResults:\n")
	b.Write(encoded)
	return b.String(), nil
}

// TableSchema formats metadata for one table in the default dataset.
func (s *Service) TableSchema(ctx context.Context, tableID string) (string, error) {
	info, err := s.runner.TableMetadata(ctx, tableID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Schema for table '%s':\n\n", tableID)
	fmt.Fprintf(&b, "Total rows: %s\n", formatComma(info.NumRows))
	fmt.Fprintf(&b, "Size: %s MB\n", megabytes(info.NumBytes))
	fmt.Fprintf(&b, "Created: %s\n", info.Created.UTC().Format(timestampLayout))
	fmt.Fprintf(&b, "Last modified: %s\n\n", info.Modified.UTC().Format(timestampLayout))

	b.WriteString("Fields:\n")
	for _, field := range info.Fields {
		fmt.Fprintf(&b, "  - %s (%s)", field.Name, field.Type)
		if field.Mode != "NULLABLE" {
			fmt.Fprintf(&b, " [%s]", field.Mode)
		}
		if field.Description != "" {
			fmt.Fprintf(&b, " - %s", field.Description)
		}
		b.WriteString("\n")
	}

	if info.PartitionField != "" || info.PartitionType != "" {
		fmt.Fprintf(&b, "\nPartitioned by: %s (%s)\n", info.PartitionField, info.PartitionType)
	}
	if len(info.ClusteringFields) > 0 {
		fmt.Fprintf(&b, "Clustered by: %s\n", strings.Join(info.ClusteringFields, ", "))
	}
	return b.String(), nil
}

// ListTables formats the default dataset's table inventory.
func (s *Service) ListTables(ctx context.Context) (string, error) {
	infos, err := s.runner.ListTables(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tables in dataset '%s':\n\n", s.dataset)
	for _, info := range infos {
		fmt.Fprintf(&b, "- %s\n", info.ID)
		fmt.Fprintf(&b, "  Type: %s\n", info.Type)
		fmt.Fprintf(&b, "  Rows: %s\n", formatComma(info.NumRows))
		fmt.Fprintf(&b, "  Size: %s MB\n\n", megabytes(info.NumBytes))
	}
	fmt.Fprintf(&b, "Total tables: %d", len(infos))
	return b.String(), nil
}

// DatasetInfo formats dataset metadata plus aggregate statistics gathered
// through a secondary query against the dataset's __TABLES__ view.
func (s *Service) DatasetInfo(ctx context.Context) (string, error) {
	info, err := s.runner.DatasetMetadata(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dataset Information for '%s':\n\n", s.dataset)
	fmt.Fprintf(&b, "Project: %s\n", info.Project)
	fmt.Fprintf(&b, "Location: %s\n", info.Location)
	fmt.Fprintf(&b, "Created: %s\n", info.Created.UTC().Format(timestampLayout))
	fmt.Fprintf(&b, "Modified: %s\n", info.Modified.UTC().Format(timestampLayout))
	description := info.Description
	if description == "" {
		description = "No description"
	}
	fmt.Fprintf(&b, "Description: %s\n", description)

	statsQuery := fmt.Sprintf(
		"SELECT COUNT(*) as table_count, SUM(size_bytes) / POW(10, 9) as total_size_gb FROM `%s.%s.__TABLES__`",
		s.project, s.dataset)
	outcome, err := s.runner.RunQuery(ctx, statsQuery)
	if err != nil {
		return "", err
	}
	if len(outcome.Rows) > 0 {
		stats := outcome.Rows[0]
		b.WriteString("\nStatistics:\n")
		fmt.Fprintf(&b, "- Tables: %d\n", asInt64(stats["table_count"]))
		fmt.Fprintf(&b, "- Total size: %.2f GB\n", asFloat64(stats["total_size_gb"]))
	}
	return b.String(), nil
}

// formatComma renders n with thousands separators.
func formatComma(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func megabytes(bytes int64) string {
	return fmt.Sprintf("%.2f", float64(bytes)/1024/1024)
}

func asInt64(v bq.Value) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func asFloat64(v bq.Value) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}
