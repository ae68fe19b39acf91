package postgis

import (
	"fmt"
	"strings"

	pq "github.com/lib/pq"

	"github.com/omniscale/osmcsv/writer"
)

type ColumnSpec struct {
	Name string
	Type string
}

type TableSpec struct {
	Name       string
	Schema     string
	File       string
	Columns    []ColumnSpec
	PrimaryKey string
}

var columnTypes = map[string]string{
	"id":        "BIGINT",
	"lat":       "DOUBLE PRECISION",
	"lon":       "DOUBLE PRECISION",
	"user":      "TEXT",
	"uid":       "INTEGER",
	"version":   "INTEGER",
	"changeset": "BIGINT",
	"timestamp": "TIMESTAMPTZ",
	"key":       "TEXT",
	"value":     "TEXT",
	"type":      "TEXT",
	"node_id":   "BIGINT",
	"position":  "INTEGER",
}

// TableSpecs returns the specs of all output tables in load order.
func TableSpecs(schema string) []*TableSpec {
	specs := make([]*TableSpec, 0, len(writer.Tables))
	for _, t := range writer.Tables {
		spec := &TableSpec{Name: t.Name, Schema: schema, File: t.File}
		for _, col := range t.Columns {
			typ, ok := columnTypes[col]
			if !ok {
				typ = "TEXT"
			}
			spec.Columns = append(spec.Columns, ColumnSpec{col, typ})
		}
		if t.Name == writer.NodesTable || t.Name == writer.WaysTable {
			spec.PrimaryKey = "id"
		}
		specs = append(specs, spec)
	}
	return specs
}

func (col *ColumnSpec) AsSQL() string {
	return fmt.Sprintf("\"%s\" %s", col.Name, col.Type)
}

func (spec *TableSpec) FullName() string {
	return pq.QuoteIdentifier(spec.Schema) + "." + pq.QuoteIdentifier(spec.Name)
}

func (spec *TableSpec) CreateTableSQL() string {
	var cols []string
	for _, col := range spec.Columns {
		cols = append(cols, col.AsSQL())
	}
	if spec.PrimaryKey != "" {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (\"%s\")", spec.PrimaryKey))
	}
	columnSQL := strings.Join(cols, ",\n            ")
	return fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            %s
        );`,
		spec.FullName(),
		columnSQL,
	)
}

func (spec *TableSpec) TruncateSQL() string {
	return fmt.Sprintf(`TRUNCATE TABLE %s`, spec.FullName())
}

func (spec *TableSpec) CopySQL() string {
	cols := make([]string, len(spec.Columns))
	for i, col := range spec.Columns {
		cols[i] = col.Name
	}
	return pq.CopyInSchema(spec.Schema, spec.Name, cols...)
}

// Values converts a CSV row into COPY values. Empty values of non TEXT
// columns are NULL.
func (spec *TableSpec) Values(row []string) ([]interface{}, error) {
	if len(row) != len(spec.Columns) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(spec.Columns), len(row))
	}
	values := make([]interface{}, len(row))
	for i, v := range row {
		if v == "" && spec.Columns[i].Type != "TEXT" {
			continue
		}
		values[i] = v
	}
	return values, nil
}
