package domain

import "encoding/json"

// TableDescriptor describes one table exposed by the backend's data source.
// The list endpoint returns base records (name only); Columns, SampleData
// and RowCount are merged in from the per-table detail fetch. A table whose
// detail fetch failed keeps its base record with Columns left nil.
type TableDescriptor struct {
	Name       string             `json:"name"`
	RowCount   *int64             `json:"row_count,omitempty"`
	Columns    []ColumnDescriptor `json:"columns,omitempty"`
	SampleData []TableRow         `json:"sample_data,omitempty"`
}

// HasDetail reports whether column detail was attached at load time.
func (t TableDescriptor) HasDetail() bool {
	return t.Columns != nil
}

// ColumnDescriptor describes one column of a table.
type ColumnDescriptor struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nullable   *bool  `json:"nullable,omitempty"`
	PrimaryKey bool   `json:"primary_key,omitempty"`
}

// IsNullable applies the backend default: columns are nullable unless the
// descriptor says otherwise.
func (c ColumnDescriptor) IsNullable() bool {
	return c.Nullable == nil || *c.Nullable
}

// TableRow is one illustrative sample row; column values are backend-typed.
type TableRow map[string]json.RawMessage
