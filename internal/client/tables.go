package client

import (
	"context"
	"net/url"

	"workbench/internal/domain"
)

// TableService reads the tables exposed by the backend data source. Tables
// are read-only from the panel's perspective.
type TableService struct {
	client *Client
}

type tableListResponse struct {
	Tables []domain.TableDescriptor `json:"tables"`
}

// TableDetail is the per-table detail payload merged onto a base record.
type TableDetail struct {
	Columns    []domain.ColumnDescriptor `json:"columns"`
	SampleData []domain.TableRow         `json:"sample_data"`
	RowCount   *int64                    `json:"row_count,omitempty"`
}

// List returns the base table records (names only).
func (s *TableService) List(ctx context.Context) ([]domain.TableDescriptor, error) {
	var out tableListResponse
	if err := s.client.getJSON(ctx, "/api/database/tables", &out); err != nil {
		return nil, err
	}
	return out.Tables, nil
}

// Detail fetches column and sample data for one table.
func (s *TableService) Detail(ctx context.Context, name string) (*TableDetail, error) {
	var out TableDetail
	if err := s.client.getJSON(ctx, "/api/database/tables/"+url.PathEscape(name), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
