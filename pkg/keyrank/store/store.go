package store

import (
	"context"

	"github.com/cognicore/keyrank/pkg/keyrank/report"
)

// DefaultListLimit caps ListReports when limit <= 0
const DefaultListLimit = 20

// Store persists extraction reports
type Store interface {
	Close() error

	// SaveReport inserts or replaces a report, keyed by ID
	SaveReport(ctx context.Context, r report.Report) error

	// GetReport returns internalerr.ErrNotFound for unknown IDs
	GetReport(ctx context.Context, id string) (report.Report, error)

	// ListReports returns reports newest first. An empty source lists all.
	ListReports(ctx context.Context, source string, limit int) ([]report.Report, error)

	// DeleteReport returns internalerr.ErrNotFound for unknown IDs
	DeleteReport(ctx context.Context, id string) error
}
