// Package report provides storage for verification reports.
//
// A report records one classification outcome together with the evidence
// artifacts rendered for it. Reports are immutable once stored; callers
// regenerate evidence by re-running the pipeline, never by editing a
// stored report.
//
// Backends:
//   - memory: in-memory storage for development/testing
//   - file:   JSON files for CLI usage
//   - redis:  shared storage with TTL for multi-instance API deployments
//   - mongo:  durable document storage
package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kisan-depin/dmrv/pkg/geo"
	"github.com/kisan-depin/dmrv/pkg/verify"
)

// DefaultTTL is how long shared backends retain reports.
const DefaultTTL = 30 * 24 * time.Hour

// Artifacts holds the filesystem paths of one rendered evidence set.
type Artifacts struct {
	Satellite  string `json:"satellite_path,omitempty" bson:"satellite_path,omitempty"`
	Heatmap    string `json:"heatmap_path,omitempty" bson:"heatmap_path,omitempty"`
	SuperRes   string `json:"super_res_path,omitempty" bson:"super_res_path,omitempty"`
	Comparison string `json:"comparison_path,omitempty" bson:"comparison_path,omitempty"`
}

// Report is one stored verification outcome.
type Report struct {
	ID        string         `json:"id" bson:"_id"`
	Location  geo.Coordinate `json:"location" bson:"location"`
	Result    verify.Result  `json:"result" bson:"result"`
	Artifacts Artifacts      `json:"artifacts" bson:"artifacts"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}

// New creates a report with a fresh ID and the current time.
func New(loc geo.Coordinate, result verify.Result, artifacts Artifacts) *Report {
	return &Report{
		ID:        uuid.NewString(),
		Location:  loc,
		Result:    result,
		Artifacts: artifacts,
		CreatedAt: time.Now().UTC(),
	}
}

// Store persists verification reports.
//
// Get returns (nil, nil) when the report does not exist; callers translate
// that into a REPORT_NOT_FOUND error at the API boundary.
type Store interface {
	Get(ctx context.Context, id string) (*Report, error)
	Put(ctx context.Context, r *Report) error
	List(ctx context.Context, limit int) ([]*Report, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
