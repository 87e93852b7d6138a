package resolver

import "github.com/heartmarshall/wildlife-backend/internal/domain"

// Status tags how complete a resolution is.
type Status string

const (
	// StatusOK means every consulted source answered.
	StatusOK Status = "ok"
	// StatusDegraded means at least one source failed and was skipped.
	StatusDegraded Status = "degraded"
)

// Source names used in degrade reasons.
const (
	SourceCatalog = "catalog"
	SourceBridge  = "bridge"
)

// DegradeReason records a source that failed during a resolution.
type DegradeReason struct {
	Source string
	Err    error
}

// Result is the outcome of a resolution. Species is never nil.
type Result struct {
	Species []domain.Species
	Status  Status
	Reasons []DegradeReason
}

// Degraded reports whether any source failed.
func (r *Result) Degraded() bool { return r.Status == StatusDegraded }

func newResult(species []domain.Species, reasons []DegradeReason) *Result {
	status := StatusOK
	if len(reasons) > 0 {
		status = StatusDegraded
	}
	if species == nil {
		species = []domain.Species{}
	}
	return &Result{Species: species, Status: status, Reasons: reasons}
}
