package types

import (
	"errors"
	"time"
)

// Snapshot statuses. A snapshot progresses scheduled -> active -> archived;
// archived is terminal. Status is derived from effective dates by the
// publish package, not authoritative on its own.
const (
	SnapshotScheduled = "scheduled"
	SnapshotActive    = "active"
	SnapshotArchived  = "archived"
)

// validSnapshotStatuses is the set of recognized snapshot status values.
var validSnapshotStatuses = map[string]bool{
	SnapshotScheduled: true,
	SnapshotActive:    true,
	SnapshotArchived:  true,
}

// Snapshot status errors.
var (
	ErrInvalidStatus = errors.New("invalid snapshot status")
)

// Snapshot is an immutable, versioned capture of the product catalog at a
// point in time. Products is a deep copy of the working set taken at
// creation; only Status changes after creation.
type Snapshot struct {
	ID            string    `json:"id"`
	Version       string    `json:"version"`
	EffectiveDate time.Time `json:"effectiveDate"`
	PublishedDate time.Time `json:"publishedDate"`
	Status        string    `json:"status"`
	PublishedBy   string    `json:"publishedBy"`
	Notes         string    `json:"notes"`
	ProductCount  int       `json:"productCount"`
	Products      []Product `json:"products"`
}

// SetStatus sets the snapshot status to the given value.
// Returns ErrInvalidStatus if the status is not recognized.
func (s *Snapshot) SetStatus(status string) error {
	if !validSnapshotStatuses[status] {
		return ErrInvalidStatus
	}
	s.Status = status
	return nil
}

// Archive marks the snapshot archived. Archival is one-way: the status
// recompute pass never moves a snapshot out of archived. Idempotent.
func (s *Snapshot) Archive() {
	s.Status = SnapshotArchived
}

// CloneProducts returns a deep copy of the snapshot's product list.
func (s *Snapshot) CloneProducts() []Product {
	out := make([]Product, len(s.Products))
	for i, p := range s.Products {
		out[i] = p.Clone()
	}
	return out
}

// PublishedSnapshots is the persisted snapshot collection plus a cached
// "current active" ID. The cache is denormalized: it must be recomputed
// whenever the snapshot list changes.
type PublishedSnapshots struct {
	Snapshots               []Snapshot `json:"snapshots"`
	CurrentActiveSnapshotID string     `json:"currentActiveSnapshotId,omitempty"`
}

// SnapshotStats summarizes a snapshot set for reporting.
type SnapshotStats struct {
	TotalSnapshots    int        `json:"totalSnapshots"`
	ScheduledCount    int        `json:"scheduledCount"`
	ActiveCount       int        `json:"activeCount"`
	ArchivedCount     int        `json:"archivedCount"`
	LatestVersion     string     `json:"latestVersion"`
	NextScheduledDate *time.Time `json:"nextScheduledDate"`
}

// Publish event actions recorded in the audit table.
const (
	EventPublished = "published"
	EventArchived  = "archived"
	EventActivated = "activated"
)

// PublishEvent is an audit record of a snapshot lifecycle action.
type PublishEvent struct {
	EventID    string    `json:"event_id"`
	SnapshotID string    `json:"snapshot_id"`
	Action     string    `json:"action"`
	Actor      string    `json:"actor"`
	CreatedAt  time.Time `json:"created_at"`
}
