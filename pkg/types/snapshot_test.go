package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_SetStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr bool
	}{
		{name: "scheduled", status: SnapshotScheduled},
		{name: "active", status: SnapshotActive},
		{name: "archived", status: SnapshotArchived},
		{name: "unknown rejected", status: "draft", wantErr: true},
		{name: "empty rejected", status: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Snapshot{Status: SnapshotScheduled}
			err := s.SetStatus(tt.status)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				assert.Equal(t, SnapshotScheduled, s.Status)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.status, s.Status)
		})
	}
}

func TestSnapshot_Archive(t *testing.T) {
	s := Snapshot{Status: SnapshotActive}
	s.Archive()
	assert.Equal(t, SnapshotArchived, s.Status)

	// Idempotent.
	s.Archive()
	assert.Equal(t, SnapshotArchived, s.Status)
}

func TestSnapshot_CloneProducts(t *testing.T) {
	s := Snapshot{
		Products: []Product{
			MustProduct(`{"styleCode":"A"}`),
			MustProduct(`{"styleCode":"B"}`),
		},
	}

	clone := s.CloneProducts()
	assert.Len(t, clone, 2)

	clone[0].Raw()[2] = 'X' // mutate the clone's buffer
	assert.Equal(t, "A", s.Products[0].StyleCode())
}
