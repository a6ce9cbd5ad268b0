package store

import (
	"fmt"

	"github.com/spec-kit/chamado-tracker/internal/domain"
)

// ReferenceStore is the read-only reference snapshot consulted by validation.
// Loaded once at process start; never mutated afterwards.
type ReferenceStore struct {
	data      domain.ReferenceData
	equipment map[string]struct{}
}

// LoadReference reads the reference-data document from disk.
func LoadReference(path string) (*ReferenceStore, error) {
	var data domain.ReferenceData
	found, err := readJSON(path, &data)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("reference data file %s missing", path)
	}
	if data.SectorResponsible == nil {
		data.SectorResponsible = map[string]string{}
	}

	equipment := make(map[string]struct{}, len(data.Equipment))
	for _, e := range data.Equipment {
		equipment[e] = struct{}{}
	}
	return &ReferenceStore{data: data, equipment: equipment}, nil
}

// NewReferenceStore builds a store from an in-memory snapshot. Used by tests
// and the converter.
func NewReferenceStore(data domain.ReferenceData) *ReferenceStore {
	equipment := make(map[string]struct{}, len(data.Equipment))
	for _, e := range data.Equipment {
		equipment[e] = struct{}{}
	}
	if data.SectorResponsible == nil {
		data.SectorResponsible = map[string]string{}
	}
	return &ReferenceStore{data: data, equipment: equipment}
}

// HasSector reports whether sector is a known key of the sector mapping.
func (r *ReferenceStore) HasSector(sector string) bool {
	_, ok := r.data.SectorResponsible[sector]
	return ok
}

// HasEquipment reports whether the equipment identifier is known.
func (r *ReferenceStore) HasEquipment(equipment string) bool {
	_, ok := r.equipment[equipment]
	return ok
}

// ResponsibleFor returns the default responsible person for a sector.
func (r *ReferenceStore) ResponsibleFor(sector string) (string, bool) {
	person, ok := r.data.SectorResponsible[sector]
	return person, ok
}

// Snapshot returns the underlying reference data for display.
func (r *ReferenceStore) Snapshot() domain.ReferenceData {
	return r.data
}
