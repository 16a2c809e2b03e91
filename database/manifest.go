package database

import (
	"database/sql"

	"github.com/google/uuid"

	"pbrconvert/types"
)

// Manifest records conversions of one run in the database
type Manifest struct {
	db    *sql.DB
	runID string
}

// NewManifest starts a new run with a fresh run ID
func NewManifest(db *sql.DB) *Manifest {
	return &Manifest{db: db, runID: uuid.NewString()}
}

// RunID identifies the rows written by this manifest
func (m *Manifest) RunID() string {
	return m.runID
}

// Lookup reports whether sourcePath was converted before and the source
// modification time recorded then
func (m *Manifest) Lookup(sourcePath string) (bool, string, error) {
	return CheckTextureConverted(m.db, sourcePath)
}

// Record stores a conversion under the manifest's run ID
func (m *Manifest) Record(record types.ConversionRecord) error {
	record.RunID = m.runID
	return StoreConversion(m.db, record)
}
