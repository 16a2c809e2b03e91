package database

import (
	"database/sql"
	"fmt"
	"time"

	"pbrconvert/logging"
	"pbrconvert/types"

	_ "github.com/mattn/go-sqlite3"
)

// InitDatabase initializes and returns a database connection
func InitDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Workers record conversions concurrently; one connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	// Create table if it doesn't exist
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS conversions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_path TEXT NOT NULL,
		folder TEXT,
		identifier TEXT NOT NULL,
		category TEXT,
		format TEXT,
		width INTEGER,
		height INTEGER,
		modified_at TEXT,
		mer_file TEXT,
		normal_file TEXT,
		descriptor_file TEXT,
		run_id TEXT,
		converted_at TEXT,
		UNIQUE(source_path)
	);
	CREATE INDEX IF NOT EXISTS idx_folder ON conversions(folder);
	CREATE INDEX IF NOT EXISTS idx_category ON conversions(category);`

	_, err = db.Exec(createTableSQL)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Databases created before run tracking lack the run_id column
	var hasRunIDColumn bool
	err = db.QueryRow("SELECT COUNT(*) FROM pragma_table_info('conversions') WHERE name='run_id'").Scan(&hasRunIDColumn)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error checking for run_id column: %w", err)
	}

	if !hasRunIDColumn {
		_, err = db.Exec("ALTER TABLE conversions ADD COLUMN run_id TEXT;")
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("error adding run_id column: %w", err)
		}
		logging.DebugLog("Added 'run_id' column to existing database schema")
	}

	if _, err = db.Exec("CREATE INDEX IF NOT EXISTS idx_run_id ON conversions(run_id);"); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating run_id index: %w", err)
	}

	return db, nil
}

// OpenDatabase opens an existing database connection
func OpenDatabase(dbPath string) (*sql.DB, error) {
	return sql.Open("sqlite3", dbPath)
}

// CheckTextureConverted reports whether a source has been converted and
// returns the source modification time recorded at that point
func CheckTextureConverted(db *sql.DB, sourcePath string) (bool, string, error) {
	var storedModTime string
	err := db.QueryRow("SELECT modified_at FROM conversions WHERE source_path = ?", sourcePath).Scan(&storedModTime)
	if err == sql.ErrNoRows {
		return false, "", nil
	}
	if err != nil {
		return false, "", fmt.Errorf("database error for %s: %w", sourcePath, err)
	}

	return true, storedModTime, nil
}

// StoreConversion inserts or replaces the manifest row for a source
func StoreConversion(db *sql.DB, record types.ConversionRecord) error {
	now := record.ConvertedAt
	if now == "" {
		now = time.Now().Format(time.RFC3339)
	}

	// Prepare statement to avoid SQL injection
	stmt, err := db.Prepare(`
		INSERT OR REPLACE INTO conversions (
			source_path, folder, identifier, category, format, width, height, modified_at,
			mer_file, normal_file, descriptor_file, run_id, converted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("cannot prepare statement for %s: %w", record.SourcePath, err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(
		record.SourcePath,
		record.Folder,
		record.Identifier,
		record.Category,
		record.Format,
		record.Width,
		record.Height,
		record.ModifiedAt,
		record.MERFile,
		record.NormalFile,
		record.DescriptorFile,
		record.RunID,
		now,
	)
	if err != nil {
		return fmt.Errorf("cannot insert data for %s: %w", record.SourcePath, err)
	}

	return nil
}

// GetConversion returns the manifest row for a source
func GetConversion(db *sql.DB, sourcePath string) (*types.ConversionRecord, error) {
	var r types.ConversionRecord
	err := db.QueryRow(`
		SELECT id, source_path, COALESCE(folder, ''), identifier, COALESCE(category, ''), COALESCE(format, ''),
			COALESCE(width, 0), COALESCE(height, 0), COALESCE(modified_at, ''), COALESCE(mer_file, ''),
			COALESCE(normal_file, ''), COALESCE(descriptor_file, ''), COALESCE(run_id, ''), COALESCE(converted_at, '')
		FROM conversions WHERE source_path = ?`, sourcePath).Scan(
		&r.ID, &r.SourcePath, &r.Folder, &r.Identifier, &r.Category, &r.Format, &r.Width, &r.Height,
		&r.ModifiedAt, &r.MERFile, &r.NormalFile, &r.DescriptorFile, &r.RunID, &r.ConvertedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot read conversion for %s: %w", sourcePath, err)
	}
	return &r, nil
}

// ConversionStats contains statistics about converted textures
type ConversionStats struct {
	TotalTextures int
	Runs          int
	Categories    []types.CategoryCount
}

// GetConversionStats retrieves statistics, optionally limited to one folder
func GetConversionStats(db *sql.DB, folder string) (*ConversionStats, error) {
	var stats ConversionStats

	where := ""
	var args []interface{}
	if folder != "" {
		where = " WHERE folder = ?"
		args = append(args, folder)
	}

	err := db.QueryRow("SELECT COUNT(*), COUNT(DISTINCT run_id) FROM conversions"+where, args...).Scan(&stats.TotalTextures, &stats.Runs)
	if err != nil {
		return nil, fmt.Errorf("failed to get total textures: %w", err)
	}

	rows, err := db.Query("SELECT COALESCE(category, ''), COUNT(*) FROM conversions"+where+" GROUP BY category ORDER BY category", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get category counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c types.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to read category count: %w", err)
		}
		stats.Categories = append(stats.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category counts: %w", err)
	}

	return &stats, nil
}
