// Package moddb provides a persistent mass-override table for modification
// and residue identifiers that the core proforma package does not itself
// know the mass of. Callers load a ModDatabase from CSV or SQLite and pass
// it as the proforma.MassTable to CalculateMass/FragmentPairs.
package moddb

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// ModDatabase stores modification and residue mass overrides keyed by name.
type ModDatabase struct {
	masses map[string]float64
}

// New creates an empty ModDatabase.
func New() *ModDatabase {
	return &ModDatabase{masses: make(map[string]float64)}
}

// GetMass implements proforma.MassTable.
func (db *ModDatabase) GetMass(name string) (float64, bool) {
	m, ok := db.masses[name]
	return m, ok
}

// Add inserts or overwrites a mass override.
func (db *ModDatabase) Add(name string, mass float64) {
	db.masses[name] = mass
}

// Len reports the number of entries currently loaded.
func (db *ModDatabase) Len() int {
	return len(db.masses)
}

// LoadFromCSV loads mass overrides from a "name,mass" CSV stream, skipping
// the header row. Lines are tolerant of surrounding whitespace; blank lines
// are skipped.
func (db *ModDatabase) LoadFromCSV(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	if scanner.Scan() {
		// header line, discarded
	}

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			return fmt.Errorf("moddb: line %d: expected at least 2 comma-separated fields", lineNum)
		}

		name := strings.TrimSpace(parts[0])
		massStr := strings.TrimSpace(parts[1])

		mass, err := strconv.ParseFloat(massStr, 64)
		if err != nil {
			return fmt.Errorf("moddb: line %d: invalid mass value %q: %w", lineNum, massStr, err)
		}

		db.masses[name] = mass
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("moddb: error reading CSV: %w", err)
	}

	return nil
}

// LoadFromSQLite opens the SQLite database at path and loads every row of
// its mod_mass table (name TEXT, mass REAL) into the database.
func LoadFromSQLite(path string) (*ModDatabase, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("moddb: failed to open %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT name, mass FROM mod_mass`)
	if err != nil {
		return nil, fmt.Errorf("moddb: failed to query mod_mass: %w", err)
	}
	defer rows.Close()

	result := New()
	for rows.Next() {
		var name string
		var mass float64
		if err := rows.Scan(&name, &mass); err != nil {
			return nil, fmt.Errorf("moddb: failed to scan row: %w", err)
		}
		result.masses[name] = mass
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("moddb: error iterating rows: %w", err)
	}

	return result, nil
}

// SaveToSQLite persists the database's entries into path, creating the
// mod_mass table if it does not already exist and replacing any existing
// rows with the same name.
func (db *ModDatabase) SaveToSQLite(path string) error {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("moddb: failed to open %s: %w", path, err)
	}
	defer conn.Close()

	schema := `
	CREATE TABLE IF NOT EXISTS mod_mass (
		name TEXT PRIMARY KEY,
		mass REAL NOT NULL
	);
	`
	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("moddb: failed to create mod_mass table: %w", err)
	}

	stmt, err := conn.Prepare(`INSERT INTO mod_mass (name, mass) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET mass = excluded.mass`)
	if err != nil {
		return fmt.Errorf("moddb: failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for name, mass := range db.masses {
		if _, err := stmt.Exec(name, mass); err != nil {
			return fmt.Errorf("moddb: failed to write %q: %w", name, err)
		}
	}

	return nil
}

// Default returns a ModDatabase pre-loaded with common Unimod mass shifts,
// for use when no override file is supplied.
func Default() *ModDatabase {
	db := New()

	db.Add("Acetyl", 42.010565)
	db.Add("Amidated", -0.984016)
	db.Add("Biotin", 226.077598)
	db.Add("Carbamidomethyl", 57.021464)
	db.Add("Carbamyl", 43.005814)
	db.Add("Carboxymethyl", 58.005479)
	db.Add("Deamidated", 0.984016)
	db.Add("Met->Hse", -29.992806)
	db.Add("Met->Hsl", -48.003371)
	db.Add("NIPCAM", 99.068414)
	db.Add("Phospho", 79.966331)
	db.Add("Dehydrated", -18.010565)
	db.Add("Propionamide", 71.037114)
	db.Add("Pyro-carbamidomethyl", 39.994915)
	db.Add("Glu->pyro-Glu", -18.010565)
	db.Add("Gln->pyro-Glu", -17.026549)
	db.Add("Cation:Na", 21.981943)
	db.Add("Methyl", 14.01565)
	db.Add("Oxidation", 15.994915)
	db.Add("Dimethyl", 28.0313)
	db.Add("Trimethyl", 42.04695)
	db.Add("Sulfo", 79.956815)
	db.Add("Hex", 162.052824)
	db.Add("HexNAc", 203.079373)
	db.Add("TMT", 229.162932)
	db.Add("TMTPro", 304.207146)
	db.Add("TMT6plex", 229.162932)
	db.Add("TMT10plex", 229.162932)
	db.Add("iTRAQ4plex", 144.102063)
	db.Add("iTRAQ8plex", 304.205360)

	return db
}
