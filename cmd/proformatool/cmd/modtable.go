package cmd

import (
	"fmt"
	"os"

	"github.com/noatgnu/proforma-go/internal/moddb"
	"github.com/noatgnu/proforma-go/proforma"
)

// loadModTable resolves the --mod-table/--mod-db flags into a MassTable,
// falling back to the built-in Unimod defaults when neither is given.
func loadModTable() (proforma.MassTable, error) {
	switch {
	case modTableCSV != "" && modTableSQLite != "":
		return nil, fmt.Errorf("specify at most one of --mod-table or --mod-db")

	case modTableCSV != "":
		f, err := os.Open(modTableCSV)
		if err != nil {
			return nil, fmt.Errorf("failed to open mass-override table: %w", err)
		}
		defer f.Close()

		db := moddb.New()
		if err := db.LoadFromCSV(f); err != nil {
			return nil, err
		}
		return db, nil

	case modTableSQLite != "":
		db, err := moddb.LoadFromSQLite(modTableSQLite)
		if err != nil {
			return nil, err
		}
		return db, nil

	default:
		return moddb.Default(), nil
	}
}
