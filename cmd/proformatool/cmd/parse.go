package cmd

import (
	"fmt"

	"github.com/noatgnu/proforma-go/proforma"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [proforma-string]",
	Short: "Parse a ProForma string and print its structure",
	Long: `Parse a ProForma 2.0/2.1 string and report the residue count, any
global, N-/C-terminal, labile, or unknown-position modifications, and the
charge and ionic species if present.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	input := args[0]
	logger.Debugw("parsing proforma string", "input", input)

	seq, err := proforma.FromProforma(input)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	fmt.Printf("residues: %d\n", seq.GetLength())

	if charge := seq.GetCharge(); charge != nil {
		fmt.Printf("charge: %d\n", *charge)
	}
	if ionic := seq.GetIonicSpecies(); ionic != nil {
		fmt.Printf("ionic species: %s\n", *ionic)
	}

	for pos, mods := range seq.GetMods() {
		for _, mod := range mods {
			fmt.Printf("mod at %s: %s\n", describePosition(pos), mod.GetValue())
		}
	}

	for _, gm := range seq.GetGlobalMods() {
		fmt.Printf("global mod: %s\n", gm.ToProforma())
	}

	for _, amb := range seq.GetSequenceAmbiguities() {
		fmt.Printf("sequence ambiguity before position %d: %s\n", amb.Position, amb.Value)
	}

	return nil
}

func describePosition(pos int) string {
	switch pos {
	case -1:
		return "N-terminus"
	case -2:
		return "C-terminus"
	case -3:
		return "labile"
	case -4:
		return "unknown-position"
	default:
		return fmt.Sprintf("residue %d", pos)
	}
}
