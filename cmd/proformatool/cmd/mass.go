package cmd

import (
	"fmt"

	"github.com/noatgnu/proforma-go/proforma"
	"github.com/spf13/cobra"
)

var (
	massCharge    int
	massNoWater   bool
	massTransition string
)

var massCmd = &cobra.Command{
	Use:   "mass [proforma-string]",
	Short: "Calculate the neutral mass and m/z of a ProForma peptidoform",
	Long: `Calculate the monoisotopic neutral mass of a ProForma peptidoform, and
its m/z at the given charge. Residues and modifications without an
intrinsic mass are resolved against the --mod-table/--mod-db override
table, falling back to the built-in Unimod defaults.

Pass --fragments by,ax,cz to also print the b/y, a/x, or c/z fragment-ion
ladder.`,
	Args: cobra.ExactArgs(1),
	RunE: runMass,
}

func init() {
	massCmd.Flags().IntVarP(&massCharge, "charge", "z", 1, "charge state for m/z calculation")
	massCmd.Flags().BoolVar(&massNoWater, "no-water", false, "omit the terminal water mass (2*H + O)")
	massCmd.Flags().StringVar(&massTransition, "fragments", "", "fragment transition to print: by, ax, or cz")
}

func runMass(cmd *cobra.Command, args []string) error {
	input := args[0]

	seq, err := proforma.FromProforma(input)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	table, err := loadModTable()
	if err != nil {
		return err
	}

	neutral, err := proforma.CalculateMass(seq, table, 0, 0, !massNoWater)
	if err != nil {
		return fmt.Errorf("mass calculation failed: %w", err)
	}
	fmt.Printf("neutral mass: %.6f\n", neutral)

	mz, err := proforma.MZ(neutral, massCharge)
	if err != nil {
		return err
	}
	fmt.Printf("m/z (z=%d): %.6f\n", massCharge, mz)

	if massTransition != "" {
		pairs, err := proforma.FragmentPairs(seq, massTransition, table)
		if err != nil {
			return err
		}
		for _, p := range pairs {
			fmt.Printf("%s%d: %.6f   %s%d: %.6f\n",
				p.Left.Type, p.Left.Number, p.Left.Mass,
				p.Right.Type, p.Right.Number, p.Right.Mass)
		}
	}

	return nil
}
