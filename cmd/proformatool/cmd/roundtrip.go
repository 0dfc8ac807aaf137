package cmd

import (
	"fmt"

	"github.com/noatgnu/proforma-go/proforma"
	"github.com/spf13/cobra"
)

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip [proforma-string]",
	Short: "Parse then re-serialize a ProForma string, reporting any drift",
	Long: `Parse a ProForma string, serialize it back via the canonical writer,
and print both forms. Exits non-zero if parsing and serializing the output
once more does not reproduce the output (a fixpoint check on the output,
not a comparison with the input, since two distinct inputs can share one
canonical form).`,
	Args: cobra.ExactArgs(1),
	RunE: runRoundtrip,
}

func runRoundtrip(cmd *cobra.Command, args []string) error {
	input := args[0]

	seq, err := proforma.FromProforma(input)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	out := seq.ToProforma()

	reparsed, err := proforma.FromProforma(out)
	if err != nil {
		return fmt.Errorf("re-parse of serialized output failed: %w", err)
	}
	fixpoint := reparsed.ToProforma()

	fmt.Printf("input:  %s\n", input)
	fmt.Printf("output: %s\n", out)

	if out != fixpoint {
		return fmt.Errorf("serialization is not a fixpoint: re-serializing %q produced %q", out, fixpoint)
	}

	logger.Debugw("roundtrip stable", "output", out)
	return nil
}
