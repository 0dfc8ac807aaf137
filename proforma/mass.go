package proforma

import "fmt"

// MassTable resolves a mass override for a residue code or modification
// identifier that carries no mass of its own (§4.6, §7 MissingMass). It is
// satisfied by *moddb.ModDatabase (see internal/moddb) so that CalculateMass
// can be handed a caller-supplied override table without this package
// depending on storage or CLI concerns.
type MassTable interface {
	GetMass(name string) (float64, bool)
}

// FragmentType names one side of a b/y, a/x, or c/z fragment pair.
type FragmentType string

const (
	FragmentB FragmentType = "b"
	FragmentY FragmentType = "y"
	FragmentA FragmentType = "a"
	FragmentX FragmentType = "x"
	FragmentC FragmentType = "c"
	FragmentZ FragmentType = "z"
)

// transitionPairs maps a two-letter transition name to its (N-terminal,
// C-terminal) fragment type pair.
var transitionPairs = map[string][2]FragmentType{
	"by": {FragmentB, FragmentY},
	"ax": {FragmentA, FragmentX},
	"cz": {FragmentC, FragmentZ},
}

// Fragment is one ion of a b/y, a/x, or c/z pair: a prefix or suffix slice
// of the parent peptidoform carrying its own fragment number.
type Fragment struct {
	Type   FragmentType
	Number int
	Start  int // inclusive residue index, within the parent Sequence
	End    int // exclusive residue index
	Mass   float64
}

// FragmentPair is one (left, right) split of the parent peptidoform at a
// single backbone position.
type FragmentPair struct {
	Left  Fragment
	Right Fragment
}

// residueMass resolves the mass of a single residue, consulting table when
// the residue carries none of its own.
func residueMass(aa *AminoAcid, table MassTable) (float64, error) {
	if m := aa.GetMass(); m != nil {
		return *m, nil
	}
	if table != nil {
		if m, ok := table.GetMass(aa.GetValue()); ok {
			return m, nil
		}
	}
	return 0, newMissingMassError(aa.GetValue())
}

// modMass resolves the mass of a single modification, consulting table when
// the modification carries none of its own.
func modMass(mod *Modification, table MassTable) (float64, error) {
	if m := mod.GetMass(); m != nil {
		return *m, nil
	}
	if table != nil {
		if m, ok := table.GetMass(mod.GetValue()); ok {
			return m, nil
		}
	}
	return 0, newMissingMassError(mod.GetValue())
}

// CalculateMass sums residue masses and all attached modification masses for
// a Sequence, per §4.6. nTerm and cTerm are scalar offsets (e.g. H and OH
// contributions folded separately from withWater); withWater adds 2*H + O.
// Fails with a *MassError wrapping MissingMass if any residue or
// modification lacks both an intrinsic mass and a table entry.
func CalculateMass(seq *Sequence, table MassTable, nTerm, cTerm float64, withWater bool) (float64, error) {
	total := nTerm + cTerm

	for _, aa := range seq.GetSeq() {
		m, err := residueMass(aa, table)
		if err != nil {
			return 0, err
		}
		total += m

		for _, mod := range aa.GetMods() {
			mm, err := modMass(mod, table)
			if err != nil {
				return 0, err
			}
			total += mm
		}
	}

	for _, key := range []int{-1, -2, -3, -4} {
		for _, mod := range seq.GetMods()[key] {
			mm, err := modMass(mod, table)
			if err != nil {
				return 0, err
			}
			total += mm
		}
	}

	if withWater {
		total += 2*H + O
	}

	return total, nil
}

// MZ computes the mass-to-charge ratio of a neutral mass at the given
// charge, using the proton-weighted formula of §6.
func MZ(mass float64, charge int) (float64, error) {
	if charge == 0 {
		return 0, fmt.Errorf("proforma: charge must be non-zero to compute m/z")
	}
	return (mass + float64(charge)*Proton) / float64(charge), nil
}

// FragmentPairs generates the b/y, a/x, or c/z fragment-ion pairs for a
// peptidoform, one pair per backbone position i in [1, n).
func FragmentPairs(seq *Sequence, transition string, table MassTable) ([]FragmentPair, error) {
	types, ok := transitionPairs[transition]
	if !ok {
		return nil, fmt.Errorf("proforma: unknown fragment transition %q, want one of by, ax, cz", transition)
	}

	residues := seq.GetSeq()
	n := len(residues)
	pairs := make([]FragmentPair, 0, n-1)

	for i := 1; i < n; i++ {
		leftMass, err := partialMass(residues[:i], table)
		if err != nil {
			return nil, err
		}
		rightMass, err := partialMass(residues[i:], table)
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, FragmentPair{
			Left:  Fragment{Type: types[0], Number: i, Start: 0, End: i, Mass: leftMass},
			Right: Fragment{Type: types[1], Number: n - i, Start: i, End: n, Mass: rightMass},
		})
	}

	return pairs, nil
}

func partialMass(residues []*AminoAcid, table MassTable) (float64, error) {
	var total float64
	for _, aa := range residues {
		m, err := residueMass(aa, table)
		if err != nil {
			return 0, err
		}
		total += m
		for _, mod := range aa.GetMods() {
			mm, err := modMass(mod, table)
			if err != nil {
				return 0, err
			}
			total += mm
		}
	}
	return total, nil
}
