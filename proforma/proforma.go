package proforma

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ProFormaParser handles parsing of ProForma 2.0 notation strings.
// It contains compiled regex patterns for efficient parsing of various ProForma elements.
type ProFormaParser struct {
	massShiftPattern    *regexp.Regexp
	crosslinkPattern    *regexp.Regexp
	crosslinkRefPattern *regexp.Regexp
	branchPattern       *regexp.Regexp
	branchRefPattern    *regexp.Regexp
	ambiguityPattern    *regexp.Regexp
	ambiguityRefPattern *regexp.Regexp
}

// NewProFormaParser creates a new ProFormaParser with pre-compiled regex patterns
// for parsing mass shifts, crosslinks, and branches.
func NewProFormaParser() *ProFormaParser {
	return &ProFormaParser{
		massShiftPattern:    regexp.MustCompile(`^[+-]\d+(\.\d+)?$`),
		crosslinkPattern:    regexp.MustCompile(`^([^#]+)#(XL[A-Za-z0-9]+)$`),
		crosslinkRefPattern: regexp.MustCompile(`^#(XL[A-Za-z0-9]+)$`),
		branchPattern:       regexp.MustCompile(`^([^#]+)#BRANCH$`),
		branchRefPattern:    regexp.MustCompile(`^#BRANCH$`),
		ambiguityPattern:    regexp.MustCompile(`(.+?)#([A-Za-z0-9]+)(?:\(([0-9.]+)\))?$`),
		ambiguityRefPattern: regexp.MustCompile(`#([A-Za-z0-9]+)(?:\(([0-9.]+)\))?$`),
	}
}

// ParseProFormaResult contains all parsed components from a ProForma string
// including the base sequence, modifications, global modifications, sequence ambiguities,
// charge state, and ionic species information.
type ParseProFormaResult struct {
	BaseSequence        string
	Modifications       map[string][]*Modification
	GlobalMods          []*GlobalModification
	SequenceAmbiguities []*SequenceAmbiguity
	Charge              *int
	IonicSpecies        *string
}

// ParseProForma parses a ProForma string and returns its basic components.
// This is a convenience function that creates a parser and calls Parse.
func ParseProForma(proformaStr string) (string, map[string][]*Modification, []*GlobalModification, []*SequenceAmbiguity, []*int, error) {
	parser := NewProFormaParser()
	return parser.Parse(proformaStr)
}

// ParseProFormaDetailed parses a ProForma string and returns a structured result
// containing all parsed components including charge and ionic species information.
func ParseProFormaDetailed(proformaStr string) (*ParseProFormaResult, error) {
	parser := NewProFormaParser()
	baseSeq, mods, globalMods, seqAmbig, chargeInfo, err := parser.Parse(proformaStr)
	if err != nil {
		return nil, err
	}

	result := &ParseProFormaResult{
		BaseSequence:        baseSeq,
		Modifications:       mods,
		GlobalMods:          globalMods,
		SequenceAmbiguities: seqAmbig,
	}

	if len(chargeInfo) > 0 {
		result.Charge = chargeInfo[0]
	}

	if strings.Contains(proformaStr, "/") {
		chargeInfoResult, err := parser.parseChargeInfo(proformaStr)
		if err == nil && len(chargeInfoResult) > 2 {
			if species, ok := chargeInfoResult[2].(*string); ok {
				result.IonicSpecies = species
			}
		}
	}

	return result, nil
}

// modBucket accumulates modifications keyed by position. Negative keys hold
// the terminal/labile/unknown-position buckets (-1 N-term, -2 C-term, -3
// labile, -4 unknown-position); non-negative keys index a residue.
type modBucket struct {
	byPosition map[string][]*Modification
}

func newModBucket() *modBucket {
	return &modBucket{byPosition: make(map[string][]*Modification)}
}

func (b *modBucket) at(pos int) []*Modification {
	key := strconv.Itoa(pos)
	if b.byPosition[key] == nil {
		b.byPosition[key] = make([]*Modification, 0)
	}
	return b.byPosition[key]
}

func (b *modBucket) append(pos int, mod *Modification) {
	key := strconv.Itoa(pos)
	b.byPosition[key] = append(b.at(pos), mod)
}

// Parse parses a ProForma string into its constituent parts and returns the base sequence,
// modifications map, global modifications, sequence ambiguities, and charge information.
// This is the main parsing method that handles all ProForma 2.0 notation elements, one
// phase per ProForma region: global mods, unknown-position mods, labile mods, N-terminal
// mods, charge/ionic species, C-terminal mods, and finally the main residue walk.
func (p *ProFormaParser) Parse(proformaStr string) (string, map[string][]*Modification, []*GlobalModification, []*SequenceAmbiguity, []*int, error) {
	mods := newModBucket()

	proformaStr, globalMods, err := p.parseGlobalMods(proformaStr)
	if err != nil {
		return "", nil, nil, nil, nil, err
	}

	proformaStr, err = p.parseUnknownPositionMods(proformaStr, mods)
	if err != nil {
		return "", nil, nil, nil, nil, err
	}

	proformaStr, err = p.parseLabileMods(proformaStr, mods)
	if err != nil {
		return "", nil, nil, nil, nil, err
	}

	proformaStr = p.parseNTerminalMods(proformaStr, mods)

	chargeInfo, err := p.parseChargeInfo(proformaStr)
	if err != nil {
		return "", nil, nil, nil, nil, err
	}
	proformaStr = chargeInfo[0].(string)

	proformaStr = p.parseCTerminalMods(proformaStr, mods)

	baseSequence, sequenceAmbiguities, err := p.parseMainWalk(proformaStr, mods)
	if err != nil {
		return "", nil, nil, nil, nil, err
	}

	var chargeInfoResult []*int
	if len(chargeInfo) > 1 {
		if charge, ok := chargeInfo[1].(*int); ok && charge != nil {
			chargeInfoResult = append(chargeInfoResult, charge)
		} else {
			chargeInfoResult = append(chargeInfoResult, nil)
		}
	}

	return baseSequence, mods.byPosition, globalMods, sequenceAmbiguities, chargeInfoResult, nil
}

// parseGlobalMods strips every leading <...> block, classifying each as a
// fixed protein modification (body@targets) or an isotope-labeling directive.
func (p *ProFormaParser) parseGlobalMods(proformaStr string) (string, []*GlobalModification, error) {
	globalMods := make([]*GlobalModification, 0)

	for strings.HasPrefix(proformaStr, "<") {
		endBracket := strings.Index(proformaStr, ">")
		if endBracket == -1 {
			return "", nil, newParseError(ErrUnclosedAngle, 0, "unclosed global modification angle bracket")
		}

		globalModStr := proformaStr[1:endBracket]
		proformaStr = proformaStr[endBracket+1:]

		if strings.Contains(globalModStr, "@") {
			parts := strings.Split(globalModStr, "@")
			if len(parts) != 2 {
				return "", nil, newParseError(ErrUnclosedAngle, 0, "invalid global modification format: expected modBody@targets")
			}

			modPart, targets := parts[0], parts[1]
			modValue := modPart

			if strings.HasPrefix(modPart, "[") && strings.HasSuffix(modPart, "]") {
				modValue = modPart[1 : len(modPart)-1]
			}

			targetResidues := strings.Split(targets, ",")
			globalMods = append(globalMods, NewGlobalModification(modValue, targetResidues, "fixed"))
		} else {
			globalMods = append(globalMods, NewGlobalModification(globalModStr, nil, "isotope"))
		}
	}

	return proformaStr, globalMods, nil
}

// parseUnknownPositionMods consumes a leading run of [mod]...[mod]? block
// (optionally repeated via ^N) and records each occurrence at bucket -4.
// A leading bracket run not followed by '?' is left in place.
func (p *ProFormaParser) parseUnknownPositionMods(proformaStr string, mods *modBucket) (string, error) {
	if !strings.Contains(proformaStr, "?") {
		return proformaStr, nil
	}

	i := 0
	var unknownPosMods []string
	proformaRunes := []rune(proformaStr)

	for i < len(proformaRunes) {
		if proformaRunes[i] != '[' {
			if len(unknownPosMods) > 0 && i < len(proformaRunes) && proformaRunes[i] == '?' {
				for _, modStr := range unknownPosMods {
					mod := p.createModification(modStr, map[string]interface{}{"isUnknownPosition": true})
					mods.append(-4, mod)
				}
				return string(proformaRunes[i+1:]), nil
			}
			break
		}

		bracketCount := 1
		j := i + 1
		for j < len(proformaRunes) && bracketCount > 0 {
			if proformaRunes[j] == '[' {
				bracketCount++
			} else if proformaRunes[j] == ']' {
				bracketCount--
			}
			j++
		}

		if bracketCount > 0 {
			return "", newParseError(ErrUnclosedSquare, i, "unclosed bracket in unknown-position modification")
		}

		modStr := string(proformaRunes[i+1 : j-1])

		count := 1
		if j < len(proformaRunes) && proformaRunes[j] == '^' {
			j++
			numStart := j
			for j < len(proformaRunes) && proformaRunes[j] >= '0' && proformaRunes[j] <= '9' {
				j++
			}
			if j > numStart {
				var err error
				count, err = strconv.Atoi(string(proformaRunes[numStart:j]))
				if err != nil {
					count = 1
				}
			}
		}

		for k := 0; k < count; k++ {
			unknownPosMods = append(unknownPosMods, modStr)
		}
		i = j
	}

	return proformaStr, nil
}

// parseLabileMods consumes a leading run of {Glycan:...} blocks, recording
// each at bucket -3.
func (p *ProFormaParser) parseLabileMods(proformaStr string, mods *modBucket) (string, error) {
	i := 0
	for i < len(proformaStr) && proformaStr[i] == '{' {
		j := strings.Index(proformaStr[i:], "}")
		if j == -1 {
			return "", newParseError(ErrUnclosedCurly, i, "unclosed curly brace")
		}
		j += i

		modStr := proformaStr[i+1 : j]
		if !strings.HasPrefix(modStr, "Glycan:") {
			return "", newParseError(ErrMalformedLabile, i, fmt.Sprintf("labile modification must start with 'Glycan:', found: %s", modStr))
		}

		mod := p.createModification(modStr, map[string]interface{}{"isLabile": true})
		mods.append(-3, mod)
		i = j + 1
	}

	return proformaStr[i:], nil
}

// parseNTerminalMods consumes a leading [mod][mod]- block, recording each
// bracket at bucket -1. Never errors: a malformed N-term block is left in
// place for the main walk to reject or consume as residue-level notation.
func (p *ProFormaParser) parseNTerminalMods(proformaStr string, mods *modBucket) string {
	if !strings.HasPrefix(proformaStr, "[") {
		return proformaStr
	}

	bracketLevel := 0
	terminatorPos := -1

	for i, char := range proformaStr {
		switch char {
		case '[':
			bracketLevel++
		case ']':
			bracketLevel--
		case '-':
			if bracketLevel == 0 {
				terminatorPos = i
				break
			}
		}
		if terminatorPos != -1 {
			break
		}
	}

	if terminatorPos == -1 {
		return proformaStr
	}

	nTerminalPart := proformaStr[:terminatorPos]
	remainder := proformaStr[terminatorPos+1:]

	currentPos := 0
	for currentPos < len(nTerminalPart) {
		if nTerminalPart[currentPos] == '[' {
			bracketDepth := 1
			endPos := currentPos + 1

			for endPos < len(nTerminalPart) && bracketDepth > 0 {
				if nTerminalPart[endPos] == '[' {
					bracketDepth++
				}
				if nTerminalPart[endPos] == ']' {
					bracketDepth--
				}
				endPos++
			}

			if bracketDepth == 0 {
				modString := nTerminalPart[currentPos+1 : endPos-1]
				nTermMod := p.createModification(modString, map[string]interface{}{"isTerminal": true})
				mods.append(-1, nTermMod)
			}

			currentPos = endPos
		} else {
			currentPos++
		}
	}

	return remainder
}

// parseCTerminalMods consumes a trailing -[mod][mod] block scanned from the
// right, recording each bracket at bucket -2. Never errors, for the same
// reason parseNTerminalMods never does.
func (p *ProFormaParser) parseCTerminalMods(proformaStr string, mods *modBucket) string {
	if !strings.Contains(proformaStr, "-") {
		return proformaStr
	}

	bracketLevel := 0
	terminatorPos := -1

	proformaRunes := []rune(proformaStr)
	for i := len(proformaRunes) - 1; i >= 0; i-- {
		switch proformaRunes[i] {
		case ']':
			bracketLevel++
		case '[':
			bracketLevel--
		case '-':
			if bracketLevel == 0 {
				terminatorPos = i
				break
			}
		}
		if terminatorPos != -1 {
			break
		}
	}

	if terminatorPos == -1 {
		return proformaStr
	}

	cTerminalPart := string(proformaRunes[terminatorPos+1:])
	remainder := string(proformaRunes[:terminatorPos])

	currentPos := 0
	for currentPos < len(cTerminalPart) {
		if cTerminalPart[currentPos] == '[' {
			bracketDepth := 1
			endPos := currentPos + 1

			for endPos < len(cTerminalPart) && bracketDepth > 0 {
				if cTerminalPart[endPos] == '[' {
					bracketDepth++
				}
				if cTerminalPart[endPos] == ']' {
					bracketDepth--
				}
				endPos++
			}

			if bracketDepth == 0 {
				modString := cTerminalPart[currentPos+1 : endPos-1]
				cTermMod := p.createModification(modString, map[string]interface{}{"isTerminal": true})
				mods.append(-2, cTermMod)
			}

			currentPos = endPos
		} else {
			currentPos++
		}
	}

	return remainder
}

// parseMainWalk walks the remaining residue-level notation left to right,
// handling sequence-ambiguity groups (?alt), ranges (...)[mod], per-residue
// [mod]/{mod} brackets, and gap residues, appending to baseSequence and mods
// as it goes.
func (p *ProFormaParser) parseMainWalk(proformaStr string, mods *modBucket) (string, []*SequenceAmbiguity, error) {
	baseSequence := ""
	sequenceAmbiguities := make([]*SequenceAmbiguity, 0)
	nextModIsGap := false
	var rangeStack []int

	i := 0
	for i < len(proformaStr) {
		char := proformaStr[i]

		if i+1 < len(proformaStr) && proformaStr[i:i+2] == "(?" {
			closingParen := strings.Index(proformaStr[i+2:], ")")
			if closingParen == -1 {
				return "", nil, newParseError(ErrUnclosedParen, i, "unclosed sequence ambiguity parenthesis")
			}
			closingParen += i + 2

			ambiguousSeq := proformaStr[i+2 : closingParen]
			sequenceAmbiguities = append(sequenceAmbiguities, NewSequenceAmbiguity(ambiguousSeq, len(baseSequence)))

			i = closingParen + 1
			continue
		}

		switch char {
		case '(':
			rangeStack = append(rangeStack, len(baseSequence))
			i++
			continue

		case ')':
			if len(rangeStack) == 0 {
				return "", nil, newParseError(ErrUnmatchedCloseParen, i, "unmatched closing parenthesis")
			}

			rangeStart := rangeStack[len(rangeStack)-1]
			rangeStack = rangeStack[:len(rangeStack)-1]
			rangeEnd := len(baseSequence) - 1

			j := i + 1
			for j < len(proformaStr) && proformaStr[j] == '[' {
				modStart := j
				bracketCount := 1
				j++

				for j < len(proformaStr) && bracketCount > 0 {
					if proformaStr[j] == '[' {
						bracketCount++
					} else if proformaStr[j] == ']' {
						bracketCount--
					}
					j++
				}

				if bracketCount == 0 {
					modStr := proformaStr[modStart+1 : j-1]
					mod := p.createModification(modStr, map[string]interface{}{
						"inRange":    true,
						"rangeStart": rangeStart,
						"rangeEnd":   rangeEnd,
					})

					for pos := rangeStart; pos <= rangeEnd; pos++ {
						mods.append(pos, mod)
					}
				}
			}
			i = j

		case '[':
			bracketCount := 1
			j := i + 1
			for j < len(proformaStr) && bracketCount > 0 {
				if proformaStr[j] == '[' {
					bracketCount++
				} else if proformaStr[j] == ']' {
					bracketCount--
				}
				j++
			}

			if bracketCount > 0 {
				return "", nil, newParseError(ErrUnclosedSquare, i, "unclosed square bracket")
			}

			modStr := proformaStr[i+1 : j-1]
			var mod *Modification

			switch {
			case nextModIsGap:
				mod = p.createModification(modStr, map[string]interface{}{"isGap": true})
				nextModIsGap = false
			case p.crosslinkRefPattern.MatchString(modStr):
				mod = p.createModification(modStr, map[string]interface{}{"isCrosslinkRef": true})
			case p.branchRefPattern.MatchString(modStr):
				mod = p.createModification(modStr, map[string]interface{}{"isBranchRef": true})
			default:
				if matches := p.crosslinkPattern.FindStringSubmatch(modStr); matches != nil {
					mod = p.createModification(modStr, map[string]interface{}{"crosslinkId": matches[2]})
				} else if matches := p.branchPattern.FindStringSubmatch(modStr); matches != nil {
					mod = p.createModification(modStr, map[string]interface{}{"isBranch": true})
				} else {
					mod = p.createModification(modStr, nil)
				}
			}

			if len(baseSequence) > 0 {
				mods.append(len(baseSequence)-1, mod)
			}

			i = j

		case '{':
			j := strings.Index(proformaStr[i:], "}")
			if j == -1 {
				return "", nil, newParseError(ErrUnclosedCurly, i, "unclosed curly brace")
			}
			j += i

			modStr := proformaStr[i+1 : j]
			mod := p.createModification(modStr, map[string]interface{}{"isAmbiguous": true})

			if len(baseSequence) > 0 {
				mods.append(len(baseSequence)-1, mod)
			}

			i = j + 1

		default:
			baseSequence += string(char)
			isGap := char == 'X' && i+1 < len(proformaStr) && proformaStr[i+1] == '['
			if isGap {
				nextModIsGap = true
			}
			i++
		}
	}

	if len(rangeStack) > 0 {
		return "", nil, newParseError(ErrUnclosedParen, i, "unclosed range parenthesis")
	}

	return baseSequence, sequenceAmbiguities, nil
}

// createModification classifies a bracket's interior string into the right
// Modification shape: a literal mass shift, an ambiguity group (declaration
// or reference), or a plain/terminal/labile/crosslink/branch/gap modifier.
func (p *ProFormaParser) createModification(modStr string, options map[string]interface{}) *Modification {
	flags := readModOptions(options)

	modValue := NewModificationValue(modStr, nil)
	modType := classifyModType(flags)

	if p.massShiftPattern.MatchString(modStr) && !strings.Contains(modStr, "#") {
		return p.createMassShiftModification(modStr, flags)
	}

	if mod := p.createAmbiguityModification(modStr, flags, modValue); mod != nil {
		return mod
	}

	isIonType := false
	switch strings.ToLower(modStr) {
	case "a-type-ion", "b-type-ion", "c-type-ion", "x-type-ion", "y-type-ion", "z-type-ion",
		"unimod:140", "unimod:2132", "unimod:4", "unimod:24", "unimod:2133", "unimod:23",
		"u:140", "u:2132", "u:4", "u:24", "u:2133", "u:23":
		isIonType = true
	}

	return NewModification(modStr, nil, nil, nil, modType, flags.isLabile, 0, 0.0, false,
		flags.crosslinkID, flags.isCrosslinkRef, flags.isBranchRef, flags.isBranch, nil, false,
		flags.inRange, flags.rangeStart, flags.rangeEnd, nil, modValue,
		nil, nil, false, false, isIonType,
	)
}

// modOptions is the decoded form of createModification's loosely-typed
// options map.
type modOptions struct {
	isTerminal        bool
	isAmbiguous       bool
	isLabile          bool
	isUnknownPosition bool
	crosslinkID       *string
	isCrosslinkRef    bool
	isBranch          bool
	isBranchRef       bool
	isGap             bool
	inRange           bool
	rangeStart        *int
	rangeEnd          *int
}

func readModOptions(options map[string]interface{}) modOptions {
	var f modOptions
	if options == nil {
		return f
	}

	if v, ok := options["isTerminal"].(bool); ok {
		f.isTerminal = v
	}
	if v, ok := options["isAmbiguous"].(bool); ok {
		f.isAmbiguous = v
	}
	if v, ok := options["isLabile"].(bool); ok {
		f.isLabile = v
	}
	if v, ok := options["isUnknownPosition"].(bool); ok {
		f.isUnknownPosition = v
	}
	if v, ok := options["crosslinkId"].(string); ok {
		f.crosslinkID = &v
	}
	if v, ok := options["isCrosslinkRef"].(bool); ok {
		f.isCrosslinkRef = v
	}
	if v, ok := options["isBranch"].(bool); ok {
		f.isBranch = v
	}
	if v, ok := options["isBranchRef"].(bool); ok {
		f.isBranchRef = v
	}
	if v, ok := options["isGap"].(bool); ok {
		f.isGap = v
	}
	if v, ok := options["inRange"].(bool); ok {
		f.inRange = v
	}
	if v, ok := options["rangeStart"].(int); ok {
		f.rangeStart = &v
	}
	if v, ok := options["rangeEnd"].(int); ok {
		f.rangeEnd = &v
	}
	return f
}

func classifyModType(f modOptions) string {
	switch {
	case f.isTerminal:
		return "terminal"
	case f.isAmbiguous:
		return "ambiguous"
	case f.isLabile:
		return "labile"
	case f.isUnknownPosition:
		return "unknown_position"
	case f.crosslinkID != nil || f.isCrosslinkRef:
		return "crosslink"
	case f.isBranch || f.isBranchRef:
		return "branch"
	case f.isGap:
		return "gap"
	default:
		return "static"
	}
}

func (p *ProFormaParser) createMassShiftModification(modStr string, f modOptions) *Modification {
	massValue, _ := strconv.ParseFloat(modStr, 64)
	modValueForMassShift := NewModificationValue("Mass:"+modStr, &massValue)

	switch {
	case f.isGap:
		return NewModification(modStr, nil, nil, nil, "gap", false, 0, massValue, false,
			nil, false, false, false, nil, false, f.inRange, f.rangeStart, f.rangeEnd, nil, modValueForMassShift,
			nil, nil, false, false, false,
	)
	case f.inRange:
		return NewModification(modStr, nil, nil, nil, "variable", false, 0, massValue, false,
			nil, false, false, false, nil, false, true, f.rangeStart, f.rangeEnd, nil, modValueForMassShift,
			nil, nil, false, false, false,
	)
	default:
		return NewModification("Mass:"+modStr, nil, nil, nil, "static", false, 0, massValue, false,
			nil, false, false, false, nil, false, f.inRange, f.rangeStart, f.rangeEnd, nil, modValueForMassShift,
			nil, nil, false, false, false,
	)
	}
}

// createAmbiguityModification recognizes a trailing #group or #group(score)
// suffix and returns either an ambiguity declaration or a bare reference to
// one. Returns nil when modStr carries no ambiguity suffix (or the suffix
// belongs to a crosslink/branch, which createModification has already ruled
// out via the flags it passes in).
func (p *ProFormaParser) createAmbiguityModification(modStr string, f modOptions, modValue *ModificationValue) *Modification {
	if !strings.Contains(modStr, "#") || f.isCrosslinkRef || f.isBranch || f.isBranchRef || f.crosslinkID != nil {
		return nil
	}

	if matches := p.ambiguityPattern.FindStringSubmatch(modStr); matches != nil && !strings.HasPrefix(matches[2], "XL") {
		baseModStr := matches[1]
		ambiguityGroup := matches[2]
		localizationScore := parseOptionalScore(matches, 3)

		return NewModification(baseModStr, nil, nil, nil, "ambiguous", false, 0, 0.0, false,
			nil, false, false, false, &ambiguityGroup, false, f.inRange, f.rangeStart, f.rangeEnd, localizationScore, modValue,
			nil, nil, false, false, false,
	)
	}

	if matches := p.ambiguityRefPattern.FindStringSubmatch(modStr); matches != nil && !strings.HasPrefix(matches[1], "XL") {
		ambiguityGroup := matches[1]
		localizationScore := parseOptionalScore(matches, 2)

		return NewModification("", nil, nil, nil, "ambiguous", false, 0, 0.0, false,
			nil, false, false, false, &ambiguityGroup, true, f.inRange, f.rangeStart, f.rangeEnd, localizationScore, modValue,
			nil, nil, false, false, false,
	)
	}

	return nil
}

func parseOptionalScore(matches []string, group int) *float64 {
	if len(matches) <= group || matches[group] == "" {
		return nil
	}
	score, err := strconv.ParseFloat(matches[group], 64)
	if err != nil {
		return nil
	}
	return &score
}

// parseChargeInfo parses charge information from a ProForma string.
// Returns the modified string (without charge info), charge value, and ionic species.
func (p *ProFormaParser) parseChargeInfo(proformaStr string) ([]interface{}, error) {
	if !strings.Contains(proformaStr, "/") {
		return []interface{}{proformaStr, nil, nil}, nil
	}

	chargePos := -1
	bracketLevel := 0
	for i, char := range proformaStr {
		switch char {
		case '[', '(':
			bracketLevel++
		case ']', ')':
			bracketLevel--
		case '/':
			if bracketLevel == 0 {
				chargePos = i
				break
			}
		}
		if chargePos != -1 {
			break
		}
	}

	if chargePos == -1 {
		return []interface{}{proformaStr, nil, nil}, nil
	}

	beforeCharge := proformaStr[:chargePos]
	afterCharge := proformaStr[chargePos+1:]

	i := 0
	sign := 1

	if i < len(afterCharge) && afterCharge[i] == '-' {
		sign = -1
		i++
	}

	startDigit := i
	for i < len(afterCharge) && afterCharge[i] >= '0' && afterCharge[i] <= '9' {
		i++
	}

	if startDigit == i {
		return []interface{}{proformaStr, nil, nil}, nil
	}

	chargeValue, err := strconv.Atoi(afterCharge[startDigit:i])
	if err != nil {
		return []interface{}{proformaStr, nil, nil}, nil
	}
	chargeValue *= sign

	remaining := afterCharge[i:]
	var ionicSpecies *string

	if len(remaining) > 0 && remaining[0] == '[' {
		bracketLevel := 1
		endPos := 0

		for j := 1; j < len(remaining); j++ {
			if remaining[j] == '[' {
				bracketLevel++
			} else if remaining[j] == ']' {
				bracketLevel--
			}

			if bracketLevel == 0 {
				endPos = j
				break
			}
		}

		if endPos > 0 {
			species := remaining[1:endPos]
			ionicSpecies = &species
			remaining = remaining[endPos+1:]
		}
	}

	resultStr := beforeCharge
	if len(remaining) > 0 {
		resultStr += remaining
	}

	return []interface{}{resultStr, &chargeValue, ionicSpecies}, nil
}
