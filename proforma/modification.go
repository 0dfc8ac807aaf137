package proforma

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Modification represents a peptide modification with support for various ProForma 2.0 features
// including crosslinks, branches, ambiguity groups, and localization scores.
type Modification struct {
	BaseBlock
	source            *string
	originalValue     string
	crosslinkID       *string
	isCrosslinkRef    bool
	isBranchRef       bool
	isBranch          bool
	isAmbiguityRef    bool
	ambiguityGroup    *string
	inRange           bool
	rangeStart        *int
	rangeEnd          *int
	localizationScore *float64
	modValue          *ModificationValue

	regex       *regexp.Regexp
	modType     string
	labile      bool
	labilNumber int
	fullName    *string
	allFilled   bool

	// ProForma 2.1: Placement controls (Section 11.2)
	positionConstraint []string // Position:M,C
	limitPerPosition   *int     // Limit:2
	colocalizeKnown    bool     // CoMKP
	colocalizeUnknown  bool     // CoMUP

	// ProForma 2.1: Ion notation (Section 11.6)
	isIonType bool // Indicates if this is an ion type modification (a-type-ion, b-type-ion, etc.)
}

// KnownSources is a set of recognized modification source databases
var KnownSources = map[string]bool{
	"Unimod": true, "U": true, "PSI-MOD": true, "M": true,
	"RESID": true, "R": true, "XL-MOD": true, "X": true,
	"XLMOD": true, "GNO": true, "G": true, "MOD": true,
	"Obs": true, "Formula": true, "FORMULA": true, "GLYCAN": true,
	"Glycan": true, "Info": true, "INFO": true, "OBS": true,
	"XL": true,
}

// ModificationParams groups every field NewModification used to take
// positionally. Grouping them lets the constructor build a Modification in
// named stages (value resolution, mod-type validation, regex compilation)
// instead of one long parameter list.
type ModificationParams struct {
	Value        string
	Position     *int
	RegexPattern *string
	FullName     *string

	ModType     string
	Labile      bool
	LabilNumber int
	Mass        float64
	AllFilled   bool

	CrosslinkID    *string
	IsCrosslinkRef bool
	IsBranchRef    bool
	IsBranch       bool

	AmbiguityGroup    *string
	IsAmbiguityRef    bool
	InRange           bool
	RangeStart        *int
	RangeEnd          *int
	LocalizationScore *float64
	ModValue          *ModificationValue

	// ProForma 2.1 placement controls (Section 11.2)
	PositionConstraint []string
	LimitPerPosition   *int
	ColocalizeKnown    bool
	ColocalizeUnknown  bool

	// ProForma 2.1 ion notation (Section 11.6)
	IsIonType bool
}

var validModTypes = map[string]bool{
	"static": true, "variable": true, "terminal": true, "ambiguous": true,
	"crosslink": true, "branch": true, "gap": true, "labile": true,
	"unknown_position": true, "global": true,
}

// resolveModValue fills in p.ModValue when the caller left it nil, deriving
// the primary value string from the crosslink/ambiguity suffix conventions
// (`value#id`, `value#group(score)`).
func (p *ModificationParams) resolveModValue() *ModificationValue {
	if p.ModValue != nil {
		return p.ModValue
	}
	value := p.Value
	if p.CrosslinkID != nil && !p.IsCrosslinkRef {
		value = value + "#" + *p.CrosslinkID
	}
	if p.AmbiguityGroup != nil && !p.IsAmbiguityRef {
		scoreStr := ""
		if p.LocalizationScore != nil {
			scoreStr = fmt.Sprintf("(%.2f)", *p.LocalizationScore)
		}
		value = value + "#" + *p.AmbiguityGroup + scoreStr
	}
	return NewModificationValue(value, &p.Mass)
}

// resolveModType normalizes a crosslink reference/id to the "crosslink" type
// and panics on any type outside validModTypes, matching the constructor's
// historical strictness.
func resolveModType(modType string, crosslinkID *string, isCrosslinkRef bool) string {
	if (crosslinkID != nil || isCrosslinkRef) && modType != "crosslink" {
		modType = "crosslink"
	}
	if !validModTypes[modType] {
		valid := make([]string, 0, len(validModTypes))
		for k := range validModTypes {
			valid = append(valid, k)
		}
		panic(fmt.Sprintf("mod_type must be one of: %s", strings.Join(valid, ", ")))
	}
	return modType
}

// NewModificationFromParams builds a Modification from a ModificationParams,
// handling crosslink-reference value rewriting, mod-type validation, and
// regex compilation.
func NewModificationFromParams(p ModificationParams) *Modification {
	modValue := p.resolveModValue()

	value := p.Value
	crosslinkID := p.CrosslinkID
	if len(value) > 0 && value[0] == '#' && p.IsCrosslinkRef {
		clID := value[1:]
		crosslinkID = &clID
		value = "#" + clID
	}

	modType := resolveModType(p.ModType, crosslinkID, p.IsCrosslinkRef)

	var re *regexp.Regexp
	if p.RegexPattern != nil {
		re = regexp.MustCompile(*p.RegexPattern)
	}

	mod := &Modification{
		BaseBlock:          NewBaseBlock(value, p.Position, true, &p.Mass),
		originalValue:      p.Value,
		crosslinkID:        crosslinkID,
		isCrosslinkRef:     p.IsCrosslinkRef,
		isBranchRef:        p.IsBranchRef,
		isBranch:           p.IsBranch,
		isAmbiguityRef:     p.IsAmbiguityRef,
		ambiguityGroup:     p.AmbiguityGroup,
		inRange:            p.InRange,
		rangeStart:         p.RangeStart,
		rangeEnd:           p.RangeEnd,
		localizationScore:  p.LocalizationScore,
		modValue:           modValue,
		regex:              re,
		modType:            modType,
		labile:             p.Labile,
		labilNumber:        p.LabilNumber,
		fullName:           p.FullName,
		allFilled:          p.AllFilled,
		positionConstraint: p.PositionConstraint,
		limitPerPosition:   p.LimitPerPosition,
		colocalizeKnown:    p.ColocalizeKnown,
		colocalizeUnknown:  p.ColocalizeUnknown,
		isIonType:          p.IsIonType,
	}

	if modType == "labile" {
		mod.labile = true
	}
	if p.InRange {
		mod.modType = "ambiguous"
	}

	return mod
}

// NewModification creates a new Modification instance with the specified parameters.
// It handles various ProForma 2.0 modification features including crosslinks, branches,
// ambiguity groups, and localization scores. The modType parameter must be one of the
// valid modification types (static, variable, terminal, ambiguous, crosslink, branch,
// gap, labile, unknown_position, global). It is a thin positional wrapper over
// NewModificationFromParams kept for the call sites throughout this package and
// its tests; new callers should prefer ModificationParams directly.
//
// Examples:
//
//	// Simple modification
//	mod := proforma.NewModification("Phospho", nil, nil, nil, "static", false, 0, 79.966331, false,
//		nil, false, false, false, nil, false, false, nil, nil, nil, nil,
//		nil, nil, false, false, false)
//	fmt.Println(mod.GetValue()) // "Phospho"
//
//	// Modification with a mass shift
//	mod = proforma.NewModification("+21.98", nil, nil, nil, "static", false, 0, 21.98, false,
//		nil, false, false, false, nil, false, false, nil, nil, nil, nil,
//		nil, nil, false, false, false)
//	fmt.Println(*mod.GetMass()) // 21.98
//
//	// Terminal modification
//	mod = proforma.NewModification("Acetyl", nil, nil, nil, "terminal", false, 0, 42.011, false,
//		nil, false, false, false, nil, false, false, nil, nil, nil, nil,
//		nil, nil, false, false, false)
//	fmt.Println(mod.GetModType()) // "terminal"
func NewModification(value string, position *int, regexPattern *string, fullName *string,
	modType string, labile bool, labilNumber int, mass float64, allFilled bool,
	crosslinkID *string, isCrosslinkRef bool, isBranchRef bool, isBranch bool,
	ambiguityGroup *string, isAmbiguityRef bool, inRange bool,
	rangeStart, rangeEnd *int, localizationScore *float64, modValue *ModificationValue,
	positionConstraint []string, limitPerPosition *int, colocalizeKnown bool, colocalizeUnknown bool,
	isIonType bool) *Modification {

	return NewModificationFromParams(ModificationParams{
		Value:              value,
		Position:           position,
		RegexPattern:       regexPattern,
		FullName:           fullName,
		ModType:            modType,
		Labile:             labile,
		LabilNumber:        labilNumber,
		Mass:               mass,
		AllFilled:          allFilled,
		CrosslinkID:        crosslinkID,
		IsCrosslinkRef:     isCrosslinkRef,
		IsBranchRef:        isBranchRef,
		IsBranch:           isBranch,
		AmbiguityGroup:     ambiguityGroup,
		IsAmbiguityRef:     isAmbiguityRef,
		InRange:            inRange,
		RangeStart:         rangeStart,
		RangeEnd:           rangeEnd,
		LocalizationScore:  localizationScore,
		ModValue:           modValue,
		PositionConstraint: positionConstraint,
		LimitPerPosition:   limitPerPosition,
		ColocalizeKnown:    colocalizeKnown,
		ColocalizeUnknown:  colocalizeUnknown,
		IsIonType:          isIonType,
	})
}

// GetValue returns the primary value of the modification.
// If a ModificationValue is set, it returns the primary value from that;
// otherwise, it returns the base block value.
func (m *Modification) GetValue() string {
	if m.modValue != nil {
		return m.modValue.GetPrimaryValue()
	}
	return m.BaseBlock.GetValue()
}

// GetMass returns the mass of the modification.
// If a ModificationValue is set, it returns the mass from that;
// otherwise, it returns the base block mass.
func (m *Modification) GetMass() *float64 {
	if m.modValue != nil {
		return m.modValue.GetMass()
	}
	return m.BaseBlock.GetMass()
}

// GetObservedMass returns the observed mass of the modification if available.
// This is only available through the ModificationValue.
func (m *Modification) GetObservedMass() *float64 {
	if m.modValue != nil {
		return m.modValue.GetObservedMass()
	}
	return nil
}

// GetAmbiguityGroup returns the ambiguity group identifier for ambiguous modifications.
func (m *Modification) GetAmbiguityGroup() *string {
	if m.modValue != nil {
		return m.modValue.GetAmbiguityGroup()
	}
	return nil
}

// IsAmbiguityRef returns true if this modification is a reference to an ambiguity group.
func (m *Modification) IsAmbiguityRef() bool {
	if m.modValue != nil {
		return m.modValue.IsAmbiguityRef()
	}
	return m.isAmbiguityRef
}

// GetSynonyms returns all synonyms of the modification value.
func (m *Modification) GetSynonyms() []string {
	return m.modValue.GetSynonyms()
}

// GetModificationValue returns the underlying ModificationValue object.
func (m *Modification) GetModificationValue() *ModificationValue {
	return m.modValue
}

// GetInfoTags returns the list of information tags associated with this modification.
func (m *Modification) GetInfoTags() []string {
	return m.modValue.GetInfoTags()
}

// GetCrosslinkID returns the crosslink identifier if this is a crosslink modification.
func (m *Modification) GetCrosslinkID() *string {
	if m.modValue != nil {
		return m.modValue.GetCrosslinkID()
	}
	return m.crosslinkID
}

// IsCrosslinkRef returns true if this modification is a reference to a crosslink.
func (m *Modification) IsCrosslinkRef() bool {
	if m.modValue != nil {
		return m.modValue.IsCrosslinkRef()
	}
	return m.isCrosslinkRef
}

// GetSource returns the modification database source (e.g., "Unimod", "PSI-MOD").
func (m *Modification) GetSource() *string {
	if m.modValue != nil {
		return m.modValue.GetSource()
	}
	return m.source
}

// GetOriginalValue returns the original modification value including any source prefix.
func (m *Modification) GetOriginalValue() string {
	return m.originalValue
}

// GetRegex returns the compiled regex pattern for finding modification sites in sequences.
func (m *Modification) GetRegex() *regexp.Regexp {
	return m.regex
}

// GetModType returns the modification type (e.g., "static", "variable", "terminal").
func (m *Modification) GetModType() string {
	return m.modType
}

// IsLabile returns true if the modification is labile (can be lost during fragmentation).
func (m *Modification) IsLabile() bool {
	return m.labile
}

// GetLabileNumber returns the labile fragmentation order number.
func (m *Modification) GetLabileNumber() int {
	return m.labilNumber
}

// GetFullName returns the full descriptive name of the modification if available.
func (m *Modification) GetFullName() *string {
	return m.fullName
}

// IsAllFilled returns true if the modification occurs at all expected sites.
func (m *Modification) IsAllFilled() bool {
	return m.allFilled
}

// GetPositionConstraint returns the position constraint (ProForma 2.1)
func (m *Modification) GetPositionConstraint() []string {
	return m.positionConstraint
}

// GetLimitPerPosition returns the limit per position (ProForma 2.1)
func (m *Modification) GetLimitPerPosition() *int {
	return m.limitPerPosition
}

// GetColocalizeKnown returns whether to colocalize with known positions (ProForma 2.1)
func (m *Modification) GetColocalizeKnown() bool {
	return m.colocalizeKnown
}

// GetColocalizeUnknown returns whether to colocalize with unknown positions (ProForma 2.1)
func (m *Modification) GetColocalizeUnknown() bool {
	return m.colocalizeUnknown
}

// IsIonType returns whether this is an ion type modification (ProForma 2.1 Section 11.6)
func (m *Modification) IsIonType() bool {
	return m.isIonType
}

// FindPositions finds positions of the modification in the given sequence
func (m *Modification) FindPositions(seq string) [][]int {
	if m.regex == nil {
		panic(fmt.Sprintf("No regex pattern defined for modification '%s'", m.GetValue()))
	}

	var positions [][]int
	matches := m.regex.FindAllStringSubmatchIndex(seq, -1)

	for _, match := range matches {
		if len(match) > 2 { // Has groups
			for i := 0; i < len(match)/2; i++ {
				start := match[i*2]
				end := match[i*2+1]
				if start >= 0 && end >= 0 {
					positions = append(positions, []int{start, end})
				}
			}
		} else {
			positions = append(positions, []int{match[0], match[1]})
		}
	}

	return positions
}

// ToMap converts the modification to a map representation
func (m *Modification) ToMap() map[string]interface{} {
	result := m.BaseBlock.ToMap()

	var sourceStr *string
	if m.source != nil {
		sourceStr = m.source
	}

	var regexPattern *string
	if m.regex != nil {
		pattern := m.regex.String()
		regexPattern = &pattern
	}

	result["source"] = sourceStr
	result["original_value"] = m.originalValue
	result["regex_pattern"] = regexPattern
	result["full_name"] = m.fullName
	result["mod_type"] = m.modType
	result["labile"] = m.labile
	result["labile_number"] = m.labilNumber
	result["all_filled"] = m.allFilled
	result["crosslink_id"] = m.crosslinkID
	result["is_crosslink_ref"] = m.isCrosslinkRef

	return result
}

// Equal checks if two modifications are equal
func (m *Modification) Equal(other Modification) bool {
	if !m.BaseBlock.Equal(other.BaseBlock) {
		return false
	}

	mHash, err := m.Hash()
	if err != nil {
		return false
	}
	otherHash, err := other.Hash()
	if err != nil {
		return false
	}

	return mHash == otherHash
}

// Hash generates a hash for the modification
func (m *Modification) Hash() (string, error) {
	modMap := m.ToMap()
	jsonData, err := json.Marshal(modMap)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(jsonData)
	return fmt.Sprintf("%x", hash), nil

}

// String returns a string representation of the modification
func (m *Modification) String() string {
	if m.isCrosslinkRef && m.crosslinkID != nil {
		return "#" + *m.crosslinkID
	}
	if m.isBranchRef {
		return "#BRANCH"
	}

	result := m.modValue.ToString()

	if m.crosslinkID != nil && !m.isCrosslinkRef {
		result += "#" + *m.crosslinkID
	}
	if m.isBranch && !m.isBranchRef {
		result += "#BRANCH"
	}
	if m.labile {
		result += fmt.Sprintf("%d", m.labilNumber)
	}

	return result
}

// HasAmbiguity checks if the modification has ambiguity
func (m *Modification) HasAmbiguity() bool {
	for _, v := range m.modValue.GetPipeValues() {
		if v.GetType() == PipeValueTypeAmbiguity {
			return true
		}
	}
	return false
}

// HasCrosslink checks if the modification has crosslink
func (m *Modification) HasCrosslink() bool {
	for _, v := range m.modValue.GetPipeValues() {
		if v.GetType() == PipeValueTypeCrosslink {
			return true
		}
	}
	return false
}

// HasBranch checks if the modification has branch
func (m *Modification) HasBranch() bool {
	for _, v := range m.modValue.GetPipeValues() {
		if v.GetType() == PipeValueTypeBranch {
			return true
		}
	}
	return false
}

// ToProforma converts the modification to ProForma notation string.
//
// Example:
//
//	// Create a new 'Phospho' modification
//	mod := proforma.NewModification("Phospho", nil, nil, nil, "static", false, 0, 79.966331, false,
//		nil, false, false, false, nil, false, false, nil, nil, nil, nil,
//		nil, nil, false, false, false)
//	fmt.Println(mod.ToProforma()) // "Phospho"
func (m *Modification) ToProforma() string {
	if m.modValue == nil {
		return m.BaseBlock.GetValue()
	}

	seen := map[string]bool{}
	var parts []string
	for _, pv := range m.modValue.GetPipeValues() {
		modPart := formatPipeValuePart(pv)
		if _, exists := seen[modPart]; exists || modPart == "" {
			continue
		}
		parts = append(parts, modPart)
		seen[modPart] = true
	}

	parts = append(parts, m.placementControlTags()...)

	return strings.Join(parts, "|")
}

// formatPipeValuePart renders one `|`-delimited segment of a modification's
// ProForma text: a source-qualified or bare mass/value token, followed by any
// crosslink/branch/ambiguity suffix and ProForma 2.1 charge tag.
func formatPipeValuePart(pv *PipeValue) string {
	modPart := formatPipeValueBase(pv)
	modPart += pipeValueSuffix(pv)
	if pv.GetCharge() != nil {
		modPart += ":" + *pv.GetCharge()
	}
	return modPart
}

func formatPipeValueBase(pv *PipeValue) string {
	if pv.GetSource() != nil {
		base := *pv.GetSource() + ":"
		if pv.GetMass() != nil {
			return base + formatSignedMass(*pv.GetMass())
		}
		return base + pv.GetValue()
	}
	if pv.GetMass() != nil {
		return formatSignedMass(*pv.GetMass())
	}
	if pv.GetType() == PipeValueTypeSynonym {
		return pv.GetValue()
	}
	if !strings.Contains(pv.GetValue(), "#") {
		return pv.GetValue()
	}
	return ""
}

// formatSignedMass renders a non-zero mass as "+N"/"-N"; a zero mass renders
// as "", matching the constructor's historical (mass > 0 / mass < 0) branches.
func formatSignedMass(mass float64) string {
	if mass > 0 {
		return fmt.Sprintf("+%g", mass)
	}
	if mass < 0 {
		return fmt.Sprintf("%g", mass)
	}
	return ""
}

func pipeValueSuffix(pv *PipeValue) string {
	switch {
	case pv.GetType() == PipeValueTypeCrosslink && pv.GetCrosslinkID() != nil:
		return "#" + *pv.GetCrosslinkID()
	case pv.GetType() == PipeValueTypeBranch && pv.IsBranch():
		return "#BRANCH"
	case pv.GetType() == PipeValueTypeAmbiguity && pv.GetAmbiguityGroup() != nil:
		scoreStr := ""
		if pv.GetLocalizationScore() != nil {
			scoreStr = fmt.Sprintf("(%.2f)", *pv.GetLocalizationScore())
		}
		return "#" + *pv.GetAmbiguityGroup() + scoreStr
	default:
		return ""
	}
}

// placementControlTags renders the ProForma 2.1 Section 11.2 tags
// (Position/Limit/CoMKP/CoMUP) that trail a modification's pipe values.
func (m *Modification) placementControlTags() []string {
	var tags []string
	if len(m.positionConstraint) > 0 {
		tags = append(tags, "Position:"+strings.Join(m.positionConstraint, ","))
	}
	if m.limitPerPosition != nil {
		tags = append(tags, fmt.Sprintf("Limit:%d", *m.limitPerPosition))
	}
	if m.colocalizeKnown {
		tags = append(tags, "CoMKP")
	}
	if m.colocalizeUnknown {
		tags = append(tags, "CoMUP")
	}
	return tags
}
