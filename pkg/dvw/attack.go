package dvw

// minAttackFields is the admission gate for an attack combination line.
const minAttackFields = 5

// AttackCombination is one decoded [3ATTACKCOMBINATION] line: a scouted
// attack code and its court semantics.
//
// Positional layout: 0 code, 1 zone, 2 position letter, 3 attack type
// letter, 4 description, 6 color code, 7 position code, 8 set direction
// letter, 9 backrow marker "1". Everything past the admission gate is
// independently optional.
type AttackCombination struct {
	// Code is the combination code scouts type, e.g. "X5" or "V8".
	Code string `json:"code,omitempty"`

	// Zone is the court zone the attack starts from.
	Zone *int `json:"zone,omitempty"`

	// Position is the side of the set: L, R or C.
	Position string `json:"position,omitempty"`

	// Type is the attack tempo letter, e.g. H, Q, M, T.
	Type string `json:"type,omitempty"`

	// Description is the human readable name of the combination.
	Description string `json:"description,omitempty"`

	// ColorCode is the display color the scouting tool assigned.
	ColorCode *int `json:"color_code,omitempty"`

	// PositionCode is the tool's numeric position slot.
	PositionCode *int `json:"position_code,omitempty"`

	// SetDirection is the set direction letter: F, B, P, C or S.
	SetDirection string `json:"set_direction,omitempty"`

	// Backrow marks a backrow attack.
	Backrow bool `json:"backrow,omitempty"`

	// Raw preserves the undecoded token sequence of the line.
	Raw []string `json:"raw_data,omitempty"`
}

// decodeAttacks extracts the attack combination table.
func decodeAttacks(doc string) []AttackCombination {
	var combos []AttackCombination
	for _, line := range sectionLines(doc, markerAttacks, attackTerminators) {
		if combo, ok := decodeAttack(splitFields(line)); ok {
			combos = append(combos, combo)
		}
	}
	return combos
}

// decodeAttack maps one line to an AttackCombination. Lines below the
// admission gate yield no record.
func decodeAttack(f Fields) (AttackCombination, bool) {
	if f.Len() < minAttackFields {
		return AttackCombination{}, false
	}
	return AttackCombination{
		Code:         f.At(0),
		Zone:         asInt(f.At(1)),
		Position:     f.At(2),
		Type:         f.At(3),
		Description:  f.At(4),
		ColorCode:    asInt(f.At(6)),
		PositionCode: asInt(f.At(7)),
		SetDirection: f.At(8),
		Backrow:      asFlag(f.At(9), "1"),
		Raw:          f.Raw(),
	}, true
}
