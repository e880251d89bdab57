package dvw

// minSetterCallFields is the admission gate for a setter call line.
const minSetterCallFields = 3

// SetterCall is one decoded [3SETTERCALL] line: a setter distribution
// call and the zones it involves.
//
// Positional layout: 0 code, 2 description, 4 color code, 5-7 position
// numbers, 8 comma-separated additional codes.
type SetterCall struct {
	// Code is the call code, e.g. "K1" or "KM".
	Code string `json:"code,omitempty"`

	// Description is the human readable name of the call.
	Description string `json:"description,omitempty"`

	// ColorCode is the display color the scouting tool assigned.
	ColorCode *int `json:"color_code,omitempty"`

	// Positions are up to three court positions involved in the call,
	// in file order. Absent positions are nil.
	Positions [3]*int `json:"positions"`

	// AdditionalCodes lists the extra codes attached to the call.
	AdditionalCodes []string `json:"additional_codes,omitempty"`

	// Raw preserves the undecoded token sequence of the line.
	Raw []string `json:"raw_data,omitempty"`
}

// HasAdditionalCodes reports whether the call carries extra codes. Used
// by callers filtering calls that expand into multiple codes.
func (c SetterCall) HasAdditionalCodes() bool {
	return len(c.AdditionalCodes) > 0
}

// decodeSetterCalls extracts the setter call table.
func decodeSetterCalls(doc string) []SetterCall {
	var calls []SetterCall
	for _, line := range sectionLines(doc, markerSetterCalls, setterCallTerminators) {
		if call, ok := decodeSetterCall(splitFields(line)); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

// decodeSetterCall maps one line to a SetterCall. Lines below the
// admission gate yield no record.
func decodeSetterCall(f Fields) (SetterCall, bool) {
	if f.Len() < minSetterCallFields {
		return SetterCall{}, false
	}
	call := SetterCall{
		Code:            f.At(0),
		Description:     f.At(2),
		ColorCode:       asInt(f.At(4)),
		AdditionalCodes: asList(f.At(8)),
		Raw:             f.Raw(),
	}
	for i := range call.Positions {
		call.Positions[i] = asInt(f.At(5 + i))
	}
	return call, true
}
