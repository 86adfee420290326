package types

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Selection is one active filter choice. Either Values or Range is set.
type Selection struct {
	Code   string   `json:"code"`
	Values []string `json:"values,omitempty"`
	Range  *Range   `json:"range,omitempty"`
	Label  string   `json:"label,omitempty"`
}

func (s Selection) IsRange() bool {
	return s.Range != nil
}

type selectedCodes map[string]struct{}

// LayerState holds the selections the user currently has, in the order they
// were applied. Use Select to add selections once HasField has been called,
// the code lookup is built on first use.
type LayerState struct {
	codes    *selectedCodes
	Selected []Selection `json:"filters"`
}

func NewLayerState(selected ...Selection) *LayerState {
	return &LayerState{Selected: selected}
}

func (s *LayerState) Select(selected ...Selection) {
	s.Selected = append(s.Selected, selected...)
	s.codes = nil
}

func (s *LayerState) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Selected)
}

func (s *LayerState) getCodes() *selectedCodes {
	if s.codes == nil {
		codes := make(selectedCodes, len(s.Selected))
		for _, sel := range s.Selected {
			codes[sel.Code] = struct{}{}
		}
		s.codes = &codes
	}
	return s.codes
}

func (s *LayerState) HasField(code string) bool {
	if s == nil {
		return false
	}
	_, ok := (*s.getCodes())[code]
	return ok
}

// WithOut returns a copy of the state without the selections for code.
func (s *LayerState) WithOut(code string) *LayerState {
	result := &LayerState{
		Selected: make([]Selection, 0, s.Len()),
	}
	if s == nil {
		return result
	}
	for _, sel := range s.Selected {
		if sel.Code != code {
			result.Selected = append(result.Selected, sel)
		}
	}
	return result
}
