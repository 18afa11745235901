package style

// Selector tracks the one active profile. Selecting replaces it wholesale.
type Selector struct {
	active Profile

	// OnSelect is called with the new profile after every selection.
	OnSelect func(Profile)
}

// NewSelector returns a selector with v active.
func NewSelector(v Variant) *Selector {
	return &Selector{active: Lookup(v)}
}

// Select makes v the active profile.
func (s *Selector) Select(v Variant) {
	s.active = Lookup(v)
	if s.OnSelect != nil {
		s.OnSelect(s.Active())
	}
}

// Active returns a copy of the active profile.
func (s *Selector) Active() Profile {
	p := s.active
	if p.Dash != nil {
		p.Dash = append([]float64(nil), p.Dash...)
	}
	return p
}

// Variant returns the active variant.
func (s *Selector) Variant() Variant { return s.active.Variant }
