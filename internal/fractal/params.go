package fractal

// Params holds the Mandelbox fold/scale constants.
// A Params value is read-only once rendering starts.
type Params struct {
	Iterations     int     `json:"iterations"`
	TrapIterations int     `json:"trap_iterations"`
	FoldLimit      float32 `json:"fold_limit"`
	MinRadius2     float32 `json:"min_radius_sq"`
	FixedRadius2   float32 `json:"fixed_radius_sq"`
	Scale          float32 `json:"scale"`
}

// DefaultParams returns the classic scale-2 Mandelbox.
func DefaultParams() Params {
	return Params{
		Iterations:     25,
		TrapIterations: 5,
		FoldLimit:      1,
		MinRadius2:     0.25,
		FixedRadius2:   1,
		Scale:          2,
	}
}

// WithDefaults returns p with every non-positive field replaced by its default.
func (p Params) WithDefaults() Params {
	d := DefaultParams()
	if p.Iterations <= 0 {
		p.Iterations = d.Iterations
	}
	if p.TrapIterations <= 0 {
		p.TrapIterations = d.TrapIterations
	}
	if p.FoldLimit <= 0 {
		p.FoldLimit = d.FoldLimit
	}
	if p.MinRadius2 <= 0 {
		p.MinRadius2 = d.MinRadius2
	}
	if p.FixedRadius2 <= 0 {
		p.FixedRadius2 = d.FixedRadius2
	}
	if p.Scale <= 0 {
		p.Scale = d.Scale
	}
	// Inner rescale must not be weaker than the inversion it hands off to.
	if p.MinRadius2 > p.FixedRadius2 {
		p.MinRadius2 = p.FixedRadius2
	}
	return p
}
