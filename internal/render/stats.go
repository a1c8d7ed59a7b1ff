package render

import "mandelbox-renderer/internal/march"

// Stats summarizes a render.
type Stats struct {
	Pixels     int `json:"pixels"`
	Hits       int `json:"hits"`
	Escaped    int `json:"escaped"`
	Exhausted  int `json:"exhausted"`
	TotalSteps int `json:"total_steps"`
	MaxSteps   int `json:"max_steps"`
}

func (s *Stats) add(r march.Result) {
	s.Pixels++
	s.TotalSteps += r.Steps
	s.MaxSteps = max(s.MaxSteps, r.Steps)
	switch r.Reason {
	case march.Hit:
		s.Hits++
	case march.Escaped:
		s.Escaped++
	case march.Exhausted:
		s.Exhausted++
	}
}

func (s *Stats) merge(o Stats) {
	s.Pixels += o.Pixels
	s.Hits += o.Hits
	s.Escaped += o.Escaped
	s.Exhausted += o.Exhausted
	s.TotalSteps += o.TotalSteps
	s.MaxSteps = max(s.MaxSteps, o.MaxSteps)
}

// HitRatio returns the fraction of pixels that struck the surface.
func (s Stats) HitRatio() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Pixels)
}

// AverageSteps returns the mean march length.
func (s Stats) AverageSteps() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.TotalSteps) / float64(s.Pixels)
}
