// Package pose turns raw pose-classifier output into zone labels for the
// game engine. Classification itself happens elsewhere (typically a
// browser model); this package only filters and maps its predictions.
package pose

import "strings"

// Prediction is one class score from a classifier frame. The JSON shape
// matches what browser pose-classification libraries emit.
type Prediction struct {
	ClassName   string  `json:"className"`
	Probability float64 `json:"probability"`
}

// Top returns the highest-probability prediction of a frame.
// Ties keep the earlier entry.
func Top(frame []Prediction) (Prediction, bool) {
	if len(frame) == 0 {
		return Prediction{}, false
	}
	best := frame[0]
	for _, p := range frame[1:] {
		if p.Probability > best.Probability {
			best = p
		}
	}
	return best, true
}

// Stabilizer debounces a stream of classifier frames. A label is emitted
// once its top prediction clears MinConfidence for StableFrames frames
// in a row, and only when it differs from the last emitted label.
type Stabilizer struct {
	MinConfidence float64
	StableFrames  int

	candidate string
	streak    int
	emitted   string
}

// NewStabilizer creates a stabilizer with the given thresholds.
func NewStabilizer(minConfidence float64, stableFrames int) *Stabilizer {
	if stableFrames < 1 {
		stableFrames = 1
	}
	return &Stabilizer{
		MinConfidence: minConfidence,
		StableFrames:  stableFrames,
	}
}

// Feed consumes one frame and returns a newly stabilized label, if any.
func (s *Stabilizer) Feed(frame []Prediction) (string, bool) {
	top, ok := Top(frame)
	if !ok || top.Probability < s.MinConfidence {
		s.candidate = ""
		s.streak = 0
		return "", false
	}

	label := strings.TrimSpace(top.ClassName)
	if label != s.candidate {
		s.candidate = label
		s.streak = 0
	}
	s.streak++

	if s.streak < s.StableFrames || label == s.emitted {
		return "", false
	}
	s.emitted = label
	return label, true
}

// Reset forgets all history, so the next stable label is emitted even
// if it equals the previous one.
func (s *Stabilizer) Reset() {
	s.candidate = ""
	s.streak = 0
	s.emitted = ""
}
