package pose

import (
	"strings"

	"github.com/vovakirdan/fruit-catch/internal/catch"
)

// LabelMap maps classifier class names to zone labels.
type LabelMap map[string]string

// DefaultLabelMap maps the canonical class names of a three-class model.
func DefaultLabelMap() LabelMap {
	return LabelMap{
		"Left":   catch.ZoneLeft.String(),
		"Center": catch.ZoneCenter.String(),
		"Right":  catch.ZoneRight.String(),
	}
}

// Zone translates a class name to a zone label. Exact matches win, then
// case-insensitive ones. Unmapped names are returned unchanged; the
// engine ignores anything that is not a zone label.
func (m LabelMap) Zone(className string) string {
	if z, ok := m[className]; ok {
		return z
	}
	for k, z := range m {
		if strings.EqualFold(k, className) {
			return z
		}
	}
	return className
}
