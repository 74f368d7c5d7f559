package catch

// ItemKind describes one spawnable kind of falling item.
type ItemKind struct {
	ID          string  // Stable identifier (e.g. "apple")
	Name        string  // Display name
	Glyph       string  // Display glyph for rich clients
	Rune        rune    // Single-cell symbol for terminal rendering
	Score       int     // Points awarded on catch (0 for bombs)
	Probability float64 // Spawn weight, catalog weights should sum to 1
	Bomb        bool    // Catching a bomb ends the session
}

// Catalog is an ordered table of item kinds. Order matters: weighted
// selection walks the table front to back.
type Catalog []ItemKind

// DefaultCatalog returns the built-in three fruits plus the bomb.
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: "apple", Name: "Apple", Glyph: "🍎", Rune: '@', Score: 100, Probability: 0.4},
		{ID: "banana", Name: "Banana", Glyph: "🍌", Rune: ')', Score: 150, Probability: 0.3},
		{ID: "grape", Name: "Grape", Glyph: "🍇", Rune: '%', Score: 200, Probability: 0.2},
		{ID: "bomb", Name: "Bomb", Glyph: "💣", Rune: '*', Score: 0, Probability: 0.1, Bomb: true},
	}
}

// Pick selects a kind for a uniform draw in [0, 1) by scanning cumulative
// probabilities. The first kind whose cumulative sum reaches the draw
// wins. If rounding leaves the sum short of the draw, the last kind is
// returned. Pick panics on an empty catalog.
func (c Catalog) Pick(draw float64) ItemKind {
	cumulative := 0.0
	for _, k := range c {
		cumulative += k.Probability
		if draw <= cumulative {
			return k
		}
	}
	return c[len(c)-1]
}

// Find returns the kind with the given ID.
func (c Catalog) Find(id string) (ItemKind, bool) {
	for _, k := range c {
		if k.ID == id {
			return k, true
		}
	}
	return ItemKind{}, false
}

// TotalProbability sums all spawn weights.
func (c Catalog) TotalProbability() float64 {
	total := 0.0
	for _, k := range c {
		total += k.Probability
	}
	return total
}
