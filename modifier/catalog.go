// Package modifier implements the harmonic modifier catalog, the category
// conflict resolver and the locked/transient modifier application engine that
// computes the final interval set of a chord.
package modifier

type (
	// Category classifies a modifier for conflict resolution.
	Category int

	// Effect tells how a modifier transforms the interval set of a chord.
	Effect int

	// Modifier is one entry of the catalog. Add holds the added intervals for
	// the add effects and the replacement set for EffectReplace; Remove holds
	// the interval filtered out by EffectRemove.
	Modifier struct {
		Label    string
		Category Category
		Effect   Effect
		Add      []int
		Remove   int
	}
)

const (
	CategorySeventh Category = iota
	CategoryExtension
	CategoryAddition
	CategorySuspension
	CategoryQuality
)

const (
	// EffectAddOne adds a single interval.
	EffectAddOne Effect = iota
	// EffectAddMany adds several intervals, e.g. an extension stack.
	EffectAddMany
	// EffectRemove filters one interval out of the set.
	EffectRemove
	// EffectReplace discards the canonical triad or seventh and replaces the
	// whole set.
	EffectReplace
)

func (c Category) String() string {
	switch c {
	case CategorySeventh:
		return "seventh"
	case CategoryExtension:
		return "extension"
	case CategoryAddition:
		return "addition"
	case CategorySuspension:
		return "suspension"
	case CategoryQuality:
		return "quality"
	}
	return "unknown"
}

// Catalog is the process-wide immutable modifier table. The slice order is
// the catalog order: when several modifiers apply, their effects are applied
// in this order.
var Catalog = []Modifier{
	{Label: "sus2", Category: CategorySuspension, Effect: EffectReplace, Add: []int{0, 2, 7}},
	{Label: "sus4", Category: CategorySuspension, Effect: EffectReplace, Add: []int{0, 5, 7}},
	{Label: "dim", Category: CategoryQuality, Effect: EffectReplace, Add: []int{0, 3, 6}},
	{Label: "aug", Category: CategoryQuality, Effect: EffectReplace, Add: []int{0, 4, 8}},
	{Label: "7", Category: CategorySeventh, Effect: EffectAddOne, Add: []int{10}},
	{Label: "maj7", Category: CategorySeventh, Effect: EffectAddOne, Add: []int{11}},
	{Label: "9", Category: CategoryExtension, Effect: EffectAddMany, Add: []int{10, 14}},
	{Label: "11", Category: CategoryExtension, Effect: EffectAddMany, Add: []int{10, 14, 17}},
	{Label: "13", Category: CategoryExtension, Effect: EffectAddMany, Add: []int{10, 14, 21}},
	{Label: "6", Category: CategoryAddition, Effect: EffectAddOne, Add: []int{9}},
	{Label: "add9", Category: CategoryAddition, Effect: EffectAddOne, Add: []int{14}},
	{Label: "no5", Category: CategoryAddition, Effect: EffectRemove, Remove: 7},
}

var catalogByLabel = func() map[string]Modifier {
	m := make(map[string]Modifier, len(Catalog))
	for _, mod := range Catalog {
		m[mod.Label] = mod
	}
	return m
}()

var catalogOrder = func() map[string]int {
	m := make(map[string]int, len(Catalog))
	for i, mod := range Catalog {
		m[mod.Label] = i
	}
	return m
}()

// Lookup returns the catalog entry for a label.
func Lookup(label string) (Modifier, bool) {
	m, ok := catalogByLabel[label]
	return m, ok
}
