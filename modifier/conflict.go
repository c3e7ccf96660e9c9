package modifier

// conflictTable maps a category to the categories it evicts when a modifier
// of that category is activated. Mutually exclusive categories list
// themselves. The table is symmetric: if activating A evicts B, activating B
// evicts A, so eviction is reachable from either side.
//
// Sevenths are mutually exclusive and conflict with extensions, which already
// imply a seventh. Extensions are complete voicings: they evict other
// extensions, sevenths, additions and quality changes. Additions conflict
// with extensions. Suspensions are mutually exclusive and conflict with
// quality changes, since both redefine the third. Quality changes are
// mutually exclusive and conflict with suspensions, extensions and additions.
var conflictTable = map[Category][]Category{
	CategorySeventh:    {CategorySeventh, CategoryExtension},
	CategoryExtension:  {CategoryExtension, CategorySeventh, CategoryAddition, CategoryQuality},
	CategoryAddition:   {CategoryExtension, CategoryQuality},
	CategorySuspension: {CategorySuspension, CategoryQuality},
	CategoryQuality:    {CategoryQuality, CategorySuspension, CategoryExtension, CategoryAddition},
}

// ResolveConflicts returns the active labels that must be evicted before the
// candidate can be activated: every active label whose category appears in
// the candidate's conflict list. Unknown labels, either as candidate or in
// the active set, never conflict.
func ResolveConflicts(candidate string, active []string) []string {
	cand, ok := catalogByLabel[candidate]
	if !ok {
		return nil
	}
	conflicts := conflictTable[cand.Category]
	var evict []string
	for _, label := range active {
		if label == candidate {
			continue
		}
		mod, ok := catalogByLabel[label]
		if !ok {
			continue
		}
		for _, c := range conflicts {
			if mod.Category == c {
				evict = append(evict, label)
				break
			}
		}
	}
	return evict
}
