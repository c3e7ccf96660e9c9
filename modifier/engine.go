package modifier

import (
	"slices"
	"sort"
)

// Engine owns the modifier state of one chord instance: the locked modifiers,
// which persist across plays until explicitly unlocked, and at most one
// transient modifier, active only until toggled off or superseded. A label is
// never both locked and transient, and no two locked labels conflict.
//
// The engine is driven by the tap/long-press signals of a gesture classifier
// and calls the trigger callback with the recomputed interval set whenever the
// chord should sound.
type Engine struct {
	base      []int
	locked    []string
	transient string
	trigger   func(intervals []int)
}

// NewEngine creates an engine for a chord with the given base interval set.
// trigger may be nil when no playback is wanted.
func NewEngine(base []int, trigger func(intervals []int)) *Engine {
	e := &Engine{trigger: trigger}
	e.Reset(base)
	return e
}

// OnTap toggles the transient modifier. Tapping the current transient clears
// it; tapping a locked modifier replays the chord unchanged; tapping anything
// else makes it the transient modifier, superseding the previous one. Every
// tap triggers playback of the recomputed chord.
func (e *Engine) OnTap(label string) {
	switch {
	case label == e.transient:
		e.transient = ""
		e.fire(e.CalculateIntervals(e.locked))
	case slices.Contains(e.locked, label):
		e.fire(e.CalculateIntervals(e.ActiveLabels()))
	default:
		e.transient = label
		e.fire(e.CalculateIntervals(append(slices.Clone(e.locked), label)))
	}
}

// OnLongPress locks or unlocks a modifier. Locking first evicts every locked
// modifier the conflict table says the new one supersedes. The transient
// modifier is then revalidated: it is cleared if it became redundant (now
// locked) or now conflicts with the locked set.
func (e *Engine) OnLongPress(label string) {
	if i := slices.Index(e.locked, label); i >= 0 {
		e.locked = slices.Delete(e.locked, i, i+1)
	} else {
		for _, evict := range ResolveConflicts(label, e.locked) {
			if j := slices.Index(e.locked, evict); j >= 0 {
				e.locked = slices.Delete(e.locked, j, j+1)
			}
		}
		e.locked = append(e.locked, label)
	}
	if e.transient != "" {
		if slices.Contains(e.locked, e.transient) || len(ResolveConflicts(e.transient, e.locked)) > 0 {
			e.transient = ""
		}
	}
	e.fire(e.CalculateIntervals(e.ActiveLabels()))
}

// Reset clears all modifier state and adopts a new base interval set. Called
// whenever the chord's root, mode or base intervals change externally;
// modifier state does not survive a context change.
func (e *Engine) Reset(base []int) {
	e.base = append(e.base[:0:0], base...)
	e.locked = nil
	e.transient = ""
}

// Locked returns the locked modifier labels in lock order.
func (e *Engine) Locked() []string { return slices.Clone(e.locked) }

// Transient returns the transient modifier label, or "" if none.
func (e *Engine) Transient() string { return e.transient }

// ActiveLabels returns the locked modifiers plus the transient one, if any.
func (e *Engine) ActiveLabels() []string {
	active := slices.Clone(e.locked)
	if e.transient != "" {
		active = append(active, e.transient)
	}
	return active
}

// Intervals returns the interval set of the current active modifiers.
func (e *Engine) Intervals() []int {
	return e.CalculateIntervals(e.ActiveLabels())
}

// CalculateIntervals computes the final interval set for a set of active
// modifier labels. The active replace-effect modifier, if any, replaces the
// base set; when more than one is active the one latest in catalog order wins
// (an input-integrity violation if it ever happens, since the conflict table
// forbids locking two replace modifiers together). Add effects then add their
// intervals, remove effects filter theirs out, and the result is sorted and
// deduplicated. Pure and idempotent; unknown labels are ignored.
func (e *Engine) CalculateIntervals(active []string) []int {
	mods := make([]Modifier, 0, len(active))
	for _, label := range active {
		if m, ok := catalogByLabel[label]; ok {
			mods = append(mods, m)
		}
	}
	sort.Slice(mods, func(i, j int) bool {
		return catalogOrder[mods[i].Label] < catalogOrder[mods[j].Label]
	})

	result := slices.Clone(e.base)
	for _, m := range mods {
		if m.Effect == EffectReplace {
			result = slices.Clone(m.Add)
		}
	}
	for _, m := range mods {
		switch m.Effect {
		case EffectAddOne, EffectAddMany:
			for _, iv := range m.Add {
				if !slices.Contains(result, iv) {
					result = append(result, iv)
				}
			}
		case EffectRemove:
			if i := slices.Index(result, m.Remove); i >= 0 {
				result = slices.Delete(result, i, i+1)
			}
		}
	}
	slices.Sort(result)
	return slices.Compact(result)
}

func (e *Engine) fire(intervals []int) {
	if e.trigger != nil {
		e.trigger(intervals)
	}
}
