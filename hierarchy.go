package sectag

// overrideTable lists the child labels allowed to break out of a strong
// parent container. Every other child of a strong parent inherits the
// parent's label.
var overrideTable = map[Label]map[Label]bool{
	LabelFindings: {
		LabelRecommendations: true,
		LabelConclusions:     true,
		LabelAnnexes:         true,
		LabelAppendix:        true,
		LabelBibliography:    true,
	},
	LabelRecommendations: {
		LabelConclusions:  true,
		LabelAnnexes:      true,
		LabelAppendix:     true,
		LabelBibliography: true,
	},
	LabelConclusions: {
		LabelRecommendations: true,
		LabelAnnexes:         true,
		LabelAppendix:        true,
		LabelBibliography:    true,
	},
}

// levelLabel is one ancestry stack frame: the heading level an entry was
// seen at and the label it resolved to.
type levelLabel struct {
	level int
	label Label
}

// PropagateHierarchy walks entries in index order while maintaining a stack
// of (level, label) ancestry frames, filling in and overriding labels using
// parent-child inheritance. Every taxonomy label except LabelOther is a
// strong container: children of a labeled section stay inside it unless the
// override table allows the child's own locked label and the child's title
// re-verifies against that label's keyword patterns.
//
// The result is dense: every entry index maps to a label, possibly
// LabelOther.
func PropagateHierarchy(entries []Entry, locked LabelMap) LabelMap {
	resolved := make(LabelMap, len(entries))
	var stack []levelLabel

	for _, entry := range entries {
		// Only strict ancestors remain on the stack.
		for len(stack) > 0 && stack[len(stack)-1].level >= entry.Level {
			stack = stack[:len(stack)-1]
		}

		hasParent := len(stack) > 0
		var parent Label
		if hasParent {
			parent = stack[len(stack)-1].label
		}

		curr, ok := locked[entry.Index]
		if !ok {
			curr = LabelOther
		}

		switch {
		case hasParent && parent != LabelOther:
			if curr != parent && !overrideAllowed(parent, curr, entry.NormalizedTitle) {
				curr = parent
			}
		case curr == LabelOther && hasParent:
			curr = parent
		}

		stack = append(stack, levelLabel{level: entry.Level, label: curr})
		resolved[entry.Index] = curr
	}

	return resolved
}

// overrideAllowed reports whether a child locked to childLabel may break
// out of a strong parent container. The child's keyword patterns must
// actually match the title; having been locked earlier is not enough.
func overrideAllowed(parent, childLabel Label, normalizedTitle string) bool {
	allowed, ok := overrideTable[parent]
	if !ok {
		return false
	}
	if !allowed[childLabel] {
		return false
	}
	return matchesLabel(normalizedTitle, childLabel)
}
