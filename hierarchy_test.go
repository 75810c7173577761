package sectag_test

import (
	"testing"

	"github.com/evaldoc/sectag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropagateHierarchy(t *testing.T) {
	t.Parallel()

	t.Run("strong parent forces child without an override", func(t *testing.T) {
		t.Parallel()

		// findings is not an allowed override under executive_summary.
		entries := sectag.ParseTOC("[H1] Executive Summary\n  [H2] Findings")
		locked := sectag.LockKeywords(entries)
		require.Equal(t, sectag.LabelExecutiveSummary, locked[0])
		require.Equal(t, sectag.LabelFindings, locked[1])

		resolved := sectag.PropagateHierarchy(entries, locked)

		assert.Equal(t, sectag.LabelExecutiveSummary, resolved[0])
		assert.Equal(t, sectag.LabelExecutiveSummary, resolved[1])
	})

	t.Run("override table lets recommendations break out of findings", func(t *testing.T) {
		t.Parallel()

		entries := sectag.ParseTOC("[H1] Findings\n  [H2] Recommendations")
		locked := sectag.LockKeywords(entries)

		resolved := sectag.PropagateHierarchy(entries, locked)

		assert.Equal(t, sectag.LabelFindings, resolved[0])
		assert.Equal(t, sectag.LabelRecommendations, resolved[1])
	})

	t.Run("override requires the child's title to match its own keywords", func(t *testing.T) {
		t.Parallel()

		entries := sectag.ParseTOC("[H1] Findings\n  [H2] Next steps")
		locked := sectag.LockKeywords(entries)
		// Force a locked label whose keywords do not match the title.
		locked[1] = sectag.LabelRecommendations

		resolved := sectag.PropagateHierarchy(entries, locked)

		assert.Equal(t, sectag.LabelFindings, resolved[1])
	})

	t.Run("unlocked children inherit the parent label", func(t *testing.T) {
		t.Parallel()

		entries := sectag.ParseTOC("[H1] Findings\n  [H2] Outcome area 1\n  [H2] Outcome area 2")
		locked := sectag.LockKeywords(entries)

		resolved := sectag.PropagateHierarchy(entries, locked)

		assert.Equal(t, sectag.LabelFindings, resolved[1])
		assert.Equal(t, sectag.LabelFindings, resolved[2])
	})

	t.Run("result is dense even without matches", func(t *testing.T) {
		t.Parallel()

		entries := sectag.ParseTOC("[H1] Key personnel\n[H1] Project team")

		resolved := sectag.PropagateHierarchy(entries, sectag.LabelMap{})

		require.Len(t, resolved, 2)
		assert.Equal(t, sectag.LabelOther, resolved[0])
		assert.Equal(t, sectag.LabelOther, resolved[1])
	})

	t.Run("stack pops back to siblings at the same level", func(t *testing.T) {
		t.Parallel()

		// The H2 under conclusions must not inherit from the earlier
		// findings subtree.
		entries := sectag.ParseTOC(
			"[H1] Findings\n" +
				"  [H2] Detail\n" +
				"[H1] Conclusions\n" +
				"  [H2] Overall assessment")
		locked := sectag.LockKeywords(entries)

		resolved := sectag.PropagateHierarchy(entries, locked)

		assert.Equal(t, sectag.LabelFindings, resolved[1])
		assert.Equal(t, sectag.LabelConclusions, resolved[2])
		assert.Equal(t, sectag.LabelConclusions, resolved[3])
	})

	t.Run("other parents do not constrain locked children", func(t *testing.T) {
		t.Parallel()

		entries := sectag.ParseTOC("[H1] Part one\n  [H2] Methodology")
		locked := sectag.LockKeywords(entries)

		resolved := sectag.PropagateHierarchy(entries, locked)

		assert.Equal(t, sectag.LabelOther, resolved[0])
		assert.Equal(t, sectag.LabelMethodology, resolved[1])
	})
}
