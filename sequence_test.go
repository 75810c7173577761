package sectag_test

import (
	"testing"

	"github.com/evaldoc/sectag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// classifyText runs the full pipeline and returns the final label map.
func classifyText(t *testing.T, text string, totalPages int) sectag.LabelMap {
	t.Helper()
	result := sectag.Classify(text, sectag.DocumentContext{TotalPages: totalPages})
	require.NotEmpty(t, result.Entries)
	return result.Labels
}

func TestApplySequenceRules(t *testing.T) {
	t.Parallel()

	t.Run("short documents are executive summary front to back", func(t *testing.T) {
		t.Parallel()

		text := "[H1] Introduction\n[H1] Annex A\n[H1] Bibliography"

		for _, pages := range []int{1, 2, 3} {
			labels := classifyText(t, text, pages)
			for index := range labels {
				assert.Equal(t, sectag.LabelExecutiveSummary, labels[index], "pages=%d index=%d", pages, index)
			}
		}
	})

	t.Run("front-matter flagged roman pages stay front matter", func(t *testing.T) {
		t.Parallel()

		// Reference fixture: four flagged front pages followed by the
		// executive summary on a regular page.
		text := "[H1] Key personnel | page 3 [Front]\n" +
			"[H1] Contents | page 4 (i) [Front]\n" +
			"[H1] List of figures | page 6 [Front]\n" +
			"[H1] List of tables | page 7 (iv) [Front]\n" +
			"[H1] Executive summary | page 8"

		labels := classifyText(t, text, 30)

		for index := 0; index <= 3; index++ {
			assert.Equal(t, sectag.LabelFrontMatter, labels.Get(index), "index=%d", index)
		}
		assert.NotEqual(t, sectag.LabelFrontMatter, labels.Get(4))
		assert.Equal(t, sectag.LabelExecutiveSummary, labels.Get(4))
	})

	t.Run("all-roman front matter with no later entries", func(t *testing.T) {
		t.Parallel()

		text := "[H1] Contents | page 3 (i)\n" +
			"[H1] List of figures | page 4 (ii)\n" +
			"[H1] List of tables | page 5 (iii)"

		labels := classifyText(t, text, 30)

		for index := 0; index <= 2; index++ {
			assert.Equal(t, sectag.LabelFrontMatter, labels.Get(index), "index=%d", index)
		}
	})

	t.Run("front matter past the first third is demoted", func(t *testing.T) {
		t.Parallel()

		text := "[H1] Table of contents | page 25\n[H1] Findings | page 12"

		labels := classifyText(t, text, 30)

		assert.NotEqual(t, sectag.LabelFrontMatter, labels.Get(0))
		assert.Equal(t, sectag.LabelFindings, labels.Get(1))
	})

	t.Run("annex titles in the first third are pulled into front matter", func(t *testing.T) {
		t.Parallel()

		// Reference behavior: an index entry listing annex titles inside
		// the front-matter index is not annex content.
		text := "[H1] Annexes | page 2 [Front]\n[H1] Findings | page 12"

		labels := classifyText(t, text, 30)

		assert.Equal(t, sectag.LabelFrontMatter, labels.Get(0))
		assert.Equal(t, sectag.LabelFindings, labels.Get(1))
	})

	t.Run("unflagged front matter outside front-matter titles is demoted last", func(t *testing.T) {
		t.Parallel()

		// Without the [Front] marker the pass-1 front_matter force does
		// not survive the final front-pages check.
		text := "[H1] Annexes | page 2\n[H1] Findings | page 12"

		labels := classifyText(t, text, 30)

		assert.NotEqual(t, sectag.LabelAnnexes, labels.Get(0))
		assert.NotEqual(t, sectag.LabelFrontMatter, labels.Get(0))
		assert.Equal(t, sectag.LabelOther, labels.Get(0))
	})

	t.Run("roman range restricts labels to front matter trio", func(t *testing.T) {
		t.Parallel()

		text := "[H1] Contents | page 2 (i) [Front]\n" +
			"[H1] Key personnel | page 3 [Front]\n" +
			"[H1] Introduction | page 10"

		labels := classifyText(t, text, 30)

		assert.Equal(t, sectag.LabelFrontMatter, labels.Get(0))
		// Unmatched title inside the roman range is forced to front
		// matter by the restriction, then kept by its [Front] flag.
		assert.Equal(t, sectag.LabelFrontMatter, labels.Get(1))
		assert.Equal(t, sectag.LabelIntroduction, labels.Get(2))
	})

	t.Run("executive summary dominates the roman range once it starts", func(t *testing.T) {
		t.Parallel()

		text := "[H1] Contents | page 2 (i) [Front]\n" +
			"[H1] Executive summary | page 3 [Front]\n" +
			"[H1] Main achievements | page 4 [Front]\n" +
			"[H1] Acronyms | page 5 [Front]\n" +
			"[H1] Introduction | page 8"

		labels := classifyText(t, text, 30)

		assert.Equal(t, sectag.LabelFrontMatter, labels.Get(0))
		assert.Equal(t, sectag.LabelExecutiveSummary, labels.Get(1))
		assert.Equal(t, sectag.LabelExecutiveSummary, labels.Get(2))
		assert.Equal(t, sectag.LabelAcronyms, labels.Get(3))
		assert.Equal(t, sectag.LabelIntroduction, labels.Get(4))
	})

	t.Run("annex boundary is monotonic", func(t *testing.T) {
		t.Parallel()

		text := "[H1] Introduction | page 2\n" +
			"[H1] Annex A: Survey tools | page 20\n" +
			"[H1] Findings | page 25\n" +
			"[H1] Bibliography | page 28"

		labels := classifyText(t, text, 30)

		assert.Equal(t, sectag.LabelIntroduction, labels.Get(0))
		assert.Equal(t, sectag.LabelAnnexes, labels.Get(1))
		// Pre-content labels may not reappear after the first annex.
		assert.Equal(t, sectag.LabelAnnexes, labels.Get(2))
		// Bibliography is not pre-content and survives.
		assert.Equal(t, sectag.LabelBibliography, labels.Get(3))
	})

	t.Run("terms of reference reads as annex content", func(t *testing.T) {
		t.Parallel()

		text := "[H1] Introduction | page 2\n[H1] Terms of reference | page 25"

		labels := classifyText(t, text, 30)

		assert.Equal(t, sectag.LabelAnnexes, labels.Get(1))
	})

	t.Run("executive summary stays a single contiguous block", func(t *testing.T) {
		t.Parallel()

		text := "[H1] Executive summary\n" +
			"[H1] Main findings\n" +
			"[H1] Executive summary of part two"

		labels := classifyText(t, text, 0)

		assert.Equal(t, sectag.LabelExecutiveSummary, labels.Get(0))
		assert.Equal(t, sectag.LabelFindings, labels.Get(1))
		// A second block is relabeled findings.
		assert.Equal(t, sectag.LabelFindings, labels.Get(2))
	})

	t.Run("zero page count disables page-dependent passes", func(t *testing.T) {
		t.Parallel()

		text := "[H1] Table of contents | page 25 [Front]\n[H1] Findings | page 28"

		labels := classifyText(t, text, 0)

		// Without total pages the first-third demotion cannot run.
		assert.Equal(t, sectag.LabelFrontMatter, labels.Get(0))
		assert.Equal(t, sectag.LabelFindings, labels.Get(1))
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		text := "[H1] Contents | page 2 (i) [Front]\n" +
			"[H1] Executive summary | page 4 [Front]\n" +
			"[H1] Introduction | page 8\n" +
			"  [H2] Background | page 9\n" +
			"[H1] Findings | page 12\n" +
			"[H1] Annex A | page 24"

		first := classifyText(t, text, 30)
		second := classifyText(t, text, 30)

		assert.Equal(t, first, second)
	})
}
