package sectag

// The sequence rule engine corrects labels that keyword locking and
// hierarchy propagation cannot get right, using whole-document signals:
// total page count, the roman-numeral front-matter page range and the
// position of the first annex. The passes run in a fixed order and later
// passes depend on corrections made by earlier ones; do not reorder.

// restrictedFrontLabels are the only labels allowed inside the
// roman-numeral front-matter page range.
var restrictedFrontLabels = map[Label]bool{
	LabelFrontMatter:      true,
	LabelExecutiveSummary: true,
	LabelAcronyms:         true,
}

// preContentLabels are the section types that may not reappear after annex
// content begins.
var preContentLabels = map[Label]bool{
	LabelFrontMatter:      true,
	LabelExecutiveSummary: true,
	LabelAcronyms:         true,
	LabelIntroduction:     true,
	LabelContext:          true,
	LabelMethodology:      true,
	LabelFindings:         true,
	LabelRecommendations:  true,
	LabelConclusions:      true,
}

// romanRange is the min/max page span of roman-numeral front matter.
type romanRange struct {
	start int
	end   int
}

// contains reports whether a page falls inside the range.
func (r romanRange) contains(page *int) bool {
	return page != nil && *page >= r.start && *page <= r.end
}

// atOrBefore reports whether a page is at or before the range end. Entries
// without a page number cannot be placed inside roman front matter.
func (r romanRange) atOrBefore(page *int) bool {
	return page != nil && *page <= r.end
}

// ApplySequenceRules runs the ordered structural correction passes over a
// hierarchy-resolved label map and returns a new map. A zero TotalPages
// disables the page-dependent passes; absent roman-range data disables the
// roman boundary passes. All passes are total: the engine never errors.
func ApplySequenceRules(entries []Entry, labels LabelMap, doc DocumentContext) LabelMap {
	out := labels.Clone()

	// Pass 0: short documents are executive summary front to back.
	if forceShortDocument(entries, out, doc) {
		return out
	}

	// Pass 1: front matter cannot live past the first third of the pages.
	applyFrontMatterPageBoundary(entries, out, doc)

	if rr, ok := findRomanRange(entries); ok {
		// Pass 2: only front matter, executive summary and acronyms are
		// allowed within roman-numeral pagination.
		restrictRomanRange(entries, out, rr)

		// Pass 3: entries beyond the roman boundary that were swept in by
		// pass 2 are re-resolved against their ancestry.
		resetBeyondRomanBoundary(entries, out, rr)

		// Pass 4: once an executive summary starts inside the roman range
		// it dominates the rest of the range.
		applyExecutiveSummaryDominance(entries, out, rr)

		// Pass 5: re-check the allowed-label restriction to catch
		// regressions introduced by passes 3-4.
		restrictRomanRange(entries, out, rr)
	}

	// Pass 6: titles that announce annex content are annexes, wherever
	// keyword locking put them.
	detectExplicitAnnexes(entries, out)

	// Pass 7: once annexes begin, pre-content section types may not
	// reappear.
	applyAnnexBoundary(entries, out)

	// Pass 8: executive summary occurs as a single contiguous block.
	enforceExecutiveSummaryUniqueness(entries, out)

	// Pass 9: front matter requires front pages or an explicit marker.
	demoteFloatingFrontMatter(entries, out, doc)

	return out
}

// forceShortDocument labels every entry executive_summary for documents of
// three pages or fewer and reports whether the remaining passes should be
// skipped.
func forceShortDocument(entries []Entry, labels LabelMap, doc DocumentContext) bool {
	if doc.TotalPages <= 0 || doc.TotalPages > 3 {
		return false
	}
	for _, entry := range entries {
		labels[entry.Index] = LabelExecutiveSummary
	}
	return true
}

// applyFrontMatterPageBoundary relabels front matter found past the first
// third of the document to other, then forces entries within the first
// third whose titles match annex keywords to front_matter. The second step
// models TOC entries that merely list annex titles inside a front-matter
// index; it is intentional reference behavior and must not be "fixed".
func applyFrontMatterPageBoundary(entries []Entry, labels LabelMap, doc DocumentContext) {
	if doc.TotalPages <= 0 {
		return
	}
	firstThird := doc.TotalPages / 3

	for _, entry := range entries {
		if labels.Get(entry.Index) != LabelFrontMatter {
			continue
		}
		if entry.Page != nil && *entry.Page > firstThird {
			labels[entry.Index] = LabelOther
		}
	}

	for _, entry := range entries {
		if entry.Page == nil || *entry.Page > firstThird {
			continue
		}
		if matchesLabel(entry.NormalizedTitle, LabelAnnexes) {
			labels[entry.Index] = LabelFrontMatter
		}
	}
}

// findRomanRange computes the min/max page span of roman-numeral front
// matter. Entries carrying an explicit front-matter marker define the
// range; when none are flagged, entries with a parsed roman token do.
func findRomanRange(entries []Entry) (romanRange, bool) {
	rr, ok := pageSpan(entries, func(e Entry) bool { return e.FrontMatter })
	if ok {
		return rr, true
	}
	return pageSpan(entries, func(e Entry) bool { return e.Roman != "" })
}

// pageSpan returns the min/max page among entries matching the predicate.
func pageSpan(entries []Entry, match func(Entry) bool) (romanRange, bool) {
	var rr romanRange
	found := false

	for _, entry := range entries {
		if !match(entry) || entry.Page == nil {
			continue
		}
		if !found {
			rr = romanRange{start: *entry.Page, end: *entry.Page}
			found = true
			continue
		}
		if *entry.Page < rr.start {
			rr.start = *entry.Page
		}
		if *entry.Page > rr.end {
			rr.end = *entry.Page
		}
	}

	return rr, found
}

// restrictRomanRange forces every entry at or before the roman boundary to
// front_matter unless it is already front matter, executive summary or
// acronyms.
func restrictRomanRange(entries []Entry, labels LabelMap, rr romanRange) {
	for _, entry := range entries {
		if !rr.atOrBefore(entry.Page) {
			continue
		}
		if !restrictedFrontLabels[labels.Get(entry.Index)] {
			labels[entry.Index] = LabelFrontMatter
		}
	}
}

// resetBeyondRomanBoundary re-walks entries with a fresh ancestry stack and
// re-resolves entries beyond the roman boundary: children of an executive
// summary stay executive summary, titles matching executive summary or
// acronyms keywords keep those labels, and anything else still carrying a
// roman-range-only label is demoted to other. Entries at or before the
// boundary are recorded onto the stack unchanged.
func resetBeyondRomanBoundary(entries []Entry, labels LabelMap, rr romanRange) {
	var stack []levelLabel

	for _, entry := range entries {
		for len(stack) > 0 && stack[len(stack)-1].level >= entry.Level {
			stack = stack[:len(stack)-1]
		}

		curr := labels.Get(entry.Index)

		if !rr.atOrBefore(entry.Page) {
			switch {
			case len(stack) > 0 && stack[len(stack)-1].label == LabelExecutiveSummary:
				curr = LabelExecutiveSummary
			case matchesLabel(entry.NormalizedTitle, LabelExecutiveSummary):
				curr = LabelExecutiveSummary
			case matchesLabel(entry.NormalizedTitle, LabelAcronyms):
				curr = LabelAcronyms
			case restrictedFrontLabels[curr]:
				curr = LabelOther
			}
			labels[entry.Index] = curr
		}

		stack = append(stack, levelLabel{level: entry.Level, label: curr})
	}
}

// applyExecutiveSummaryDominance finds the first entry within the roman
// range that is (or reads as) an executive summary and labels every
// following in-range entry executive_summary, except titles that match
// front matter or acronyms keywords.
func applyExecutiveSummaryDominance(entries []Entry, labels LabelMap, rr romanRange) {
	start := -1
	for _, entry := range entries {
		if !rr.contains(entry.Page) {
			continue
		}
		if labels.Get(entry.Index) == LabelExecutiveSummary ||
			matchesLabel(entry.NormalizedTitle, LabelExecutiveSummary) {
			start = entry.Index
			break
		}
	}
	if start < 0 {
		return
	}

	for _, entry := range entries {
		if entry.Index < start || !rr.contains(entry.Page) {
			continue
		}
		switch {
		case matchesLabel(entry.NormalizedTitle, LabelFrontMatter):
			labels[entry.Index] = LabelFrontMatter
		case matchesLabel(entry.NormalizedTitle, LabelAcronyms):
			labels[entry.Index] = LabelAcronyms
		default:
			labels[entry.Index] = LabelExecutiveSummary
		}
	}
}

// detectExplicitAnnexes labels entries whose titles match the broad
// annex/appendix/attachment/terms-of-reference vocabulary as annexes,
// unless they are currently front matter.
func detectExplicitAnnexes(entries []Entry, labels LabelMap) {
	for _, entry := range entries {
		if !matchesBroadAnnex(entry.NormalizedTitle) {
			continue
		}
		if labels.Get(entry.Index) != LabelFrontMatter {
			labels[entry.Index] = LabelAnnexes
		}
	}
}

// applyAnnexBoundary forces every pre-content label after the first annex
// entry to annexes. The boundary is monotonic: it never relabels annex
// content back to a pre-content type.
func applyAnnexBoundary(entries []Entry, labels LabelMap) {
	first := -1
	for _, entry := range entries {
		if labels.Get(entry.Index) == LabelAnnexes {
			first = entry.Index
			break
		}
	}
	if first < 0 {
		return
	}

	for _, entry := range entries {
		if entry.Index <= first {
			continue
		}
		if preContentLabels[labels.Get(entry.Index)] {
			labels[entry.Index] = LabelAnnexes
		}
	}
}

// enforceExecutiveSummaryUniqueness keeps executive_summary to a single
// contiguous block: once the first block has ended, any later entry
// labeled executive_summary is relabeled findings.
func enforceExecutiveSummaryUniqueness(entries []Entry, labels LabelMap) {
	seen := false
	ended := false

	for _, entry := range entries {
		if labels.Get(entry.Index) == LabelExecutiveSummary {
			if ended {
				labels[entry.Index] = LabelFindings
				continue
			}
			seen = true
		} else if seen {
			ended = true
		}
	}
}

// demoteFloatingFrontMatter demotes front_matter entries that neither carry
// an explicit front-matter marker nor sit within the first third of the
// document with a front-matter title. Without a page count the first-third
// clause cannot be evaluated, so the pass is a no-op.
func demoteFloatingFrontMatter(entries []Entry, labels LabelMap, doc DocumentContext) {
	if doc.TotalPages <= 0 {
		return
	}
	firstThird := doc.TotalPages / 3

	for _, entry := range entries {
		if labels.Get(entry.Index) != LabelFrontMatter {
			continue
		}
		if entry.FrontMatter {
			continue
		}
		if entry.Page != nil && *entry.Page <= firstThird &&
			matchesLabel(entry.NormalizedTitle, LabelFrontMatter) {
			continue
		}
		labels[entry.Index] = LabelOther
	}
}
