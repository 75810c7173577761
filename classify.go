package sectag

// Result holds the outcome of classifying one TOC.
type Result struct {
	// Entries in document order, as parsed.
	Entries []Entry `json:"entries"`

	// Final label per entry index. Dense and taxonomy-valid.
	Labels LabelMap `json:"labels"`
}

// Classify runs the full classification pipeline over raw TOC text:
// parse, keyword locking, hierarchy propagation, sequence rules,
// validation. The computation is pure and deterministic; identical input
// and context always yield identical labels. Calls are independent and may
// run concurrently.
func Classify(text string, doc DocumentContext) *Result {
	entries := ParseTOC(text)
	return ClassifyEntries(entries, doc)
}

// ClassifyEntries runs the pipeline over already-parsed entries. Entry
// indices must be contiguous 0..N-1 in document order, which ParseTOC
// guarantees.
func ClassifyEntries(entries []Entry, doc DocumentContext) *Result {
	locked := LockKeywords(entries)
	resolved := PropagateHierarchy(entries, locked)
	corrected := ApplySequenceRules(entries, resolved, doc)

	return &Result{
		Entries: entries,
		Labels:  ValidateLabels(corrected),
	}
}

// Render returns the classified TOC as annotated lines.
func (r *Result) Render() string {
	return RenderClassified(r.Entries, r.Labels)
}
