package sectag

// Label is a semantic section type assigned to a TOC entry.
type Label string

// The closed section-type taxonomy. Every entry ends up with exactly one of
// these after classification; anything else is clamped to LabelOther.
const (
	LabelFrontMatter      Label = "front_matter"
	LabelExecutiveSummary Label = "executive_summary"
	LabelAcronyms         Label = "acronyms"
	LabelIntroduction     Label = "introduction"
	LabelContext          Label = "context"
	LabelMethodology      Label = "methodology"
	LabelFindings         Label = "findings"
	LabelRecommendations  Label = "recommendations"
	LabelConclusions      Label = "conclusions"
	LabelAnnexes          Label = "annexes"
	LabelAppendix         Label = "appendix"
	LabelBibliography     Label = "bibliography"
	LabelOther            Label = "other"
)

// Labels lists every member of the taxonomy.
var Labels = []Label{
	LabelFrontMatter,
	LabelExecutiveSummary,
	LabelAcronyms,
	LabelIntroduction,
	LabelContext,
	LabelMethodology,
	LabelFindings,
	LabelRecommendations,
	LabelConclusions,
	LabelAnnexes,
	LabelAppendix,
	LabelBibliography,
	LabelOther,
}

// Valid reports whether l is a member of the closed taxonomy.
func (l Label) Valid() bool {
	switch l {
	case LabelFrontMatter, LabelExecutiveSummary, LabelAcronyms,
		LabelIntroduction, LabelContext, LabelMethodology, LabelFindings,
		LabelRecommendations, LabelConclusions, LabelAnnexes, LabelAppendix,
		LabelBibliography, LabelOther:
		return true
	}
	return false
}

// Entry represents one recognized TOC heading line. Entries are immutable
// once parsed; every pipeline stage returns a new label map instead of
// mutating entries.
type Entry struct {
	// Position in parsed output, 0-based, matching input line order. This
	// is the only ordering the pipeline uses (never page number).
	Index int `json:"index"`

	// Cleaned title text (dot leaders collapsed, trimmed).
	Title string `json:"title"`

	// Whitespace-collapsed, lower-cased title used for pattern matching.
	NormalizedTitle string `json:"normalizedTitle"`

	// Heading depth (1 for H1, 2 for H2, ...).
	Level int `json:"level"`

	// Page reference, nil when the line carries none.
	Page *int `json:"page,omitempty"`

	// Roman-numeral token shown in parentheses next to the page number.
	// Populated only from the source line, never inferred.
	Roman string `json:"roman,omitempty"`

	// True only when the source line carries an explicit front-matter
	// marker token.
	FrontMatter bool `json:"frontMatter"`

	// Leading whitespace, preserved for output formatting only.
	Indentation string `json:"indentation"`

	// The raw line, for traceability.
	OriginalLine string `json:"originalLine"`
}

// LabelMap maps entry indices to labels. Unassigned indices are treated as
// LabelOther.
type LabelMap map[int]Label

// Get returns the label for an index, defaulting to LabelOther.
func (m LabelMap) Get(index int) Label {
	if l, ok := m[index]; ok {
		return l
	}
	return LabelOther
}

// Clone returns a copy of the map.
func (m LabelMap) Clone() LabelMap {
	out := make(LabelMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// DocumentContext carries whole-document signals supplied by the caller.
// A zero TotalPages means the page count is unknown and disables the
// page-dependent sequence rules.
type DocumentContext struct {
	TotalPages int `json:"totalPages"`
}

// ValidateLabels clamps any label outside the closed taxonomy to
// LabelOther. It is always the final pipeline step.
func ValidateLabels(labels LabelMap) LabelMap {
	out := make(LabelMap, len(labels))
	for index, label := range labels {
		if !label.Valid() {
			label = LabelOther
		}
		out[index] = label
	}
	return out
}
