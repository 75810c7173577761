package sectag

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// entryLineRe matches a TOC heading line: optional indentation, a
	// [H<level>] tag, then the rest of the line.
	entryLineRe = regexp.MustCompile(`^([ \t]*)\[H(\d+)\][ \t]*(.*)$`)

	// pageSuffixRe matches the trailing page segment of a heading line:
	// "page <N>", optionally followed by a parenthesized roman token and
	// an explicit front-matter marker.
	pageSuffixRe = regexp.MustCompile(`^page\s+(\d+)(?:\s*\(([^)\s]+)\))?(\s*\[Front\])?$`)

	// dotLeaderRe matches runs of two or more dots (TOC dot leaders).
	dotLeaderRe = regexp.MustCompile(`\.{2,}`)

	// whitespaceRe matches runs of whitespace for title normalization.
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// ParseTOC parses raw TOC text, one entry per non-empty line, and returns
// the ordered sequence of entries. Lines that do not match the entry
// grammar are dropped silently. The function is pure: same input, same
// output, no side effects.
func ParseTOC(text string) []Entry {
	var entries []Entry

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, ok := parseLine(line)
		if !ok {
			continue
		}

		entry.Index = len(entries)
		entries = append(entries, entry)
	}

	return entries
}

// parseLine parses a single TOC line. The grammar, left to right:
//
//	<indent>[H<level>] <title>[ | page <N>[ (<roman>)][ [Front]]]
//
// A trailing |-delimited segment that does not match the page suffix
// grammar is treated as part of the title.
func parseLine(line string) (Entry, bool) {
	m := entryLineRe.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}

	level, err := strconv.Atoi(m[2])
	if err != nil || level < 1 {
		return Entry{}, false
	}

	entry := Entry{
		Level:        level,
		Indentation:  m[1],
		OriginalLine: line,
	}

	rest := m[3]

	// Only the segment after the last pipe can be a page suffix; the page
	// grammar itself contains no pipe.
	if idx := strings.LastIndex(rest, "|"); idx >= 0 {
		tail := strings.TrimSpace(rest[idx+1:])
		if pm := pageSuffixRe.FindStringSubmatch(tail); pm != nil {
			page, _ := strconv.Atoi(pm[1])
			entry.Page = &page
			entry.Roman = pm[2]
			entry.FrontMatter = pm[3] != ""
			rest = rest[:idx]
		}
	}

	entry.Title = cleanTitle(rest)
	if entry.Title == "" {
		return Entry{}, false
	}
	entry.NormalizedTitle = normalizeTitle(entry.Title)

	return entry, true
}

// cleanTitle collapses dot leaders to a single space and trims the result.
func cleanTitle(s string) string {
	return strings.TrimSpace(dotLeaderRe.ReplaceAllString(s, " "))
}

// normalizeTitle collapses whitespace runs to one space, lower-cases and
// trims. Normalized titles are used only for matching and equality.
func normalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " ")))
}

// RenderClassified renders entries with their labels back into annotated
// TOC lines, one per entry:
//
//	<indent>[H<level>] <title> | <label>[ | page <N>[ (<roman>)][ [Front]]]
func RenderClassified(entries []Entry, labels LabelMap) string {
	var sb strings.Builder

	for i, entry := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(RenderEntry(entry, labels.Get(entry.Index)))
	}

	return sb.String()
}

// RenderEntry renders a single entry with its label.
func RenderEntry(entry Entry, label Label) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s[H%d] %s | %s", entry.Indentation, entry.Level, entry.Title, label)

	if entry.Page != nil {
		fmt.Fprintf(&sb, " | page %d", *entry.Page)
		if entry.Roman != "" {
			fmt.Fprintf(&sb, " (%s)", entry.Roman)
		}
		if entry.FrontMatter {
			sb.WriteString(" [Front]")
		}
	}

	return sb.String()
}
