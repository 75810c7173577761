// Package gemini implements the sectag.Judge collaborator using Google
// Gemini.
package gemini

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/evaldoc/sectag"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Judge implements sectag.Judge at compile time.
var _ sectag.Judge = (*Judge)(nil)

// Judge reviews rule-produced section labels using Gemini.
type Judge struct {
	client *genai.Client
	model  string
}

// NewJudge creates a new Judge. An empty model selects DefaultModel.
func NewJudge(client *genai.Client, model string) *Judge {
	if model == "" {
		model = DefaultModel
	}
	return &Judge{client: client, model: model}
}

// Review sends the labeled entries to the model and returns the corrected
// label map. Suggestions outside the closed taxonomy are clamped to other;
// suggestions for unknown indices are dropped.
func (j *Judge) Review(ctx context.Context, entries []sectag.Entry, labels sectag.LabelMap) (sectag.LabelMap, error) {
	if len(entries) == 0 {
		return sectag.LabelMap{}, nil
	}

	prompt := BuildUserPrompt(entries, labels)
	config := BuildConfig()

	result, err := j.client.Models.GenerateContent(ctx, j.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, sectag.Errorf(sectag.EINTERNAL, "gemini returned nil result")
	}

	reviewed := ParseLabelLines(result.Text(), len(entries))

	// Start from the rule-produced labels so indices the model skipped
	// keep their labels.
	out := labels.Clone()
	for index, label := range reviewed {
		out[index] = label
	}
	return sectag.ValidateLabels(out), nil
}

// BuildConfig returns the GenerateContentConfig for judge calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You review section-type labels assigned to table-of-contents entries of evaluation reports. " +
					"Respond with one line per entry you would relabel, in the form 'index: label'. " +
					"Valid labels: " + labelList() + ". " +
					"Respond with 'ok' if every label is correct.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt listing entries with their current
// labels.
func BuildUserPrompt(entries []sectag.Entry, labels sectag.LabelMap) string {
	var sb strings.Builder
	sb.WriteString("<toc>\n")
	for _, entry := range entries {
		fmt.Fprintf(&sb, "%d | H%d | %s | %s", entry.Index, entry.Level, entry.Title, labels.Get(entry.Index))
		if entry.Page != nil {
			fmt.Fprintf(&sb, " | page %d", *entry.Page)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("</toc>\n\nReview the labels.")
	return sb.String()
}

// ParseLabelLines parses 'index: label' lines from a model response.
// Malformed lines and out-of-range indices are skipped.
func ParseLabelLines(text string, entryCount int) sectag.LabelMap {
	out := make(sectag.LabelMap)

	for _, line := range strings.Split(text, "\n") {
		index, label, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		i, err := strconv.Atoi(strings.TrimSpace(index))
		if err != nil || i < 0 || i >= entryCount {
			continue
		}
		out[i] = sectag.Label(strings.TrimSpace(label))
	}

	return out
}

// labelList returns the taxonomy as a comma-separated string.
func labelList() string {
	labels := make([]string, 0, len(sectag.Labels))
	for _, l := range sectag.Labels {
		labels = append(labels, string(l))
	}
	return strings.Join(labels, ", ")
}
