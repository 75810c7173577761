package main

import (
	"fmt"

	"github.com/evaldoc/sectag"
	"github.com/evaldoc/sectag/tag"
)

// Run executes the tag command.
func (c *TagCmd) Run(deps *Dependencies) error {
	if c.All {
		return c.runAll(deps)
	}

	if c.Name == "" {
		fmt.Fprintln(deps.Stderr, "error: provide a document name or use --all.")
		return sectag.Errorf(sectag.EINVALID, "document name or --all required")
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, sectag.DocumentFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sectag.ErrorMessage(err))
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'sectag list' to see registered documents.\n", c.Name)
		return sectag.Errorf(sectag.ENOTFOUND, "document %q not found", c.Name)
	}

	classification, err := deps.Tagger.TagOne(deps.Ctx, docs[0])
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sectag.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, classification.Rendered)
	return nil
}

// runAll tags every registered document, reporting progress.
func (c *TagCmd) runAll(deps *Dependencies) error {
	progress := func(event tag.ProgressEvent) {
		switch event.Type {
		case tag.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Tagging %d documents...\n", event.Total)
		case tag.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s: %s\n", event.Completed, event.Total, event.Document, event.Error)
		case tag.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (duplicate TOC, skipped)\n", event.Completed, event.Total, event.Document)
		case tag.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.Document)
		}
	}

	result, err := deps.Tagger.TagAll(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sectag.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %d saved, %d skipped, %d failed.\n", result.Saved, result.Skipped, result.Failed)
	return nil
}
