package main

import (
	"fmt"

	"github.com/evaldoc/sectag"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, sectag.DocumentFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sectag.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'sectag add' to register one.")
		return nil
	}

	for _, doc := range docs {
		classifications, err := deps.Classifications.FindClassifications(deps.Ctx, sectag.ClassificationFilter{
			DocumentID: &doc.ID,
			Limit:      1,
		})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sectag.ErrorMessage(err))
			return err
		}

		status := "untagged"
		if len(classifications) > 0 {
			status = classifications[0].Source
		}

		fmt.Fprintf(deps.Stdout, "%s  %s  %d pages  %s\n", doc.ID, doc.Name, doc.PageCount, status)
	}

	return nil
}
