package main

import (
	"fmt"

	"github.com/evaldoc/sectag"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, sectag.DocumentFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sectag.ErrorMessage(err))
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: document %q not found.\n", c.Name)
		return sectag.Errorf(sectag.ENOTFOUND, "document %q not found", c.Name)
	}

	if !c.Force {
		fmt.Fprintf(deps.Stderr, "This will delete document %q and all its classifications. Re-run with --force to confirm.\n", c.Name)
		return nil
	}

	if err := deps.Documents.DeleteDocument(deps.Ctx, docs[0].ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sectag.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %q.\n", c.Name)
	return nil
}
