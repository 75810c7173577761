package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/evaldoc/sectag"
)

// Run executes the classify command.
func (c *ClassifyCmd) Run(deps *Dependencies) error {
	text, err := readInput(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	result := sectag.Classify(text, sectag.DocumentContext{TotalPages: c.Pages})

	if len(result.Entries) == 0 {
		fmt.Fprintln(deps.Stderr, "No TOC entries recognized in input.")
		return nil
	}

	if c.Labels {
		indices := make([]int, 0, len(result.Labels))
		for index := range result.Labels {
			indices = append(indices, index)
		}
		sort.Ints(indices)
		for _, index := range indices {
			fmt.Fprintf(deps.Stdout, "%d\t%s\n", index, result.Labels.Get(index))
		}
		return nil
	}

	fmt.Fprintln(deps.Stdout, result.Render())
	return nil
}

// readInput reads TOC text from a file, or from stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
