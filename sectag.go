// Package sectag assigns semantic section-type labels to the entries of a
// document's table of contents. It parses TOC text into entries and runs a
// deterministic pipeline of keyword locking, hierarchical inheritance and
// ordered structural corrections, producing one label per entry from a
// closed taxonomy.
//
// This package contains the pure classification core plus domain types and
// interfaces following Ben Johnson's Standard Package Layout. Collaborator
// implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, gemini/).
package sectag
