// Package batch turns batch documents into finalized change sets and renders
// them as plan documents.
//
// A batch document carries the per-section item counts before and after an
// update plus the list of edits that explain the difference. Documents can be
// written as JSON or YAML:
//
//	old_counts: [3, 3]
//	new_counts: [3]
//	edits:
//	  - op: delete
//	    level: section
//	    sections: [0]
//	  - op: reload
//	    level: item
//	    tag: 2
//	    items:
//	      - {section: 1, item: 0}
//
// Plan converts a Request into a PlanDoc, the wire form shared by the HTTP API,
// the plan archive and the CLI.
package batch
