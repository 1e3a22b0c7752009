// Package planner exposes offline change set planning over HTTP.
//
// POST /changesets/plan accepts a self-contained batch document (old counts,
// new counts and edits, as JSON or YAML) and answers with the plan document:
// the grouped deletes and inserts in application order, the old to new
// section map and a summary. Nothing is stored.
package planner
