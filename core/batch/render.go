package batch

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes a human readable view of the plan: grouped changes in
// enumeration order, the section map and the summary.
func Render(w io.Writer, doc *PlanDoc) error {
	groups := table.NewWriter()
	groups.SetStyle(table.StyleLight)
	groups.AppendHeader(table.Row{"#", "Kind", "Level", "Tag", "Indices"})
	for i, g := range doc.Groups {
		groups.AppendRow(table.Row{i + 1, g.Kind, g.Level, g.Tag, indices(g)})
	}
	if doc.ReloadData {
		groups.AppendFooter(table.Row{"", "reload", "data", "", ""})
	}

	sections := table.NewWriter()
	sections.SetStyle(table.StyleLight)
	sections.Style().Options.DrawBorder = false
	sections.AppendHeader(table.Row{"Old", "New", "Old Count", "New Count"})
	for s, ns := range doc.SectionMap {
		newIdx, newCount := "-", "-"
		if ns >= 0 {
			newIdx = strconv.Itoa(ns)
			newCount = strconv.Itoa(doc.NewCounts[ns])
		}
		sections.AppendRow(table.Row{s, newIdx, doc.OldCounts[s], newCount})
	}

	sum := doc.Summary
	_, err := fmt.Fprintf(w, "Plan %s\n%s\n\nSections:\n%s\n\nSections -%d +%d, items -%d +%d, %d groups\n",
		doc.ID, groups.Render(), sections.Render(),
		sum.DeletedSections, sum.InsertedSections, sum.DeletedItems, sum.InsertedItems, sum.Groups)
	return err
}

func indices(g Group) string {
	parts := make([]string, 0, len(g.Sections)+len(g.Items))
	for _, s := range g.Sections {
		parts = append(parts, strconv.Itoa(s))
	}
	for _, p := range g.Items {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " ")
}
