package batch

import (
	"fmt"
	"time"

	"changeset-manager/core/changeset"

	"github.com/google/uuid"
)

// Record adds the edit to a builder.
func (e Edit) Record(b *changeset.Builder) error {
	tag := changeset.Tag(e.Tag)

	switch e.Level {
	case LevelSection:
		switch e.Op {
		case OpInsert:
			return b.InsertSections(e.Sections, tag)
		case OpDelete:
			return b.DeleteSections(e.Sections, tag)
		case OpReload:
			return b.ReloadSections(e.Sections, tag)
		case OpMove:
			if e.From == nil || e.To == nil {
				return fmt.Errorf("%w: section move needs from and to", ErrInvalidEdit)
			}
			return b.MoveSection(e.From.Section, e.To.Section, tag)
		}
	case LevelItem:
		switch e.Op {
		case OpInsert:
			return b.InsertItems(e.Items, tag)
		case OpDelete:
			return b.DeleteItems(e.Items, tag)
		case OpReload:
			return b.ReloadItems(e.Items, tag)
		case OpMove:
			if e.From == nil || e.To == nil {
				return fmt.Errorf("%w: item move needs from and to", ErrInvalidEdit)
			}
			return b.MoveItem(*e.From, *e.To, tag)
		}
	default:
		return fmt.Errorf("%w: unknown level %q", ErrInvalidEdit, e.Level)
	}
	return fmt.Errorf("%w: unknown op %q", ErrInvalidEdit, e.Op)
}

// Build records every edit of the request on a new builder.
func Build(oldCounts []int, req *Request) (*changeset.Builder, error) {
	b := changeset.NewBuilder(oldCounts)
	if req.ReloadData {
		if err := b.ReloadData(); err != nil {
			return nil, err
		}
		return b, nil
	}
	for i, e := range req.Edits {
		if err := e.Record(b); err != nil {
			return nil, fmt.Errorf("edit %d (%s %s): %w", i, e.Op, e.Level, err)
		}
	}
	return b, nil
}

// Plan finalizes a self-contained request and renders it.
func Plan(req *Request) (*PlanDoc, *changeset.Result, error) {
	b, err := Build(req.OldCounts, req)
	if err != nil {
		return nil, nil, err
	}
	res, err := b.Finalize(req.NewCounts)
	if err != nil {
		return nil, nil, err
	}
	return NewPlanDoc(res), res, nil
}

// NewPlanDoc renders a finalized change set.
func NewPlanDoc(res *changeset.Result) *PlanDoc {
	doc := &PlanDoc{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		OldCounts:  res.OldCounts(),
		NewCounts:  res.NewCounts(),
		ReloadData: res.IncludesReloadData(),
		Groups:     []Group{},
		Summary:    res.Summary(),
	}

	for _, c := range res.ItemChanges(changeset.Delete) {
		doc.Groups = append(doc.Groups, itemGroup(c))
	}
	for _, c := range res.SectionChanges(changeset.Delete) {
		doc.Groups = append(doc.Groups, sectionGroup(c))
	}
	for _, c := range res.SectionChanges(changeset.Insert) {
		doc.Groups = append(doc.Groups, sectionGroup(c))
	}
	for _, c := range res.ItemChanges(changeset.Insert) {
		doc.Groups = append(doc.Groups, itemGroup(c))
	}

	doc.SectionMap = make([]int, len(doc.OldCounts))
	for s := range doc.SectionMap {
		if ns, ok := res.NewSection(s); ok {
			doc.SectionMap[s] = ns
		} else {
			doc.SectionMap[s] = -1
		}
	}
	return doc
}

func sectionGroup(c changeset.SectionChange) Group {
	g := Group{Kind: c.Kind().String(), Level: LevelSection, Tag: uint32(c.Tag())}
	for _, s := range c.Indices() {
		g.Sections = append(g.Sections, int(s))
	}
	return g
}

func itemGroup(c changeset.ItemChange) Group {
	return Group{
		Kind:  c.Kind().String(),
		Level: LevelItem,
		Tag:   uint32(c.Tag()),
		Items: c.Indices(),
	}
}
