package main

import (
	"github.com/google/uuid"

	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/core/passage"
	"github.com/FocuswithJustin/passage/internal/store"
)

// StoreGroup contains saved passage operations.
type StoreGroup struct {
	Save    StoreSaveCmd    `cmd:"" help:"Save every passage of a citation"`
	Get     StoreGetCmd     `cmd:"" help:"Show a saved passage"`
	List    StoreListCmd    `cmd:"" help:"List saved passages"`
	Overlap StoreOverlapCmd `cmd:"" help:"List saved passages that overlap a citation"`
	Delete  StoreDeleteCmd  `cmd:"" help:"Delete a saved passage"`
}

func (g *Globals) openStore() (*store.Store, error) {
	if _, err := g.catalog(); err != nil {
		return nil, err
	}
	return store.Open(g.ctx, store.Options{Path: g.DB})
}

func (g *Globals) printRecord(rec store.Record) {
	flags := ""
	if rec.Meta.Reading {
		flags += " [reading]"
	}
	if rec.Meta.Primary {
		flags += " [primary]"
	}
	label := ""
	if rec.Meta.Label != "" {
		label = "  " + rec.Meta.Label
	}
	g.printf("%s  %s (%s)%s%s\n", rec.ID, g.render(rec.Passage), rec.Passage.Catalog().ID(), label, flags)
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, &errors.ValidationError{Field: "id", Value: s, Message: "not a UUID", Err: errors.ErrInvalidInput}
	}
	return id, nil
}

// StoreSaveCmd saves a citation.
type StoreSaveCmd struct {
	Citation string `arg:"" help:"Citation text"`
	Label    string `name:"label" help:"Free-text label"`
	Reading  bool   `name:"reading" help:"Mark as read aloud"`
	Primary  bool   `name:"primary" help:"Mark as the subject of the talk"`
}

func (c *StoreSaveCmd) Run(g *Globals) error {
	coll, err := g.parseCitation(c.Citation)
	if err != nil {
		return err
	}
	s, err := g.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	meta := store.Meta{Label: c.Label, Reading: c.Reading, Primary: c.Primary}
	for _, p := range coll.All() {
		rec, err := s.Save(g.ctx, p, meta)
		if err != nil {
			return err
		}
		g.printRecord(rec)
	}
	return nil
}

// StoreGetCmd shows one record.
type StoreGetCmd struct {
	ID string `arg:"" help:"Passage id"`
}

func (c *StoreGetCmd) Run(g *Globals) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	s, err := g.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.Get(g.ctx, id)
	if err != nil {
		return err
	}
	g.printRecord(rec)
	return nil
}

// StoreListCmd lists every record.
type StoreListCmd struct {
	Summary bool `name:"summary" help:"Print the combined reference instead of one line per record"`
}

func (c *StoreListCmd) Run(g *Globals) error {
	s, err := g.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	recs, err := s.List(g.ctx)
	if err != nil {
		return err
	}
	if c.Summary {
		coll := passage.NewCollection()
		for _, rec := range recs {
			coll.Append(rec.Passage)
		}
		g.printf("%s\n", g.render(coll))
		return nil
	}
	for _, rec := range recs {
		g.printRecord(rec)
	}
	return nil
}

// StoreOverlapCmd lists records overlapping a citation.
type StoreOverlapCmd struct {
	Citation string `arg:"" help:"Citation text"`
}

func (c *StoreOverlapCmd) Run(g *Globals) error {
	coll, err := g.parseCitation(c.Citation)
	if err != nil {
		return err
	}
	s, err := g.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	seen := make(map[uuid.UUID]bool)
	for _, p := range coll.All() {
		recs, err := s.Overlapping(g.ctx, p)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			if !seen[rec.ID] {
				seen[rec.ID] = true
				g.printRecord(rec)
			}
		}
	}
	return nil
}

// StoreDeleteCmd deletes one record.
type StoreDeleteCmd struct {
	ID string `arg:"" help:"Passage id"`
}

func (c *StoreDeleteCmd) Run(g *Globals) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	s, err := g.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Delete(g.ctx, id); err != nil {
		return err
	}
	g.printf("deleted %s\n", id)
	return nil
}
