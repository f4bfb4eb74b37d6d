package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/FocuswithJustin/passage/core/catalog"
	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/core/passage"
)

// RenderCmd renders a passage reference.
type RenderCmd struct {
	PassageArgs
}

func (c *RenderCmd) Run(g *Globals) error {
	p, err := c.passage(g)
	if err != nil {
		return err
	}
	g.printf("%s\n", g.render(p))
	return nil
}

// OSISCmd prints the OSIS identifier of a passage.
type OSISCmd struct {
	PassageArgs
}

func (c *OSISCmd) Run(g *Globals) error {
	p, err := c.passage(g)
	if err != nil {
		return err
	}
	g.printf("%s\n", p.OSIS())
	return nil
}

// CountCmd counts verses, in total and per book.
type CountCmd struct {
	PassageArgs
}

func (c *CountCmd) Run(g *Globals) error {
	p, err := c.passage(g)
	if err != nil {
		return err
	}
	g.printf("%s: %d verses\n", g.render(p), p.Len())

	perBook := p.CountPerBook()
	if len(perBook) > 1 {
		books := make([]int, 0, len(perBook))
		for b := range perBook {
			books = append(books, b)
		}
		sort.Ints(books)
		for _, b := range books {
			g.printf("  %s: %d\n", catalog.BookName(b, g.Abbr, false), perBook[b])
		}
	}
	if p.IsCompleteBook() {
		g.printf("  complete book\n")
	} else if p.IsCompleteChapters() {
		g.printf("  complete chapters\n")
	}
	return nil
}

// LimitFlags are the budgets accepted by truncate and extend.
type LimitFlags struct {
	Verses     int     `name:"verses" help:"Verse count"`
	Proportion float64 `name:"proportion" help:"Fraction of a book, between 0 and 1"`
}

func (f LimitFlags) options() ([]passage.LimitOption, error) {
	var opts []passage.LimitOption
	if f.Verses != 0 {
		opts = append(opts, passage.ByVerses(f.Verses))
	}
	if f.Proportion != 0 {
		if f.Proportion < 0 || f.Proportion > 1 {
			return nil, errors.NewValidation("proportion", "must be between 0 and 1")
		}
		opts = append(opts, passage.ByProportion(f.Proportion))
	}
	if len(opts) == 0 {
		return nil, errors.NewValidation("limit", "--verses or --proportion is required")
	}
	return opts, nil
}

// TruncateCmd shortens a passage.
type TruncateCmd struct {
	PassageArgs
	LimitFlags
}

func (c *TruncateCmd) Run(g *Globals) error {
	p, err := c.passage(g)
	if err != nil {
		return err
	}
	opts, err := c.options()
	if err != nil {
		return err
	}
	t, ok := p.Truncate(opts...)
	if !ok {
		return errors.NewInvalidPassagef(errors.ReasonExceedsLength, "%s cannot be truncated below one verse", p)
	}
	g.printf("%s\n", g.render(t))
	return nil
}

// ExtendCmd lengthens a passage.
type ExtendCmd struct {
	PassageArgs
	LimitFlags
}

func (c *ExtendCmd) Run(g *Globals) error {
	p, err := c.passage(g)
	if err != nil {
		return err
	}
	opts, err := c.options()
	if err != nil {
		return err
	}
	g.printf("%s\n", g.render(p.Extend(opts...)))
	return nil
}

// ShiftCmd applies a chapter and verse delta to one endpoint.
type ShiftCmd struct {
	PassageArgs
	Chapters int  `name:"chapters" help:"Chapters to move"`
	Verses   int  `name:"verses" help:"Verses to move"`
	Start    bool `name:"start" help:"Move the start instead of the end"`
}

func (c *ShiftCmd) Run(g *Globals) error {
	p, err := c.passage(g)
	if err != nil {
		return err
	}
	d := passage.Delta{Chapters: c.Chapters, Verses: c.Verses}
	if c.Start {
		d.Anchor = passage.AnchorStart
	}
	shifted, err := d.Apply(p)
	if err != nil {
		return err
	}
	g.printf("%s\n", g.render(shifted))
	return nil
}

// ParseCmd parses a citation or OSIS identifier.
type ParseCmd struct {
	Citation string `arg:"" help:"Citation text"`
	OSIS     bool   `name:"osis" help:"Treat the argument as an OSIS identifier (Gen.1.1-Gen.1.3)"`
	List     bool   `name:"list" short:"l" help:"Print each passage on its own line with its OSIS identifier"`
}

func (c *ParseCmd) Run(g *Globals) error {
	var coll *passage.Collection
	if c.OSIS {
		cat, err := g.catalog()
		if err != nil {
			return err
		}
		p, err := passage.ParseOSIS(cat, c.Citation)
		if err != nil {
			return err
		}
		coll = passage.NewCollection(p)
	} else {
		var err error
		if coll, err = g.parseCitation(c.Citation); err != nil {
			return err
		}
	}

	if !c.List {
		g.printf("%s\n", g.render(coll))
		return nil
	}
	for _, p := range coll.All() {
		g.printf("%s\t%s\t%d\n", g.render(p), p.OSIS(), p.Len())
	}
	return nil
}

// CatalogCmd prints versification statistics for the selected catalog.
type CatalogCmd struct {
	Info CatalogInfoCmd `cmd:"" default:"1" help:"Show catalog totals"`
	List CatalogListCmd `cmd:"" help:"List registered translations"`
	Book CatalogBookCmd `cmd:"" help:"Show chapter lengths of one book"`
}

// CatalogInfoCmd shows catalog totals.
type CatalogInfoCmd struct{}

func (c *CatalogInfoCmd) Run(g *Globals) error {
	cat, err := g.catalog()
	if err != nil {
		return err
	}
	g.printf("Translation:  %s\n", cat.ID())
	g.printf("Chapters:     %d\n", cat.TotalChapters())
	g.printf("Verses:       %d\n", cat.TotalVerses())
	g.printf("Missing:      %d\n", cat.TotalMissing())
	g.printf("Fingerprint:  %s\n", cat.Fingerprint())
	return nil
}

// CatalogListCmd lists registered translations.
type CatalogListCmd struct{}

func (c *CatalogListCmd) Run(g *Globals) error {
	if _, err := g.catalog(); err != nil {
		return err
	}
	for _, id := range catalog.Translations() {
		marker := " "
		if strings.EqualFold(id, g.Translation) {
			marker = "*"
		}
		g.printf("%s %s\n", marker, id)
	}
	return nil
}

// CatalogBookCmd shows chapter lengths of one book.
type CatalogBookCmd struct {
	Book string `arg:"" help:"Book name, abbreviation or code"`
}

func (c *CatalogBookCmd) Run(g *Globals) error {
	cat, err := g.catalog()
	if err != nil {
		return err
	}
	book, ok := catalog.LookupBook(c.Book)
	if !ok {
		return errors.NewInvalidPassagef(errors.ReasonUnknownBook, "%q", c.Book)
	}
	info, _ := catalog.Book(book)
	g.printf("%s (%s, %s): %d chapters, %d verses\n",
		info.Name, info.OSIS, info.Code, cat.ChaptersIn(book), cat.BookVerses(book))
	for ch := 1; ch <= cat.ChaptersIn(book); ch++ {
		line := fmt.Sprintf("  %d: %d", ch, cat.LastVerse(book, ch))
		if missing := cat.Missing(book, ch); len(missing) > 0 {
			line += fmt.Sprintf(" (missing %v)", missing)
		}
		g.printf("%s\n", line)
	}
	return nil
}
