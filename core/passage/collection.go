package passage

import (
	"iter"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/passage/core/catalog"
)

// Collection is an insertion-ordered sequence of passages. Order is
// significant for rendering and is never changed by the collection itself.
type Collection struct {
	items []Passage
}

// NewCollection returns a collection holding items in order.
func NewCollection(items ...Passage) *Collection {
	c := &Collection{items: make([]Passage, 0, len(items))}
	c.items = append(c.items, items...)
	return c
}

// Concat returns a new collection holding the passages of each input in order.
func Concat(cs ...*Collection) *Collection {
	out := NewCollection()
	for _, c := range cs {
		out.Extend(c)
	}
	return out
}

// Append adds passages to the end of the collection.
func (c *Collection) Append(ps ...Passage) {
	c.items = append(c.items, ps...)
}

// Extend appends every passage of other.
func (c *Collection) Extend(other *Collection) {
	if other == nil {
		return
	}
	c.items = append(c.items, other.items...)
}

// Insert places p before index i. Indexes outside the collection are clamped
// to its ends.
func (c *Collection) Insert(i int, p Passage) {
	i = max(0, min(i, len(c.items)))
	c.items = append(c.items, Passage{})
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = p
}

// Len returns the number of passages.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// At returns the passage at index i.
func (c *Collection) At(i int) Passage {
	return c.items[i]
}

// All iterates over the passages in order.
func (c *Collection) All() iter.Seq2[int, Passage] {
	return func(yield func(int, Passage) bool) {
		if c == nil {
			return
		}
		for i, p := range c.items {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Passages returns a copy of the underlying slice.
func (c *Collection) Passages() []Passage {
	out := make([]Passage, c.Len())
	if c != nil {
		copy(out, c.items)
	}
	return out
}

// Plus returns a new collection of c followed by ps.
func (c *Collection) Plus(ps ...Passage) *Collection {
	out := Concat(c)
	out.Append(ps...)
	return out
}

// Equal reports whether both collections hold equal passages in the same
// order.
func (c *Collection) Equal(other *Collection) bool {
	if c.Len() != other.Len() {
		return false
	}
	for i := range c.Len() {
		if !c.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

// Verses returns the total number of verses across all valid passages.
func (c *Collection) Verses() int {
	n := 0
	for _, p := range c.All() {
		n += p.Len()
	}
	return n
}

// String renders the collection in full with hyphens.
func (c *Collection) String() string {
	return c.Render(false, Hyphen)
}

// Abbr renders the collection with abbreviated book names.
func (c *Collection) Abbr() string {
	return c.Render(true, Hyphen)
}

// Render joins the passages into one reference string. Consecutive passages
// from the same book share one book name; groups are separated by "; ".
// Invalid passages are skipped.
func (c *Collection) Render(abbreviated bool, sep string) string {
	switch c.Len() {
	case 0:
		return ""
	case 1:
		return c.items[0].Render(abbreviated, sep)
	}

	valid := make([]Passage, 0, len(c.items))
	for _, p := range c.items {
		if p.IsValid() {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return InvalidPassagesText
	}

	var parts []string
	for _, group := range groupByBook(valid) {
		parts = append(parts, renderGroup(group, abbreviated, sep))
	}
	return strings.Join(parts, "; ")
}

// groupByBook splits ps into maximal runs of single-book passages from the
// same book. A multi-book passage always forms its own group.
func groupByBook(ps []Passage) [][]Passage {
	var groups [][]Passage
	for i := 0; i < len(ps); {
		j := i + 1
		if ps[i].SingleBook() {
			book := ps[i].start.Book
			for j < len(ps) && ps[j].SingleBook() && ps[j].start.Book == book {
				j++
			}
		}
		groups = append(groups, ps[i:j])
		i = j
	}
	return groups
}

func renderGroup(group []Passage, abbreviated bool, sep string) string {
	if len(group) == 1 {
		return group[0].Render(abbreviated, sep)
	}
	first := group[0]
	name := catalog.BookName(first.start.Book, abbreviated, false)

	if first.cat.ChaptersIn(first.start.Book) == 1 {
		verses := make([]string, len(group))
		for i, p := range group {
			verses[i] = verseRange(p.start.Verse, p.end.Verse, sep)
		}
		return name + " " + strings.Join(verses, ", ")
	}

	return name + " " + bunchGroup(group).render(sep)
}

// bunch is a run of passages rendered together under one chapter framing.
type bunch struct {
	wholeChapters bool
	items         []Passage
}

type bunches []*bunch

// bunchGroup merges consecutive whole-chapter passages into one bunch and
// consecutive partial passages within the same chapter into another. Any
// other passage gets a bunch of its own.
func bunchGroup(group []Passage) bunches {
	var (
		out         bunches
		lastWhole   *bunch
		lastPartial *bunch
		partialCh   int
	)
	for _, p := range group {
		switch {
		case p.IsCompleteChapters():
			if lastWhole == nil {
				lastWhole = &bunch{wholeChapters: true}
				out = append(out, lastWhole)
			}
			lastWhole.items = append(lastWhole.items, p)
			lastPartial = nil
		case p.start.Chapter == p.end.Chapter:
			if lastPartial == nil || partialCh != p.start.Chapter {
				lastPartial = &bunch{}
				partialCh = p.start.Chapter
				out = append(out, lastPartial)
			}
			lastPartial.items = append(lastPartial.items, p)
			lastWhole = nil
		default:
			out = append(out, &bunch{items: []Passage{p}})
			lastWhole, lastPartial = nil, nil
		}
	}
	return out
}

// render joins the bunches with commas. Once any bunch has needed a
// chapter:verse form, later whole-chapter bunches spell out their verses so
// a bare number cannot be read as a verse.
func (bs bunches) render(sep string) string {
	var (
		parts      []string
		verseShown bool
	)
	for _, b := range bs {
		for _, p := range b.items {
			s, e := p.start, p.end
			switch {
			case b.wholeChapters && !verseShown && s.Chapter == e.Chapter:
				parts = append(parts, strconv.Itoa(s.Chapter))
			case b.wholeChapters && !verseShown:
				parts = append(parts, strconv.Itoa(s.Chapter)+sep+strconv.Itoa(e.Chapter))
			case s.Chapter == e.Chapter:
				parts = append(parts, strconv.Itoa(s.Chapter)+":"+verseRange(s.Verse, e.Verse, sep))
			default:
				parts = append(parts, chapterVerse(s.Chapter, s.Verse)+sep+chapterVerse(e.Chapter, e.Verse))
			}
		}
		if !b.wholeChapters {
			verseShown = true
		}
	}
	return strings.Join(parts, ", ")
}
