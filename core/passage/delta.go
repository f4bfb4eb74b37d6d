package passage

import (
	"github.com/FocuswithJustin/passage/core/catalog"
	"github.com/FocuswithJustin/passage/core/errors"
)

// Anchor selects which endpoint a Delta moves.
type Anchor int

const (
	// AnchorEnd moves the end of the passage; positive offsets lengthen it.
	AnchorEnd Anchor = iota
	// AnchorStart moves the start of the passage; positive offsets lengthen
	// it by moving the start earlier.
	AnchorStart
)

func (a Anchor) String() string {
	if a == AnchorStart {
		return "start"
	}
	return "end"
}

// Delta is a signed chapter and verse offset applied to one endpoint.
// Chapters are applied first, then verses.
type Delta struct {
	Chapters int
	Verses   int
	Anchor   Anchor
}

// Apply returns p with the anchored endpoint moved. Motion past Revelation
// 22:21 or before Genesis 1:1 clamps silently; motion that carries the
// endpoint past the opposite endpoint fails with ReasonExceedsLength.
func (d Delta) Apply(p Passage) (Passage, error) {
	if err := p.Validate(); err != nil {
		return Passage{}, err
	}
	cat := p.cat

	if d.Anchor == AnchorStart {
		pos := p.start
		pinned := pos.Verse == cat.LastVerse(pos.Book, pos.Chapter)
		pos = shiftChapters(cat, pos, -d.Chapters, pinned)
		pos = shiftVerses(cat, pos, -d.Verses)
		if pos.Compare(p.end) > 0 {
			return Passage{}, errors.NewInvalidPassagef(errors.ReasonExceedsLength,
				"start moved past end (%d:%d)", pos.Chapter, pos.Verse)
		}
		q, err := p.WithStart(pos)
		return q, exceedsOnReorder(err)
	}

	pos := p.end
	pinned := pos.Verse == cat.LastVerse(pos.Book, pos.Chapter)
	pos = shiftChapters(cat, pos, d.Chapters, pinned)
	pos = shiftVerses(cat, pos, d.Verses)
	if pos.Compare(p.start) < 0 {
		return Passage{}, errors.NewInvalidPassagef(errors.ReasonExceedsLength,
			"end moved before start (%d:%d)", pos.Chapter, pos.Verse)
	}
	q, err := p.WithEnd(pos)
	return q, exceedsOnReorder(err)
}

// exceedsOnReorder reports a missing-verse repair that crossed the fixed
// endpoint as an overshoot.
func exceedsOnReorder(err error) error {
	switch errors.ReasonOf(err) {
	case errors.ReasonEndBeforeStart, errors.ReasonMissingVerse:
		return errors.NewInvalidPassage(errors.ReasonExceedsLength, err.Error())
	}
	return err
}

// corpusEnd returns the last verse of cat.
func corpusEnd(cat *catalog.Catalog) Position {
	ch := cat.ChaptersIn(catalog.Revelation)
	return Position{catalog.Revelation, ch, cat.LastVerse(catalog.Revelation, ch)}
}

// shiftChapters moves pos by n chapters, carrying across book boundaries.
// When pinned, the verse follows to the last verse of the new chapter;
// otherwise it is clamped only if the new chapter is shorter.
func shiftChapters(cat *catalog.Catalog, pos Position, n int, pinned bool) Position {
	book, ch := pos.Book, pos.Chapter+n
	for {
		switch {
		case ch > cat.ChaptersIn(book):
			if book == catalog.Revelation {
				return corpusEnd(cat)
			}
			ch -= cat.ChaptersIn(book)
			book++
		case ch < 1:
			if book == catalog.Genesis {
				return Position{catalog.Genesis, 1, 1}
			}
			book--
			ch += cat.ChaptersIn(book)
		default:
			verse := pos.Verse
			if last := cat.LastVerse(book, ch); pinned || verse > last {
				verse = last
			}
			return Position{book, ch, verse}
		}
	}
}

// shiftVerses moves pos by n verse numbers, carrying across chapter and book
// boundaries. Missing verses are counted; the normaliser repairs a landing
// on one.
func shiftVerses(cat *catalog.Catalog, pos Position, n int) Position {
	book, ch, v := pos.Book, pos.Chapter, pos.Verse+n
	for {
		switch {
		case v > cat.LastVerse(book, ch):
			v -= cat.LastVerse(book, ch)
			if ch < cat.ChaptersIn(book) {
				ch++
				continue
			}
			if book == catalog.Revelation {
				return corpusEnd(cat)
			}
			book++
			ch = 1
		case v < 1:
			if ch > 1 {
				ch--
			} else {
				if book == catalog.Genesis {
					return Position{catalog.Genesis, 1, 1}
				}
				book--
				ch = cat.ChaptersIn(book)
			}
			v += cat.LastVerse(book, ch)
		default:
			return Position{book, ch, v}
		}
	}
}
