package passage

import (
	"cmp"

	"github.com/FocuswithJustin/passage/core/catalog"
	"github.com/FocuswithJustin/passage/core/errors"
)

// Fields is a partially specified passage reference. A nil numeral is
// absent and will be inferred; EndBook 0 means the same as StartBook.
type Fields struct {
	StartBook    int
	EndBook      int
	StartChapter *int
	StartVerse   *int
	EndChapter   *int
	EndVerse     *int
}

// Int returns a pointer to v, for populating Fields.
func Int(v int) *int {
	return &v
}

// Position is one endpoint of a passage.
type Position struct {
	Book    int
	Chapter int
	Verse   int
}

// Key returns the canonical numeric key book*10^6 + chapter*10^3 + verse.
func (p Position) Key() int {
	return p.Book*1_000_000 + p.Chapter*1_000 + p.Verse
}

// Compare orders positions by book, then chapter, then verse.
func (p Position) Compare(q Position) int {
	switch {
	case p.Book != q.Book:
		return cmp.Compare(p.Book, q.Book)
	case p.Chapter != q.Chapter:
		return cmp.Compare(p.Chapter, q.Chapter)
	}
	return cmp.Compare(p.Verse, q.Verse)
}

// Normalize infers absent numerals and clamps overlong ends against cat.
// The returned endpoints are in range and never on a missing verse, but
// ordering and start bounds are left to Validate.
func Normalize(cat *catalog.Catalog, f Fields) (start, end Position, err error) {
	if cat == nil {
		cat = catalog.Default()
	}
	startBook, endBook := f.StartBook, f.EndBook
	if endBook == 0 {
		endBook = startBook
	}
	if !catalog.ValidBook(startBook) {
		return start, end, errors.NewInvalidPassagef(errors.ReasonUnknownBook, "book %d", startBook)
	}
	if !catalog.ValidBook(endBook) {
		return start, end, errors.NewInvalidPassagef(errors.ReasonUnknownBook, "book %d", endBook)
	}

	for _, n := range []*int{f.StartChapter, f.StartVerse, f.EndChapter, f.EndVerse} {
		if n != nil && *n < 1 {
			return start, end, errors.NewInvalidPassagef(errors.ReasonNonPositiveNumeral, "numeral %d", *n)
		}
	}

	hasSC, hasSV := f.StartChapter != nil, f.StartVerse != nil
	hasEC, hasEV := f.EndChapter != nil, f.EndVerse != nil
	var sc, sv, ec, ev int
	if hasSC {
		sc = *f.StartChapter
	}
	if hasSV {
		sv = *f.StartVerse
	}
	if hasEC {
		ec = *f.EndChapter
	}
	if hasEV {
		ev = *f.EndVerse
	}

	if !hasSC && !hasSV && !hasEC && !hasEV {
		ec = cat.ChaptersIn(endBook)
		return Position{startBook, 1, 1}, Position{endBook, ec, cat.LastVerse(endBook, ec)}, nil
	}

	if singleChapterRange(cat, startBook, endBook) {
		if !hasSC && !hasSV {
			sc, sv = 1, 1
			hasSC, hasSV = true, true
		}
		switch {
		case hasSV && hasEV && (!hasSC || sc == 1) && (!hasEC || ec == 1):
			// Verse range with chapter 1 or no chapter at all.
			sc, ec = 1, 1
		case hasSC && hasEC && !hasSV && !hasEV:
			// Chapter pair written where a verse pair was meant.
			sv, ev = sc, ec
			sc, ec = 1, 1
		case hasSC && !hasEC && !hasEV:
			if hasSV {
				// "Phlm 3, 6" reads as verses 3 to 6.
				sv, ev = sc, sv
			} else {
				sv, ev = sc, sc
			}
			sc, ec = 1, 1
		case hasSV && !hasSC && !hasEC && !hasEV:
			ev = sv
			sc, ec = 1, 1
		default:
			return start, end, errors.NewInvalidPassage(errors.ReasonUnsatisfiableFields, catalog.BookName(endBook, false, false))
		}
	} else {
		if !hasSC {
			sc = 1
		}
		if !hasSV {
			sv = 1
		}
		if !hasEC {
			ec = sc
		}
		if !hasEV {
			switch {
			case startBook == endBook && sc == ec && hasSV:
				ev = sv
			case startBook == endBook && sc == ec:
				ev = cat.LastVerse(endBook, ec)
			default:
				ec = min(ec, cat.ChaptersIn(endBook))
				ev = cat.LastVerse(endBook, ec)
			}
		}
	}

	if last := cat.ChaptersIn(endBook); ec > last {
		ec = last
		ev = cat.LastVerse(endBook, ec)
	} else if last := cat.LastVerse(endBook, ec); ev > last {
		ev = last
	}

	for cat.IsMissing(startBook, sc, sv) {
		sv++
		if startBook == endBook && sc == ec && sv > ev {
			return start, end, errors.NewInvalidPassagef(errors.ReasonMissingVerse,
				"%s %d:%d", catalog.BookName(startBook, false, false), sc, sv-1)
		}
	}
	for cat.IsMissing(endBook, ec, ev) {
		ev--
	}
	if ev < 1 {
		if ec == 1 {
			return start, end, errors.NewInvalidPassagef(errors.ReasonMissingVerse,
				"%s %d:1", catalog.BookName(endBook, false, false), ec)
		}
		ec--
		ev = cat.LastVerse(endBook, ec)
	}

	return Position{startBook, sc, sv}, Position{endBook, ec, ev}, nil
}

// singleChapterRange reports whether the single-chapter shorthand applies.
func singleChapterRange(cat *catalog.Catalog, startBook, endBook int) bool {
	if cat.ChaptersIn(endBook) != 1 {
		return false
	}
	return startBook == endBook || cat.ChaptersIn(startBook) == 1
}

// Validate checks that start and end form a passage that can exist in cat.
func Validate(cat *catalog.Catalog, start, end Position) error {
	if cat == nil {
		cat = catalog.Default()
	}
	if !catalog.ValidBook(start.Book) {
		return errors.NewInvalidPassagef(errors.ReasonUnknownBook, "book %d", start.Book)
	}
	if !catalog.ValidBook(end.Book) {
		return errors.NewInvalidPassagef(errors.ReasonUnknownBook, "book %d", end.Book)
	}
	if end.Book < start.Book {
		return errors.NewInvalidPassagef(errors.ReasonEndBeforeStart, "%s before %s",
			catalog.BookName(end.Book, false, false), catalog.BookName(start.Book, false, false))
	}
	for _, pos := range []Position{start, end} {
		if pos.Chapter < 1 || pos.Verse < 1 {
			return errors.NewInvalidPassagef(errors.ReasonNonPositiveNumeral, "%s %d:%d",
				catalog.BookName(pos.Book, false, false), pos.Chapter, pos.Verse)
		}
		if pos.Chapter > cat.ChaptersIn(pos.Book) || pos.Verse > cat.LastVerse(pos.Book, pos.Chapter) {
			return errors.NewInvalidPassagef(errors.ReasonOutOfBounds, "%s %d:%d",
				catalog.BookName(pos.Book, false, false), pos.Chapter, pos.Verse)
		}
	}
	if start.Compare(end) > 0 {
		return errors.NewInvalidPassagef(errors.ReasonEndBeforeStart, "%d:%d after %d:%d",
			start.Chapter, start.Verse, end.Chapter, end.Verse)
	}
	for _, pos := range []Position{start, end} {
		if cat.IsMissing(pos.Book, pos.Chapter, pos.Verse) {
			return errors.NewInvalidPassagef(errors.ReasonMissingVerse, "%s %d:%d",
				catalog.BookName(pos.Book, false, false), pos.Chapter, pos.Verse)
		}
	}
	return nil
}
