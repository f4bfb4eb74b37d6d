package passage

import (
	"math"

	"github.com/FocuswithJustin/passage/core/catalog"
)

// limits collects the bounds passed to Truncate and Extend.
type limits struct {
	verses        int
	hasVerses     bool
	proportion    float64
	hasProportion bool
}

// LimitOption bounds a Truncate or Extend call.
type LimitOption func(*limits)

// ByVerses bounds the passage length in verses.
func ByVerses(n int) LimitOption {
	return func(l *limits) {
		l.verses = n
		l.hasVerses = true
	}
}

// ByProportion bounds the passage length as a fraction of each book's
// verses.
func ByProportion(p float64) LimitOption {
	return func(l *limits) {
		l.proportion = p
		l.hasProportion = true
	}
}

func collectLimits(opts []LimitOption) limits {
	var l limits
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// Truncate shortens p from the end so it satisfies every given limit. If p
// already does, p is returned unchanged. ok is false when the effective
// limit is below one verse, or p is invalid.
//
// A proportion limit is checked book by book in passage order; the first
// book that exceeds it contributes ceil(proportion * book verses) and ends
// the passage.
func (p Passage) Truncate(opts ...LimitOption) (result Passage, ok bool) {
	if !p.IsValid() {
		return Passage{}, false
	}
	l := collectLimits(opts)
	current := p.Len()
	limit := current

	if l.hasVerses && l.verses < limit {
		limit = l.verses
	}
	if l.hasProportion {
		perBook := p.CountPerBook()
		v := 0
		for book := p.start.Book; book <= p.end.Book; book++ {
			allowed := l.proportion * float64(p.cat.BookVerses(book))
			if float64(perBook[book]) <= allowed {
				v += perBook[book]
				continue
			}
			v += int(math.Ceil(allowed))
			break
		}
		if v < limit {
			limit = v
		}
	}

	if current <= limit {
		return p, true
	}
	if limit < 1 {
		return Passage{}, false
	}

	end, found := p.walk(limit)
	if !found {
		return Passage{}, false
	}
	return Passage{cat: p.cat, start: p.start, end: end}, true
}

// walk returns the position of the n-th existing verse of p, counting from 1.
func (p Passage) walk(n int) (Position, bool) {
	cat := p.cat
	seen := 0
	for book := p.start.Book; book <= p.end.Book; book++ {
		firstCh, lastCh := 1, cat.ChaptersIn(book)
		if book == p.start.Book {
			firstCh = p.start.Chapter
		}
		if book == p.end.Book {
			lastCh = p.end.Chapter
		}
		for ch := firstCh; ch <= lastCh; ch++ {
			firstV, lastV := 1, cat.LastVerse(book, ch)
			if book == p.start.Book && ch == p.start.Chapter {
				firstV = p.start.Verse
			}
			if book == p.end.Book && ch == p.end.Chapter {
				lastV = p.end.Verse
			}
			avail := lastV - firstV + 1 - cat.MissingBetween(book, ch, firstV, lastV)
			if seen+avail < n {
				seen += avail
				continue
			}
			for v := firstV; v <= lastV; v++ {
				if cat.IsMissing(book, ch, v) {
					continue
				}
				seen++
				if seen == n {
					return Position{book, ch, v}, true
				}
			}
		}
	}
	return Position{}, false
}

// Extend lengthens p toward the end of the corpus until it satisfies every
// given minimum. A proportion minimum is measured against the start book:
// the target is ceil(proportion * start book verses). If p is already long
// enough, or invalid, it is returned unchanged.
func (p Passage) Extend(opts ...LimitOption) Passage {
	if !p.IsValid() {
		return p
	}
	l := collectLimits(opts)
	current := p.Len()
	limit := current

	if l.hasVerses && l.verses > limit {
		limit = l.verses
	}
	if l.hasProportion {
		v := int(math.Ceil(l.proportion * float64(p.cat.BookVerses(p.start.Book))))
		if v > limit {
			limit = v
		}
	}
	if current >= limit {
		return p
	}

	lastCh := p.cat.ChaptersIn(catalog.Revelation)
	maximal := Passage{
		cat:   p.cat,
		start: p.start,
		end:   Position{catalog.Revelation, lastCh, p.cat.LastVerse(catalog.Revelation, lastCh)},
	}
	extended, ok := maximal.Truncate(ByVerses(limit))
	if !ok {
		return p
	}
	return extended
}
