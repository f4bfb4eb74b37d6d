// Package catalog provides the immutable corpus tables that every passage
// operation consults: chapters per book, last verse per chapter, verse
// numbers a translation omits, and the fixed book naming table.
//
// A Catalog is built once and never mutated, so a single value may be shared
// by any number of goroutines without locking. The ESV catalog is the
// default; a KJV catalog is registered alongside it, and further catalogs can
// be derived from OSIS documents (see FromOSIS) and registered by id.
package catalog

import (
	"fmt"
	"sort"

	"github.com/FocuswithJustin/passage/core/errors"
)

// MaxNumeral is the largest chapter count or verse number a catalog may
// hold. Passage keys pack book, chapter and verse into decimal fields of
// three digits.
const MaxNumeral = 999

// ChapterRef identifies one chapter of one book.
type ChapterRef struct {
	Book    int
	Chapter int
}

// Catalog is the read-only versification table for one translation.
type Catalog struct {
	id          string
	lastVerses  [][]int
	missing     map[ChapterRef][]int
	bookVerses  []int
	fingerprint string
}

// New builds a catalog from a chapter table (indexed book-1, chapter-1) and
// a set of missing verses per chapter. Inputs are copied; the result is
// immutable.
func New(id string, lastVerses [][]int, missing map[ChapterRef][]int) (*Catalog, error) {
	if id == "" {
		return nil, errors.NewValidation("id", "catalog id is required")
	}
	if len(lastVerses) != BookCount {
		return nil, errors.NewValidation("lastVerses", fmt.Sprintf("expected %d books, got %d", BookCount, len(lastVerses)))
	}
	for i, chapters := range lastVerses {
		if len(chapters) == 0 {
			return nil, errors.NewValidation("lastVerses", fmt.Sprintf("%s has no chapters", BookName(i+1, false, false)))
		}
		if len(chapters) > MaxNumeral {
			return nil, errors.NewValidation("lastVerses", fmt.Sprintf("%s has %d chapters, limit %d", BookName(i+1, false, false), len(chapters), MaxNumeral))
		}
		for j, last := range chapters {
			if last < 1 {
				return nil, errors.NewValidation("lastVerses", fmt.Sprintf("%s %d has no verses", BookName(i+1, false, false), j+1))
			}
			if last > MaxNumeral {
				return nil, errors.NewValidation("lastVerses", fmt.Sprintf("%s %d has %d verses, limit %d", BookName(i+1, false, false), j+1, last, MaxNumeral))
			}
		}
	}

	c := &Catalog{
		id:         id,
		lastVerses: copyTable(lastVerses),
		missing:    make(map[ChapterRef][]int, len(missing)),
		bookVerses: make([]int, BookCount),
	}

	for ref, verses := range missing {
		last := c.LastVerse(ref.Book, ref.Chapter)
		if last == 0 {
			return nil, errors.NewValidation("missing", fmt.Sprintf("no such chapter %d:%d", ref.Book, ref.Chapter))
		}
		seen := make(map[int]bool, len(verses))
		sorted := make([]int, 0, len(verses))
		for _, v := range verses {
			// The last verse of a chapter always exists, by definition.
			if v < 1 || v >= last {
				return nil, errors.NewValidation("missing", fmt.Sprintf("verse %d outside %s %d", v, BookName(ref.Book, false, false), ref.Chapter))
			}
			if !seen[v] {
				seen[v] = true
				sorted = append(sorted, v)
			}
		}
		if len(sorted) == 0 {
			continue
		}
		sort.Ints(sorted)
		c.missing[ref] = sorted
	}

	for book := 1; book <= BookCount; book++ {
		total := 0
		for chapter := 1; chapter <= c.ChaptersIn(book); chapter++ {
			total += c.ChapterVerses(book, chapter)
		}
		c.bookVerses[book-1] = total
	}
	c.fingerprint = computeFingerprint(c)

	return c, nil
}

// MustNew is like New but panics on error. It is intended for package
// initialisation of built-in tables.
func MustNew(id string, lastVerses [][]int, missing map[ChapterRef][]int) *Catalog {
	c, err := New(id, lastVerses, missing)
	if err != nil {
		panic(fmt.Sprintf("catalog: %s: %v", id, err))
	}
	return c
}

// ID returns the translation identifier (e.g., "ESV").
func (c *Catalog) ID() string {
	return c.id
}

// ChaptersIn returns the number of chapters in book, or 0 for an unknown book.
func (c *Catalog) ChaptersIn(book int) int {
	if !ValidBook(book) {
		return 0
	}
	return len(c.lastVerses[book-1])
}

// LastVerse returns the highest verse number of a chapter, or 0 if the
// chapter does not exist.
func (c *Catalog) LastVerse(book, chapter int) int {
	if chapter < 1 || chapter > c.ChaptersIn(book) {
		return 0
	}
	return c.lastVerses[book-1][chapter-1]
}

// Missing returns the verse numbers absent from a chapter, in ascending order.
// The returned slice is a copy.
func (c *Catalog) Missing(book, chapter int) []int {
	verses := c.missing[ChapterRef{Book: book, Chapter: chapter}]
	if len(verses) == 0 {
		return nil
	}
	out := make([]int, len(verses))
	copy(out, verses)
	return out
}

// IsMissing reports whether verse is omitted from the chapter.
func (c *Catalog) IsMissing(book, chapter, verse int) bool {
	for _, v := range c.missing[ChapterRef{Book: book, Chapter: chapter}] {
		if v == verse {
			return true
		}
		if v > verse {
			break
		}
	}
	return false
}

// MissingBetween counts omitted verses v with from <= v <= to.
func (c *Catalog) MissingBetween(book, chapter, from, to int) int {
	n := 0
	for _, v := range c.missing[ChapterRef{Book: book, Chapter: chapter}] {
		if v >= from && v <= to {
			n++
		}
	}
	return n
}

// ChapterVerses returns the number of verses that exist in a chapter.
func (c *Catalog) ChapterVerses(book, chapter int) int {
	last := c.LastVerse(book, chapter)
	if last == 0 {
		return 0
	}
	return last - len(c.missing[ChapterRef{Book: book, Chapter: chapter}])
}

// BookVerses returns the number of verses that exist in a book.
func (c *Catalog) BookVerses(book int) int {
	if !ValidBook(book) {
		return 0
	}
	return c.bookVerses[book-1]
}

// TotalChapters returns the number of chapters across all books.
func (c *Catalog) TotalChapters() int {
	n := 0
	for _, chapters := range c.lastVerses {
		n += len(chapters)
	}
	return n
}

// TotalLastVerses returns the sum of every chapter's last verse number.
func (c *Catalog) TotalLastVerses() int {
	n := 0
	for _, chapters := range c.lastVerses {
		for _, last := range chapters {
			n += last
		}
	}
	return n
}

// TotalMissing returns the number of omitted verses across the corpus.
func (c *Catalog) TotalMissing() int {
	n := 0
	for _, verses := range c.missing {
		n += len(verses)
	}
	return n
}

// TotalVerses returns the number of verses that exist across the corpus.
func (c *Catalog) TotalVerses() int {
	return c.TotalLastVerses() - c.TotalMissing()
}

// Name returns the display name of book. See BookName.
func (c *Catalog) Name(book int, abbreviated, singular bool) string {
	return BookName(book, abbreviated, singular)
}

// Code returns the OSIS identifier of book.
func (c *Catalog) Code(book int) string {
	return OSISCode(book)
}

// Fingerprint returns the hex BLAKE3 digest of the catalog tables. Two
// catalogs with identical tables share a fingerprint regardless of id.
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}

func copyTable(table [][]int) [][]int {
	out := make([][]int, len(table))
	for i, row := range table {
		out[i] = make([]int, len(row))
		copy(out[i], row)
	}
	return out
}
