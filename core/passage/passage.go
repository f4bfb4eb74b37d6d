// Package passage models validated ranges of scripture references.
//
// A Passage is an immutable value built only through New (or one of its
// convenience wrappers), which normalises partially specified input against
// a catalog and validates the result. All transformations return a new
// Passage. The zero Passage is invalid and renders as "Invalid passage".
package passage

import (
	"fmt"

	"github.com/FocuswithJustin/passage/core/catalog"
	"github.com/FocuswithJustin/passage/core/errors"
)

// Passage is a validated range [start, end] over one catalog.
type Passage struct {
	cat        *catalog.Catalog
	start, end Position
}

// New normalises f against cat and returns the validated passage. A nil cat
// selects catalog.Default().
func New(cat *catalog.Catalog, f Fields) (Passage, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	start, end, err := Normalize(cat, f)
	if err != nil {
		return Passage{}, err
	}
	if err := Validate(cat, start, end); err != nil {
		return Passage{}, err
	}
	return Passage{cat: cat, start: start, end: end}, nil
}

// FromBook builds a single-book passage from positional numerals in the
// order start chapter, start verse, end chapter, end verse. Trailing
// numerals may be omitted.
func FromBook(cat *catalog.Catalog, book int, nums ...int) (Passage, error) {
	return FromBooks(cat, book, book, nums...)
}

// FromBooks is like FromBook for a range that may end in a later book.
func FromBooks(cat *catalog.Catalog, startBook, endBook int, nums ...int) (Passage, error) {
	if len(nums) > 4 {
		return Passage{}, errors.NewInvalidPassagef(errors.ReasonUnsatisfiableFields, "%d numerals", len(nums))
	}
	f := Fields{StartBook: startBook, EndBook: endBook}
	slots := []**int{&f.StartChapter, &f.StartVerse, &f.EndChapter, &f.EndVerse}
	for i, n := range nums {
		*slots[i] = Int(n)
	}
	return New(cat, f)
}

// FromName resolves a book name, abbreviation or code and then behaves like
// FromBook.
func FromName(cat *catalog.Catalog, name string, nums ...int) (Passage, error) {
	book, ok := catalog.LookupBook(name)
	if !ok {
		return Passage{}, errors.NewInvalidPassagef(errors.ReasonUnknownBook, "%q", name)
	}
	return FromBook(cat, book, nums...)
}

// Between builds a fully specified passage from two endpoints.
func Between(cat *catalog.Catalog, start, end Position) (Passage, error) {
	return New(cat, Fields{
		StartBook:    start.Book,
		EndBook:      end.Book,
		StartChapter: Int(start.Chapter),
		StartVerse:   Int(start.Verse),
		EndChapter:   Int(end.Chapter),
		EndVerse:     Int(end.Verse),
	})
}

// MustFromName is like FromName but panics on error. Intended for tests and
// fixed tables.
func MustFromName(cat *catalog.Catalog, name string, nums ...int) Passage {
	p, err := FromName(cat, name, nums...)
	if err != nil {
		panic(fmt.Sprintf("passage: %s %v: %v", name, nums, err))
	}
	return p
}

// Catalog returns the catalog the passage was validated against.
func (p Passage) Catalog() *catalog.Catalog { return p.cat }

// Start returns the first verse of the passage.
func (p Passage) Start() Position { return p.start }

// End returns the last verse of the passage.
func (p Passage) End() Position { return p.end }

func (p Passage) StartBook() int    { return p.start.Book }
func (p Passage) StartChapter() int { return p.start.Chapter }
func (p Passage) StartVerse() int   { return p.start.Verse }
func (p Passage) EndBook() int      { return p.end.Book }
func (p Passage) EndChapter() int   { return p.end.Chapter }
func (p Passage) EndVerse() int     { return p.end.Verse }

// StartKey returns the canonical numeric key of the first verse.
func (p Passage) StartKey() int { return p.start.Key() }

// EndKey returns the canonical numeric key of the last verse.
func (p Passage) EndKey() int { return p.end.Key() }

// Keys returns the canonical numeric key pair, suitable as a cache or
// database key.
func (p Passage) Keys() (int, int) { return p.start.Key(), p.end.Key() }

// SingleBook reports whether the passage starts and ends in the same book.
func (p Passage) SingleBook() bool { return p.start.Book == p.end.Book }

// Validate re-checks every passage invariant.
func (p Passage) Validate() error {
	if p.cat == nil {
		return errors.NewInvalidPassage(errors.ReasonUnknownBook, "zero passage")
	}
	return Validate(p.cat, p.start, p.end)
}

// IsValid reports whether Validate succeeds.
func (p Passage) IsValid() bool {
	return p.Validate() == nil
}

// Equal reports whether p and q cover the same verses. The catalog is not
// compared.
func (p Passage) Equal(q Passage) bool {
	return p.start == q.start && p.end == q.end
}

// Compare orders passages by start position, then by end position. It is
// suitable for slices.SortFunc.
func Compare(p, q Passage) int {
	if c := p.start.Compare(q.start); c != 0 {
		return c
	}
	return p.end.Compare(q.end)
}

// Overlaps reports whether p and q share at least one verse position.
func (p Passage) Overlaps(q Passage) bool {
	return p.start.Compare(q.end) <= 0 && q.start.Compare(p.end) <= 0
}

// WithStart returns a new passage starting at pos and ending where p ends.
func (p Passage) WithStart(pos Position) (Passage, error) {
	return Between(p.cat, pos, p.end)
}

// WithEnd returns a new passage starting where p starts and ending at pos.
func (p Passage) WithEnd(pos Position) (Passage, error) {
	return Between(p.cat, p.start, pos)
}

// Plus returns a collection holding p followed by others.
func (p Passage) Plus(others ...Passage) *Collection {
	return NewCollection(append([]Passage{p}, others...)...)
}

// GoString implements fmt.GoStringer.
func (p Passage) GoString() string {
	return fmt.Sprintf("Passage(%d:%d:%d-%d:%d:%d)",
		p.start.Book, p.start.Chapter, p.start.Verse, p.end.Book, p.end.Chapter, p.end.Verse)
}
