package passage

import (
	"strconv"

	"github.com/FocuswithJustin/passage/core/catalog"
)

// Sentinel strings returned when rendering invalid input.
const (
	InvalidPassageText  = "Invalid passage"
	InvalidPassagesText = "Invalid passages"
)

// Range separators.
const (
	Hyphen = "-"
	EnDash = "–"
)

// String renders the full reference with a hyphen, e.g. "Genesis 1:1-2".
func (p Passage) String() string {
	return p.Render(false, Hyphen)
}

// Abbr renders the abbreviated reference, e.g. "Gn 1:1-2".
func (p Passage) Abbr() string {
	return p.Render(true, Hyphen)
}

// Render returns the shortest unambiguous reference for p, using sep between
// the ends of a range.
func (p Passage) Render(abbreviated bool, sep string) string {
	if !p.IsValid() {
		return InvalidPassageText
	}
	cat := p.cat
	s, e := p.start, p.end
	wholeChapters := s.Verse == 1 && e.Verse == cat.LastVerse(e.Book, e.Chapter)

	if s.Book != e.Book {
		first := catalog.BookName(s.Book, abbreviated, false)
		last := catalog.BookName(e.Book, abbreviated, false)
		switch {
		case wholeChapters && s.Chapter == 1 && e.Chapter == cat.ChaptersIn(e.Book):
			return first + sep + last
		case wholeChapters:
			return first + " " + strconv.Itoa(s.Chapter) + sep + last + " " + strconv.Itoa(e.Chapter)
		default:
			return first + " " + chapterVerse(s.Chapter, s.Verse) + sep + last + " " + chapterVerse(e.Chapter, e.Verse)
		}
	}

	book := s.Book
	if cat.ChaptersIn(book) == 1 {
		name := catalog.BookName(book, abbreviated, false)
		switch {
		case s.Verse == e.Verse:
			return name + " " + strconv.Itoa(s.Verse)
		case wholeChapters:
			return name
		default:
			return name + " " + verseRange(s.Verse, e.Verse, sep)
		}
	}

	if s.Chapter == e.Chapter {
		name := catalog.BookName(book, abbreviated, true)
		switch {
		case s.Verse == e.Verse:
			return name + " " + chapterVerse(s.Chapter, s.Verse)
		case wholeChapters:
			return name + " " + strconv.Itoa(s.Chapter)
		default:
			return name + " " + strconv.Itoa(s.Chapter) + ":" + verseRange(s.Verse, e.Verse, sep)
		}
	}

	name := catalog.BookName(book, abbreviated, false)
	switch {
	case wholeChapters && s.Chapter == 1 && e.Chapter == cat.ChaptersIn(book):
		return name
	case wholeChapters:
		return name + " " + strconv.Itoa(s.Chapter) + sep + strconv.Itoa(e.Chapter)
	default:
		return name + " " + chapterVerse(s.Chapter, s.Verse) + sep + chapterVerse(e.Chapter, e.Verse)
	}
}

// OSIS returns the cross-reference identifier, e.g. "Gen.1.1-Gen.1.2".
// The full form is always used so the string is stable.
func (p Passage) OSIS() string {
	if !p.IsValid() {
		return ""
	}
	return osisPoint(p.start) + "-" + osisPoint(p.end)
}

func osisPoint(pos Position) string {
	return catalog.OSISCode(pos.Book) + "." + strconv.Itoa(pos.Chapter) + "." + strconv.Itoa(pos.Verse)
}

func chapterVerse(chapter, verse int) string {
	return strconv.Itoa(chapter) + ":" + strconv.Itoa(verse)
}

func verseRange(first, last int, sep string) string {
	if first == last {
		return strconv.Itoa(first)
	}
	return strconv.Itoa(first) + sep + strconv.Itoa(last)
}
