// Package cite parses human-written scripture citations such as
// "Gen 1:1-3, 5; Exod 2" into passage collections.
//
// Every passage is built through passage.New, so citations are normalised
// and validated exactly like structured input.
package cite

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/passage/core/catalog"
	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/core/passage"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type citationGrammar struct {
	First *segmentGrammar `parser:"@@"`
	Rest  []*tailGrammar  `parser:"@@*"`
}

type tailGrammar struct {
	Sep     string          `parser:"@Sep"`
	Segment *segmentGrammar `parser:"@@"`
}

type segmentGrammar struct {
	Book  string        `parser:"@Book?"`
	Range *rangeGrammar `parser:"@@?"`
}

type rangeGrammar struct {
	Start *pointGrammar `parser:"@@"`
	End   *pointGrammar `parser:"( Dash @@ )?"`
}

type pointGrammar struct {
	First  int  `parser:"@Int"`
	Second *int `parser:"( Colon @Int )?"`
}

// citationLexer tokenizes citations.
// Book names may carry a numeric ("1 John", "1John") or roman ("II Tim")
// prefix, an "of" phrase ("Song of Songs") and a trailing period.
var citationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Book", Pattern: `(?:[1-3]\s*|I{1,3}\s+)?[A-Za-z]+(?:\s+of\s+[A-Za-z]+)?\.?`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Colon", Pattern: `[:.]`},
	{Name: "Dash", Pattern: `[-–—]`},
	{Name: "Sep", Pattern: `[,;]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var citationParser = participle.MustBuild[citationGrammar](
	participle.Lexer(citationLexer),
	participle.Elide("Whitespace"),
)

// state carries the context a bare number is read against.
type state struct {
	book      int
	chapter   int
	verseMode bool
}

// Parse reads a citation against cat (nil selects the default catalog).
//
// A bare number after a comma continues the previous item's mode: after
// "Gen 1:1" it is a verse of chapter 1, after "Gen 1" it is a chapter. A
// semicolon or a new book name always returns to chapter mode.
func Parse(cat *catalog.Catalog, s string) (*passage.Collection, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.NewParse("citation", "", "empty string")
	}

	parsed, err := citationParser.ParseString("", s)
	if err != nil {
		return nil, errors.NewParse("citation", "", err.Error())
	}

	var st state
	out := passage.NewCollection()

	segments := append([]*tailGrammar{{Segment: parsed.First}}, parsed.Rest...)
	for _, tail := range segments {
		seg := tail.Segment
		if seg == nil || (seg.Book == "" && seg.Range == nil) {
			return nil, errors.NewParse("citation", "", fmt.Sprintf("empty item in %q", s))
		}
		if tail.Sep == ";" {
			st.verseMode = false
		}
		if seg.Book != "" {
			book, ok := lookupBook(seg.Book)
			if !ok {
				return nil, errors.NewInvalidPassagef(errors.ReasonUnknownBook, "%q", strings.TrimSpace(seg.Book))
			}
			st = state{book: book}
		}
		if st.book == 0 {
			return nil, errors.NewParse("citation", "", fmt.Sprintf("no book before %q", s))
		}

		f := passage.Fields{StartBook: st.book}
		if seg.Range != nil {
			f = st.interpret(seg.Range)
		}
		p, err := passage.New(cat, f)
		if err != nil {
			return nil, errors.Wrapf(err, "citation %q", s)
		}
		out.Append(p)
	}
	return out, nil
}

// MustParse is like Parse but panics on error.
func MustParse(cat *catalog.Catalog, s string) *passage.Collection {
	c, err := Parse(cat, s)
	if err != nil {
		panic(err)
	}
	return c
}

// interpret turns a numeric range into passage fields and advances the
// mode for the next bare number.
func (st *state) interpret(r *rangeGrammar) passage.Fields {
	f := passage.Fields{StartBook: st.book}
	start, end := r.Start, r.End

	switch {
	case start.Second != nil:
		// chapter:verse, optionally to verse or chapter:verse
		f.StartChapter, f.StartVerse = passage.Int(start.First), passage.Int(*start.Second)
		f.EndChapter, f.EndVerse = passage.Int(start.First), passage.Int(*start.Second)
		if end != nil && end.Second != nil {
			f.EndChapter, f.EndVerse = passage.Int(end.First), passage.Int(*end.Second)
		} else if end != nil {
			f.EndVerse = passage.Int(end.First)
		}
		st.verseMode = true
		st.chapter = *f.EndChapter

	case st.verseMode:
		f.StartChapter, f.StartVerse = passage.Int(st.chapter), passage.Int(start.First)
		f.EndChapter, f.EndVerse = passage.Int(st.chapter), passage.Int(start.First)
		if end != nil && end.Second != nil {
			f.EndChapter, f.EndVerse = passage.Int(end.First), passage.Int(*end.Second)
			st.chapter = end.First
		} else if end != nil {
			f.EndVerse = passage.Int(end.First)
		}

	default:
		f.StartChapter = passage.Int(start.First)
		st.chapter = start.First
		if end != nil {
			f.EndChapter = passage.Int(end.First)
			st.chapter = end.First
			if end.Second != nil {
				f.EndVerse = passage.Int(*end.Second)
				st.verseMode = true
			}
		}
	}
	return f
}

var romanPrefixes = map[string]string{"I": "1", "II": "2", "III": "3"}

// lookupBook resolves a lexed book name, translating a roman numeral prefix.
func lookupBook(raw string) (int, bool) {
	fields := strings.Fields(raw)
	if len(fields) > 1 {
		if digit, ok := romanPrefixes[fields[0]]; ok {
			fields[0] = digit
		}
	}
	return catalog.LookupBook(strings.Join(fields, " "))
}
