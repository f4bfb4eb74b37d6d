package passage

import (
	"strings"

	"github.com/FocuswithJustin/passage/core/catalog"
	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// osisGrammar accepts "Gen", "Gen.1", "Gen.1.1" and ranges of those joined
// by "-", e.g. "Gen.1.1-Gen.2.3".
type osisGrammar struct {
	Start *osisPointGrammar `parser:"@@"`
	End   *osisPointGrammar `parser:"( \"-\" @@ )?"`
}

type osisPointGrammar struct {
	Book    string `parser:"@Book"`
	Chapter *int   `parser:"( \".\" @Int"`
	Verse   *int   `parser:"  ( \".\" @Int )? )?"`
}

var osisLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Book", Pattern: `[1-3]?[A-Z][A-Za-z]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[.\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var osisParser = participle.MustBuild[osisGrammar](
	participle.Lexer(osisLexer),
	participle.Elide("Whitespace"),
)

// ParseOSIS parses a cross-reference identifier as produced by OSIS and
// builds the passage it names. Omitted chapters and verses widen to the
// whole book or chapter, so "Gen.2" is all of Genesis 2 and "Phlm.1" all
// of Philemon.
func ParseOSIS(cat *catalog.Catalog, s string) (Passage, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return Passage{}, errors.NewParse("OSIS reference", "", "empty string")
	}
	parsed, err := osisParser.ParseString("", s)
	if err != nil {
		return Passage{}, errors.NewParse("OSIS reference", "", err.Error())
	}

	start, err := parsed.Start.position(cat, false)
	if err != nil {
		return Passage{}, err
	}
	endPoint := parsed.End
	if endPoint == nil {
		endPoint = parsed.Start
	}
	end, err := endPoint.position(cat, true)
	if err != nil {
		return Passage{}, err
	}
	return Between(cat, start, end)
}

// position resolves the point to its first verse, or its last verse when
// last is set.
func (g *osisPointGrammar) position(cat *catalog.Catalog, last bool) (Position, error) {
	book, ok := catalog.LookupBook(g.Book)
	if !ok {
		return Position{}, errors.NewInvalidPassagef(errors.ReasonUnknownBook, "%q", g.Book)
	}
	pos := Position{Book: book, Chapter: 1, Verse: 1}
	if last {
		pos.Chapter = cat.ChaptersIn(book)
	}
	if g.Chapter != nil {
		pos.Chapter = *g.Chapter
	}
	if pos.Chapter < 1 || pos.Chapter > cat.ChaptersIn(book) {
		return Position{}, errors.NewInvalidPassagef(errors.ReasonOutOfBounds, "%s.%d", g.Book, pos.Chapter)
	}
	if last {
		pos.Verse = cat.LastVerse(book, pos.Chapter)
	}
	if g.Verse != nil {
		pos.Verse = *g.Verse
	}
	return pos, nil
}
