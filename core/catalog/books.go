package catalog

import "strings"

// Book numbers used directly by the passage arithmetic.
const (
	BookCount  = 66
	Genesis    = 1
	Psalms     = 19
	ThirdJohn  = 64
	Revelation = 66
)

// BookInfo is the fixed naming record for one canonical book.
type BookInfo struct {
	Number  int      // Canonical order, 1 (Genesis) to 66 (Revelation)
	Name    string   // Full display name
	Abbr    string   // Standard abbreviation used for abbreviated rendering
	Code    string   // Three-letter code (e.g., "GEN", "1JO")
	OSIS    string   // OSIS book identifier (e.g., "Gen", "1John")
	Aliases []string // Additional accepted spellings for lookup
}

var books = [BookCount]BookInfo{
	{1, "Genesis", "Gn", "GEN", "Gen", []string{"ge"}},
	{2, "Exodus", "Ex", "EXO", "Exod", []string{"exo"}},
	{3, "Leviticus", "Lv", "LEV", "Lev", nil},
	{4, "Numbers", "Nm", "NUM", "Num", nil},
	{5, "Deuteronomy", "Dt", "DEU", "Deut", nil},
	{6, "Joshua", "Jos", "JOS", "Josh", nil},
	{7, "Judges", "Jgs", "JDG", "Judg", nil},
	{8, "Ruth", "Ru", "RUT", "Ruth", nil},
	{9, "1 Samuel", "1Sm", "1SA", "1Sam", nil},
	{10, "2 Samuel", "2Sm", "2SA", "2Sam", nil},
	{11, "1 Kings", "1Kgs", "1KI", "1Kgs", nil},
	{12, "2 Kings", "2Kgs", "2KI", "2Kgs", nil},
	{13, "1 Chronicles", "1Chr", "1CH", "1Chr", nil},
	{14, "2 Chronicles", "2Chr", "2CH", "2Chr", nil},
	{15, "Ezra", "Ezr", "EZR", "Ezra", nil},
	{16, "Nehemiah", "Neh", "NEH", "Neh", nil},
	{17, "Esther", "Est", "EST", "Esth", nil},
	{18, "Job", "Jb", "JOB", "Job", nil},
	{19, "Psalms", "Ps", "PSA", "Ps", []string{"psalm", "pss"}},
	{20, "Proverbs", "Prv", "PRO", "Prov", nil},
	{21, "Ecclesiastes", "Eccl", "ECC", "Eccl", []string{"qoh"}},
	{22, "Song of Solomon", "Sg", "SNG", "Song", []string{"song of songs", "canticles", "sos"}},
	{23, "Isaiah", "Is", "ISA", "Isa", nil},
	{24, "Jeremiah", "Jer", "JER", "Jer", nil},
	{25, "Lamentations", "Lam", "LAM", "Lam", nil},
	{26, "Ezekiel", "Ez", "EZE", "Ezek", []string{"ezk"}},
	{27, "Daniel", "Dn", "DAN", "Dan", nil},
	{28, "Hosea", "Hos", "HOS", "Hos", nil},
	{29, "Joel", "Jl", "JOE", "Joel", []string{"jol"}},
	{30, "Amos", "Am", "AMO", "Amos", nil},
	{31, "Obadiah", "Ob", "OBA", "Obad", nil},
	{32, "Jonah", "Jon", "JON", "Jonah", nil},
	{33, "Micah", "Mi", "MIC", "Mic", nil},
	{34, "Nahum", "Na", "NAH", "Nah", nil},
	{35, "Habakkuk", "Hb", "HAB", "Hab", nil},
	{36, "Zephaniah", "Zep", "ZEP", "Zeph", nil},
	{37, "Haggai", "Hg", "HAG", "Hag", nil},
	{38, "Zechariah", "Zec", "ZEC", "Zech", nil},
	{39, "Malachi", "Mal", "MAL", "Mal", nil},
	{40, "Matthew", "Mt", "MAT", "Matt", nil},
	{41, "Mark", "Mk", "MAR", "Mark", []string{"mrk"}},
	{42, "Luke", "Lk", "LUK", "Luke", nil},
	{43, "John", "Jn", "JOH", "John", []string{"jhn"}},
	{44, "Acts", "Acts", "ACT", "Acts", nil},
	{45, "Romans", "Rom", "ROM", "Rom", nil},
	{46, "1 Corinthians", "1Cor", "1CO", "1Cor", nil},
	{47, "2 Corinthians", "2Cor", "2CO", "2Cor", nil},
	{48, "Galatians", "Gal", "GAL", "Gal", nil},
	{49, "Ephesians", "Eph", "EPH", "Eph", nil},
	{50, "Philippians", "Phil", "PHI", "Phil", []string{"php"}},
	{51, "Colossians", "Col", "COL", "Col", nil},
	{52, "1 Thessalonians", "1Thes", "1TH", "1Thess", nil},
	{53, "2 Thessalonians", "2Thes", "2TH", "2Thess", nil},
	{54, "1 Timothy", "1Tm", "1TI", "1Tim", nil},
	{55, "2 Timothy", "2Tm", "2TI", "2Tim", nil},
	{56, "Titus", "Ti", "TIT", "Titus", nil},
	{57, "Philemon", "Phlm", "PHM", "Phlm", []string{"philem"}},
	{58, "Hebrews", "Heb", "HEB", "Heb", nil},
	{59, "James", "Jas", "JAM", "Jas", nil},
	{60, "1 Peter", "1Pt", "1PE", "1Pet", nil},
	{61, "2 Peter", "2Pt", "2PE", "2Pet", nil},
	{62, "1 John", "1Jn", "1JO", "1John", nil},
	{63, "2 John", "2Jn", "2JO", "2John", nil},
	{64, "3 John", "3Jn", "3JO", "3John", nil},
	{65, "Jude", "Jude", "JUD", "Jude", nil},
	{66, "Revelation", "Rv", "REV", "Rev", []string{"revelations", "apocalypse"}},
}

// bookIndex maps normalized spellings to book numbers.
var bookIndex = buildBookIndex()

func buildBookIndex() map[string]int {
	index := make(map[string]int, BookCount*6)
	for _, b := range books {
		for _, s := range append([]string{b.Name, b.Abbr, b.Code, b.OSIS}, b.Aliases...) {
			index[normalizeBookKey(s)] = b.Number
		}
	}
	return index
}

// normalizeBookKey lowercases s and drops whitespace and periods, so that
// "1 Sam.", "1sam" and "1SAM" share a key.
func normalizeBookKey(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '\n', '.':
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// LookupBook resolves a full name, abbreviation, three-letter code, OSIS
// identifier or alias to a book number. Matching ignores case, spaces and
// periods.
func LookupBook(name string) (int, bool) {
	n, ok := bookIndex[normalizeBookKey(name)]
	return n, ok
}

// Book returns the naming record for book. ok is false if book is outside 1..66.
func Book(book int) (BookInfo, bool) {
	if !ValidBook(book) {
		return BookInfo{}, false
	}
	return books[book-1], true
}

// ValidBook reports whether book is a canonical book number.
func ValidBook(book int) bool {
	return book >= 1 && book <= BookCount
}

// BookName returns the display name for book. Abbreviated names take
// precedence; singular only changes Psalms ("Psalm").
func BookName(book int, abbreviated, singular bool) string {
	b, ok := Book(book)
	if !ok {
		return ""
	}
	if abbreviated {
		return b.Abbr
	}
	if singular && book == Psalms {
		return "Psalm"
	}
	return b.Name
}

// OSISCode returns the OSIS book identifier for book.
func OSISCode(book int) string {
	b, ok := Book(book)
	if !ok {
		return ""
	}
	return b.OSIS
}
