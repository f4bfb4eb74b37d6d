package catalog

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/ulikunitz/xz"
)

// Injectable functions for testing
var (
	osOpen      = os.Open
	xzNewReader = xz.NewReader
)

// verseExpr matches both container verses (<verse osisID="...">) and
// milestone starts (<verse sID="..." osisID="..."/>). Milestone ends carry
// only eID and are skipped.
var verseExpr = xpath.MustCompile(`//*[local-name()='verse'][@osisID or @sID]`)

// FromOSIS derives a catalog from the verse markers in an OSIS document.
// Every book must be present; a verse number below a chapter's highest verse
// that never appears is recorded as missing.
func FromOSIS(id string, r io.Reader) (*Catalog, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.NewParse("OSIS", "", err.Error())
	}

	present := make(map[ChapterRef]map[int]bool)
	for _, node := range xmlquery.QuerySelectorAll(doc, verseExpr) {
		ids := node.SelectAttr("osisID")
		if ids == "" {
			ids = node.SelectAttr("sID")
		}
		for _, osisID := range strings.Fields(ids) {
			book, chapter, verse, err := parseVerseID(osisID)
			if err != nil {
				return nil, err
			}
			ref := ChapterRef{Book: book, Chapter: chapter}
			if present[ref] == nil {
				present[ref] = make(map[int]bool)
			}
			present[ref][verse] = true
		}
	}

	lastVerses := make([][]int, BookCount)
	missing := make(map[ChapterRef][]int)
	for book := 1; book <= BookCount; book++ {
		chapters := 0
		for ref := range present {
			if ref.Book == book && ref.Chapter > chapters {
				chapters = ref.Chapter
			}
		}
		if chapters == 0 {
			return nil, errors.NewValidation("osis", fmt.Sprintf("no verses for %s", BookName(book, false, false)))
		}

		lastVerses[book-1] = make([]int, chapters)
		for chapter := 1; chapter <= chapters; chapter++ {
			ref := ChapterRef{Book: book, Chapter: chapter}
			verses := present[ref]
			if len(verses) == 0 {
				return nil, errors.NewValidation("osis", fmt.Sprintf("no verses for %s %d", BookName(book, false, false), chapter))
			}
			nums := make([]int, 0, len(verses))
			for v := range verses {
				nums = append(nums, v)
			}
			sort.Ints(nums)
			last := nums[len(nums)-1]
			lastVerses[book-1][chapter-1] = last
			for v := 1; v < last; v++ {
				if !verses[v] {
					missing[ref] = append(missing[ref], v)
				}
			}
		}
	}

	return New(id, lastVerses, missing)
}

// OpenOSIS reads an OSIS file from disk. Files ending in .xz are
// decompressed on the fly.
func OpenOSIS(id, path string) (*Catalog, error) {
	f, err := osOpen(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xzNewReader(f)
		if err != nil {
			return nil, errors.NewIO("decompress", path, err)
		}
		r = xr
	}

	c, err := FromOSIS(id, r)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return c, nil
}

// parseVerseID splits an OSIS verse identifier such as "Gen.1.1" or
// "1John.2.3!note". Milestone suffixes after the verse segment are ignored.
func parseVerseID(osisID string) (book, chapter, verse int, err error) {
	if i := strings.IndexAny(osisID, "!:"); i >= 0 {
		osisID = osisID[:i]
	}
	parts := strings.Split(osisID, ".")
	if len(parts) < 3 {
		return 0, 0, 0, errors.NewParse("OSIS", "", fmt.Sprintf("verse id %q", osisID))
	}
	book, ok := LookupBook(parts[0])
	if !ok {
		return 0, 0, 0, errors.NewParse("OSIS", "", fmt.Sprintf("unknown book in %q", osisID))
	}
	chapter, cerr := strconv.Atoi(parts[1])
	verse, verr := strconv.Atoi(parts[2])
	if cerr != nil || verr != nil || chapter < 1 || verse < 1 {
		return 0, 0, 0, errors.NewParse("OSIS", "", fmt.Sprintf("verse id %q", osisID))
	}
	if chapter > MaxNumeral || verse > MaxNumeral {
		return 0, 0, 0, errors.NewParse("OSIS", "", fmt.Sprintf("verse id %q exceeds %d", osisID, MaxNumeral))
	}
	return book, chapter, verse, nil
}
