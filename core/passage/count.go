package passage

// Len returns the number of verses in the passage, excluding missing verses.
// An invalid passage has length 0.
func (p Passage) Len() int {
	n := 0
	for _, c := range p.CountPerBook() {
		n += c
	}
	return n
}

// CountPerBook returns the verse count contributed by each book the passage
// touches.
func (p Passage) CountPerBook() map[int]int {
	if !p.IsValid() {
		return map[int]int{}
	}
	cat := p.cat
	s, e := p.start, p.end
	counts := make(map[int]int, e.Book-s.Book+1)

	if s.Book == e.Book && s.Chapter == e.Chapter {
		counts[s.Book] = e.Verse - s.Verse + 1 - cat.MissingBetween(s.Book, s.Chapter, s.Verse, e.Verse)
		return counts
	}

	// Tail of the start chapter and head of the end chapter.
	counts[s.Book] += cat.LastVerse(s.Book, s.Chapter) - s.Verse + 1 -
		cat.MissingBetween(s.Book, s.Chapter, s.Verse, cat.LastVerse(s.Book, s.Chapter))
	counts[e.Book] += e.Verse - cat.MissingBetween(e.Book, e.Chapter, 1, e.Verse)

	if s.Book == e.Book {
		for ch := s.Chapter + 1; ch < e.Chapter; ch++ {
			counts[s.Book] += cat.ChapterVerses(s.Book, ch)
		}
		return counts
	}

	for ch := s.Chapter + 1; ch <= cat.ChaptersIn(s.Book); ch++ {
		counts[s.Book] += cat.ChapterVerses(s.Book, ch)
	}
	for ch := 1; ch < e.Chapter; ch++ {
		counts[e.Book] += cat.ChapterVerses(e.Book, ch)
	}
	for b := s.Book + 1; b < e.Book; b++ {
		counts[b] = cat.BookVerses(b)
	}
	return counts
}

// ProportionPerBook returns, for each book touched, the fraction of that
// book's verses covered by the passage.
func (p Passage) ProportionPerBook() map[int]float64 {
	counts := p.CountPerBook()
	out := make(map[int]float64, len(counts))
	for book, n := range counts {
		out[book] = float64(n) / float64(p.cat.BookVerses(book))
	}
	return out
}

// ProportionOfBook returns the sum of ProportionPerBook.
func (p Passage) ProportionOfBook() float64 {
	total := 0.0
	for _, v := range p.ProportionPerBook() {
		total += v
	}
	return total
}

// IsCompleteBook reports whether the passage is exactly one whole book.
func (p Passage) IsCompleteBook() bool {
	if !p.IsValid() || !p.SingleBook() {
		return false
	}
	last := p.cat.ChaptersIn(p.end.Book)
	return p.start.Chapter == 1 && p.start.Verse == 1 &&
		p.end.Chapter == last && p.end.Verse == p.cat.LastVerse(p.end.Book, last)
}

// IsCompleteChapter reports whether the passage is exactly one whole chapter.
func (p Passage) IsCompleteChapter() bool {
	return p.SingleBook() && p.start.Chapter == p.end.Chapter && p.IsCompleteChapters()
}

// IsCompleteChapters reports whether the passage starts at the beginning of a
// chapter and ends at the end of a chapter.
func (p Passage) IsCompleteChapters() bool {
	if !p.IsValid() {
		return false
	}
	return p.start.Verse == 1 && p.end.Verse == p.cat.LastVerse(p.end.Book, p.end.Chapter)
}
