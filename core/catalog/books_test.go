package catalog

import "testing"

func TestLookupBook(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"Genesis", 1, true},
		{"GEN", 1, true},
		{"gn", 1, true},
		{"Gen.", 1, true},
		{"1 Samuel", 9, true},
		{"1sam", 9, true},
		{"1SA", 9, true},
		{"Psalm", 19, true},
		{"Ps", 19, true},
		{"Song of Songs", 22, true},
		{"PHM", 57, true},
		{"Phlm", 57, true},
		{"1 John", 62, true},
		{"1John", 62, true},
		{"Revelation", 66, true},
		{"Rv", 66, true},
		{"Ben", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := LookupBook(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("LookupBook(%q) = %d, %v; want %d, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestBookName(t *testing.T) {
	tests := []struct {
		book        int
		abbreviated bool
		singular    bool
		want        string
	}{
		{1, false, false, "Genesis"},
		{1, true, false, "Gn"},
		{19, false, false, "Psalms"},
		{19, false, true, "Psalm"},
		{19, true, true, "Ps"},
		{57, false, true, "Philemon"},
		{0, false, false, ""},
		{67, true, false, ""},
	}
	for _, tt := range tests {
		if got := BookName(tt.book, tt.abbreviated, tt.singular); got != tt.want {
			t.Errorf("BookName(%d, %v, %v) = %q, want %q", tt.book, tt.abbreviated, tt.singular, got, tt.want)
		}
	}
}

func TestBookTableConsistency(t *testing.T) {
	seen := make(map[string]int)
	for i, b := range books {
		if b.Number != i+1 {
			t.Errorf("books[%d].Number = %d", i, b.Number)
		}
		if got, ok := LookupBook(b.OSIS); !ok || got != b.Number {
			t.Errorf("LookupBook(%q) = %d, %v; want %d", b.OSIS, got, ok, b.Number)
		}
		if prev, dup := seen[b.Code]; dup {
			t.Errorf("code %q shared by books %d and %d", b.Code, prev, b.Number)
		}
		seen[b.Code] = b.Number
	}
	if got := OSISCode(62); got != "1John" {
		t.Errorf("OSISCode(62) = %q, want 1John", got)
	}
	if got := OSISCode(0); got != "" {
		t.Errorf("OSISCode(0) = %q, want empty", got)
	}
}
