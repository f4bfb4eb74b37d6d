package passage

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name    string
		p       Passage
		opts    []LimitOption
		want    Passage
		wantLen int
	}{
		{
			name:    "chapter by verses",
			p:       mustPassage(t, "John", 1),
			opts:    []LimitOption{ByVerses(40)},
			want:    mustPassage(t, "John", 1, 1, 1, 40),
			wantLen: 40,
		},
		{
			name:    "carries into next chapter",
			p:       mustPassage(t, "John", 1, 1, 2),
			opts:    []LimitOption{ByVerses(60)},
			want:    mustPassage(t, "John", 1, 1, 2, 9),
			wantLen: 60,
		},
		{
			name:    "half of John",
			p:       mustPassage(t, "John"),
			opts:    []LimitOption{ByProportion(0.5)},
			want:    mustPassage(t, "John", 1, 1, 10, 3),
			wantLen: 439,
		},
		{
			name:    "half of Mark rounds up",
			p:       mustPassage(t, "Mark"),
			opts:    []LimitOption{ByProportion(0.5)},
			want:    mustPassage(t, "Mark", 1, 1, 9, 15),
			wantLen: 337,
		},
		{
			name:    "tighter of both limits",
			p:       mustPassage(t, "Mark"),
			opts:    []LimitOption{ByProportion(0.5), ByVerses(50)},
			want:    mustPassage(t, "Mark", 1, 1, 2, 5),
			wantLen: 50,
		},
		{
			name:    "Genesis to 150 verses",
			p:       mustPassage(t, "Gen"),
			opts:    []LimitOption{ByVerses(150)},
			want:    mustPassage(t, "Gen", 1, 1, 6, 12),
			wantLen: 150,
		},
		{
			name:    "skips missing verse",
			p:       mustPassage(t, "Matt", 12, 46, 12, 50),
			opts:    []LimitOption{ByVerses(2)},
			want:    mustPassage(t, "Matt", 12, 46, 12, 48),
			wantLen: 2,
		},
		{
			name:    "proportion binds in second book",
			p:       mustBooks(t, 41, 42, 16, 1, 1, 80),
			opts:    []LimitOption{ByProportion(0.05)},
			want:    mustBooks(t, 41, 42, 16, 1, 1, 58),
			wantLen: 78,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.p.Truncate(tt.opts...)
			if !ok {
				t.Fatal("Truncate() ok = false")
			}
			if !got.Equal(tt.want) {
				t.Errorf("Truncate() = %v, want %v", got, tt.want)
			}
			if n := got.Len(); n != tt.wantLen {
				t.Errorf("Truncate() Len() = %d, want %d", n, tt.wantLen)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("Truncate() result invalid: %v", err)
			}
		})
	}
}

func TestTruncateNoResult(t *testing.T) {
	p := mustPassage(t, "Gen", 1)
	for name, opt := range map[string]LimitOption{
		"zero verses":     ByVerses(0),
		"negative verses": ByVerses(-3),
		"zero proportion": ByProportion(0),
	} {
		if got, ok := p.Truncate(opt); ok {
			t.Errorf("%s: Truncate() = %v, want no result", name, got)
		}
	}
}

func TestTruncateUnchanged(t *testing.T) {
	p := mustPassage(t, "Gen", 1)
	for _, n := range []int{31, 32, 1000} {
		got, ok := p.Truncate(ByVerses(n))
		if !ok || !got.Equal(p) {
			t.Errorf("Truncate(ByVerses(%d)) = %v, %v; want %v unchanged", n, got, ok, p)
		}
	}
	if got, ok := p.Truncate(); !ok || !got.Equal(p) {
		t.Errorf("Truncate() with no limits = %v, %v; want unchanged", got, ok)
	}
	if got, ok := p.Truncate(ByProportion(0.5)); !ok || !got.Equal(p) {
		t.Errorf("Truncate(ByProportion(0.5)) = %v, %v; want unchanged", got, ok)
	}
}

func TestTruncateMonotonic(t *testing.T) {
	p := mustPassage(t, "Mark", 7, 15, 12, 1)
	for n := 1; n <= p.Len()+5; n++ {
		got, ok := p.Truncate(ByVerses(n))
		if !ok {
			t.Fatalf("Truncate(%d) ok = false", n)
		}
		if got.Len() > n {
			t.Errorf("Truncate(%d) Len() = %d", n, got.Len())
		}
		if n <= p.Len() && got.Len() != n {
			t.Errorf("Truncate(%d) Len() = %d, want exact", n, got.Len())
		}
	}
}

func TestExtend(t *testing.T) {
	tests := []struct {
		name string
		p    Passage
		opts []LimitOption
		want Passage
	}{
		{
			name: "half of Genesis",
			p:    mustPassage(t, "Gen", 1, 1),
			opts: []LimitOption{ByProportion(0.5)},
			want: mustPassage(t, "Gen", 1, 1, 27, 39),
		},
		{
			name: "by verses",
			p:    mustPassage(t, "Gen", 1, 1),
			opts: []LimitOption{ByVerses(32)},
			want: mustPassage(t, "Gen", 1, 1, 2, 1),
		},
		{
			name: "larger of both minimums",
			p:    mustPassage(t, "Gen", 1, 1),
			opts: []LimitOption{ByVerses(32), ByProportion(0.01)},
			want: mustPassage(t, "Gen", 1, 1, 2, 1),
		},
		{
			name: "crosses into next book",
			p:    mustPassage(t, "Mark", 16, 19),
			opts: []LimitOption{ByVerses(5)},
			want: mustBooks(t, 41, 42, 16, 19, 1, 3),
		},
		{
			name: "stops at end of corpus",
			p:    mustPassage(t, "Rev", 22, 20),
			opts: []LimitOption{ByVerses(10)},
			want: mustPassage(t, "Rev", 22, 20, 22, 21),
		},
		{
			name: "already long enough",
			p:    mustPassage(t, "Gen", 1),
			opts: []LimitOption{ByVerses(10)},
			want: mustPassage(t, "Gen", 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.Extend(tt.opts...)
			if !got.Equal(tt.want) {
				t.Errorf("Extend() = %v, want %v", got, tt.want)
			}
		})
	}
}

// mustBooks builds a multi-book passage or fails the test.
func mustBooks(t *testing.T, startBook, endBook int, nums ...int) Passage {
	t.Helper()
	p, err := FromBooks(nil, startBook, endBook, nums...)
	if err != nil {
		t.Fatalf("FromBooks(%d, %d, %v) error = %v", startBook, endBook, nums, err)
	}
	return p
}
