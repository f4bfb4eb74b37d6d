package passage

import (
	"testing"

	"github.com/FocuswithJustin/passage/core/errors"
)

func TestDeltaApplyEnd(t *testing.T) {
	tests := []struct {
		name  string
		p     Passage
		delta Delta
		want  Passage
	}{
		{"add chapter", mustPassage(t, "Gen", 1, 1, 2, 3), Delta{Chapters: 1}, mustPassage(t, "Gen", 1, 1, 3, 3)},
		{"add chapter clamps verse", mustPassage(t, "Gen", 1, 1, 1, 27), Delta{Chapters: 1}, mustPassage(t, "Gen", 1, 1, 2, 25)},
		{"add chapter keeps whole chapter", mustPassage(t, "Gen", 3), Delta{Chapters: 1}, mustPassage(t, "Gen", 3, 1, 4, 26)},
		{"remove chapter", mustPassage(t, "Gen", 1, 1, 3, 1), Delta{Chapters: -1}, mustPassage(t, "Gen", 1, 1, 2, 1)},
		{"remove chapter keeps whole chapter", mustPassage(t, "Gen", 3, 1, 4, 26), Delta{Chapters: -1}, mustPassage(t, "Gen", 3)},
		{"remove chapter to shorter end", mustPassage(t, "Gen", 1, 1, 2, 25), Delta{Chapters: -1}, mustPassage(t, "Gen", 1)},
		{"add verses", mustPassage(t, "Gen", 1, 1), Delta{Verses: 50}, mustPassage(t, "Gen", 1, 1, 2, 20)},
		{"remove verses", mustPassage(t, "Gen", 1, 1, 2, 20), Delta{Verses: -50}, mustPassage(t, "Gen", 1, 1)},
		{"carry into next book", mustPassage(t, "Gen", 50), Delta{Chapters: 2}, mustBooks(t, 1, 2, 50, 1, 2, 25)},
		{"verses carry into next book", mustPassage(t, "Gen", 50, 20, 50, 26), Delta{Verses: 3}, mustBooks(t, 1, 2, 50, 20, 1, 3)},
		{"clamp at end of corpus", mustPassage(t, "Rev", 20), Delta{Chapters: 1190}, mustPassage(t, "Rev", 20, 1, 22, 21)},
		{"verse clamp at end of corpus", mustPassage(t, "Rev", 22, 1), Delta{Verses: 100}, mustPassage(t, "Rev", 22, 1, 22, 21)},
		{"chapters then verses", mustPassage(t, "Gen", 1, 1, 1, 5), Delta{Chapters: 1, Verses: 30}, mustPassage(t, "Gen", 1, 1, 3, 10)},
		{"lands on missing verse", mustPassage(t, "Matt", 12, 40, 12, 46), Delta{Verses: 1}, mustPassage(t, "Matt", 12, 40, 12, 46)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.delta.Apply(tt.p)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeltaApplyStart(t *testing.T) {
	tests := []struct {
		name  string
		p     Passage
		delta Delta
		want  Passage
	}{
		{"add chapter", mustPassage(t, "Gen", 2, 1), Delta{Chapters: 1, Anchor: AnchorStart}, mustPassage(t, "Gen", 1, 1, 2, 1)},
		{"add chapter clamps verse", mustPassage(t, "Gen", 4, 26), Delta{Chapters: 1, Anchor: AnchorStart}, mustPassage(t, "Gen", 3, 24, 4, 26)},
		{"remove chapter", mustPassage(t, "Gen", 4, 1, 5, 32), Delta{Chapters: -1, Anchor: AnchorStart}, mustPassage(t, "Gen", 5)},
		{"remove chapter from last verse", mustPassage(t, "Gen", 1, 31, 5, 32), Delta{Chapters: -1, Anchor: AnchorStart}, mustPassage(t, "Gen", 2, 25, 5, 32)},
		{"add verse", mustPassage(t, "Gen", 1, 2), Delta{Verses: 1, Anchor: AnchorStart}, mustPassage(t, "Gen", 1, 1, 1, 2)},
		{"add verses across chapter", mustPassage(t, "Gen", 2, 1), Delta{Verses: 31, Anchor: AnchorStart}, mustPassage(t, "Gen", 1, 1, 2, 1)},
		{"remove verse", mustPassage(t, "Gen", 1), Delta{Verses: -1, Anchor: AnchorStart}, mustPassage(t, "Gen", 1, 2, 1, 31)},
		{"carry into previous book", mustPassage(t, "Exod", 1), Delta{Chapters: 1, Anchor: AnchorStart}, mustBooks(t, 1, 2, 50, 1, 1, 22)},
		{"clamp at start of corpus", mustPassage(t, "Gen", 3), Delta{Chapters: 10, Anchor: AnchorStart}, mustPassage(t, "Gen", 1, 1, 3, 24)},
		{"lands on missing verse", mustPassage(t, "Matt", 12, 48, 12, 50), Delta{Verses: 1, Anchor: AnchorStart}, mustPassage(t, "Matt", 12, 48, 12, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.delta.Apply(tt.p)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeltaExceedsLength(t *testing.T) {
	tests := []struct {
		name  string
		p     Passage
		delta Delta
	}{
		{"end before start", mustPassage(t, "Gen", 3), Delta{Chapters: -1}},
		{"end far before start", mustPassage(t, "Exod", 1), Delta{Chapters: -100}},
		{"start after end", mustPassage(t, "Gen", 3), Delta{Verses: -30, Anchor: AnchorStart}},
		{"start after end by chapters", mustPassage(t, "Gen", 3, 1, 4, 1), Delta{Chapters: -2, Anchor: AnchorStart}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.delta.Apply(tt.p)
			if err == nil {
				t.Fatalf("Apply() = %v, want error", got)
			}
			if r := errors.ReasonOf(err); r != errors.ReasonExceedsLength {
				t.Errorf("Apply() reason = %q, want %q", r, errors.ReasonExceedsLength)
			}
		})
	}
}

func TestDeltaRoundTrip(t *testing.T) {
	inputs := []Passage{
		mustPassage(t, "Gen", 1, 1, 2, 3),
		mustPassage(t, "Gen", 3),
		mustPassage(t, "Ps", 1, 1, 119, 176),
		mustPassage(t, "Matt", 5, 1, 7, 29),
	}
	for _, p := range inputs {
		for _, k := range []int{1, 3, 40} {
			up, err := Delta{Chapters: k}.Apply(p)
			if err != nil {
				t.Fatalf("Apply(+%d) to %v error = %v", k, p, err)
			}
			back, err := Delta{Chapters: -k}.Apply(up)
			if err != nil {
				t.Fatalf("Apply(-%d) to %v error = %v", k, up, err)
			}
			if !back.Equal(p) {
				t.Errorf("%v +%d -%d chapters = %v", p, k, k, back)
			}
		}
	}
}

func TestAnchorString(t *testing.T) {
	if AnchorStart.String() != "start" || AnchorEnd.String() != "end" {
		t.Errorf("Anchor.String() = %q, %q", AnchorStart, AnchorEnd)
	}
}
