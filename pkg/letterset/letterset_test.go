package letterset

import "testing"

func TestLetterSet_SetContains(t *testing.T) {
	tests := []struct {
		name string
		c    int
		want bool
	}{
		{"low bound", 0, true},
		{"mid", 25, true},
		{"high bound", 63, true},
		{"never set", 5, false},
		{"negative clamps out", -1, false},
		{"too large clamps out", 64, false},
	}

	var s LetterSet
	s.Set(0, true)
	s.Set(25, true)
	s.Set(63, true)
	s.Set(-1, true)
	s.Set(64, true)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Contains(tt.c); got != tt.want {
				t.Errorf("Contains(%d) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestLetterSet_SetFalseRemoves(t *testing.T) {
	var s LetterSet
	s.Set(3, true)
	if !s.Contains(3) {
		t.Fatalf("expected 3 to be set")
	}
	s.Set(3, false)
	if s.Contains(3) {
		t.Fatalf("expected 3 to be cleared")
	}
}

func TestFull(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		count int
	}{
		{"zero", 0, 0},
		{"negative", -3, 0},
		{"twenty six", 26, 26},
		{"max", 64, 64},
		{"above max clamps", 100, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Full(tt.n)
			if got := s.Count(); got != tt.count {
				t.Errorf("Count() = %d, want %d", got, tt.count)
			}
		})
	}
}

func TestLetterSet_UnionIntersect(t *testing.T) {
	var a, b LetterSet
	a.Set(1, true)
	a.Set(2, true)
	b.Set(2, true)
	b.Set(3, true)

	u := a.Union(b)
	if u.Count() != 3 {
		t.Errorf("Union count = %d, want 3", u.Count())
	}

	i := a.Intersect(b)
	if i.Count() != 1 || !i.Contains(2) {
		t.Errorf("Intersect = %v, want {2}", i)
	}
}

func TestLetterSet_EmptyAndLowest(t *testing.T) {
	var s LetterSet
	if !s.Empty() {
		t.Fatalf("zero value should be empty")
	}
	if _, ok := s.Lowest(); ok {
		t.Fatalf("Lowest() on empty set should report false")
	}

	s.Set(5, true)
	s.Set(2, true)
	if s.Empty() {
		t.Fatalf("set with members should not be empty")
	}
	if lo, ok := s.Lowest(); !ok || lo != 2 {
		t.Errorf("Lowest() = (%d, %v), want (2, true)", lo, ok)
	}
}

func TestLetterSet_ResetFull(t *testing.T) {
	var s LetterSet
	s.ResetFull(5)
	for c := 0; c < 5; c++ {
		if !s.Contains(c) {
			t.Errorf("expected %d to be a member after ResetFull(5)", c)
		}
	}
	if s.Contains(5) {
		t.Errorf("expected 5 not to be a member after ResetFull(5)")
	}

	s.Reset()
	if !s.Empty() {
		t.Errorf("expected Reset() to empty the set")
	}
}
