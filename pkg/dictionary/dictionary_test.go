package dictionary

import (
	"math/rand/v2"
	"testing"

	"crosswarped.com/wizium/pkg/letterset"
)

func mustEncode(t testing.TB, w string) []byte {
	t.Helper()
	b, ok := EncodeWord(w)
	if !ok {
		t.Fatalf("EncodeWord(%q) failed", w)
	}
	return b
}

func TestDictionary_ClosureAfterAdd(t *testing.T) {
	tests := []struct {
		name  string
		words []string
	}{
		{"single word", []string{"cat"}},
		{"several lengths", []string{"cat", "dog", "cats", "ace"}},
		{"duplicates are idempotent", []string{"cat", "cat", "cat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(26, 8)
			var encoded [][]byte
			for _, w := range tt.words {
				encoded = append(encoded, mustEncode(t, w))
			}
			d.AddWords(encoded)

			for _, w := range tt.words {
				enc := mustEncode(t, w)
				got, ok := d.FindEntry(enc, nil, nil)
				if !ok {
					t.Errorf("FindEntry(%q) not found", w)
					continue
				}
				if Compare(got, enc) != 0 {
					t.Errorf("FindEntry(%q) = %v, want %v", w, got, enc)
				}
			}
		})
	}
}

func TestDictionary_EnumerationMonotonicity(t *testing.T) {
	d := New(26, 8)
	words := []string{"cat", "car", "can", "cab", "bat", "bar"}
	var encoded [][]byte
	for _, w := range words {
		encoded = append(encoded, mustEncode(t, w))
	}
	d.AddWords(encoded)

	mask := []byte{Wildcard, Wildcard, Wildcard}
	var results [][]byte
	var start []byte
	for {
		found, ok := d.FindEntry(mask, start, nil)
		if !ok {
			break
		}
		if len(results) > 0 && Compare(found, results[len(results)-1]) <= 0 {
			t.Fatalf("enumeration not strictly increasing: %v then %v", results[len(results)-1], found)
		}
		results = append(results, found)
		start = found
	}

	if len(results) != len(words) {
		t.Fatalf("got %d results, want %d", len(results), len(words))
	}
}

func TestDictionary_ArenaStabilityAcrossGrowth(t *testing.T) {
	d := New(26, 5)
	first := mustEncode(t, "cat")
	d.AddWords([][]byte{first})

	// Force many arena reallocations.
	for i := 0; i < 20000; i++ {
		w := []byte{byte(1 + i%26), byte(1 + (i/26)%26), byte(1 + (i/676)%26)}
		d.addEntry(w)
	}

	got, ok := d.FindEntry(first, nil, nil)
	if !ok || Compare(got, first) != 0 {
		t.Fatalf("word lost after arena growth: got %v, ok=%v", got, ok)
	}
}

func TestDictionary_FindEntry_MaskedAndCandidates(t *testing.T) {
	d := New(26, 3)
	d.AddWords([][]byte{mustEncode(t, "cat"), mustEncode(t, "cot"), mustEncode(t, "cab")})

	// Forced first letter, wildcard rest.
	mask := []byte{byte('C' - 'A' + 1), Wildcard, Wildcard}
	got, ok := d.FindEntry(mask, nil, nil)
	if !ok {
		t.Fatalf("expected a match")
	}
	if DecodeWord(got)[0] != 'C' {
		t.Fatalf("got %q, want first letter C", DecodeWord(got))
	}

	// Candidate filter excludes 'A' at position 1, so "cab" and "cat" should
	// be skipped in favor of "cot".
	oOnly := letterset.LetterSet(0)
	oOnly.Set(int('O'-'A'+1)-1, true)
	candidates := []letterset.LetterSet{letterset.Full(26), oOnly, letterset.Full(26)}

	got, ok = d.FindEntry(mask, nil, candidates)
	if !ok {
		t.Fatalf("expected a match with candidate filter")
	}
	if DecodeWord(got) != "COT" {
		t.Fatalf("got %q, want COT", DecodeWord(got))
	}
}

func TestDictionary_FindRandomEntry_Deterministic(t *testing.T) {
	d := New(26, 3)
	d.AddWords([][]byte{mustEncode(t, "cat"), mustEncode(t, "cot"), mustEncode(t, "cab")})

	mask := []byte{Wildcard, Wildcard, Wildcard}
	rng1 := rand.New(rand.NewPCG(1, 2))
	rng2 := rand.New(rand.NewPCG(1, 2))

	got1, ok1 := d.FindRandomEntry(rng1, mask, nil)
	got2, ok2 := d.FindRandomEntry(rng2, mask, nil)
	if !ok1 || !ok2 {
		t.Fatalf("expected matches, got ok1=%v ok2=%v", ok1, ok2)
	}
	if Compare(got1, got2) != 0 {
		t.Fatalf("same seed produced different results: %v vs %v", got1, got2)
	}
}

func TestDictionary_WordCountExcludesSeededSingleLetters(t *testing.T) {
	d := New(26, 4)
	if d.WordCount() != 0 {
		t.Fatalf("fresh dictionary WordCount() = %d, want 0", d.WordCount())
	}
	d.AddWords([][]byte{mustEncode(t, "cat")})
	if d.WordCount() != 1 {
		t.Fatalf("WordCount() = %d, want 1", d.WordCount())
	}
}

func TestDictionary_BoundaryAlphabetSizes(t *testing.T) {
	tests := []struct {
		name    string
		alpha   int
		wantAlp int
	}{
		{"alphabet of one", 1, 1},
		{"alphabet at max", 64, 64},
		{"alphabet zero clamps to 26", 0, 26},
		{"alphabet over max clamps", 100, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.alpha, 4)
			if d.AlphabetSize() != tt.wantAlp {
				t.Errorf("AlphabetSize() = %d, want %d", d.AlphabetSize(), tt.wantAlp)
			}
			// Every single-letter word must already be findable.
			mask := []byte{Wildcard}
			var start []byte
			count := 0
			for {
				w, ok := d.FindEntry(mask, start, nil)
				if !ok {
					break
				}
				count++
				start = w
			}
			if count != d.AlphabetSize() {
				t.Errorf("found %d single-letter words, want %d", count, d.AlphabetSize())
			}
		})
	}
}

func TestDictionary_ClearReseeds(t *testing.T) {
	d := New(26, 4)
	d.AddWords([][]byte{mustEncode(t, "cat")})
	d.Clear()
	if d.WordCount() != 0 {
		t.Fatalf("WordCount() after Clear() = %d, want 0", d.WordCount())
	}
	if _, ok := d.FindEntry(mustEncode(t, "cat"), nil, nil); ok {
		t.Fatalf("expected cat to be gone after Clear()")
	}
	if _, ok := d.FindEntry([]byte{1}, nil, nil); !ok {
		t.Fatalf("expected single-letter words to survive Clear()")
	}
}
