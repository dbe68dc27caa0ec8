// Package dictionary implements a length-partitioned compressed trie of
// admissible words, supporting masked, randomized, and resumable lookups.
//
// Words and masks are represented as byte slices whose length is the word
// or mask length — Go slices already carry their own length, so unlike the
// original C implementation this package needs no null-terminator
// convention. Each byte holds a letter code in [1, AlphabetSize] or the
// Wildcard sentinel.
package dictionary

import (
	"math/rand/v2"

	"crosswarped.com/wizium/pkg/letterset"
)

// Wildcard marks a free position in a mask.
const Wildcard = letterset.Wildcard

// MaxWordLength is the longest word this package will ever index.
const MaxWordLength = 40

const initialPoolCapacity = 10000
const poolGrowthFactor = 1.4

type wordLeaf struct {
	definitionIndex int32
}

// Dictionary is a length-indexed compressed trie. The zero value is not
// usable; construct with New.
type Dictionary struct {
	alphabetSize int
	maxWordSize  int

	nodePool      []int32 // flat array: node i's children occupy [i*alphabetSize, (i+1)*alphabetSize)
	usedWordNodes int32

	leafPool      []wordLeaf
	usedWordLeafs int32

	rootNodes []int32 // rootNodes[length-1] is the root trie node for words of that length
}

// New creates a dictionary for the given alphabet and maximum word length,
// clamping both to valid ranges, and seeds it with every single-letter word.
func New(alphabetSize, maxWordSize int) *Dictionary {
	if maxWordSize <= 0 || maxWordSize > MaxWordLength {
		maxWordSize = MaxWordLength
	}
	if alphabetSize > letterset.MaxLetters {
		alphabetSize = letterset.MaxLetters
	}
	if alphabetSize <= 0 {
		alphabetSize = 26
	}

	d := &Dictionary{
		alphabetSize: alphabetSize,
		maxWordSize:  maxWordSize,
		rootNodes:    make([]int32, maxWordSize),
	}
	d.Clear()
	return d
}

// AlphabetSize returns the configured alphabet size.
func (d *Dictionary) AlphabetSize() int { return d.alphabetSize }

// MaxWordSize returns the configured maximum word length.
func (d *Dictionary) MaxWordSize() int { return d.maxWordSize }

// WordCount returns the number of words admitted, excluding the implicit
// single-letter words seeded by Clear/New.
func (d *Dictionary) WordCount() uint32 {
	return uint32(d.usedWordLeafs) - uint32(d.alphabetSize)
}

// Clear discards all admitted words and re-seeds the single-letter words.
func (d *Dictionary) Clear() {
	d.nodePool = nil
	d.leafPool = nil
	d.usedWordNodes = 0
	d.usedWordLeafs = 0

	for i := 0; i < d.maxWordSize; i++ {
		d.rootNodes[i] = d.newWordNode()
	}

	w := make([]byte, 1)
	for c := 1; c <= d.alphabetSize; c++ {
		w[0] = byte(c)
		d.addEntry(w)
	}
}

// Compare lexicographically compares two same-length words already encoded
// as letter codes.
func Compare(w1, w2 []byte) int {
	n := len(w1)
	if len(w2) < n {
		n = len(w2)
	}
	for i := 0; i < n; i++ {
		if w1[i] < w2[i] {
			return -1
		}
		if w1[i] > w2[i] {
			return 1
		}
	}
	switch {
	case len(w1) < len(w2):
		return -1
	case len(w1) > len(w2):
		return 1
	default:
		return 0
	}
}

// newWordNode allocates a trie node and returns its stable index. Unlike the
// C original, growing the backing array never invalidates a previously
// returned index — only pointers derived from it would be stale, and this
// package never keeps any.
func (d *Dictionary) newWordNode() int32 {
	capacity := int32(0)
	if d.alphabetSize > 0 {
		capacity = int32(len(d.nodePool) / d.alphabetSize)
	}
	if d.usedWordNodes >= capacity {
		newCapacity := int32(float64(capacity) * poolGrowthFactor)
		if newCapacity == 0 {
			newCapacity = initialPoolCapacity
		}
		newPool := make([]int32, int(newCapacity)*d.alphabetSize)
		copy(newPool, d.nodePool)
		for i := len(d.nodePool); i < len(newPool); i++ {
			newPool[i] = -1
		}
		d.nodePool = newPool
	}
	idx := d.usedWordNodes
	d.usedWordNodes++
	return idx
}

func (d *Dictionary) newWordLeaf() int32 {
	capacity := int32(len(d.leafPool))
	if d.usedWordLeafs >= capacity {
		newCapacity := int32(float64(capacity) * poolGrowthFactor)
		if newCapacity == 0 {
			newCapacity = initialPoolCapacity
		}
		newPool := make([]wordLeaf, newCapacity)
		copy(newPool, d.leafPool)
		for i := range newPool {
			newPool[i].definitionIndex = -1
		}
		d.leafPool = newPool
	}
	idx := d.usedWordLeafs
	d.usedWordLeafs++
	return idx
}

// addEntry inserts one word (letters already encoded in [1, alphabetSize])
// into the trie for its length. Returns false (no-op) for zero-length or
// over-long words.
func (d *Dictionary) addEntry(word []byte) bool {
	length := len(word)
	if length == 0 || length > d.maxWordSize {
		return false
	}

	nodeIdx := d.rootNodes[length-1]
	for i := 0; i < length-1; i++ {
		letter := int(word[i]) - 1
		if letter < 0 || letter >= d.alphabetSize {
			return false
		}
		slot := int(nodeIdx)*d.alphabetSize + letter
		child := d.nodePool[slot]
		if child < 0 {
			child = d.newWordNode()
			d.nodePool[slot] = child // nodeIdx is an index, still valid after growth
		}
		nodeIdx = child
	}

	letter := int(word[length-1]) - 1
	if letter < 0 || letter >= d.alphabetSize {
		return false
	}
	slot := int(nodeIdx)*d.alphabetSize + letter
	if d.nodePool[slot] < 0 {
		d.nodePool[slot] = d.newWordLeaf()
	}
	return true
}

// AddEntries parses a sequence of words out of a raw byte buffer, either
// fixed-width (entrySize > 0, zero-padded) or zero-terminated (entrySize <=
// 0), and admits each into the dictionary. When alphabetSize == 26, ASCII
// letters are accepted and case-folded. A pair of zero bytes marks
// end-of-stream. numWords < 0 means unlimited. Returns the number of words
// added.
func (d *Dictionary) AddEntries(entries []byte, entrySize, numWords int) int {
	pos := 0
	count := 0
	word := make([]byte, 0, d.maxWordSize)

	for pos < len(entries) {
		if entries[pos] == 0 {
			break
		}

		word = word[:0]
		idx := 0
		abort := false
		for {
			if pos+idx >= len(entries) {
				abort = true
				break
			}
			b := entries[pos+idx]
			if d.alphabetSize == 26 {
				if b >= 'A' && b <= 'Z' {
					b = b - 'A' + 1
				} else if b >= 'a' && b <= 'z' {
					b = b - 'a' + 1
				}
			}

			if b >= 1 && int(b) <= d.alphabetSize && idx < d.maxWordSize {
				word = append(word, b)
				idx++
			} else if b == 0 {
				break
			} else {
				abort = true
				break
			}

			if entrySize > 0 && idx >= entrySize {
				break
			}
		}
		if abort || len(word) == 0 {
			break
		}

		if !d.addEntry(word) {
			break
		}

		if entrySize > 0 {
			pos += entrySize
		} else {
			pos += idx + 1
		}

		count++
		if numWords >= 0 && count >= numWords {
			break
		}
	}

	return count
}

// AddWords admits a list of already-decoded words (letter codes 1..A) and
// returns the number successfully added.
func (d *Dictionary) AddWords(words [][]byte) int {
	count := 0
	for _, w := range words {
		if d.addEntry(w) {
			count++
		}
	}
	return count
}

func (d *Dictionary) normalize(b byte) byte {
	if d.alphabetSize == 26 {
		if b >= 'A' && b <= 'Z' {
			b = b - 'A' + 1
		} else if b >= 'a' && b <= 'z' {
			b = b - 'a' + 1
		}
	}
	if b == Wildcard {
		return Wildcard
	}
	if int(b) < 1 || int(b) > d.alphabetSize {
		return Wildcard
	}
	return b
}

func (d *Dictionary) normalizeMask(mask []byte) []byte {
	out := make([]byte, len(mask))
	for i, b := range mask {
		out[i] = d.normalize(b)
	}
	return out
}

// FindEntry deterministically enumerates dictionary words matching mask
// (and, if provided, per-position candidates), returning the
// lexicographically smallest match strictly greater than start (or the
// smallest match overall, if start is empty). Repeated calls feeding the
// previous result back as start produce a strictly monotonic sequence,
// exhausted when ok is false.
func (d *Dictionary) FindEntry(mask, start []byte, candidates []letterset.LetterSet) (result []byte, ok bool) {
	maskLen := len(mask)
	if maskLen == 0 || maskLen > d.maxWordSize {
		return nil, false
	}
	normMask := d.normalizeMask(mask)

	startEntry := make([]byte, maskLen)
	hotStart := len(start) > 0
	if hotStart {
		n := len(start)
		if n > maskLen {
			n = maskLen
		}
		for i := 0; i < n; i++ {
			startEntry[i] = d.normalize(start[i])
		}
	}

	result = make([]byte, maskLen)
	copy(result, startEntry)

	nodeIdx := d.rootNodes[maskLen-1]
	depthNodes := make([]int32, maskLen)

	depth := 0
	for depth < maskLen {
		if depth == maskLen-1 {
			hotStart = false
		}

		var childIdx int32 = -1
		var chosenLetter byte

		if normMask[depth] == Wildcard {
			idx := int(result[depth])
			if idx != 0 {
				idx--
				if !hotStart {
					idx++
				}
			}
			for letter := idx; letter < d.alphabetSize; letter++ {
				slot := int(nodeIdx)*d.alphabetSize + letter
				if child := d.nodePool[slot]; child >= 0 {
					if candidates == nil || candidates[depth].Contains(letter) {
						childIdx = child
						chosenLetter = byte(letter)
						break
					}
				}
			}
		} else {
			if result[depth] != 0 && !hotStart {
				childIdx = -1
			} else {
				letter := int(normMask[depth]) - 1
				chosenLetter = byte(letter)
				slot := int(nodeIdx)*d.alphabetSize + letter
				childIdx = d.nodePool[slot]
			}
		}

		if childIdx >= 0 {
			result[depth] = chosenLetter + 1
		} else {
			result[depth] = 0
		}

		if hotStart {
			failFollow := childIdx < 0 || result[depth] != startEntry[depth]
			if failFollow {
				hotStart = false
				for i := depth + 1; i < maskLen; i++ {
					result[i] = 0
				}
				if result[depth] > 0 && startEntry[depth] > 0 && result[depth] < startEntry[depth] {
					childIdx = -1
				}
			}
		}

		if childIdx >= 0 {
			if depth < maskLen-1 {
				depthNodes[depth] = nodeIdx
				nodeIdx = childIdx
			}
			depth++
		} else {
			depth--
			if depth < 0 {
				return nil, false
			}
			nodeIdx = depthNodes[depth]
		}
	}

	return result, true
}

// FindRandomEntry finds a word matching mask (and, if provided,
// per-position candidates) using a uniformly randomized start letter at
// each wildcard position, producing a uniformly distributed match when one
// exists.
func (d *Dictionary) FindRandomEntry(rng *rand.Rand, mask []byte, candidates []letterset.LetterSet) (result []byte, ok bool) {
	maskLen := len(mask)
	if maskLen == 0 || maskLen > d.maxWordSize {
		return nil, false
	}
	normMask := d.normalizeMask(mask)

	result = make([]byte, maskLen)
	first := make([]int, maskLen)
	for i := range first {
		first[i] = -1
	}

	nodeIdx := d.rootNodes[maskLen-1]
	depthNodes := make([]int32, maskLen)

	depth := 0
	for depth < maskLen {
		var childIdx int32 = -1
		var chosenLetter int

		if normMask[depth] == Wildcard {
			var startLetter int
			if first[depth] == -1 {
				startLetter = rng.IntN(d.alphabetSize)
			} else {
				startLetter = int(result[depth])
			}

			letter := startLetter
			for i := 0; i < d.alphabetSize; i++ {
				if letter >= d.alphabetSize {
					letter = 0
				}
				if first[depth] == letter {
					break
				}
				if first[depth] == -1 {
					first[depth] = letter
				}

				slot := int(nodeIdx)*d.alphabetSize + letter
				if child := d.nodePool[slot]; child >= 0 {
					if candidates == nil || candidates[depth].Contains(letter) {
						childIdx = child
						chosenLetter = letter
						break
					}
				}
				letter++
			}
		} else {
			letter := int(normMask[depth]) - 1
			chosenLetter = letter
			slot := int(nodeIdx)*d.alphabetSize + letter
			childIdx = d.nodePool[slot]
		}

		if childIdx >= 0 {
			result[depth] = byte(chosenLetter + 1)
		} else {
			result[depth] = 0
			first[depth] = -1
		}

		if childIdx >= 0 {
			if depth < maskLen-1 {
				depthNodes[depth] = nodeIdx
				nodeIdx = childIdx
			}
			depth++
		} else {
			for {
				depth--
				if depth < 0 || normMask[depth] == Wildcard {
					break
				}
			}
			if depth < 0 {
				return nil, false
			}
			nodeIdx = depthNodes[depth]
		}
	}

	return result, true
}

// EncodeWord converts an ASCII word into letter codes for a 26-letter
// alphabet dictionary. It returns false if the word contains anything but
// letters or exceeds the dictionary's maximum word length.
func EncodeWord(word string) ([]byte, bool) {
	if len(word) == 0 || len(word) > MaxWordLength {
		return nil, false
	}
	out := make([]byte, len(word))
	for i := 0; i < len(word); i++ {
		c := word[i]
		switch {
		case c >= 'a' && c <= 'z':
			out[i] = c - 'a' + 1
		case c >= 'A' && c <= 'Z':
			out[i] = c - 'A' + 1
		default:
			return nil, false
		}
	}
	return out, true
}

// DecodeWord converts letter codes for a 26-letter alphabet back into an
// uppercase ASCII string. Codes outside [1,26] render as '.'.
func DecodeWord(codes []byte) string {
	out := make([]byte, len(codes))
	for i, c := range codes {
		if c >= 1 && c <= 26 {
			out[i] = 'A' + c - 1
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
