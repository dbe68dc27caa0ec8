// Package wordlist loads newline-delimited word files into encoded letter
// sequences ready for Dictionary.AddWords.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"crosswarped.com/wizium/pkg/dictionary"
)

// Load reads one lowercase word per line from r, skipping blank lines and
// lines starting with '#', and encodes each into letter codes. minLength
// and maxLength filter by word length; maxLength <= 0 means unbounded.
func Load(r io.Reader, minLength, maxLength int) ([][]byte, error) {
	var words [][]byte

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(line) < minLength || (maxLength > 0 && len(line) > maxLength) {
			continue
		}

		encoded, ok := dictionary.EncodeWord(line)
		if !ok {
			return nil, fmt.Errorf("wordlist: %q is not a plain a-z word", line)
		}
		words = append(words, encoded)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("wordlist: scan: %w", err)
	}
	return words, nil
}
