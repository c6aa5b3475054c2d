// internal/words/words.go
//
// Dictionary management for the game engine.
//
// Responsibilities:
//   - Load the word list from a configured file or fall back to the embedded
//     default (assets/words.json).
//   - Keep a lookup set for guess validation.
//   - Keep the target pool: words without repeated letters, which is where
//     round targets are drawn from when distinct targets are enabled.
//
// Formats:
//   - *.json: a JSON array of strings, like assets/words.json.
//   - anything else: one word per line, blank lines and "#" comments ignored.
//
// Constraints:
//   • Words are lowercase a–z only; everything is normalized to lowercase.
//   • The word length is taken from the first valid word. Words of any other
//     length are skipped, the same way the old loader skipped non 5-letter words.
//   • A Dictionary is read-only after construction and safe for concurrent use.

package words

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kiittsunne/wardle/assets"
)

// MaxWordLength bounds word length so positions fit in a uint32 bitmask.
const MaxWordLength = 32

var (
	// ErrEmptyDictionary is returned when no usable word survives normalization.
	ErrEmptyDictionary = errors.New("words: dictionary is empty")
	// ErrWordTooLong is returned when the dictionary's word length exceeds MaxWordLength.
	ErrWordTooLong = errors.New("words: word length exceeds limit")
)

// Dictionary is an ordered, de-duplicated list of equal-length words.
type Dictionary struct {
	list     []string
	set      map[string]struct{}
	distinct []string
	length   int
	skipped  int
}

// New builds a Dictionary from raw entries.
func New(entries []string) (*Dictionary, error) {
	d := &Dictionary{set: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		w := strings.TrimSpace(strings.ToLower(e))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if !isAlpha(w) {
			d.skipped++
			continue
		}
		if d.length == 0 {
			d.length = len(w)
		}
		if len(w) != d.length {
			d.skipped++
			continue
		}
		if _, dup := d.set[w]; dup {
			continue
		}
		d.set[w] = struct{}{}
		d.list = append(d.list, w)
		if !HasRepeats(w) {
			d.distinct = append(d.distinct, w)
		}
	}
	if len(d.list) == 0 {
		return nil, ErrEmptyDictionary
	}
	if d.length > MaxWordLength {
		return nil, fmt.Errorf("%w: %d > %d", ErrWordTooLong, d.length, MaxWordLength)
	}
	return d, nil
}

// Load reads the dictionary at path, or the embedded default when path is empty.
// There is no retry: the game cannot run without a dictionary.
func Load(path string) (*Dictionary, error) {
	var (
		raw  []byte
		name = path
		err  error
	)
	if path == "" {
		name = assets.DefaultWordsFile
		raw, err = assets.DefaultWords()
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", name, err)
	}
	entries, err := parse(name, raw)
	if err != nil {
		return nil, fmt.Errorf("parse dictionary %s: %w", name, err)
	}
	return New(entries)
}

// parse decodes raw dictionary bytes according to the file extension.
func parse(name string, raw []byte) ([]string, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	return strings.Split(string(raw), "\n"), nil
}

// Words returns the full ordered list. Callers must not modify it.
func (d *Dictionary) Words() []string { return d.list }

// TargetPool returns the words targets are drawn from. With distinct set it is
// the words without repeated letters, falling back to the full list if none exist.
func (d *Dictionary) TargetPool(distinct bool) []string {
	if distinct && len(d.distinct) > 0 {
		return d.distinct
	}
	return d.list
}

// Contains reports whether w is a dictionary word (case-insensitive).
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.set[strings.ToLower(w)]
	return ok
}

// WordLength is the length every word in the dictionary shares.
func (d *Dictionary) WordLength() int { return d.length }

// Len is the number of words.
func (d *Dictionary) Len() int { return len(d.list) }

// Stats returns counts of loaded words: (all, distinct-letter, skipped entries).
func (d *Dictionary) Stats() (total, distinct, skipped int) {
	return len(d.list), len(d.distinct), d.skipped
}

// HasRepeats reports whether any letter occurs more than once in w.
func HasRepeats(w string) bool {
	var seen uint32
	for i := 0; i < len(w); i++ {
		bit := uint32(1) << (w[i] - 'a')
		if seen&bit != 0 {
			return true
		}
		seen |= bit
	}
	return false
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
