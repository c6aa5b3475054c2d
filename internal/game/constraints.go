package game

import "strings"

// letterSet is a set of lowercase letters packed into a bitmask.
type letterSet uint32

func (s letterSet) has(c byte) bool { return s&(1<<(c-'a')) != 0 }
func (s *letterSet) add(c byte)     { *s |= 1 << (c - 'a') }
func (s *letterSet) remove(c byte)  { *s &^= 1 << (c - 'a') }

func (s letterSet) String() string {
	var b strings.Builder
	for c := byte('a'); c <= 'z'; c++ {
		if s.has(c) {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Constraints is everything one side has learned about the target so far.
//
// It holds the letters known absent, the letters known present together with
// the positions ruled out for each letter, and the letters fixed at a position.
// Per-letter minimum and maximum counts refine that for guesses with repeated
// letters. Fold only ever adds knowledge; Reset clears it at round start.
type Constraints struct {
	length   int
	placed   []byte
	present  letterSet
	absent   letterSet
	excluded [26]uint32
	min      [26]uint8
	max      [26]uint8
	capped   letterSet
}

// NewConstraints returns an empty state for words of the given length.
func NewConstraints(length int) *Constraints {
	return &Constraints{length: length, placed: make([]byte, length)}
}

// Reset forgets everything.
func (c *Constraints) Reset() {
	*c = Constraints{length: c.length, placed: make([]byte, c.length)}
}

// Clone returns an independent copy.
func (c *Constraints) Clone() *Constraints {
	cp := *c
	cp.placed = append([]byte(nil), c.placed...)
	return &cp
}

// Len is the word length the constraints apply to.
func (c *Constraints) Len() int { return c.length }

// Fold merges one scored guess into the state. Folding the same result again
// changes nothing. Results of the wrong length or with non-letters are ignored.
//
// For each position i with letter l:
//   - placed:  l is fixed at i.
//   - present: l is required somewhere, but not at i.
//   - absent:  l is not at i; l is blacklisted only if this guess did not
//     also credit it as placed or present elsewhere.
func (c *Constraints) Fold(r GuessResult) {
	g := r.Guess
	if len(g) != c.length || len(r.Marks) != c.length {
		return
	}

	var (
		credited [26]uint8
		hit      letterSet
		missed   letterSet
	)
	for i := 0; i < len(g); i++ {
		if g[i] < 'a' || g[i] > 'z' {
			return
		}
		switch r.Marks[i] {
		case MarkPlaced, MarkPresent:
			credited[idx(g[i])]++
			hit.add(g[i])
		case MarkAbsent:
			missed.add(g[i])
		}
	}

	for i := 0; i < len(g); i++ {
		l := g[i]
		switch r.Marks[i] {
		case MarkPlaced:
			c.placed[i] = l
		case MarkPresent:
			c.present.add(l)
			c.excluded[idx(l)] |= 1 << i
		case MarkAbsent:
			if !hit.has(l) {
				c.absent.add(l)
			}
			c.excluded[idx(l)] |= 1 << i
		}
	}

	// A placed letter's presence is already pinned by its position.
	for _, l := range c.placed {
		if l != 0 {
			c.present.remove(l)
		}
	}

	for j := 0; j < 26; j++ {
		l := byte('a' + j)
		k := credited[j]
		if k > c.min[j] {
			c.min[j] = k
		}
		// An absent mark next to credited copies pins the exact count.
		if missed.has(l) && (!c.capped.has(l) || k < c.max[j]) {
			c.max[j] = k
			c.capped.add(l)
		}
	}
}

// Admits reports whether word is consistent with everything folded so far.
func (c *Constraints) Admits(word string) bool {
	if len(word) != c.length {
		return false
	}
	var counts [26]uint8
	for i := 0; i < len(word); i++ {
		l := word[i]
		if l < 'a' || l > 'z' {
			return false
		}
		if p := c.placed[i]; p != 0 && p != l {
			return false
		}
		if c.excluded[idx(l)]&(1<<i) != 0 {
			return false
		}
		if c.absent.has(l) && !c.required(l) {
			return false
		}
		counts[idx(l)]++
	}

	// Excluded positions were rejected above, so any remaining occurrence of
	// a present letter is at an allowed position.
	for j := 0; j < 26; j++ {
		l := byte('a' + j)
		if c.present.has(l) && counts[j] == 0 {
			return false
		}
		if counts[j] < c.min[j] {
			return false
		}
		if c.capped.has(l) && counts[j] > c.max[j] {
			return false
		}
	}
	return true
}

// required reports whether l is known to be in the target.
func (c *Constraints) required(l byte) bool {
	if c.present.has(l) {
		return true
	}
	for _, p := range c.placed {
		if p == l {
			return true
		}
	}
	return false
}

// ConstraintView is a readable snapshot of Constraints.
type ConstraintView struct {
	Placed   string           `json:"placed"`
	Present  string           `json:"present"`
	Absent   string           `json:"absent"`
	Excluded map[string][]int `json:"excluded,omitempty"`
}

// View renders the state. Unknown placed positions are shown as '_'.
func (c *Constraints) View() ConstraintView {
	placed := make([]byte, c.length)
	for i, p := range c.placed {
		if p == 0 {
			placed[i] = '_'
		} else {
			placed[i] = p
		}
	}
	v := ConstraintView{
		Placed:  string(placed),
		Present: c.present.String(),
		Absent:  c.absent.String(),
	}
	for j, mask := range c.excluded {
		if mask == 0 {
			continue
		}
		if v.Excluded == nil {
			v.Excluded = make(map[string][]int)
		}
		var pos []int
		for i := 0; i < c.length; i++ {
			if mask&(1<<i) != 0 {
				pos = append(pos, i)
			}
		}
		v.Excluded[string(rune('a'+j))] = pos
	}
	return v
}
