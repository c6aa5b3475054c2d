package game

// Keyboard tracks the best verdict seen for each letter on one side,
// the state an on-screen keyboard is coloured from.
type Keyboard map[string]Mark

// Apply upgrades letters from r; a letter never moves down (placed > present > absent).
func (k Keyboard) Apply(r GuessResult) {
	for i := 0; i < len(r.Guess) && i < len(r.Marks); i++ {
		l := string(r.Guess[i])
		if r.Marks[i].rank() > k[l].rank() {
			k[l] = r.Marks[i]
		}
	}
}

func (k Keyboard) clone() Keyboard {
	out := make(Keyboard, len(k))
	for l, m := range k {
		out[l] = m
	}
	return out
}
