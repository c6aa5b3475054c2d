package game

// Opponent is the computer player: it narrows the dictionary to the words
// consistent with what it knows and picks one of them.
type Opponent struct {
	dict []string
	sel  *Selector
}

// Pick describes one computer decision.
type Pick struct {
	Guess    string `json:"guess"`
	Pool     int    `json:"pool"`     // candidates consistent with the constraints
	Fallback bool   `json:"fallback"` // true when the pool was empty and the full dictionary was used
}

// NewOpponent returns an Opponent guessing from dict.
func NewOpponent(dict []string, sel *Selector) *Opponent {
	return &Opponent{dict: dict, sel: sel}
}

// Next chooses the next guess for the given knowledge. ok is false only when
// the dictionary itself is empty.
func (o *Opponent) Next(c *Constraints) (Pick, bool) {
	candidates := Filter(o.dict, c)
	w, ok := o.sel.SelectNext(candidates, o.dict)
	if !ok {
		return Pick{}, false
	}
	return Pick{Guess: w, Pool: len(candidates), Fallback: len(candidates) == 0}, true
}
