package game

// Evaluate scores guess against target with the standard two-pass algorithm.
//
// Pass 1:
//   - Mark exact matches as placed.
//   - Count the remaining (non-placed) target letters.
//
// Pass 2:
//   - For each non-placed guess letter: if a remaining count exists for that
//     letter, mark present and decrement the count; otherwise mark absent.
//
// A letter that occurs once in the target but twice in the guess is credited
// once. Inputs are lowercase a–z of equal length; validation happens upstream.
func Evaluate(guess, target string) GuessResult {
	return GuessResult{Guess: guess, Marks: score(guess, target)}
}

func score(guess, target string) []Mark {
	n := len(guess)
	res := make([]Mark, n)

	// Letter frequency for the non-placed positions (a–z).
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == target[i] {
			res[i] = MarkPlaced
		} else {
			counts[idx(target[i])]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkPlaced {
			continue
		}
		j := idx(guess[i])
		if counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res
}

// idx maps a lowercase ASCII letter to 0..25.
func idx(c byte) int { return int(c - 'a') }
