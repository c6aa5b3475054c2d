// Package assets carries the built-in dictionary so the game runs without
// any external word list configured.
package assets

import (
	"embed"
)

//go:embed words.json
var FS embed.FS

// DefaultWordsFile is the name of the embedded dictionary inside FS.
const DefaultWordsFile = "words.json"

// DefaultWords returns the raw bytes of the embedded dictionary.
func DefaultWords() ([]byte, error) {
	return FS.ReadFile(DefaultWordsFile)
}
