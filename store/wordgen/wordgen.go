// Package wordgen makes up names for views saved without one.
package wordgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// maxAttempts bounds how many random pairs Unique tries before it falls
// back to a numbered suffix.
const maxAttempts = 20

var adjectives = []string{
	"amber", "bold", "brisk", "calm", "coral",
	"crisp", "dusky", "early", "faint", "fresh",
	"glossy", "grand", "hazy", "ivory", "jolly",
	"lucid", "mellow", "misty", "neat", "olive",
	"plain", "quiet", "rosy", "rustic", "sharp",
	"silent", "sleek", "snowy", "steady", "sunny",
	"tidy", "vivid", "warm", "witty", "young",
}

var nouns = []string{
	"banner", "board", "border", "canvas", "card",
	"corner", "easel", "frame", "gallery", "grid",
	"header", "ledger", "margin", "mosaic", "notice",
	"page", "panel", "parcel", "placard", "poster",
	"quilt", "scroll", "sheet", "sign", "slate",
	"tablet", "tile", "wall", "window",
}

// Generate returns a random "adjective_noun" name, or "" if the system
// random source fails.
func Generate() string {
	adj, err := pick(adjectives)
	if err != nil {
		return ""
	}
	noun, err := pick(nouns)
	if err != nil {
		return ""
	}
	return adj + "_" + noun
}

// Unique returns a generated name for which taken reports false. After
// maxAttempts collisions it appends a number to the last candidate.
func Unique(taken func(string) bool) string {
	candidate := ""
	for i := 0; i < maxAttempts; i++ {
		candidate = Generate()
		if candidate != "" && !taken(candidate) {
			return candidate
		}
	}
	if candidate == "" {
		candidate = "view"
	}
	for n := 2; ; n++ {
		numbered := fmt.Sprintf("%s_%d", candidate, n)
		if !taken(numbered) {
			return numbered
		}
	}
}

func pick(words []string) (string, error) {
	if len(words) == 0 {
		return "", fmt.Errorf("empty word list")
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return words[n.Int64()], nil
}
