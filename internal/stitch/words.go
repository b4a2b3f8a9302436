package stitch

import (
	"fmt"
	"math/rand"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Code words pair a texture with a motif so two drafts rarely collide.
// Collisions are tolerated anyway: the word proves photo freshness, it is
// not an identifier.
var (
	codeAdjectives = []string{
		"amber", "brindle", "crimson", "dappled", "ember", "flaxen",
		"gilded", "heather", "indigo", "juniper", "mossy", "ochre",
		"pearl", "quilted", "russet", "saffron", "thistle", "umber",
		"velvet", "woolen",
	}
	codeNouns = []string{
		"bobbin", "burrow", "clover", "distaff", "fern", "garland",
		"hollow", "lantern", "meadow", "orchard", "paddock", "quince",
		"ribbon", "sparrow", "spindle", "thimble", "warble", "willow",
	}
)

var titleCaser = cases.Title(language.English)

// newCodeWord returns a fresh two-word phrase like "Quilted Thimble".
//
//nolint:gosec // G404: math/rand is acceptable for code words, not for cryptographic purposes
func newCodeWord() string {
	adjective := codeAdjectives[rand.Intn(len(codeAdjectives))]
	noun := codeNouns[rand.Intn(len(codeNouns))]
	return fmt.Sprintf("%s %s", titleCaser.String(adjective), titleCaser.String(noun))
}
