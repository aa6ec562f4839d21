package tui

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/palette/internal/command"
)

// didYouMean names the closest sibling alias when the segment after the
// deepest matched command matches nothing. It only annotates an empty
// result; suggestions themselves stay exact substring matches.
func didYouMean(tree *command.Tree, tokens []string) string {
	at := tree.Resolve(tokens)
	if at.Depth() >= len(tokens) || len(at.Children) == 0 {
		return ""
	}
	segment := strings.ToLower(tokens[at.Depth()])
	best, bestDist := "", -1
	for _, child := range at.Children {
		d := levenshtein.ComputeDistance(segment, strings.ToLower(child.Alias))
		if bestDist < 0 || d < bestDist {
			best, bestDist = child.Alias, d
		}
	}
	if bestDist > max(1, len(segment)/2) {
		return "No matching command"
	}
	return "No matching command. Did you mean \"" + best + "\"?"
}
