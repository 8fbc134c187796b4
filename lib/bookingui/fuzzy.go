// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package bookingui

import (
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// fzf's scoring tables must be initialized once before any call to
// algo.FuzzyMatchV2; without this every match scores zero.
func init() {
	algo.Init("default")
}

// FuzzyResult is the outcome of matching a pattern against one text.
// Score is 0 for no match; higher is better. Positions are the rune
// indices of the matched characters, for highlighting.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// Slab sizes as used by fzf itself.
const (
	slab16Size = 100 * 1024
	slab32Size = 2048
)

// NewSlab allocates a reusable scratch slab for FuzzyMatch. One slab
// per matching loop; not safe for concurrent use.
func NewSlab() *util.Slab {
	return util.MakeSlab(slab16Size, slab32Size)
}

// FuzzyMatch scores pattern against text with fzf's FuzzyMatchV2.
// Matching is case-insensitive. An empty pattern matches everything
// with score 1 and no positions. Pass a shared slab when matching
// many candidates; nil allocates per call inside fzf.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{Score: 1}
	}

	lowered := make([]rune, len(pattern))
	for i, r := range pattern {
		lowered[i] = unicode.ToLower(r)
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	out := FuzzyResult{Score: result.Score}
	if positions != nil {
		out.Positions = *positions
	}
	return out
}
