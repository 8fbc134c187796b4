// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1}, // substitution
		{"abc", "ab", 1},  // deletion
		{"ab", "abc", 1},  // insertion
		{"abc", "bac", 2}, // transposition (counted as 2 edits)
		{"kitten", "sitting", 3},
		{"search", "serach", 2},
		{"version", "vrsion", 1},
		{"book", "boko", 2},
	}

	for _, test := range tests {
		got := levenshtein(test.a, test.b)
		if got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestLevenshtein_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"abc", "abd"},
		{"hello", "helo"},
		{"search", "serach"},
	}

	for _, pair := range pairs {
		forward := levenshtein(pair[0], pair[1])
		reverse := levenshtein(pair[1], pair[0])
		if forward != reverse {
			t.Errorf("levenshtein(%q, %q) = %d, but reverse = %d",
				pair[0], pair[1], forward, reverse)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "search"},
		{Name: "book"},
		{Name: "config"},
		{Name: "version"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"serach", "search"},   // transposition
		{"boko", "book"},       // transposition
		{"confg", "config"},    // missing letter
		{"vrsion", "version"},  // missing letter
		{"zzzzzzzzz", ""},      // nothing close
	}

	for _, test := range tests {
		got := suggestCommand(test.input, commands)
		if got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	newFlags := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("book", pflag.ContinueOnError)
		flagSet.String("trip", "", "trip id")
		flagSet.String("config", "", "config file")
		flagSet.String("log-output", "", "log file")
		return flagSet
	}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--trpi", "x"}, "--trip"},
		{[]string{"--confg=dev.yaml"}, "--config"},
		{[]string{"--log-outpt", "x"}, "--log-output"},
		{[]string{"--trip", "x"}, ""},          // defined, nothing to suggest
		{[]string{"--zzzzzzzz"}, ""},           // nothing close
		{[]string{"positional", "only"}, ""},   // no flags at all
	}

	for _, test := range tests {
		got := suggestFlag(test.args, newFlags())
		if got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
