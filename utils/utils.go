package utils

import (
	"math/rand"
	"regexp"
	"strings"
)

// ContainsString returns true iff the provided string slice hay contains string
// needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// ContainsInt returns true iff the provided int slice hay contains needle.
func ContainsInt(hay []int, needle int) bool {
	for _, v := range hay {
		if v == needle {
			return true
		}
	}
	return false
}

// Min returns the smaller of two ints.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// RandomAlphabetString returns a random lower-case string of the given length.
func RandomAlphabetString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

var searchTokenSplit = regexp.MustCompile(`[\s\W_]+`)

// SearchPattern turns a free-text query into a SQL LIKE pattern that matches
// the tokens in order with anything in between: "kendrick lamar" becomes
// "%kendrick%lamar%". Returns "" for a query with no tokens.
func SearchPattern(query string) string {
	var tokens []string
	for _, tok := range searchTokenSplit.Split(strings.TrimSpace(query), -1) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return ""
	}
	return "%" + strings.Join(tokens, "%") + "%"
}
