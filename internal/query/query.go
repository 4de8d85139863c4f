// Package query turns free-text ingredient queries into canonical name sets.
//
// Users type terms separated by commas ("lemongrass, lemon, lime juice").
// Encode packs that into one whitespace-separated token per term
// ("lemongrass lemon lime-juice") so it fits in a URL query parameter;
// Decode restores the comma-joined form and CanonicalSet produces the
// title-cased names the catalog is keyed on.
package query

import (
	"strings"
)

// Separator replaces spaces inside a single encoded term.
const Separator = "-"

// Encode trims each comma-separated term of raw, replaces its inner spaces
// with Separator and joins the terms with a single space.
func Encode(raw string) string {
	terms := strings.Split(raw, ",")
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		out = append(out, strings.ReplaceAll(strings.TrimSpace(term), " ", Separator))
	}
	return strings.Join(out, " ")
}

// Decode splits encoded on whitespace, turns Separator back into spaces in
// every token and joins the tokens with a comma. No space follows the comma.
func Decode(encoded string) string {
	tokens := strings.Fields(encoded)
	for i, tok := range tokens {
		tokens[i] = strings.ReplaceAll(tok, Separator, " ")
	}
	return strings.Join(tokens, ",")
}

// CanonicalSet splits a decoded, comma-joined string into title-cased names.
// Blank terms are dropped.
func CanonicalSet(decoded string) NameSet {
	return NewNameSet(strings.Split(decoded, ",")...)
}

// Parse decodes an encoded query and canonicalises it.
func Parse(encoded string) NameSet {
	return CanonicalSet(Decode(encoded))
}
