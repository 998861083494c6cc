package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes an identifier for fuzzy matching: CamelCase and
// separators (_, -, ., :, space) are removed and the result is lower case.
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// TokenizeIdent splits an identifier into lowercase tokens.
//   - "SimpleFreeFieldHRIR" -> ["simple", "free", "field", "hrir"]
//   - "Data_SamplingRate"   -> ["data", "sampling", "rate"]
//   - "GLOBAL:RoomType"     -> ["global", "room", "type"]
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ', '.', ':':
		return true
	}

	return false
}

// startsToken reports a lower-to-upper transition ("freeField") or the end
// of an acronym followed by a word ("HRIRData" splits before 'D').
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
