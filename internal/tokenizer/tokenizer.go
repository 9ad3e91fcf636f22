package tokenizer

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// englishStopwords is the NLTK English stopword list.
var englishStopwords = map[string]struct{}{
	"i": {}, "me": {}, "my": {}, "myself": {}, "we": {}, "our": {}, "ours": {}, "ourselves": {},
	"you": {}, "you're": {}, "you've": {}, "you'll": {}, "you'd": {}, "your": {}, "yours": {},
	"yourself": {}, "yourselves": {}, "he": {}, "him": {}, "his": {}, "himself": {}, "she": {},
	"she's": {}, "her": {}, "hers": {}, "herself": {}, "it": {}, "it's": {}, "its": {}, "itself": {},
	"they": {}, "them": {}, "their": {}, "theirs": {}, "themselves": {}, "what": {}, "which": {},
	"who": {}, "whom": {}, "this": {}, "that": {}, "that'll": {}, "these": {}, "those": {}, "am": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {}, "have": {},
	"has": {}, "had": {}, "having": {}, "do": {}, "does": {}, "did": {}, "doing": {}, "a": {},
	"an": {}, "the": {}, "and": {}, "but": {}, "if": {}, "or": {}, "because": {}, "as": {},
	"until": {}, "while": {}, "of": {}, "at": {}, "by": {}, "for": {}, "with": {}, "about": {},
	"against": {}, "between": {}, "into": {}, "through": {}, "during": {}, "before": {},
	"after": {}, "above": {}, "below": {}, "to": {}, "from": {}, "up": {}, "down": {}, "in": {},
	"out": {}, "on": {}, "off": {}, "over": {}, "under": {}, "again": {}, "further": {},
	"then": {}, "once": {}, "here": {}, "there": {}, "when": {}, "where": {}, "why": {}, "how": {},
	"all": {}, "any": {}, "both": {}, "each": {}, "few": {}, "more": {}, "most": {}, "other": {},
	"some": {}, "such": {}, "no": {}, "nor": {}, "not": {}, "only": {}, "own": {}, "same": {},
	"so": {}, "than": {}, "too": {}, "very": {}, "s": {}, "t": {}, "can": {}, "will": {}, "just": {},
	"don": {}, "don't": {}, "should": {}, "should've": {}, "now": {}, "d": {}, "ll": {}, "m": {},
	"o": {}, "re": {}, "ve": {}, "y": {}, "ain": {}, "aren": {}, "aren't": {}, "couldn": {},
	"couldn't": {}, "didn": {}, "didn't": {}, "doesn": {}, "doesn't": {}, "hadn": {}, "hadn't": {},
	"hasn": {}, "hasn't": {}, "haven": {}, "haven't": {}, "isn": {}, "isn't": {}, "ma": {},
	"mightn": {}, "mightn't": {}, "mustn": {}, "mustn't": {}, "needn": {}, "needn't": {},
	"shan": {}, "shan't": {}, "shouldn": {}, "shouldn't": {}, "wasn": {}, "wasn't": {},
	"weren": {}, "weren't": {}, "won": {}, "won't": {}, "wouldn": {}, "wouldn't": {},
}

// clitics are split off the end of a word the way Penn Treebank tokenization
// does, so "don't" becomes "do" + "n't" and "resume's" becomes "resume" + "'s".
var clitics = []string{"n't", "'s", "'re", "'ve", "'ll", "'d", "'m"}

// Tokenize lowercases text and splits it into words. A word is a run of letters
// and digits; a single hyphen or apostrophe between two such runes stays inside
// the word ("e-mail", "o'brien"). Trailing clitics become tokens of their own.
func Tokenize(text string) []string {
	runes := []rune(strings.ToLower(text))
	tokens := make([]string, 0) // Initialize as empty slice, not nil

	start := -1
	for i := 0; i <= len(runes); i++ {
		if i < len(runes) {
			r := runes[i]
			if isWordRune(r) || (start >= 0 && isJoiner(r) && i+1 < len(runes) && isWordRune(runes[i+1])) {
				if start < 0 {
					start = i
				}
				continue
			}
		}
		if start >= 0 {
			tokens = append(tokens, splitClitic(string(runes[start:i]))...)
			start = -1
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isJoiner(r rune) bool {
	return r == '-' || r == '\''
}

func splitClitic(word string) []string {
	if !strings.ContainsRune(word, '\'') {
		return []string{word}
	}
	for _, clitic := range clitics {
		if len(word) > len(clitic) && strings.HasSuffix(word, clitic) {
			return []string{word[:len(word)-len(clitic)], clitic}
		}
	}
	return []string{word}
}

// Normalize runs the full preprocessing pipeline over text:
// tokenize, keep purely alphabetic tokens, drop stopwords and optionally stem.
// It never fails; text without usable words yields an empty slice.
func Normalize(text string, stem bool) []string {
	tokens := Tokenize(text)

	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !isAlpha(token) || IsStopword(token) {
			continue
		}
		if stem {
			token = Stem(token)
		}
		result = append(result, token)
	}
	return result
}

// IsStopword reports whether word is in the English stopword set.
func IsStopword(word string) bool {
	_, exists := englishStopwords[word]
	return exists
}

// Stem reduces an already-lowercased word to its Porter (English Snowball) stem.
func Stem(word string) string {
	return english.Stem(word, false)
}

func isAlpha(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
