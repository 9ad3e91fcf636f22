package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"simple lowercase", "hello world", []string{"hello", "world"}},
		{"with punctuation", "hello, world!", []string{"hello", "world"}},
		{"with numbers", "item123 test", []string{"item123", "test"}},
		{"leading/trailing spaces", "  hello world  ", []string{"hello", "world"}},
		{"all caps word", "HELLO WORLD", []string{"hello", "world"}},
		{"hyphenated word stays whole", "state-of-the-art", []string{"state-of-the-art"}},
		{"edge hyphens are separators", "-python- --go", []string{"python", "go"}},
		{"mixed with numbers and symbols", "API_v1.0-beta!", []string{"api", "v1", "0-beta"}},
		{"contraction clitic", "don't", []string{"do", "n't"}},
		{"possessive clitic", "resume's", []string{"resume", "'s"}},
		{"apostrophe inside name", "O'Brien", []string{"o'brien"}},
		{"quoted word", "'python'", []string{"python"}},
		{"only symbols", "!@#$%^", []string{}},
		{"newlines and tabs", "java\n\tbackend", []string{"java", "backend"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Unstemmed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"whitespace only", "   \n\t ", []string{}},
		{"all stopwords", "The and of with", []string{}},
		{"drops numerals and stopwords", "Python developer with 5 years experience", []string{"python", "developer", "years", "experience"}},
		{"drops mixed alphanumeric", "python3 C++ go-lang", []string{"c"}},
		{"drops hyphenated and apostrophe words", "e-mail O'Brien resume's", []string{"resume"}},
		{"contraction fragments are stopwords", "I don't know", []string{"know"}},
		{"keeps duplicates in order", "java Java JAVA", []string{"java", "java", "java"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input, false)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q, false) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Stemmed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"plural and gerund", "Running developers", []string{"run", "develop"}},
		{"already a stem", "python", []string{"python"}},
		{"plural noun", "cats", []string{"cat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input, true)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q, true) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	text := "Senior software engineer building distributed systems in Go and Python."
	first := Normalize(text, true)
	for i := 0; i < 5; i++ {
		if got := Normalize(text, true); !reflect.DeepEqual(got, first) {
			t.Fatalf("Normalize is not deterministic: %v vs %v", got, first)
		}
	}
}

func TestIsStopword(t *testing.T) {
	for _, word := range []string{"the", "and", "with", "t", "don"} {
		if !IsStopword(word) {
			t.Errorf("IsStopword(%q) = false, want true", word)
		}
	}
	for _, word := range []string{"python", "experience", ""} {
		if IsStopword(word) {
			t.Errorf("IsStopword(%q) = true, want false", word)
		}
	}
}
