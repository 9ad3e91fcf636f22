package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/resumematcher/resume-search/index"
)

func TestRewriter_ExpandWildcard(t *testing.T) {
	r := NewRewriter(index.NewVocabulary([]string{"developer", "development", "design"}), DefaultMaxEditDistance)

	tests := []struct {
		term string
		want []string
	}{
		{"dev*", []string{"developer", "development"}},
		{"d*", []string{"design", "developer", "development"}},
		{"de*v*", []string{"developer", "development"}},
		{"zzz*", []string{}},
		{"*", []string{"design", "developer", "development"}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ExpandWildcard(tt.term))
		})
	}
}

func TestIsWildcard(t *testing.T) {
	assert.True(t, IsWildcard("dev*"))
	assert.True(t, IsWildcard("*dev*"))
	assert.False(t, IsWildcard("*dev"))
	assert.False(t, IsWildcard("dev"))
}

func TestRewriter_CorrectSpelling(t *testing.T) {
	r := NewRewriter(index.NewVocabulary([]string{"python", "java", "lava", "developer"}), DefaultMaxEditDistance)

	tests := []struct {
		name string
		term string
		want string
	}{
		{"vocabulary word untouched", "java", "java"},
		{"one edit away", "pythn", "python"},
		{"two edits away", "pyton3", "python"},
		{"tie resolved lexicographically", "kava", "java"},
		{"more than two edits", "kubernetes", "kubernetes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.CorrectSpelling(tt.term))
		})
	}
}

func TestRewriter_Rewrite(t *testing.T) {
	r := NewRewriter(index.NewVocabulary([]string{"developer", "development", "design", "python"}), DefaultMaxEditDistance)

	tests := []struct {
		raw  string
		want string
	}{
		{"pythn dev*", "python developer development"},
		{"  PYTHON   zzz*  desgn ", "python design"},
		{"", ""},
		{"*dev", "*dev"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Rewrite(tt.raw))
		})
	}
}
