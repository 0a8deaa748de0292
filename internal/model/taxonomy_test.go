package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("milk"))
	assert.True(t, IsValidCategory("sweets-lollies"))
	assert.False(t, IsValidCategory("dairy"))
	assert.False(t, IsValidCategory(Uncategorised))
	assert.False(t, IsValidCategory(""))
}

func TestHasValidCategories(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		expected   bool
	}{
		{"all valid", []string{"milk", "cheese"}, true},
		{"one invalid", []string{"milk", "dairy"}, false},
		{"sentinel only", []string{Uncategorised}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasValidCategories(tt.categories))
		})
	}
}

func TestNormalizeCategories(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"keeps entries", []string{"milk"}, []string{"milk"}},
		{"keeps off-taxonomy entries", []string{"dairy"}, []string{"dairy"}},
		{"trims whitespace", []string{"  milk "}, []string{"milk"}},
		{"drops blanks", []string{"", "  ", "juice"}, []string{"juice"}},
		{"empty resolves to sentinel", nil, []string{Uncategorised}},
		{"all blank resolves to sentinel", []string{"", " "}, []string{Uncategorised}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeCategories(tt.input))
		})
	}
}

func TestOnlySentinel(t *testing.T) {
	assert.True(t, OnlySentinel(nil))
	assert.True(t, OnlySentinel([]string{Uncategorised}))
	assert.False(t, OnlySentinel([]string{Uncategorised, "milk"}))
	assert.False(t, OnlySentinel([]string{"dairy"}))
}
