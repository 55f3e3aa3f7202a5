package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "cyrillic author name",
			input: "Иван Петров",
			want:  "ivan.petrov",
		},
		{
			name:  "single latin word",
			input: "News",
			want:  "news",
		},
		{
			name:  "keeps only first two words",
			input: "Иван Петров и другие",
			want:  "ivan.petrov",
		},
		{
			name:  "trailing punctuation stripped",
			input: "News!",
			want:  "news",
		},
		{
			name:  "diacritics removed",
			input: "Chișinău Today",
			want:  "chisinau.today",
		},
		{
			name:  "hyphen becomes separator",
			input: "foo-bar",
			want:  "foo.bar",
		},
		{
			name:  "surrounding whitespace",
			input: "  Sport  ",
			want:  "sport",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  "",
		},
		{
			name:  "cyrillic category",
			input: "Политика",
			want:  "politika",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}
