package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "dedup and lowercase",
			text: "Buy #Milk #milk #eggs",
			want: []string{"eggs", "milk"},
		},
		{
			name: "sorted output",
			text: "#zulu then #alpha",
			want: []string{"alpha", "zulu"},
		},
		{
			name: "hyphen and underscore allowed",
			text: "#to-do #work_log",
			want: []string{"to-do", "work_log"},
		},
		{
			name: "no tags",
			text: "just a plain note",
			want: nil,
		},
		{
			name: "bare hash ignored",
			text: "# not a tag",
			want: nil,
		},
		{
			name: "tag stops at punctuation",
			text: "ship it #v2!",
			want: []string{"v2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTags(tt.text))
		})
	}
}

func TestIsPureTagList(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "two tags", text: "#a #b", want: true},
		{name: "single tag", text: "#work", want: true},
		{name: "extra words", text: "#a remember this", want: false},
		{name: "no tags", text: "plain text", want: false},
		{name: "tabs and newlines between tags", text: "#a\t#b\n#c", want: true},
		{name: "duplicate tag is a note", text: "#a #a", want: false},
		{name: "unsorted order reconstructs differently", text: "#b #a", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPureTagList(tt.text, ExtractTags(tt.text)))
		})
	}
}
