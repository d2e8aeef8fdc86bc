package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "blank", input: "   ", want: nil},
		{name: "single broker", input: "localhost:9092", want: []string{"localhost:9092"}},
		{name: "trims and drops empties", input: " a:9092, ,b:9092 ,", want: []string{"a:9092", "b:9092"}},
		{name: "dedupes keeping first", input: "face-match,id-check,face-match", want: []string{"face-match", "id-check"}},
		{name: "case sensitive", input: "Step,step", want: []string{"Step", "step"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.input))
		})
	}
}

func TestDedupeAndTrimKeepsEmptyInputShape(t *testing.T) {
	assert.Nil(t, DedupeAndTrim(nil))
	assert.Equal(t, []string{}, DedupeAndTrim([]string{}))
}
