package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(location, instrument, language, skill string) Row {
	var r Row
	r.Categorical = [NumCategorical]string{location, instrument, language, skill}
	return r
}

func TestCanonicalValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Nairobi", "nairobi"},
		{"  NAIROBI ", "nairobi"},
		{"Ｇｕｉｔａｒ", "guitar"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalValue(tt.in))
		})
	}
}

func TestVocabulary_FitAndTransform(t *testing.T) {
	vocab := FitVocabulary([]Row{
		row("Nairobi", "Guitar", "English", "Beginner"),
		row("Mombasa", "Piano", "Swahili", "Advanced"),
		row("nairobi", "guitar", "", "beginner"),
	})

	assert.Equal(t, 8, vocab.Dim())
	assert.Equal(t, []string{"mombasa", "nairobi"}, vocab.Values(ColLocation))
	assert.True(t, vocab.Contains(ColInstrument, "GUITAR"))
	assert.False(t, vocab.Contains(ColInstrument, "Theremin"))

	block, unknown := vocab.Transform(row("NAIROBI", "Piano", "English", "Beginner"))
	require.Len(t, block, 8)
	assert.Empty(t, unknown)

	var ones int
	for _, x := range block {
		if x == 1 {
			ones++
		}
	}
	assert.Equal(t, 4, ones)
}

func TestVocabulary_UnknownValueIsZeroSegment(t *testing.T) {
	vocab := FitVocabulary([]Row{
		row("Nairobi", "Guitar", "English", "Beginner"),
		row("Mombasa", "Piano", "English", "Advanced"),
	})

	block, unknown := vocab.Transform(row("Nairobi", "Theremin", "English", "Beginner"))
	assert.Equal(t, []string{"instrument_type"}, unknown)

	instrumentStart := len(vocab.Values(ColLocation))
	instrumentEnd := instrumentStart + len(vocab.Values(ColInstrument))
	for _, x := range block[instrumentStart:instrumentEnd] {
		assert.Zero(t, x)
	}
}

func TestVocabulary_EmptyValueIsSkipped(t *testing.T) {
	vocab := FitVocabulary([]Row{row("", "Guitar", "", "")})
	assert.Equal(t, 1, vocab.Dim())

	block, unknown := vocab.Transform(row("", "", "", ""))
	assert.Empty(t, unknown)
	assert.Equal(t, []float32{0}, block)
}
