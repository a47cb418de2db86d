package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "same content produces same ID", content: "test content"},
		{name: "empty string", content: ""},
		{name: "long content", content: "This is a much longer piece of content that should still hash consistently"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, IDFromContent(tt.content), IDFromContent(tt.content))
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	assert.NotEqual(t, IDFromContent("content1"), IDFromContent("content2"))
}

func TestCandidate_Identity(t *testing.T) {
	live := &Candidate{ProfileID: "p-1", Name: "Mary Wanjiru", Source: SourceLive}
	synthetic := &Candidate{Name: "Otieno Brass", Source: SourceSynthetic}

	switch id := live.Identity().(type) {
	case LiveIdentity:
		assert.Equal(t, "p-1", id.ProfileID)
		assert.Equal(t, "Mary Wanjiru", id.DisplayName())
	default:
		t.Fatalf("expected LiveIdentity, got %T", id)
	}

	switch id := synthetic.Identity().(type) {
	case SyntheticIdentity:
		assert.Equal(t, "Otieno Brass", id.DisplayName())
	default:
		t.Fatalf("expected SyntheticIdentity, got %T", id)
	}
}

func TestParseSource(t *testing.T) {
	s, err := ParseSource(" Live ")
	require.NoError(t, err)
	assert.Equal(t, SourceLive, s)

	s, err = ParseSource("synthetic")
	require.NoError(t, err)
	assert.Equal(t, SourceSynthetic, s)
	assert.Equal(t, "synthetic", s.String())

	_, err = ParseSource("faiss")
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestProfile_GoalsText(t *testing.T) {
	p := Profile{
		Goals:         "  play at church ",
		LearningGoals: []string{"chords", "", "fingerpicking"},
		LearningStyle: "flexible",
	}
	assert.Equal(t, "play at church chords fingerpicking flexible", p.GoalsText())

	empty := Profile{LearningGoals: []string{" "}}
	assert.Empty(t, empty.GoalsText())
}
