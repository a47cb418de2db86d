package features_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mmwithiga/tarumbeta/ai/mock"
	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/features"
	"github.com/mmwithiga/tarumbeta/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDim = 32

func instructors() []core.Candidate {
	return []core.Candidate{
		{Name: "Mary Wanjiru", Location: "Nairobi", Instrument: "Guitar", SkillLevel: "Beginner",
			TeachingLanguage: "English", HourlyRate: 1000, Rating: 4.9, YearsExperience: 8,
			Bio: "Patient guitar teacher for beginners", Source: core.SourceSynthetic},
		{Name: "Otieno Ouma", Location: "Kisumu", Instrument: "Piano", SkillLevel: "Advanced",
			TeachingLanguage: "Swahili", HourlyRate: 2500, Rating: 4.1, YearsExperience: 2,
			Bio: "Classical piano and theory", Source: core.SourceSynthetic},
		{Name: "Amina Hassan", Location: "Mombasa", Instrument: "Violin", SkillLevel: "Intermediate",
			TeachingLanguage: "English", HourlyRate: 1800, Rating: 4.6, YearsExperience: 12,
			Source: core.SourceSynthetic},
	}
}

func learner() core.Profile {
	return core.Profile{
		Instrument:       "Guitar",
		SkillLevel:       "Beginner",
		TeachingLanguage: "English",
		Location:         "Nairobi",
		Goals:            "learn to play worship songs",
		Budget:           1200,
	}
}

func newVectorizer(t *testing.T) (*features.Vectorizer, *mock.MockEmbedder) {
	t.Helper()
	space, err := features.Fit([]core.Profile{learner()}, instructors(), testDim)
	require.NoError(t, err)
	emb := mock.NewMockEmbedderWithDimension(testDim)
	v, err := features.NewVectorizer(space, emb)
	require.NoError(t, err)
	return v, emb
}

func candidatePtrs(cs []core.Candidate) []*core.Candidate {
	out := make([]*core.Candidate, len(cs))
	for i := range cs {
		out[i] = &cs[i]
	}
	return out
}

func TestFit_RejectsBadDimension(t *testing.T) {
	_, err := features.Fit(nil, instructors(), 0)
	assert.True(t, errors.Is(err, core.ErrConfiguration))
}

func TestVectorizeCandidates_UnitNorm(t *testing.T) {
	v, _ := newVectorizer(t)
	vecs, err := v.VectorizeCandidates(context.Background(), candidatePtrs(instructors()))
	require.NoError(t, err)
	require.Len(t, vecs, 3)

	for _, vec := range vecs {
		assert.Len(t, vec, v.Space().Dim())
		assert.InDelta(t, 1.0, vector.Norm(vec), 1e-6)
		assert.InDelta(t, 1.0, vector.Dot(vec, vec), 1e-5)
	}
}

func TestVectorizeProfile_Deterministic(t *testing.T) {
	v, _ := newVectorizer(t)
	ctx := context.Background()

	a, err := v.VectorizeProfile(ctx, learner())
	require.NoError(t, err)
	b, err := v.VectorizeProfile(ctx, learner())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.InDelta(t, 1.0, vector.Norm(a), 1e-6)
}

func TestVectorizeProfile_UnknownInstrument(t *testing.T) {
	v, _ := newVectorizer(t)
	p := learner()
	p.Instrument = "Theremin"

	vec, err := v.VectorizeProfile(context.Background(), p)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, vector.Norm(vec), 1e-6)
}

func TestVectorize_EmptyTextSkipsEmbedder(t *testing.T) {
	v, emb := newVectorizer(t)
	p := learner()
	p.Goals = "   "

	vec, err := v.VectorizeProfile(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 0, emb.CallCount())

	textBlock := vec[len(vec)-testDim:]
	assert.True(t, vector.IsZero(textBlock))
}

func TestVectorize_AllZeroStaysZero(t *testing.T) {
	space, err := features.Fit(nil, nil, testDim)
	require.NoError(t, err)
	v, err := features.NewVectorizer(space, mock.NewMockEmbedderWithDimension(testDim))
	require.NoError(t, err)

	vec, err := v.VectorizeProfile(context.Background(), core.Profile{Budget: 1000})
	require.NoError(t, err)
	assert.True(t, vector.IsZero(vec))
}

func TestVectorize_CategoricalDominates(t *testing.T) {
	v, emb := newVectorizer(t)
	ctx := context.Background()
	p := learner()

	// Same categories as the learner, worst numerics, unrelated bio.
	categorical := core.Candidate{Name: "A", Location: "Nairobi", Instrument: "Guitar",
		SkillLevel: "Beginner", TeachingLanguage: "English", HourlyRate: 2500, Rating: 4.1,
		YearsExperience: 2, Bio: "drum circles", Source: core.SourceSynthetic}
	// Different categories, ideal numerics, bio identical to the learner's goals.
	numeric := core.Candidate{Name: "B", Location: "Kisumu", Instrument: "Piano",
		SkillLevel: "Advanced", TeachingLanguage: "Swahili", HourlyRate: 1200, Rating: 4.9,
		YearsExperience: 12, Bio: p.GoalsText(), Source: core.SourceSynthetic}

	q, err := v.VectorizeProfile(ctx, p)
	require.NoError(t, err)
	vecs, err := v.VectorizeCandidates(ctx, []*core.Candidate{&categorical, &numeric})
	require.NoError(t, err)

	scoreA := vector.Dot(q, vecs[0])
	scoreB := vector.Dot(q, vecs[1])
	assert.Greater(t, scoreA, scoreB)
	assert.Greater(t, scoreA, 0.9)
	assert.Positive(t, emb.CallCount())
}

func TestVectorize_EmbeddingFailure(t *testing.T) {
	space, err := features.Fit(nil, instructors(), mock.DefaultDimension)
	require.NoError(t, err)
	v, err := features.NewVectorizer(space, mock.NewUnavailableEmbedder())
	require.NoError(t, err)

	_, err = v.VectorizeProfile(context.Background(), learner())
	assert.True(t, errors.Is(err, core.ErrEmbeddingFailure))
	assert.True(t, errors.Is(err, mock.ErrUnavailable))
}

func TestVectorize_DimensionMismatch(t *testing.T) {
	space, err := features.Fit(nil, instructors(), testDim)
	require.NoError(t, err)

	_, err = features.NewVectorizer(space, mock.NewMockEmbedderWithDimension(testDim*2))
	assert.True(t, errors.Is(err, core.ErrConfiguration))

	emb := mock.NewMockEmbedderWithDimension(testDim)
	emb.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range out {
			out[i] = make([]float32, testDim/2)
		}
		return out, nil
	}
	v, err := features.NewVectorizer(space, emb)
	require.NoError(t, err)
	_, err = v.VectorizeProfile(context.Background(), learner())
	assert.True(t, errors.Is(err, core.ErrDimensionMismatch))
}

func TestSpace_RoundTrip(t *testing.T) {
	space, err := features.Fit([]core.Profile{learner()}, instructors(), testDim)
	require.NoError(t, err)

	data, err := space.MarshalBinary()
	require.NoError(t, err)
	decoded, err := features.UnmarshalSpace(data)
	require.NoError(t, err)

	assert.Equal(t, space.Version(), decoded.Version())
	assert.Equal(t, space.Dim(), decoded.Dim())

	emb := mock.NewMockEmbedderWithDimension(testDim)
	a, err := features.NewVectorizer(space, emb)
	require.NoError(t, err)
	b, err := features.NewVectorizer(decoded, emb)
	require.NoError(t, err)

	va, err := a.VectorizeProfile(context.Background(), learner())
	require.NoError(t, err)
	vb, err := b.VectorizeProfile(context.Background(), learner())
	require.NoError(t, err)
	assert.Equal(t, va, vb)
}

func TestSpace_VersionTracksFittedState(t *testing.T) {
	a, err := features.Fit(nil, instructors(), testDim)
	require.NoError(t, err)
	b, err := features.Fit(nil, instructors(), testDim)
	require.NoError(t, err)
	assert.Equal(t, a.Version(), b.Version())

	more := append(instructors(), core.Candidate{Name: "New", Instrument: "Drums", Source: core.SourceSynthetic})
	c, err := features.Fit(nil, more, testDim)
	require.NoError(t, err)
	assert.NotEqual(t, a.Version(), c.Version())

	d, err := features.Fit(nil, instructors(), testDim*2)
	require.NoError(t, err)
	assert.NotEqual(t, a.Version(), d.Version())
}

func TestUnmarshalSpace_Garbage(t *testing.T) {
	_, err := features.UnmarshalSpace([]byte{0x01})
	assert.True(t, errors.Is(err, core.ErrConfiguration))
}
