package openai

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func l2(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func TestNormalize_UnitNorm(t *testing.T) {
	cases := []struct {
		name string
		in   []float32
	}{
		{"positive components", []float32{3, 4}},
		{"mixed signs", []float32{-1, 2, -3, 4}},
		{"already unit", []float32{0, 1}},
		{"large magnitudes", []float32{1000, 2000, 3000}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			normalize(tc.in)
			assert.InDelta(t, 1.0, l2(tc.in), 1e-6)
		})
	}
}

func TestNormalize_ZeroVectorUntouched(t *testing.T) {
	v := []float32{0, 0, 0, 0}

	normalize(v)

	assert.Equal(t, []float32{0, 0, 0, 0}, v)
}

func TestNewEmbeddingService_RequiresAPIKey(t *testing.T) {
	_, err := NewEmbeddingService(Config{})

	assert.Error(t, err)
}

func TestEmbedBatch_EmptyInputSkipsAPI(t *testing.T) {
	svc, err := NewEmbeddingService(Config{
		APIKey:  "test-key",
		BaseURL: "http://127.0.0.1:0",
	})
	require.NoError(t, err)

	for _, texts := range [][]string{nil, {}} {
		out, err := svc.EmbedBatch(context.Background(), texts)

		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Len(t, out, 0)
	}
}
