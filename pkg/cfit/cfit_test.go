package cfit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonfit/cfit/pkg/estimator"
	"github.com/carbonfit/cfit/pkg/hub"
	"github.com/carbonfit/cfit/pkg/params"
)

// fakeHub returns fixed metadata or a fixed error.
type fakeHub struct {
	meta *hub.ModelMetadata
	err  error
}

func (f *fakeHub) Fetch(ctx context.Context, modelID string) (*hub.ModelMetadata, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.meta, nil
}

// llamaMetadata is a repository whose 29 GB of 16-bit weights imply 14.5B
// parameters.
func llamaMetadata() *hub.ModelMetadata {
	return &hub.ModelMetadata{
		ID:              "acme/llama-14b",
		WeightBytes:     29000000000,
		NativePrecision: estimator.Bits16,
	}
}

func TestFromHFAuto(t *testing.T) {
	e := New(WithHubClient(&fakeHub{meta: llamaMetadata()}))

	result, err := e.FromHF(context.Background(), "acme/llama-14b", "auto")
	require.NoError(t, err)
	assert.Equal(t, "Required GPU Memory[acme/llama-14b, precision: 16]: 32.41 GB", result)
}

func TestFromHFAll(t *testing.T) {
	e := New(WithHubClient(&fakeHub{meta: llamaMetadata()}))

	result, err := e.FromHF(context.Background(), "acme/llama-14b", "all")
	require.NoError(t, err)
	expected := "Required GPU Memory[acme/llama-14b, parameters: 14.5B]\n" +
		"  - 32bit: 64.82 GB\n" +
		"  - 16bit: 32.41 GB\n" +
		"  - 8bit: 16.21 GB\n" +
		"  - 4bit: 8.10 GB"
	assert.Equal(t, expected, result)
}

func TestFromHFExplicitPrecision(t *testing.T) {
	e := New(WithHubClient(&fakeHub{meta: llamaMetadata()}))

	result, err := e.FromHF(context.Background(), "acme/llama-14b", "8")
	require.NoError(t, err)
	assert.Equal(t, "Required GPU Memory[acme/llama-14b, precision: 8]: 16.21 GB", result)
}

func TestFromHFDefaultsToAuto(t *testing.T) {
	e := New(WithHubClient(&fakeHub{meta: llamaMetadata()}))

	withEmpty, err := e.FromHF(context.Background(), "acme/llama-14b", "")
	require.NoError(t, err)
	withAuto, err := e.FromHF(context.Background(), "acme/llama-14b", "auto")
	require.NoError(t, err)
	assert.Equal(t, withAuto, withEmpty)
}

func TestFromHFAutoWithoutDeclaredPrecision(t *testing.T) {
	// No declared precision: auto falls back to 16-bit, which is also the
	// assumed width when deriving the parameter count from weight size.
	meta := llamaMetadata()
	meta.NativePrecision = 0
	e := New(WithHubClient(&fakeHub{meta: meta}))

	result, err := e.FromHF(context.Background(), "acme/llama-14b", "auto")
	require.NoError(t, err)
	assert.Equal(t, "Required GPU Memory[acme/llama-14b, precision: 16]: 32.41 GB", result)
}

func TestFromHFDeclaredParamCountWins(t *testing.T) {
	meta := llamaMetadata()
	meta.ParamCount = 175e9
	e := New(WithHubClient(&fakeHub{meta: meta}))

	result, err := e.FromHF(context.Background(), "acme/llama-14b", "32")
	require.NoError(t, err)
	assert.Equal(t, "Required GPU Memory[acme/llama-14b, precision: 32]: 782.31 GB", result)
}

func TestFromHFLookupErrorsPropagate(t *testing.T) {
	e := New(WithHubClient(&fakeHub{err: hub.ErrModelNotFound}))
	_, err := e.FromHF(context.Background(), "nobody/no-such-model", "auto")
	require.ErrorIs(t, err, hub.ErrModelNotFound)
	assert.NotErrorIs(t, err, hub.ErrMetadataUnavailable)

	e = New(WithHubClient(&fakeHub{err: hub.ErrMetadataUnavailable}))
	_, err = e.FromHF(context.Background(), "acme/llama-14b", "auto")
	require.ErrorIs(t, err, hub.ErrMetadataUnavailable)
}

func TestFromHFInvalidPrecision(t *testing.T) {
	e := New(WithHubClient(&fakeHub{meta: llamaMetadata()}))
	_, err := e.FromHF(context.Background(), "acme/llama-14b", "99")
	require.ErrorIs(t, err, estimator.ErrInvalidPrecision)
}

func TestFromParamsAllPrecisions(t *testing.T) {
	result, err := New().FromParams("175B", "all")
	require.NoError(t, err)
	expected := "Required GPU Memory[parameters: 175.0B]\n" +
		"  - 32bit: 782.31 GB\n" +
		"  - 16bit: 391.16 GB\n" +
		"  - 8bit: 195.58 GB\n" +
		"  - 4bit: 97.79 GB"
	assert.Equal(t, expected, result)
}

func TestFromParamsAutoBehavesLikeAll(t *testing.T) {
	// Without hub metadata there is no declared precision to collapse to.
	auto, err := New().FromParams("175B", "auto")
	require.NoError(t, err)
	all, err := New().FromParams("175B", "all")
	require.NoError(t, err)
	assert.Equal(t, all, auto)
}

func TestFromParamsStringAndNumericEquivalence(t *testing.T) {
	fromString, err := New().FromParams("175B", "auto")
	require.NoError(t, err)
	fromCount, err := New().FromParamCount(175000000000, "auto")
	require.NoError(t, err)
	assert.Equal(t, fromString, fromCount)
}

func TestFromParamsSinglePrecision(t *testing.T) {
	result, err := New().FromParams("175B", "32")
	require.NoError(t, err)
	assert.Equal(t, "Required GPU Memory[parameters: 175.0B, precision: 32]: 782.31 GB", result)
}

func TestFromParamsInvalidInput(t *testing.T) {
	_, err := New().FromParams("lots", "all")
	require.ErrorIs(t, err, params.ErrInvalidFormat)

	_, err = New().FromParams("175B", "24")
	require.ErrorIs(t, err, estimator.ErrInvalidPrecision)
}

func TestWithOverheadFactor(t *testing.T) {
	e := New(WithOverheadFactor(1.0))
	result, err := e.FromParams("1B", "8")
	require.NoError(t, err)
	// 1e9 parameters at one byte each, no overhead.
	assert.Equal(t, "Required GPU Memory[parameters: 1.0B, precision: 8]: 953.67 MB", result)
}
