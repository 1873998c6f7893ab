// Package cfit estimates the GPU memory required to load a model, from either
// a hub model identifier or a raw parameter count.
package cfit

import (
	"context"
	"math"

	"github.com/carbonfit/cfit/pkg/estimator"
	"github.com/carbonfit/cfit/pkg/hub"
	"github.com/carbonfit/cfit/pkg/logging"
	"github.com/carbonfit/cfit/pkg/params"
)

// HubClient is the metadata lookup capability an Estimator depends on.
type HubClient interface {
	Fetch(ctx context.Context, modelID string) (*hub.ModelMetadata, error)
}

// Estimator is the entry point for memory estimation. It holds no per-call
// state and is safe for concurrent use.
type Estimator struct {
	hub     HubClient
	formula estimator.Formula
	log     logging.Logger
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithHubClient substitutes the hub metadata client.
func WithHubClient(client HubClient) Option {
	return func(e *Estimator) {
		e.hub = client
	}
}

// WithOverheadFactor overrides the runtime overhead multiplier.
func WithOverheadFactor(factor float64) Option {
	return func(e *Estimator) {
		e.formula.Overhead = factor
	}
}

// WithLogger sets the logger.
func WithLogger(log logging.Logger) Option {
	return func(e *Estimator) {
		e.log = log
	}
}

// New creates an Estimator. Without options it talks to the public hub with
// the default formula constants.
func New(opts ...Option) *Estimator {
	e := &Estimator{
		formula: estimator.NewFormula(),
		log:     logging.NewLogger("cfit"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.hub == nil {
		e.hub = hub.NewClient(hub.WithLogger(e.log))
	}
	return e
}

// FromHF estimates the memory required for a hub model. precision is "auto",
// "all", or an explicit bit-width; empty defaults to "auto".
func (e *Estimator) FromHF(ctx context.Context, modelID, precision string) (string, error) {
	if precision == "" {
		precision = estimator.ModeAuto
	}
	meta, err := e.hub.Fetch(ctx, modelID)
	if err != nil {
		return "", err
	}
	count := parameterCount(meta)
	precisions, err := estimator.Resolve(precision, meta.NativePrecision, true)
	if err != nil {
		return "", err
	}
	estimates, err := e.estimates(count, precisions)
	if err != nil {
		return "", err
	}
	return formatResult(modelID, count, estimates), nil
}

// FromParams estimates the memory required for a raw parameter count given as
// a string ("175B", "405000000000"). precision is "auto", "all", or an
// explicit bit-width; empty defaults to "all".
func (e *Estimator) FromParams(numParams, precision string) (string, error) {
	count, err := params.Parse(numParams)
	if err != nil {
		return "", err
	}
	return e.FromParamCount(count, precision)
}

// FromParamCount is FromParams for callers that already hold a numeric count.
func (e *Estimator) FromParamCount(count float64, precision string) (string, error) {
	if precision == "" {
		precision = estimator.ModeAll
	}
	precisions, err := estimator.Resolve(precision, 0, false)
	if err != nil {
		return "", err
	}
	estimates, err := e.estimates(count, precisions)
	if err != nil {
		return "", err
	}
	return formatResult("", count, estimates), nil
}

func (e *Estimator) estimates(count float64, precisions []estimator.Precision) ([]estimator.Estimate, error) {
	estimates := make([]estimator.Estimate, 0, len(precisions))
	for _, precision := range precisions {
		bytes, err := e.formula.BytesRequired(count, precision)
		if err != nil {
			return nil, err
		}
		estimates = append(estimates, estimator.Estimate{Bits: precision, Bytes: bytes})
	}
	return estimates, nil
}

// parameterCount derives the model's parameter count: the hub-declared total
// when present, otherwise the weight size divided by the native parameter
// width (16-bit assumed when undeclared).
func parameterCount(meta *hub.ModelMetadata) float64 {
	if meta.ParamCount > 0 {
		return meta.ParamCount
	}
	bits := meta.NativePrecision
	if bits == 0 {
		bits = estimator.Bits16
	}
	return math.Ceil(float64(meta.WeightBytes) * 8 / float64(bits))
}

// FromHF estimates with a default Estimator. See Estimator.FromHF.
func FromHF(ctx context.Context, modelID, precision string) (string, error) {
	return New().FromHF(ctx, modelID, precision)
}

// FromParams estimates with a default Estimator. See Estimator.FromParams.
func FromParams(numParams, precision string) (string, error) {
	return New().FromParams(numParams, precision)
}
