// Package hub looks up model metadata (weight file sizes, declared precision,
// parameter counts) from a Hugging Face style model hub.
package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/carbonfit/cfit/pkg/estimator"
	"github.com/carbonfit/cfit/pkg/logging"
)

const (
	// DefaultEndpoint is the public Hugging Face hub.
	DefaultEndpoint = "https://huggingface.co"
	// DefaultTimeout bounds a single metadata lookup end to end.
	DefaultTimeout = 30 * time.Second

	userAgent = "cfit"
)

// weightExtensions are the file extensions counted towards a model's total
// weight size. The tool trusts the sizes the hub reports for these files.
var weightExtensions = map[string]struct{}{
	".safetensors": {},
	".bin":         {},
	".gguf":        {},
	".h5":          {},
	".msgpack":     {},
	".ot":          {},
	".ckpt":        {},
	".onnx":        {},
	".mlmodel":     {},
}

// HTTPClient is the minimal HTTP surface the hub client needs. It exists so
// tests can substitute a deterministic implementation.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client retrieves model metadata from the hub. It holds no per-lookup state
// and is safe for concurrent use.
type Client struct {
	endpoint   string
	token      string
	timeout    time.Duration
	httpClient HTTPClient
	log        logging.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithEndpoint overrides the hub base URL.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithToken sets a bearer token sent with every hub request.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout overrides the per-lookup timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient substitutes the HTTP implementation used for hub requests.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger.
func WithLogger(log logging.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a hub metadata client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		timeout:  DefaultTimeout,
		log:      logging.NewLogger("hub"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	return c
}

// Fetch retrieves the metadata estimation needs for the given model id. It
// fails with ErrModelNotFound when the hub has no such repository and with
// ErrMetadataUnavailable when weight sizes or config cannot be retrieved.
func (c *Client) Fetch(ctx context.Context, modelID string) (*ModelMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.log.Debugf("fetching metadata for %s", modelID)
	info, err := c.repoInfo(ctx, modelID)
	if err != nil {
		return nil, err
	}

	meta := &ModelMetadata{ID: modelID}
	for _, file := range info.Siblings {
		if _, ok := weightExtensions[strings.ToLower(path.Ext(file.Rfilename))]; !ok {
			continue
		}
		if file.Size == nil {
			return nil, errors.Wrapf(ErrMetadataUnavailable, "no size reported for %s in %s", file.Rfilename, modelID)
		}
		meta.WeightFiles = append(meta.WeightFiles, WeightFile{Path: file.Rfilename, Size: *file.Size})
		meta.WeightBytes += *file.Size
	}
	if len(meta.WeightFiles) == 0 {
		return nil, errors.Wrapf(ErrMetadataUnavailable, "no weight files found in %s", modelID)
	}

	if info.Safetensors != nil {
		meta.ParamCount = info.Safetensors.Total
		meta.NativePrecision = precisionFromDtypeCounts(info.Safetensors.Parameters)
	}

	config, err := c.modelConfig(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if config != nil {
		if precision := precisionFromConfig(config); precision != 0 {
			meta.NativePrecision = precision
		}
	}

	c.log.Debugf("resolved %s: %d weight bytes, native precision %d", modelID, meta.WeightBytes, meta.NativePrecision)
	return meta, nil
}

// repoInfo queries the hub model API, including blob sizes.
func (c *Client) repoInfo(ctx context.Context, modelID string) (*repoInfo, error) {
	resp, err := c.doRequest(ctx, "/api/models/"+modelID+"?blobs=true")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnauthorized:
		return nil, errors.Wrapf(ErrModelNotFound, "%s", modelID)
	default:
		return nil, errors.Wrapf(ErrMetadataUnavailable, "hub returned status %d for %s", resp.StatusCode, modelID)
	}

	var info repoInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, errors.Wrapf(ErrMetadataUnavailable, "decoding model info for %s: %v", modelID, err)
	}
	return &info, nil
}

// modelConfig retrieves the repository's config.json. A repository without
// one is not an error; the returned config is nil.
func (c *Client) modelConfig(ctx context.Context, modelID string) (*modelConfig, error) {
	resp, err := c.doRequest(ctx, "/"+modelID+"/resolve/main/config.json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	default:
		return nil, errors.Wrapf(ErrMetadataUnavailable, "hub returned status %d for %s config", resp.StatusCode, modelID)
	}

	var config modelConfig
	if err := json.NewDecoder(resp.Body).Decode(&config); err != nil {
		return nil, errors.Wrapf(ErrMetadataUnavailable, "decoding config for %s: %v", modelID, err)
	}
	return &config, nil
}

func (c *Client) doRequest(ctx context.Context, requestPath string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+requestPath, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrMetadataUnavailable, "building request for %s: %v", requestPath, err)
	}
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.Wrapf(ErrMetadataUnavailable, "request to %s timed out", requestPath)
		}
		return nil, errors.Wrapf(ErrMetadataUnavailable, "request to %s failed: %v", requestPath, err)
	}
	return resp, nil
}

// torchDtypes maps config.json torch_dtype values to bit-widths.
var torchDtypes = map[string]estimator.Precision{
	"float32":  estimator.Bits32,
	"float16":  estimator.Bits16,
	"bfloat16": estimator.Bits16,
	"int8":     estimator.Bits8,
	"int4":     estimator.Bits4,
}

// safetensorsDtypes maps safetensors dtype keys to bit-widths.
var safetensorsDtypes = map[string]estimator.Precision{
	"F32":     estimator.Bits32,
	"FP32":    estimator.Bits32,
	"F16":     estimator.Bits16,
	"FP16":    estimator.Bits16,
	"BF16":    estimator.Bits16,
	"I8":      estimator.Bits8,
	"INT8":    estimator.Bits8,
	"F8_E4M3": estimator.Bits8,
	"F8_E5M2": estimator.Bits8,
	"I4":      estimator.Bits4,
	"INT4":    estimator.Bits4,
	"U4":      estimator.Bits4,
}

// precisionFromConfig derives the declared precision from config.json.
// Quantization settings win over the storage dtype.
func precisionFromConfig(config *modelConfig) estimator.Precision {
	if config.Quantization != nil {
		if precision, err := estimator.ParsePrecision(config.Quantization.Bits); err == nil {
			return precision
		}
	}
	if config.QuantizationConfig != nil {
		if config.QuantizationConfig.LoadIn4bit {
			return estimator.Bits4
		}
		if config.QuantizationConfig.LoadIn8bit {
			return estimator.Bits8
		}
	}
	return torchDtypes[strings.ToLower(config.TorchDtype)]
}

// precisionFromDtypeCounts picks the precision of the dtype holding the most
// parameters, for repositories that declare per-dtype safetensors totals.
func precisionFromDtypeCounts(counts map[string]float64) estimator.Precision {
	var best estimator.Precision
	var bestCount float64
	for dtype, count := range counts {
		precision, ok := safetensorsDtypes[strings.ToUpper(dtype)]
		if !ok {
			continue
		}
		if count > bestCount {
			best, bestCount = precision, count
		}
	}
	return best
}
