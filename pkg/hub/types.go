package hub

import "github.com/carbonfit/cfit/pkg/estimator"

// WeightFile is a single weight file in a model repository.
type WeightFile struct {
	Path string
	Size int64
}

// ModelMetadata is everything the hub reports about a model that estimation
// needs. Constructed per lookup, never mutated afterwards.
type ModelMetadata struct {
	// ID is the model identifier as requested.
	ID string
	// WeightFiles lists the recognized weight files and their sizes.
	WeightFiles []WeightFile
	// WeightBytes is the total on-disk size of all weight files.
	WeightBytes int64
	// NativePrecision is the declared bit-width the model was released in,
	// or 0 when the repository declares none.
	NativePrecision estimator.Precision
	// ParamCount is the parameter total declared by the repository, or 0
	// when undeclared.
	ParamCount float64
}

// repoInfo is the subset of the hub model API payload we consume.
type repoInfo struct {
	ID          string             `json:"id"`
	Siblings    []repoFile         `json:"siblings"`
	Safetensors *safetensorsTotals `json:"safetensors,omitempty"`
}

type repoFile struct {
	Rfilename string `json:"rfilename"`
	Size      *int64 `json:"size,omitempty"`
}

// safetensorsTotals carries declared parameter counts keyed by dtype.
type safetensorsTotals struct {
	Total      float64            `json:"total"`
	Parameters map[string]float64 `json:"parameters,omitempty"`
}

// modelConfig is the subset of config.json we consume.
type modelConfig struct {
	TorchDtype         string              `json:"torch_dtype,omitempty"`
	Quantization       *quantizationBlock  `json:"quantization,omitempty"`
	QuantizationConfig *quantizationConfig `json:"quantization_config,omitempty"`
}

type quantizationBlock struct {
	Bits int `json:"bits,omitempty"`
}

type quantizationConfig struct {
	LoadIn4bit bool `json:"load_in_4bit,omitempty"`
	LoadIn8bit bool `json:"load_in_8bit,omitempty"`
}
