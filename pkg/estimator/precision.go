package estimator

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Precision is the number of bits used to store each model parameter.
type Precision int

const (
	Bits32 Precision = 32
	Bits16 Precision = 16
	Bits8  Precision = 8
	Bits4  Precision = 4
)

// AllPrecisions lists the supported precisions in descending bit-width order.
// This is also the order multi-precision results are reported in.
var AllPrecisions = []Precision{Bits32, Bits16, Bits8, Bits4}

// ErrInvalidPrecision indicates a requested bit-width outside the supported set.
var ErrInvalidPrecision = errors.New("invalid precision")

// Request modes resolved before computation.
const (
	ModeAuto = "auto"
	ModeAll  = "all"
)

// ParsePrecision validates a bit-width against the supported set.
func ParsePrecision(bits int) (Precision, error) {
	switch p := Precision(bits); p {
	case Bits32, Bits16, Bits8, Bits4:
		return p, nil
	}
	return 0, errors.Wrapf(ErrInvalidPrecision, "%d bits", bits)
}

// Resolve maps a requested precision ("auto", "all", or an explicit bit-width)
// to the ordered sequence of precisions to compute. native is the model's
// declared precision, or 0 when undeclared. haveMetadata reports whether model
// metadata is available at all; without it "auto" cannot collapse to a single
// value and is treated as "all".
func Resolve(requested string, native Precision, haveMetadata bool) ([]Precision, error) {
	switch strings.ToLower(strings.TrimSpace(requested)) {
	case ModeAll:
		return AllPrecisions, nil
	case ModeAuto:
		if !haveMetadata {
			return AllPrecisions, nil
		}
		if native != 0 {
			return []Precision{native}, nil
		}
		return []Precision{Bits16}, nil
	}
	bits, err := strconv.Atoi(strings.TrimSpace(requested))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPrecision, "%q", requested)
	}
	precision, err := ParsePrecision(bits)
	if err != nil {
		return nil, err
	}
	return []Precision{precision}, nil
}
