package cfit

import (
	"fmt"
	"strings"

	"github.com/carbonfit/cfit/pkg/estimator"
	"github.com/carbonfit/cfit/pkg/params"
)

// formatResult renders estimates into the documented textual shapes: a single
// line when exactly one precision was resolved, otherwise a header followed by
// one indented line per precision in resolver order. modelID is empty on the
// raw parameter-count path.
func formatResult(modelID string, count float64, estimates []estimator.Estimate) string {
	if len(estimates) == 1 {
		est := estimates[0]
		if modelID != "" {
			return fmt.Sprintf("Required GPU Memory[%s, precision: %d]: %s",
				modelID, est.Bits, estimator.Humanize(est.Bytes))
		}
		return fmt.Sprintf("Required GPU Memory[parameters: %s, precision: %d]: %s",
			params.Format(count), est.Bits, estimator.Humanize(est.Bytes))
	}

	var b strings.Builder
	if modelID != "" {
		fmt.Fprintf(&b, "Required GPU Memory[%s, parameters: %s]", modelID, params.Format(count))
	} else {
		fmt.Fprintf(&b, "Required GPU Memory[parameters: %s]", params.Format(count))
	}
	for _, est := range estimates {
		fmt.Fprintf(&b, "\n  - %dbit: %s", est.Bits, estimator.Humanize(est.Bytes))
	}
	return b.String()
}
