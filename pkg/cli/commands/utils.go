package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/carbonfit/cfit/pkg/cfit"
	"github.com/carbonfit/cfit/pkg/hub"
)

const precisionFlagUsage = `Precision to estimate for ("auto", "all", 32, 16, 8 or 4)`

var hintColor = color.New(color.Faint)

// requireExactArgs returns an error with usage guidance when the argument
// count is wrong.
func requireExactArgs(count int, command, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != count {
			return fmt.Errorf(
				"%q requires exactly %d argument(s): %s\nSee 'cfit %s --help' for more information",
				command, count, usage, command,
			)
		}
		return nil
	}
}

// newHubClient builds the hub client for CLI use, honoring the endpoint and
// token environment variables the hub itself defines.
func newHubClient() *hub.Client {
	var opts []hub.ClientOption
	if endpoint := os.Getenv("HF_ENDPOINT"); endpoint != "" {
		opts = append(opts, hub.WithEndpoint(endpoint))
	}
	if token := os.Getenv("HF_TOKEN"); token != "" {
		opts = append(opts, hub.WithToken(token))
	}
	return hub.NewClient(opts...)
}

func newEstimator() *cfit.Estimator {
	return cfit.New(cfit.WithHubClient(newHubClient()))
}

// handleLookupError appends a next-step hint for model ids the hub does not
// know about.
func handleLookupError(err error, modelID string) error {
	if errors.Is(err, hub.ErrModelNotFound) {
		hint := hintColor.Sprintf("Check that %q exists on the hub and that you have access to it", modelID)
		return fmt.Errorf("%w\n%s", err, hint)
	}
	return err
}
