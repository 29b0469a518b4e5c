package cli

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"cryptodash/internal/config"
)

// Completion describes the command line for shell completion. Running the
// binary with COMP_LINE set prints completions; COMP_INSTALL=1 installs them.
func Completion() *complete.Command {
	global := map[string]complete.Predictor{
		"config": predict.Files("*.hcl"),
	}
	return &complete.Command{
		Flags: global,
		Sub: map[string]*complete.Command{
			"run": {
				Flags: map[string]complete.Predictor{"mouse": predict.Nothing},
			},
			"layout": {
				Flags: map[string]complete.Predictor{
					"width":  predict.Something,
					"pixels": predict.Nothing,
				},
			},
			"prices": {
				Flags: map[string]complete.Predictor{
					"top":       predict.Something,
					"portfolio": predict.Nothing,
				},
				Args: predict.Set(config.Default().Market.Assets),
			},
			"reset":    {},
			"help":     {Args: predict.Set{"run", "layout", "prices", "reset"}},
			"flags":    {},
			"commands": {},
		},
	}
}
