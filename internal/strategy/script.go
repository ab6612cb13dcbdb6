package strategy

import (
	"github.com/calcver/calcver/internal/config"
	"github.com/calcver/calcver/internal/metadata"
	"github.com/calcver/calcver/internal/script"
)

// ScriptStrategy delegates version construction to a user-supplied script
// and parses its semicolon-delimited output.
type ScriptStrategy struct{}

func (s *ScriptStrategy) Name() string { return config.StrategyScript }

func (s *ScriptStrategy) Compute(md *metadata.Provider, cfg *config.Configuration) (string, error) {
	engine, err := script.NewEngine(script.Kind(cfg.ScriptKind), cfg.Script)
	if err != nil {
		return "", err
	}

	out, err := engine.Run(md.Snapshot())
	if err != nil {
		return "", err
	}

	version, err := script.ParseOutput(out)
	if err != nil {
		return "", err
	}

	return version.String(), nil
}
