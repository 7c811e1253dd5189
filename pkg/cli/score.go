package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/isorisk/pkg/cli/config"
	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
	"github.com/secmon-lab/isorisk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

var levelColors = map[types.RiskLevel]*color.Color{
	types.RiskLevelLow:      color.New(color.FgGreen, color.Bold),
	types.RiskLevelMedium:   color.New(color.FgYellow, color.Bold),
	types.RiskLevelHigh:     color.New(color.FgHiRed, color.Bold),
	types.RiskLevelCritical: color.New(color.FgWhite, color.BgRed, color.Bold),
}

type factorResult struct {
	Rating types.Rating `json:"rating"`
	Label  string       `json:"label"`
}

type scoreResult struct {
	Severity      factorResult    `json:"severity"`
	Likelihood    factorResult    `json:"likelihood"`
	Detectability factorResult    `json:"detectability"`
	Score         int             `json:"score"`
	Level         types.RiskLevel `json:"level"`
	Clamped       bool            `json:"clamped"`
}

func cmdScore() *cli.Command {
	var catalogCfg config.Catalog
	var format string

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:    "severity",
			Aliases: []string{"s"},
			Usage:   "Severity rating (1-5)",
			Value:   1,
		},
		&cli.IntFlag{
			Name:    "likelihood",
			Aliases: []string{"l"},
			Usage:   "Likelihood rating (1-5)",
			Value:   1,
		},
		&cli.IntFlag{
			Name:    "detectability",
			Aliases: []string{"d"},
			Usage:   "Detectability rating (1-5, higher is harder to detect)",
			Value:   1,
		},
		&cli.StringFlag{
			Name:  "legacy-severity",
			Usage: "Severity as a legacy label (overrides --severity)",
		},
		&cli.StringFlag{
			Name:  "legacy-likelihood",
			Usage: "Likelihood as a legacy label (overrides --likelihood)",
		},
		&cli.StringFlag{
			Name:  "legacy-detectability",
			Usage: "Detectability as a legacy label (overrides --detectability)",
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Output format (text, json)",
			Value:       "text",
			Destination: &format,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:  "score",
		Usage: "Compute the risk score and level of a factor triple",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load factor catalog")
			}

			rating := func(kind types.FactorKind) types.Rating {
				if label := c.String("legacy-" + kind.String()); label != "" {
					if !model.IsKnownLegacyLabel(kind, label) {
						logging.Default().Warn("unknown legacy label, using rating 1",
							"kind", kind, "label", label)
					}
					return model.MapLegacyLabel(kind, label)
				}
				return types.Rating(c.Int(kind.String()))
			}

			s := rating(types.FactorSeverity)
			l := rating(types.FactorLikelihood)
			d := rating(types.FactorDetectability)
			score := model.ComputeScore(s, l, d)

			label := func(kind types.FactorKind, r types.Rating) factorResult {
				lv, _ := catalog.Level(kind, r)
				return factorResult{Rating: r.Clamp(), Label: lv.Label}
			}

			result := &scoreResult{
				Severity:      label(types.FactorSeverity, s),
				Likelihood:    label(types.FactorLikelihood, l),
				Detectability: label(types.FactorDetectability, d),
				Score:         score,
				Level:         model.Classify(score),
				Clamped:       model.IsClamped(s, l, d),
			}

			return writeScore(c.Root().Writer, format, result)
		},
	}
}

func writeScore(w io.Writer, format string, result *scoreResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return goerr.Wrap(err, "failed to encode score")
		}
		return nil

	case "text", "":
		lines := []struct {
			name   string
			factor factorResult
		}{
			{"Severity", result.Severity},
			{"Likelihood", result.Likelihood},
			{"Detectability", result.Detectability},
		}
		for _, ln := range lines {
			if _, err := fmt.Fprintf(w, "%-14s %d (%s)\n", ln.name+":", ln.factor.Rating, ln.factor.Label); err != nil {
				return goerr.Wrap(err, "failed to write score")
			}
		}

		level := result.Level.String()
		if c, ok := levelColors[result.Level]; ok {
			level = c.Sprint(level)
		}
		if _, err := fmt.Fprintf(w, "%-14s %d\n%-14s %s\n", "Score:", result.Score, "Level:", level); err != nil {
			return goerr.Wrap(err, "failed to write score")
		}
		if result.Clamped {
			if _, err := fmt.Fprintln(w, color.YellowString("note: ratings outside 1-5 were clamped")); err != nil {
				return goerr.Wrap(err, "failed to write score")
			}
		}
		return nil

	default:
		return goerr.New("unsupported output format", goerr.V("format", format))
	}
}
