package config

import (
	"errors"
	"io/fs"
	"os"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
	"github.com/secmon-lab/isorisk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// FactorLevel is one rating entry of the factor catalog file
type FactorLevel struct {
	Rating      int    `toml:"rating"`
	Label       string `toml:"label"`
	Description string `toml:"description"`
	Color       string `toml:"color"`
}

// FactorCatalogFile is the TOML representation of the factor catalog. A kind left out keeps
// the built-in levels.
type FactorCatalogFile struct {
	Severity      []FactorLevel `toml:"severity"`
	Likelihood    []FactorLevel `toml:"likelihood"`
	Detectability []FactorLevel `toml:"detectability"`
}

func (f *FactorCatalogFile) kinds() map[types.FactorKind][]FactorLevel {
	return map[types.FactorKind][]FactorLevel{
		types.FactorSeverity:      f.Severity,
		types.FactorLikelihood:    f.Likelihood,
		types.FactorDetectability: f.Detectability,
	}
}

// Validate checks ratings, labels and colors of every declared kind
func (f *FactorCatalogFile) Validate() error {
	for _, kind := range types.AllFactorKinds() {
		levels := f.kinds()[kind]
		if len(levels) == 0 {
			continue
		}

		seen := make(map[int]bool)
		for _, lv := range levels {
			if !types.Rating(lv.Rating).IsValid() {
				return goerr.Wrap(ErrInvalidRating, "invalid factor level",
					goerr.V(FactorKindKey, kind), goerr.V(RatingKey, lv.Rating))
			}
			if seen[lv.Rating] {
				return goerr.Wrap(ErrDuplicateRating, "invalid factor level",
					goerr.V(FactorKindKey, kind), goerr.V(RatingKey, lv.Rating))
			}
			seen[lv.Rating] = true

			if lv.Label == "" {
				return goerr.Wrap(ErrMissingLabel, "invalid factor level",
					goerr.V(FactorKindKey, kind), goerr.V(RatingKey, lv.Rating))
			}
			if lv.Color != "" && !colorPattern.MatchString(lv.Color) {
				return goerr.Wrap(ErrInvalidColor, "invalid factor level",
					goerr.V(FactorKindKey, kind), goerr.V(RatingKey, lv.Rating), goerr.V(ColorKey, lv.Color))
			}
		}

		for _, r := range types.AllRatings() {
			if !seen[r.Int()] {
				return goerr.Wrap(ErrMissingRating, "incomplete factor levels",
					goerr.V(FactorKindKey, kind), goerr.V(RatingKey, r.Int()))
			}
		}
	}
	return nil
}

// ToDomain builds the domain catalog
func (f *FactorCatalogFile) ToDomain() (*model.FactorCatalog, error) {
	levels := make(map[types.FactorKind][]model.FactorLevel)
	for kind, list := range f.kinds() {
		if len(list) == 0 {
			continue
		}
		converted := make([]model.FactorLevel, len(list))
		for i, lv := range list {
			converted[i] = model.FactorLevel{
				Rating:      types.Rating(lv.Rating),
				Label:       lv.Label,
				Description: lv.Description,
				Color:       lv.Color,
			}
		}
		levels[kind] = converted
	}

	catalog, err := model.NewFactorCatalog(levels)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build factor catalog")
	}
	return catalog, nil
}

// LoadFactorCatalog loads and validates a factor catalog from a TOML file
func LoadFactorCatalog(path string) (*model.FactorCatalog, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "factor catalog not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read factor catalog", goerr.V(ConfigPathKey, path))
	}

	var file FactorCatalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse factor catalog",
			goerr.V(ConfigPathKey, path), goerr.V("error", err.Error()))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "factor catalog validation failed", goerr.V(ConfigPathKey, path))
	}

	return file.ToDomain()
}

// Catalog holds CLI flags for the factor catalog
type Catalog struct {
	path string
}

func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "factor-catalog",
			Usage:       "Path to a TOML file overriding factor labels, descriptions and colors",
			Category:    "Assessment",
			Sources:     cli.EnvVars("ISORISK_FACTOR_CATALOG"),
			Destination: &x.path,
		},
	}
}

// Configure returns the catalog from the configured file, or the built-in one
func (x *Catalog) Configure() (*model.FactorCatalog, error) {
	if x.path == "" {
		return model.DefaultFactorCatalog(), nil
	}

	catalog, err := LoadFactorCatalog(x.path)
	if err != nil {
		return nil, err
	}
	logging.Default().Info("Factor catalog loaded", "path", x.path)
	return catalog, nil
}
