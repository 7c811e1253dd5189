package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound   = goerr.New("configuration file not found")
	ErrInvalidConfig    = goerr.New("invalid configuration")
	ErrDuplicateRating  = goerr.New("duplicate factor rating")
	ErrMissingRating    = goerr.New("factor rating is not defined")
	ErrInvalidRating    = goerr.New("factor rating must be between 1 and 5")
	ErrMissingLabel     = goerr.New("label is required")
	ErrInvalidColor     = goerr.New("invalid color format")
	ErrInvalidLogLevel  = goerr.New("invalid log level")
	ErrInvalidLogFormat = goerr.New("invalid log format")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	FactorKindKey = "factor_kind"
	RatingKey     = "rating"
	ColorKey      = "color"
)
