package config_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/isorisk/pkg/cli/config"
)

func TestConfigErrors_SentinelIdentification(t *testing.T) {
	sentinels := []error{
		config.ErrConfigNotFound,
		config.ErrInvalidConfig,
		config.ErrDuplicateRating,
		config.ErrMissingRating,
		config.ErrInvalidRating,
		config.ErrMissingLabel,
		config.ErrInvalidColor,
		config.ErrInvalidLogLevel,
		config.ErrInvalidLogFormat,
	}

	for _, sentinel := range sentinels {
		t.Run(sentinel.Error(), func(t *testing.T) {
			err := goerr.Wrap(sentinel, "wrapped", goerr.V(config.ConfigPathKey, "/tmp/x.toml"))
			gt.Bool(t, errors.Is(err, sentinel)).True()

			for _, other := range sentinels {
				if other == sentinel {
					continue
				}
				gt.Bool(t, errors.Is(err, other)).False()
			}
		})
	}
}
