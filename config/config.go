// Package config registers every setting dotplay understands and loads them through viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dotplay-cli/dotplay/constant"
	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/dotplay-cli/dotplay/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to the suffix of their environment variable.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup binds defaults and environment variables, then reads the config file if there is one.
// Values that fail validation are reported and replaced by their defaults.
func Setup() error {
	viper.SetConfigName(constant.Dotplay)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Dotplay)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.SetTypeByDefaultValue(true)

	for name, field := range Default {
		viper.MustBindEnv(name)
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read %s: %w", Path(), err)
		}
	}

	return Validate()
}

// Validate checks the effective value of every scalar field.
// Invalid values are overridden with the default and returned as a joined error.
func Validate() error {
	var errs []error

	for _, name := range lo.Keys(Default) {
		field := Default[name]
		if _, isSlice := field.Value.([]string); isSlice {
			continue
		}

		if _, err := Parse(name, []string{viper.GetString(name)}); err != nil {
			viper.Set(name, field.Value)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
