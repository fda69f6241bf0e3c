package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dotplay-cli/dotplay/constant"
	"github.com/dotplay-cli/dotplay/key"
	"github.com/dotplay-cli/dotplay/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// ErrUnknownKey is returned for keys that were never registered.
var ErrUnknownKey = errors.New("unknown key")

// Path returns the location of the config file, whether or not it exists.
func Path() string {
	return filepath.Join(where.Config(), constant.Dotplay+".toml")
}

// Parse converts raw command line values into the type of the field's default
// and rejects values outside of the field's options or range.
func Parse(k string, raw []string) (any, error) {
	field, ok := Default[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: value is required", k)
	}

	if _, isSlice := field.Value.([]string); !isSlice && len(field.Options) > 0 && !lo.Contains(field.Options, raw[0]) {
		return nil, fmt.Errorf("%s: %q is not one of %s", k, raw[0], strings.Join(field.Options, ", "))
	}

	var (
		v   any
		err error
	)

	switch field.Value.(type) {
	case string:
		v = raw[0]
	case int:
		v, err = strconv.Atoi(raw[0])
	case float64:
		v, err = strconv.ParseFloat(raw[0], 64)
	case bool:
		v, err = strconv.ParseBool(raw[0])
	case []string:
		v = raw
	default:
		return nil, fmt.Errorf("%s: unsupported type %T", k, field.Value)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: invalid %s value %q", k, field.typeName(), raw[0])
	}

	if err := checkRange(k, v); err != nil {
		return nil, err
	}

	return v, nil
}

func checkRange(k string, v any) error {
	switch k {
	case key.PlayerSpeed:
		if v.(float64) <= 0 {
			return fmt.Errorf("%s: must be greater than 0", k)
		}
	case key.PlayerCount, key.PlayerIntermission, key.NetworkTimeout, key.CacheLifetimeHours, key.TUIProgressWidth:
		if v.(int) < 0 {
			return fmt.Errorf("%s: must not be negative", k)
		}
	case key.RemoteRateLimit:
		if v.(int) < 1 {
			return fmt.Errorf("%s: must be at least 1", k)
		}
	}

	return nil
}

// Save writes the current settings to Path, creating the file when missing.
func Save() error {
	err := viper.WriteConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.WriteConfigAs(Path())
	}

	return err
}

// Reset restores the given keys to their defaults, or every key when none is given.
func Reset(keys ...string) error {
	if len(keys) == 0 {
		keys = lo.Keys(Default)
	}

	for _, k := range keys {
		field, ok := Default[k]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownKey, k)
		}
		viper.Set(k, field.Value)
	}

	return Save()
}
