// Package version checks whether a newer release of dotplay has been published.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/dotplay-cli/dotplay/network"
	"github.com/dotplay-cli/dotplay/where"
	"github.com/metafates/gache"
)

// ReleasesURL points at the latest published release.
var ReleasesURL = "https://api.github.com/repos/dotplay-cli/dotplay/releases/latest"

var (
	cacherOnce sync.Once
	cacher     *gache.Cache[string]
)

func versionCacher() *gache.Cache[string] {
	cacherOnce.Do(func() {
		cacher = gache.New[string](&gache.Options{
			Path:       filepath.Join(where.Cache(), "version.json"),
			Lifetime:   time.Hour * 24 * 2,
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return cacher
}

// Latest returns the newest released version, without the "v" prefix.
// The answer is cached for two days.
func Latest(ctx context.Context) (string, error) {
	ver, expired, err := versionCacher().Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	body, err := network.Get(ctx, network.FromConfig(), ReleasesURL)
	if err != nil {
		return "", err
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal(body, &release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	ver = strings.TrimPrefix(release.TagName, "v")
	_ = versionCacher().Set(ver)
	return ver, nil
}
