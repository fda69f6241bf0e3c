package animation

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/dotplay-cli/dotplay/log"
	"github.com/dotplay-cli/dotplay/network"
	"github.com/dotplay-cli/dotplay/util"
	"github.com/sirupsen/logrus"
)

// Loader resolves source references: local paths through the virtual
// filesystem and http(s) URLs through the network client.
type Loader struct {
	Client *http.Client
	Cache  *Cache
}

// NewLoader returns a loader configured from the network.* and cache.* keys.
func NewLoader() *Loader {
	return &Loader{
		Client: network.FromConfig(),
		Cache:  DownloadCache(),
	}
}

// IsRemote reports whether src is an http(s) URL.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Load fetches and decodes src. YAML files are read as playlists.
func (l *Loader) Load(ctx context.Context, src string) (*Bundle, error) {
	if IsPlaylistFile(src) {
		return l.LoadPlaylist(ctx, src)
	}

	data, err := l.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	return Decode(src, data)
}

// Fetch returns the raw bytes of src.
func (l *Loader) Fetch(ctx context.Context, src string) ([]byte, error) {
	if !IsRemote(src) {
		data, err := filesystem.API().ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src, err)
		}
		return data, nil
	}

	if cached, ok := l.Cache.Get(src).Get(); ok {
		log.WithFields(logrus.Fields{"src": src}).Debug("animation: cache hit")
		return cached, nil
	}

	client := l.Client
	if client == nil {
		client = network.Client
	}
	data, err := network.Get(ctx, client, src)
	if err != nil {
		return nil, err
	}

	if err := l.Cache.Set(src, data); err != nil {
		log.WithFields(logrus.Fields{"src": src}).Warn("animation: cache write failed: ", err)
	}
	return data, nil
}

// Decode parses data fetched from name as an archive or a Lottie document.
func Decode(name string, data []byte) (*Bundle, error) {
	if IsArchive(data) {
		b, err := ReadArchive(data)
		if err != nil {
			return nil, err
		}
		return b, b.Validate()
	}

	if err := Validate(data); err != nil {
		return nil, err
	}

	return &Bundle{Animations: []Animation{{ID: idFor(name), Data: data}}}, nil
}

func idFor(name string) string {
	name = name[strings.LastIndex(name, "/")+1:]
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	if id := util.SanitizeFilename(util.FileStem(name)); id != "" {
		return id
	}
	return NewID()
}
