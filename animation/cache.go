package animation

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/dotplay-cli/dotplay/key"
	"github.com/dotplay-cli/dotplay/where"
	"github.com/google/uuid"
	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Cache keeps downloaded sources on disk, one file per URL.
type Cache struct {
	dir      string
	lifetime time.Duration
}

// NewCache stores entries under dir for lifetime.
func NewCache(dir string, lifetime time.Duration) *Cache {
	return &Cache{dir: dir, lifetime: lifetime}
}

// DownloadCache is the cache configured by cache.lifetime_hours.
func DownloadCache() *Cache {
	hours := viper.GetInt(key.CacheLifetimeHours)
	return NewCache(where.Downloads(), time.Duration(hours)*time.Hour)
}

func (c *Cache) entry(src string) *gache.Cache[[]byte] {
	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte(src)).String() + ".json"
	return gache.New[[]byte](&gache.Options{
		Path:       filepath.Join(c.dir, name),
		Lifetime:   c.lifetime,
		FileSystem: &filesystem.GacheFs{},
	})
}

// Get returns the cached body of src unless it is missing or expired.
func (c *Cache) Get(src string) mo.Option[[]byte] {
	if c == nil || c.lifetime <= 0 {
		return mo.None[[]byte]()
	}

	data, expired, err := c.entry(src).Get()
	if err != nil || expired || len(data) == 0 {
		return mo.None[[]byte]()
	}
	return mo.Some(data)
}

// Set stores the body of src.
func (c *Cache) Set(src string, data []byte) error {
	if c == nil || c.lifetime <= 0 {
		return nil
	}
	return c.entry(src).Set(data)
}

// CollectGarbage removes entries older than the cache lifetime.
func (c *Cache) CollectGarbage() {
	if c == nil || c.lifetime <= 0 {
		return
	}

	fs := filesystem.API()
	_ = fs.Walk(c.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > c.lifetime {
			_ = fs.Remove(path)
		}
		return nil
	})
}
