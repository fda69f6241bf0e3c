// Package history remembers recently played sources and where playback was left.
package history

import (
	"sort"
	"sync"

	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/dotplay-cli/dotplay/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var (
	cacherOnce sync.Once
	cacher     *gache.Cache[map[string]*Entry]
)

// store opens the history file on first use, so tests can swap the
// filesystem and config path first.
func store() *gache.Cache[map[string]*Entry] {
	cacherOnce.Do(func() {
		cacher = gache.New[map[string]*Entry](&gache.Options{
			Path:       where.History(),
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return cacher
}

// Get returns every remembered source, keyed by source.
func Get() (map[string]*Entry, error) {
	cached, expired, err := store().Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Save records entry, replacing what was remembered for the same source.
func Save(entry *Entry) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	saved[entry.encode()] = entry
	return store().Set(saved)
}

// Remove forgets entry.
func Remove(entry *Entry) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, entry.encode())
	return store().Set(saved)
}

// Recent lists remembered sources, most recently played first.
func Recent() ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].PlayedAt.After(entries[j].PlayedAt)
	})
	return entries, nil
}

// Last is the most recently played source.
func Last() (mo.Option[*Entry], error) {
	entries, err := Recent()
	if err != nil {
		return mo.None[*Entry](), err
	}
	if len(entries) == 0 {
		return mo.None[*Entry](), nil
	}
	return mo.Some(entries[0]), nil
}

// Suggest ranks remembered sources against query, closest match first.
func Suggest(query string) ([]string, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	ranks := fuzzy.RankFindNormalizedFold(query, lo.Keys(saved))
	sort.Sort(ranks)
	return lo.Map(ranks, func(r fuzzy.Rank, _ int) string { return r.Target }), nil
}
