package taxoform

import (
	"fmt"
	"io/fs"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultRegistrySize bounds the number of questionnaires kept in memory.
// Taxonomies are small and few, so eviction is effectively never reached.
const defaultRegistrySize = 64

type registryKey struct {
	industry string
	year     int
}

type registryEntry struct {
	fsys      fs.FS
	artifacts ArtifactSet
}

// Registry resolves (industry, year) pairs to questionnaires, loading each
// taxonomy once and memoizing the immutable result. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.Mutex
	entries map[registryKey]registryEntry
	cache   *lru.Cache[registryKey, *Questionnaire]
	opts    LoadOptions
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...LoadOptions) *Registry {
	loadOpts := NewLoadOptions()
	if len(opts) > 0 {
		loadOpts = opts[0]
	}
	cache, err := lru.New[registryKey, *Questionnaire](defaultRegistrySize)
	if err != nil {
		// Only reachable with a non-positive size constant.
		panic(fmt.Sprintf("taxoform: registry cache: %v", err))
	}
	return &Registry{
		entries: make(map[registryKey]registryEntry),
		cache:   cache,
		opts:    loadOpts,
	}
}

// Register associates an industry and year with its taxonomy artifacts.
// Registering the same pair again replaces the artifacts and drops any
// memoized questionnaire.
func (r *Registry) Register(industry string, year int, fsys fs.FS, artifacts ArtifactSet) error {
	if r == nil {
		return fmt.Errorf("register taxonomy: nil registry")
	}
	if fsys == nil {
		return fmt.Errorf("register taxonomy %s/%d: nil fs", industry, year)
	}
	artifacts.Industry = industry
	artifacts.Year = year

	key := registryKey{industry: industry, year: year}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = registryEntry{fsys: fsys, artifacts: artifacts}
	r.cache.Remove(key)
	return nil
}

// Questionnaire returns the memoized questionnaire for the pair, loading it
// on first access. Load failures are not memoized.
func (r *Registry) Questionnaire(industry string, year int) (*Questionnaire, error) {
	if r == nil {
		return nil, fmt.Errorf("questionnaire %s/%d: nil registry", industry, year)
	}
	key := registryKey{industry: industry, year: year}

	r.mu.Lock()
	defer r.mu.Unlock()
	if q, ok := r.cache.Get(key); ok {
		return q, nil
	}
	entry, ok := r.entries[key]
	if !ok {
		return nil, fmt.Errorf("questionnaire %s/%d: industry not registered", industry, year)
	}
	q, err := LoadWithOptions(entry.fsys, entry.artifacts, r.opts)
	if err != nil {
		return nil, fmt.Errorf("questionnaire %s/%d: %w", industry, year, err)
	}
	r.cache.Add(key, q)
	return q, nil
}

// Industries returns the registered industry names, deduplicated across
// years, in no particular order.
func (r *Registry) Industries() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{}, len(r.entries))
	var industries []string
	for key := range r.entries {
		if _, ok := seen[key.industry]; ok {
			continue
		}
		seen[key.industry] = struct{}{}
		industries = append(industries, key.industry)
	}
	return industries
}
