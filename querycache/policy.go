// Package querycache caches API responses under named staleness tiers and
// invalidates them by key when mutations land.
//
// Three tiers cover the marketplace's data categories: static reference data
// (categories, plans, platform stats), dynamic listings (orders, markets,
// specialists), and user data (profile, own orders, subscription). Each tier
// has a freshness window, after which a read triggers a refetch, and an
// eviction window, after which the entry is gone entirely.
package querycache

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tier names a staleness policy.
type Tier string

const (
	// TierStatic covers rarely changing reference data.
	TierStatic Tier = "static"
	// TierDynamic covers public listings.
	TierDynamic Tier = "dynamic"
	// TierUser covers data scoped to the authenticated user.
	TierUser Tier = "user"
)

// Window is one tier's freshness policy.
type Window struct {
	// Fresh is how long a cached value is served without refetching.
	Fresh time.Duration
	// Evict is how long an unused value survives at all.
	Evict time.Duration
}

// Policy maps tiers to windows.
type Policy struct {
	windows map[Tier]Window
}

// DefaultPolicy returns the stock tier windows.
func DefaultPolicy() Policy {
	return Policy{windows: map[Tier]Window{
		TierStatic:  {Fresh: 24 * time.Hour, Evict: 48 * time.Hour},
		TierDynamic: {Fresh: 30 * time.Second, Evict: 5 * time.Minute},
		TierUser:    {Fresh: 5 * time.Minute, Evict: 30 * time.Minute},
	}}
}

// Window returns the policy window for a tier. Unknown tiers fall back to
// the dynamic window, the most conservative of the three.
func (p Policy) Window(tier Tier) Window {
	if w, ok := p.windows[tier]; ok {
		return w
	}
	return p.windows[TierDynamic]
}

// policyFile is the yaml layout of a tier override file:
//
//	static:
//	  fresh: 24h
//	  evict: 48h
//	dynamic:
//	  fresh: 30s
//	  evict: 5m
type policyFile map[string]struct {
	Fresh string `yaml:"fresh"`
	Evict string `yaml:"evict"`
}

// LoadPolicy reads tier overrides from a yaml file. Tiers absent from the
// file keep their defaults.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("read cache policy: %w", err)
	}

	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return policy, fmt.Errorf("parse cache policy: %w", err)
	}

	for name, entry := range file {
		tier := Tier(name)
		window := policy.Window(tier)

		if entry.Fresh != "" {
			d, err := time.ParseDuration(entry.Fresh)
			if err != nil {
				return policy, fmt.Errorf("tier %s: invalid fresh duration: %w", name, err)
			}
			window.Fresh = d
		}
		if entry.Evict != "" {
			d, err := time.ParseDuration(entry.Evict)
			if err != nil {
				return policy, fmt.Errorf("tier %s: invalid evict duration: %w", name, err)
			}
			window.Evict = d
		}
		if window.Evict < window.Fresh {
			return policy, fmt.Errorf("tier %s: evict window shorter than fresh window", name)
		}

		policy.windows[tier] = window
	}

	return policy, nil
}
