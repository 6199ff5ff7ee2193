// sim/traffic.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"io"
	"strings"

	av "github.com/mmp/tracongen/aviation"
	"github.com/mmp/tracongen/math"
	"github.com/mmp/tracongen/nav"
	"github.com/mmp/tracongen/util"
)

// AirportConfig is the traffic configuration for a single airport.
type AirportConfig struct {
	ICAO          string                   `json:"icao"`
	Name          string                   `json:"name,omitempty"`
	Fixes         map[string]math.Point2LL `json:"fixes,omitempty"`
	SpawnPatterns []SpawnPatternSpec       `json:"spawnPatterns"`
}

// IsEmpty reports whether c is nil or has nothing set.
func (c *AirportConfig) IsEmpty() bool {
	return c == nil || (c.ICAO == "" && c.Name == "" && len(c.Fixes) == 0 && c.SpawnPatterns == nil)
}

// FixDB returns a Locator for the fixes defined in the configuration.
func (c *AirportConfig) FixDB() *nav.FixDB {
	return nav.MakeFixDB(c.Fixes)
}

// LoadAirportConfig reads an airport configuration, checking its structure
// before decoding it.
func LoadAirportConfig(r io.Reader) (*AirportConfig, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseAirportConfig(b)
}

// LoadAirportConfigFile loads the configuration at path, which may be
// zstd-compressed.
func LoadAirportConfigFile(path string) (*AirportConfig, error) {
	b, err := util.ReadResourceFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := parseAirportConfig(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func parseAirportConfig(b []byte) (*AirportConfig, error) {
	var e util.ErrorLogger
	util.CheckJSON[AirportConfig](b, &e)
	if err := e.Err(av.ErrInvalidConfiguration); err != nil {
		return nil, err
	}

	var cfg AirportConfig
	if err := util.UnmarshalJSONBytes(b, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", av.ErrInvalidConfiguration, err)
	}
	if cfg.IsEmpty() {
		return nil, fmt.Errorf("%w: %w", av.ErrInvalidConfiguration, ErrNoAirportConfig)
	}
	cfg.ICAO = strings.ToUpper(cfg.ICAO)
	return &cfg, nil
}

///////////////////////////////////////////////////////////////////////////
// TrafficPatterns

// TrafficPatterns holds the spawn patterns for one airport, in
// configuration order. Every element was built by NewSpawnPattern.
type TrafficPatterns struct {
	ICAO     string
	patterns []*SpawnPattern
}

// NewTrafficPatterns builds a pattern for each entry in the configuration.
// It fails without building anything if the configuration or the Locator
// is missing or empty, or if any pattern can't be built.
func NewTrafficPatterns(cfg *AirportConfig, loc av.Locator) (*TrafficPatterns, error) {
	if cfg.IsEmpty() {
		return nil, fmt.Errorf("%w: %w", av.ErrInvalidConfiguration, ErrNoAirportConfig)
	}
	if av.EmptyLocator(loc) {
		return nil, fmt.Errorf("%w: %w", av.ErrInvalidConfiguration, ErrNoNavigationData)
	}

	tp := &TrafficPatterns{ICAO: cfg.ICAO}
	for i, spec := range cfg.SpawnPatterns {
		p, err := NewSpawnPattern(spec, loc)
		if err != nil {
			return nil, fmt.Errorf("%s: spawnPatterns[%d]: %w", cfg.ICAO, i, err)
		}
		if err := tp.AddPattern(p); err != nil {
			return nil, err
		}
	}
	return tp, nil
}

// AddPattern appends p to the registry. It fails with an error matching
// aviation.ErrTypeConstraint if p wasn't built by NewSpawnPattern and with
// ErrPatternInUse if p has already been added to a registry.
func (tp *TrafficPatterns) AddPattern(p *SpawnPattern) error {
	if p == nil || !p.built {
		return fmt.Errorf("%w: not a constructed spawn pattern", av.ErrTypeConstraint)
	}
	if p.owner != nil {
		return fmt.Errorf("%s: %w", p, ErrPatternInUse)
	}

	p.owner = tp
	tp.patterns = append(tp.patterns, p)
	return nil
}

// AddPatterns adds each of the given patterns in turn, stopping at the
// first one that can't be added.
func (tp *TrafficPatterns) AddPatterns(ps []*SpawnPattern) error {
	for i, p := range ps {
		if err := tp.AddPattern(p); err != nil {
			return fmt.Errorf("pattern %d: %w", i, err)
		}
	}
	return nil
}

// Patterns returns the registry's patterns. The slice is shared with the
// registry and should not be modified.
func (tp *TrafficPatterns) Patterns() []*SpawnPattern {
	return tp.patterns
}

func (tp *TrafficPatterns) Len() int {
	return len(tp.patterns)
}

// CheckAircraftTypes reports every pool type that the catalog doesn't
// define.
func (tp *TrafficPatterns) CheckAircraftTypes(cat *av.AircraftCatalog, e *util.ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	e.Push(util.Select(tp.ICAO != "", tp.ICAO, "airport"))
	defer e.Pop()

	for i, p := range tp.patterns {
		e.Push(fmt.Sprintf("spawnPatterns[%d]", i))
		for _, icao := range p.Types() {
			if !cat.Has(icao) {
				e.ErrorString("%s: %v", icao, av.ErrUnknownAircraftType)
			}
		}
		e.Pop()
	}
}
