// sim/generator.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	av "github.com/mmp/tracongen/aviation"
	"github.com/mmp/tracongen/log"
	"github.com/mmp/tracongen/math"
	"github.com/mmp/tracongen/rand"
	"github.com/mmp/tracongen/util"

	"github.com/vmihailenco/msgpack/v5"
)

// 1 knot in feet per second.
const knotsToFeetPerSecond = 1.68781

// Upper bound on launches per pattern in one Step.
const maxSpawnsPerStep = 1000

// SpawnEvent describes a single aircraft entering the simulation.
type SpawnEvent struct {
	Pattern      int // index in the registry
	Category     SpawnCategory
	AircraftType string
	StripType    string // empty if the type isn't in the catalog
	Time         time.Time
	Position     math.Point2LL
	Altitude     int
	Speed        float32
	Heading      float32
	Origin       string
	Destination  string
	Runway       string
}

func (ev SpawnEvent) String() string {
	typ := util.Select(ev.StripType != "", ev.StripType, ev.AircraftType)
	switch ev.Category {
	case SpawnDeparture:
		return fmt.Sprintf("%s departure %-10s %s runway %s hdg %03d", ev.Time.Format("15:04:05"), typ,
			ev.Origin, ev.Runway, int(ev.Heading))
	default:
		return fmt.Sprintf("%s %-10s %-10s %s %d' %dkts hdg %03d", ev.Time.Format("15:04:05"), ev.Category,
			typ, ev.Position.DDString(), ev.Altitude, int(ev.Speed), int(ev.Heading))
	}
}

func (ev SpawnEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("pattern", ev.Pattern),
		slog.String("category", string(ev.Category)),
		slog.String("type", ev.AircraftType),
		slog.Time("time", ev.Time),
		slog.Int("altitude", ev.Altitude))
}

// RunwayState tracks departures from a single runway: the last aircraft
// to start its takeoff roll and the ones waiting for it to clear.
type RunwayState struct {
	Leader     string
	LeaderRoll time.Time
	Queue      []SpawnEvent
}

// FixState records the most recent airborne launch at a fix.
type FixState struct {
	Time     time.Time
	Altitude int
}

// Generator launches traffic from an airport's spawn patterns. It is not
// safe for concurrent use.
type Generator struct {
	patterns *TrafficPatterns
	catalog  *av.AircraftCatalog
	rand     *rand.Rand
	lg       *log.Logger

	runways map[string]*RunwayState
	fixes   map[string]FixState
}

// NewGenerator returns a Generator for the given registry. The catalog
// may be nil, in which case every type is treated as unknown and
// departures get the most conservative spacing.
func NewGenerator(tp *TrafficPatterns, cat *av.AircraftCatalog, seed int64, lg *log.Logger) *Generator {
	return &Generator{
		patterns: tp,
		catalog:  cat,
		rand:     rand.MakeSeeded(seed),
		lg:       lg,
		runways:  make(map[string]*RunwayState),
		fixes:    make(map[string]FixState),
	}
}

func (g *Generator) Patterns() *TrafficPatterns {
	return g.patterns
}

// Step launches everything that is due at now, in time order. Patterns
// that haven't been started yet, including ones added to the registry
// since the last Step, are started at now.
func (g *Generator) Step(now time.Time) []SpawnEvent {
	var events []SpawnEvent

	patterns := g.patterns.Patterns()
	for i, p := range patterns {
		if !p.started() {
			p.Start(now, g.rand)
			g.lg.Debug("started spawn pattern", slog.Int("pattern", i), slog.Any("spawn_pattern", p),
				slog.Time("next", p.NextSpawn()))
		}
	}

	// Launch in order of scheduled time so that in-trail checks at shared
	// fixes see aircraft in the order they appear.
	for n := 0; n < maxSpawnsPerStep*len(patterns); n++ {
		idx := nextDue(patterns, now)
		if idx == -1 {
			break
		}
		if ev, ok := g.spawn(idx, patterns[idx]); ok {
			events = append(events, ev)
		}
	}

	events = append(events, g.releaseDepartures(now)...)
	slices.SortStableFunc(events, func(a, b SpawnEvent) int { return a.Time.Compare(b.Time) })

	for _, ev := range events {
		g.lg.Debug("spawn", slog.Any("event", ev))
	}
	return events
}

// nextDue returns the index of the due pattern with the earliest launch
// time, or -1 if none are due. Ties go to the first in registry order.
func nextDue(patterns []*SpawnPattern, now time.Time) int {
	idx := -1
	for i, p := range patterns {
		if p.Due(now) && (idx == -1 || p.NextSpawn().Before(patterns[idx].NextSpawn())) {
			idx = i
		}
	}
	return idx
}

// Run calls Step every step over the interval [start, start+d] and returns
// all of the resulting events.
func (g *Generator) Run(start time.Time, d, step time.Duration) []SpawnEvent {
	if step <= 0 {
		step = time.Second
	}

	var events []SpawnEvent
	end := start.Add(d)
	for t := start; !t.After(end); t = t.Add(step) {
		events = append(events, g.Step(t)...)
	}
	return events
}

// PendingDepartures returns the number of departures waiting for their
// runway to clear.
func (g *Generator) PendingDepartures() int {
	n := 0
	for _, rs := range g.runways {
		n += len(rs.Queue)
	}
	return n
}

// spawn launches an aircraft from p at its scheduled time. Airborne
// aircraft are returned directly; departures are queued for their runway
// and false is returned.
func (g *Generator) spawn(idx int, p *SpawnPattern) (SpawnEvent, bool) {
	at := p.NextSpawn()

	icao, err := p.SampleAircraftType(g.rand)
	if err != nil {
		g.lg.Warn("unable to sample aircraft type", slog.Int("pattern", idx), slog.Any("error", err))
		p.Advance(at, g.rand)
		return SpawnEvent{}, false
	}

	ev := SpawnEvent{
		Pattern:      idx,
		Category:     p.Category(),
		AircraftType: icao,
		Time:         at,
		Position:     p.Position(),
		Altitude:     p.SampleAltitude(g.rand),
		Speed:        p.Speed(),
		Heading:      p.Heading(),
		Origin:       p.Origin(),
		Destination:  p.Destination(),
		Runway:       p.Runway(),
	}
	if g.catalog != nil {
		if t, err := g.catalog.Lookup(icao); err == nil {
			ev.StripType = t.StripViewType()
		} else {
			g.lg.Warn("aircraft type not in catalog", slog.Int("pattern", idx), slog.Any("error", err))
		}
	}

	if !p.Category().Airborne() {
		p.Advance(at, g.rand)
		rs := g.runway(ev.Origin, ev.Runway)
		rs.Queue = append(rs.Queue, ev)
		return SpawnEvent{}, false
	}

	fix := g.spawnFix(p)
	if clear, ok := g.checkEntrail(p, fix, ev); !ok {
		g.lg.Debug("deferring spawn for in-trail spacing", slog.Int("pattern", idx),
			slog.String("fix", fix), slog.Time("until", clear))
		p.Defer(clear)
		return SpawnEvent{}, false
	}

	g.fixes[fix] = FixState{Time: at, Altitude: ev.Altitude}
	p.Advance(at, g.rand)
	return ev, true
}

func (g *Generator) spawnFix(p *SpawnPattern) string {
	if len(p.route) > 0 {
		return p.route[0].Fix
	}
	return p.position.DDString()
}

// checkEntrail returns false and the first acceptable time if the last
// aircraft launched at the same fix within 1000' of ev's altitude is
// closer than p's minimum entrail distance.
func (g *Generator) checkEntrail(p *SpawnPattern, fix string, ev SpawnEvent) (time.Time, bool) {
	last, ok := g.fixes[fix]
	if !ok || math.Abs(last.Altitude-ev.Altitude) >= 1000 {
		return time.Time{}, true
	}
	clear := last.Time.Add(p.minimumInterval())
	if ev.Time.Before(clear) {
		return clear, false
	}
	return time.Time{}, true
}

func (g *Generator) runway(airport, rwy string) *RunwayState {
	key := airport + "/" + rwy
	rs, ok := g.runways[key]
	if !ok {
		rs = &RunwayState{}
		g.runways[key] = rs
	}
	return rs
}

// releaseDepartures starts the takeoff roll of each queued departure whose
// runway is clear by now.
func (g *Generator) releaseDepartures(now time.Time) []SpawnEvent {
	var events []SpawnEvent
	for _, key := range util.SortedMapKeys(g.runways) {
		rs := g.runways[key]
		for len(rs.Queue) > 0 {
			ev := rs.Queue[0]
			roll := ev.Time
			if rs.Leader != "" {
				if clear := rs.LeaderRoll.Add(g.runwayClearTime(rs.Leader, ev.AircraftType)); clear.After(roll) {
					roll = clear
				}
			}
			if roll.After(now) {
				break
			}

			ev.Time = roll
			rs.Leader, rs.LeaderRoll = ev.AircraftType, roll
			rs.Queue = rs.Queue[1:]
			events = append(events, ev)
		}
	}
	return events
}

// lookup returns the catalog's definition of the type; unknown types get
// the zero AircraftType, which has no separation category.
func (g *Generator) lookup(icao string) av.AircraftType {
	t, _ := g.catalog.Lookup(icao)
	return t
}

// runwayClearTime returns how long after the leader starts its takeoff
// roll the trailing aircraft may start its own.
func (g *Generator) runwayClearTime(leader, trailer string) time.Duration {
	lead := g.lookup(leader)
	feet := g.lookup(trailer).SameRunwaySeparation(lead)
	return TakeoffRollTime(lead, feet)
}

// TakeoffRollTime returns the time an aircraft of type t accelerating from
// rest takes to cover the given distance in feet.
func TakeoffRollTime(t av.AircraftType, feet int) time.Duration {
	// Acceleration is given in knots per two seconds.
	a := t.TakeoffAcceleration() * knotsToFeetPerSecond / 2
	return seconds(float64(math.Sqrt(2 * float32(feet) / a)))
}

///////////////////////////////////////////////////////////////////////////
// Snapshots

type PatternState struct {
	Start     time.Time
	NextSpawn time.Time
	LastSpawn time.Time
	Spawned   int
}

// GeneratorSnapshot is the generation state of a Generator. The random
// number generator's state isn't included.
type GeneratorSnapshot struct {
	Airport  string
	Patterns []PatternState
	Runways  map[string]RunwayState
	Fixes    map[string]FixState
}

// Snapshot returns the encoded generation state of g and its patterns.
func (g *Generator) Snapshot() ([]byte, error) {
	s := GeneratorSnapshot{
		Airport: g.patterns.ICAO,
		Runways: make(map[string]RunwayState),
		Fixes:   make(map[string]FixState),
	}
	for _, p := range g.patterns.Patterns() {
		s.Patterns = append(s.Patterns, PatternState{
			Start:     p.start,
			NextSpawn: p.nextSpawn,
			LastSpawn: p.lastSpawn,
			Spawned:   p.spawned,
		})
	}
	for key, rs := range g.runways {
		s.Runways[key] = RunwayState{
			Leader:     rs.Leader,
			LeaderRoll: rs.LeaderRoll,
			Queue:      util.DuplicateSlice(rs.Queue),
		}
	}
	for fix, fs := range g.fixes {
		s.Fixes[fix] = fs
	}

	return msgpack.Marshal(s)
}

// RestoreSnapshot replaces g's generation state with one returned by
// Snapshot for the same airport and number of patterns.
func (g *Generator) RestoreSnapshot(b []byte) error {
	var s GeneratorSnapshot
	if err := msgpack.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if s.Airport != g.patterns.ICAO {
		return fmt.Errorf("%w: snapshot is for %q, not %q", ErrInvalidSnapshot, s.Airport, g.patterns.ICAO)
	}
	if len(s.Patterns) != g.patterns.Len() {
		return fmt.Errorf("%w: snapshot has %d patterns, expected %d", ErrInvalidSnapshot,
			len(s.Patterns), g.patterns.Len())
	}

	for i, p := range g.patterns.Patterns() {
		ps := s.Patterns[i]
		p.start, p.nextSpawn, p.lastSpawn, p.spawned = ps.Start, ps.NextSpawn, ps.LastSpawn, ps.Spawned
	}
	g.runways = make(map[string]*RunwayState)
	for key, rs := range s.Runways {
		g.runways[key] = &rs
	}
	g.fixes = make(map[string]FixState)
	for fix, fs := range s.Fixes {
		g.fixes[fix] = fs
	}
	return nil
}
