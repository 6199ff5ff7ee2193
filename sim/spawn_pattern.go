// sim/spawn_pattern.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	av "github.com/mmp/tracongen/aviation"
	"github.com/mmp/tracongen/math"
	"github.com/mmp/tracongen/rand"
	"github.com/mmp/tracongen/util"

	"github.com/brunoga/deep"
)

type SpawnCategory string

const (
	SpawnArrival    SpawnCategory = "arrival"
	SpawnDeparture  SpawnCategory = "departure"
	SpawnOverflight SpawnCategory = "overflight"
)

// Airborne reports whether aircraft of the category are spawned in flight.
func (c SpawnCategory) Airborne() bool {
	return c == SpawnArrival || c == SpawnOverflight
}

type SpawnMethod string

const (
	SpawnRandom SpawnMethod = "random"
	SpawnCyclic SpawnMethod = "cyclic"
	SpawnSurge  SpawnMethod = "surge"
)

// Default entrail distances (nm) for airborne patterns that don't give
// one.
var defaultEntrail = [2]float32{5.5, 10}

// Longest time a pattern waits between launches; disabled patterns and
// very low rates are scheduled this far out.
const maxSpawnWait = 365 * 24 * time.Hour

// SpawnPatternSpec is a spawn pattern as it appears in an airport's
// configuration file.
type SpawnPatternSpec struct {
	Category    SpawnCategory `json:"category"`
	Origin      string        `json:"origin,omitempty"`
	Destination string        `json:"destination,omitempty"`
	Runway      string        `json:"runway,omitempty"`
	// Fixes separated by spaces or dots, e.g. "DAG..MISEN" or "BTG HAROB".
	Route  string      `json:"route,omitempty"`
	Method SpawnMethod `json:"method,omitempty"`

	Rate      float32 `json:"rate"`                // aircraft per hour
	Offset    float32 `json:"offset,omitempty"`    // minutes
	Period    float32 `json:"period,omitempty"`    // minutes
	Variation float32 `json:"variation,omitempty"` // aircraft per hour

	Entrail  [2]float32              `json:"entrail,omitempty"` // nm
	Altitude util.SingleOrArray[int] `json:"altitude,omitempty"`
	Speed    float32                 `json:"speed,omitempty"`
	// Degrees; 0 or absent uses the direction of the first route leg,
	// so due north is given as 360.
	Heading float32 `json:"heading,omitempty"`

	Types []SpawnTypeWeight `json:"types"`
}

type SpawnTypeWeight struct {
	ICAO   string `json:"icao"`
	Weight int    `json:"weight,omitempty"`
}

// SpawnPattern is a validated source of traffic. Everything but its
// generation state is fixed at construction.
type SpawnPattern struct {
	spec     SpawnPatternSpec
	route    []av.ResolvedFix
	position math.Point2LL
	heading  float32
	altitude [2]int

	// Set by NewSpawnPattern; the zero SpawnPattern can't be registered.
	built bool
	owner *TrafficPatterns

	// Generation state
	start     time.Time
	nextSpawn time.Time
	lastSpawn time.Time
	spawned   int
}

// NewSpawnPattern validates spec and resolves its route with loc. All
// problems are reported together; the returned error matches
// aviation.ErrInvalidConfiguration.
func NewSpawnPattern(spec SpawnPatternSpec, loc av.Locator) (*SpawnPattern, error) {
	if av.EmptyLocator(loc) {
		return nil, fmt.Errorf("%w: %w", av.ErrInvalidConfiguration, ErrNoNavigationData)
	}

	var e util.ErrorLogger
	p := &SpawnPattern{spec: deep.MustCopy(spec)}
	p.normalize()
	p.check(loc, &e)
	if err := e.Err(av.ErrInvalidConfiguration); err != nil {
		return nil, err
	}

	p.built = true
	return p, nil
}

func (p *SpawnPattern) normalize() {
	s := &p.spec
	s.Category = SpawnCategory(strings.ToLower(strings.TrimSpace(string(s.Category))))
	s.Method = SpawnMethod(strings.ToLower(strings.TrimSpace(string(s.Method))))
	if s.Method == "" {
		s.Method = SpawnRandom
	}
	s.Origin = strings.ToUpper(s.Origin)
	s.Destination = strings.ToUpper(s.Destination)
	s.Runway = strings.ToUpper(s.Runway)
	for i := range s.Types {
		s.Types[i].ICAO = strings.ToUpper(s.Types[i].ICAO)
	}
	if s.Category.Airborne() && s.Entrail == [2]float32{} {
		s.Entrail = defaultEntrail
	}
}

func (p *SpawnPattern) check(loc av.Locator, e *util.ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	s := &p.spec
	e.Push(p.String())
	defer e.Pop()

	switch s.Category {
	case SpawnArrival:
		if s.Destination == "" {
			e.ErrorString("\"destination\" must be specified for arrivals")
		}
	case SpawnDeparture:
		if s.Origin == "" {
			e.ErrorString("\"origin\" must be specified for departures")
		}
		if s.Runway == "" {
			e.ErrorString("\"runway\" must be specified for departures")
		}
	case SpawnOverflight:
	default:
		e.ErrorString("%q: %v", string(s.Category), ErrUnknownCategory)
	}

	switch s.Method {
	case SpawnRandom:
	case SpawnCyclic, SpawnSurge:
		if s.Period <= 0 {
			e.ErrorString("\"period\" must be positive for %s patterns", s.Method)
		}
		if s.Method == SpawnCyclic && s.Variation < 0 {
			e.ErrorString("\"variation\" cannot be negative")
		}
	default:
		e.ErrorString("%q: %v", string(s.Method), ErrUnknownMethod)
	}

	if s.Rate < 0 {
		e.ErrorString("\"rate\" cannot be negative")
	}
	if s.Speed < 0 {
		e.ErrorString("\"speed\" cannot be negative")
	} else if s.Speed == 0 && s.Category.Airborne() {
		e.ErrorString("\"speed\" must be specified for %ss", s.Category)
	}
	if s.Heading < 0 || s.Heading > 360 {
		e.ErrorString("\"heading\" %.0f must be between 0 and 360", s.Heading)
	}
	if s.Entrail[0] < 0 || s.Entrail[1] < s.Entrail[0] {
		e.ErrorString("\"entrail\" must be [min, max] nm with 0 <= min <= max")
	}

	switch len(s.Altitude) {
	case 0:
		if s.Category.Airborne() {
			e.ErrorString("\"altitude\" must be specified for %ss", s.Category)
		}
	case 1:
		p.altitude = [2]int{s.Altitude[0], s.Altitude[0]}
	case 2:
		p.altitude = [2]int{s.Altitude[0], s.Altitude[1]}
	default:
		e.ErrorString("\"altitude\" must be a single altitude or a [min, max] range")
	}
	if p.altitude[0] < 0 || p.altitude[1] < p.altitude[0] {
		e.ErrorString("\"altitude\" range [%d, %d] is invalid", p.altitude[0], p.altitude[1])
	}

	p.checkTypes(e)
	p.resolveRoute(loc, e)
}

func (p *SpawnPattern) checkTypes(e *util.ErrorLogger) {
	if len(p.spec.Types) == 0 {
		e.Error(ErrEmptyTypePool)
		return
	}
	for _, tw := range p.spec.Types {
		if tw.ICAO == "" || !util.IsAllLettersOrNumbers(tw.ICAO) {
			e.ErrorString("%q: invalid aircraft type designator", tw.ICAO)
		}
		if tw.Weight < 0 {
			e.ErrorString("%s: \"weight\" cannot be negative", tw.ICAO)
		}
	}
}

// resolveRoute looks up the route's fixes and works out where aircraft
// appear and which way they're pointed.
func (p *SpawnPattern) resolveRoute(loc av.Locator, e *util.ErrorLogger) {
	s := &p.spec
	e.Push("route")
	defer e.Pop()

	unresolved := false
	for _, fix := range strings.FieldsFunc(s.Route, func(r rune) bool { return r == ' ' || r == '.' }) {
		if rf, err := av.ResolveFix(loc, fix); err != nil {
			e.Error(err)
			unresolved = true
		} else {
			p.route = append(p.route, rf)
		}
	}
	if unresolved {
		return
	}

	var points []math.Point2LL
	if s.Category == SpawnDeparture {
		if s.Origin == "" {
			return
		}
		o, err := av.ResolveFix(loc, s.Origin)
		if err != nil {
			e.Error(err)
			return
		}
		points = append(points, o.Location)
	} else if len(p.route) == 0 {
		e.ErrorString("at least one fix must be given for %ss", s.Category)
		return
	}
	for _, rf := range p.route {
		points = append(points, rf.Location)
	}

	p.position = points[0]
	p.heading = s.Heading
	if p.heading == 0 && len(points) > 1 {
		p.heading = math.Heading2LL(points[0], points[1], math.NMPerLongitudeAt(points[0]), 0)
	}
}

func (p *SpawnPattern) String() string {
	s := &p.spec
	switch s.Category {
	case SpawnArrival:
		return fmt.Sprintf("%s arrival via %q", s.Destination, s.Route)
	case SpawnDeparture:
		return fmt.Sprintf("%s departure runway %s", s.Origin, s.Runway)
	default:
		return fmt.Sprintf("%s via %q", s.Category, s.Route)
	}
}

func (p *SpawnPattern) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("category", string(p.spec.Category)),
		slog.String("method", string(p.spec.Method)),
		slog.Float64("rate", float64(p.spec.Rate)),
		slog.String("route", p.spec.Route),
		slog.Int("spawned", p.spawned))
}

///////////////////////////////////////////////////////////////////////////
// Accessors

func (p *SpawnPattern) Category() SpawnCategory { return p.spec.Category }
func (p *SpawnPattern) Method() SpawnMethod     { return p.spec.Method }
func (p *SpawnPattern) Rate() float32           { return p.spec.Rate }
func (p *SpawnPattern) Origin() string          { return p.spec.Origin }
func (p *SpawnPattern) Destination() string     { return p.spec.Destination }
func (p *SpawnPattern) Runway() string          { return p.spec.Runway }
func (p *SpawnPattern) Position() math.Point2LL { return p.position }
func (p *SpawnPattern) Heading() float32        { return p.heading }
func (p *SpawnPattern) Speed() float32          { return p.spec.Speed }

// AltitudeRange returns the lowest and highest spawn altitudes.
func (p *SpawnPattern) AltitudeRange() (int, int) { return p.altitude[0], p.altitude[1] }

// Route returns the pattern's resolved fixes; the caller may modify the
// returned slice.
func (p *SpawnPattern) Route() []av.ResolvedFix { return slices.Clone(p.route) }

// Spec returns a copy of the configuration the pattern was built from.
func (p *SpawnPattern) Spec() SpawnPatternSpec { return deep.MustCopy(p.spec) }

// Types returns the ICAO designators in the pattern's type pool.
func (p *SpawnPattern) Types() []string {
	var t []string
	for _, tw := range p.spec.Types {
		t = append(t, tw.ICAO)
	}
	return t
}

func (p *SpawnPattern) NextSpawn() time.Time { return p.nextSpawn }
func (p *SpawnPattern) LastSpawn() time.Time { return p.lastSpawn }
func (p *SpawnPattern) Spawned() int         { return p.spawned }

///////////////////////////////////////////////////////////////////////////
// Generation

// Start resets the generation state so that the first aircraft is
// launched somewhere between now and one average interval from now.
func (p *SpawnPattern) Start(now time.Time, r *rand.Rand) {
	p.start = now
	p.lastSpawn = time.Time{}
	p.spawned = 0
	if p.disabled() {
		p.nextSpawn = now.Add(maxSpawnWait)
	} else {
		p.nextSpawn = now.Add(randomInitialWait(p.RateAt(now), r))
	}
}

func (p *SpawnPattern) started() bool {
	return !p.start.IsZero()
}

// Due reports whether the pattern should launch an aircraft at now.
func (p *SpawnPattern) Due(now time.Time) bool {
	return p.started() && !p.nextSpawn.After(now)
}

// Advance records a launch at the given time and schedules the next one.
func (p *SpawnPattern) Advance(at time.Time, r *rand.Rand) time.Time {
	p.lastSpawn = at
	p.spawned++
	p.nextSpawn = at.Add(p.wait(at, r))
	return p.nextSpawn
}

// Defer postpones the next launch until t without counting a launch.
func (p *SpawnPattern) Defer(t time.Time) {
	if t.After(p.nextSpawn) {
		p.nextSpawn = t
	}
}

// RateAt returns the pattern's instantaneous launch rate, in aircraft per
// hour, at time t.
func (p *SpawnPattern) RateAt(t time.Time) float32 {
	s := &p.spec
	minutes := float32(t.Sub(p.start).Minutes()) + s.Offset

	switch s.Method {
	case SpawnCyclic:
		return s.Rate + s.Variation*math.Sin(2*math.Pi*minutes/s.Period)
	case SpawnSurge:
		phase := math.Mod(minutes, s.Period)
		if phase < 0 {
			phase += s.Period
		}
		if phase < s.Period/3 {
			return s.Rate * 3 / 2
		}
		return s.Rate
	default:
		return s.Rate
	}
}

// disabled patterns never launch anything.
func (p *SpawnPattern) disabled() bool {
	return p.spec.Rate == 0 && (p.spec.Method != SpawnCyclic || p.spec.Variation == 0)
}

func (p *SpawnPattern) wait(at time.Time, r *rand.Rand) time.Duration {
	if p.disabled() {
		return maxSpawnWait
	}

	rate := p.RateAt(at)
	if rate <= 0 {
		// Nothing to launch right now; check back shortly.
		return time.Minute
	}

	var w time.Duration
	if p.spec.Method == SpawnRandom {
		w = randomWait(rate, r)
	} else {
		w = seconds(3600 / float64(rate))
	}
	return max(w, p.minimumInterval(), time.Second)
}

// minimumInterval is the time it takes to fly the minimum entrail
// distance at the pattern's speed.
func (p *SpawnPattern) minimumInterval() time.Duration {
	if p.spec.Speed <= 0 || p.spec.Entrail[0] <= 0 {
		return 0
	}
	return seconds(3600 * float64(p.spec.Entrail[0]) / float64(p.spec.Speed))
}

// SampleAircraftType returns a type from the pattern's pool, chosen with
// probability proportional to its weight; unweighted types count as 1.
func (p *SpawnPattern) SampleAircraftType(r *rand.Rand) (string, error) {
	tw, ok := rand.SampleWeighted(r, p.spec.Types, func(tw SpawnTypeWeight) int {
		return util.Select(tw.Weight == 0, 1, tw.Weight)
	})
	if !ok {
		return "", ErrEmptyTypePool
	}
	return tw.ICAO, nil
}

// SampleAltitude returns a launch altitude in the pattern's range, in
// 1000' steps up from the bottom of the range.
func (p *SpawnPattern) SampleAltitude(r *rand.Rand) int {
	lo, hi := p.altitude[0], p.altitude[1]
	if hi-lo < 1000 {
		return lo
	}
	steps := (hi - lo) / 1000
	return lo + 1000*r.Intn(steps+1)
}

// seconds converts s to a Duration, capped at maxSpawnWait.
func seconds(s float64) time.Duration {
	if s >= maxSpawnWait.Seconds() {
		return maxSpawnWait
	}
	return time.Duration(s * float64(time.Second))
}

func randomWait(rate float32, r *rand.Rand) time.Duration {
	avg := 3600 / float64(rate)
	return seconds(avg * float64(math.Lerp(r.Float32(), .85, 1.15)))
}

// Wait from 0 up to the rate.
func randomInitialWait(rate float32, r *rand.Rand) time.Duration {
	if rate <= 0 {
		return time.Minute
	}
	return seconds(float64(r.Float32()) * 3600 / float64(rate))
}
