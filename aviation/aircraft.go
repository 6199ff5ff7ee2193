// aviation/aircraft.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/mmp/tracongen/util"
)

///////////////////////////////////////////////////////////////////////////
// WeightClass

type WeightClass string

const (
	WeightClassUnspecified WeightClass = ""
	WeightClassSmall       WeightClass = "S"
	WeightClassLarge       WeightClass = "L"
	WeightClassHeavy       WeightClass = "H"
	WeightClassSuper       WeightClass = "U"
)

var weightClasses = []WeightClass{WeightClassUnspecified, WeightClassSmall, WeightClassLarge,
	WeightClassHeavy, WeightClassSuper}

// ParseWeightClass accepts the single-letter weight class designators,
// case-insensitively. "J" (as used in FAA type designator tables) is an
// alias for super.
func ParseWeightClass(s string) (WeightClass, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "J" {
		return WeightClassSuper, nil
	}
	if wc := WeightClass(s); slices.Contains(weightClasses, wc) {
		return wc, nil
	}
	return WeightClassUnspecified, fmt.Errorf("%q: %w", s, ErrInvalidWeightClass)
}

func (w *WeightClass) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	wc, err := ParseWeightClass(s)
	if err != nil {
		return err
	}
	*w = wc
	return nil
}

func (w WeightClass) String() string {
	switch w {
	case WeightClassUnspecified:
		return "unspecified"
	case WeightClassSmall:
		return "small"
	case WeightClassLarge:
		return "large"
	case WeightClassHeavy:
		return "heavy"
	case WeightClassSuper:
		return "super"
	default:
		return "(unknown weight class " + string(w) + ")"
	}
}

///////////////////////////////////////////////////////////////////////////
// SRSCategory

// SRSCategory is the same-runway separation category of an aircraft type:
// 1-3, with 3 the most wake-turbulence significant. The zero value means
// the category is unknown.
type SRSCategory int

const (
	SRSUnknown SRSCategory = iota
	SRSCategory1
	SRSCategory2
	SRSCategory3
)

func (c SRSCategory) Known() bool {
	return c >= SRSCategory1 && c <= SRSCategory3
}

func (c SRSCategory) Valid() bool {
	return c == SRSUnknown || c.Known()
}

func (c SRSCategory) String() string {
	if !c.Known() {
		return "unknown"
	}
	return fmt.Sprintf("%d", int(c))
}

// SeparationCategories holds an aircraft type's category for each of the
// separation rule families.
type SeparationCategories struct {
	SRS   SRSCategory `json:"srs"`
	LAHSO int         `json:"lahso"`
	RECAT string      `json:"recat"`
	CWT   string      `json:"cwt"`
}

///////////////////////////////////////////////////////////////////////////
// AircraftTypeRecord

// AircraftTypeRecord is a single aircraft type definition as it appears in
// the aircraft catalog (openscope-aircraft.json format).
type AircraftTypeRecord struct {
	Name        string               `json:"name"`
	ICAO        string               `json:"icao"`
	WeightClass WeightClass          `json:"weightClass"`
	Category    SeparationCategories `json:"category"`
	// Equipment optionally gives the strip equipment suffix directly;
	// otherwise it's derived from Capability.
	Equipment  string `json:"equipment,omitempty"`
	Capability struct {
		ILS  bool `json:"ils"`
		RNAV bool `json:"rnav"`
		RVSM bool `json:"rvsm"`
	} `json:"capability"`
	Engines struct {
		Number int    `json:"number"`
		Type   string `json:"type"`
	} `json:"engines"`
	Ceiling float32 `json:"ceiling"`
	Rate    struct {
		Climb      float32 `json:"climb"` // ft / minute
		Descent    float32 `json:"descent"`
		Accelerate float32 `json:"accelerate"` // kts / 2 seconds
		Decelerate float32 `json:"decelerate"`
	} `json:"rate"`
	Runway struct {
		Takeoff float32 `json:"takeoff"` // nm
		Landing float32 `json:"landing"` // nm
	} `json:"runway"`
	Speed struct {
		Min        float32 `json:"min"`
		Landing    float32 `json:"landing"`
		CruiseTAS  float32 `json:"cruise"`
		CruiseMach float32 `json:"cruiseM"`
		MaxTAS     float32 `json:"max"`
		MaxMach    float32 `json:"maxM"`
	} `json:"speed"`
}

func (r *AircraftTypeRecord) check(e *util.ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	if *r == (AircraftTypeRecord{}) {
		e.ErrorString("empty aircraft type definition")
		return
	}

	if r.ICAO == "" {
		e.ErrorString("must specify \"icao\"")
	} else if n := len(r.ICAO); n < 2 || n > 4 || !util.IsAllLettersOrNumbers(r.ICAO) {
		e.ErrorString("\"icao\" %q is not a valid type designator", r.ICAO)
	}
	if !slices.Contains(weightClasses, r.WeightClass) {
		e.ErrorString("\"weightClass\" %q is not a valid weight class", string(r.WeightClass))
	}
	if !r.Category.SRS.Valid() {
		e.ErrorString("\"srs\" category %d must be 1, 2, or 3", int(r.Category.SRS))
	}
	if r.Equipment != "" && (len(r.Equipment) != 1 || !util.IsAllLetters(r.Equipment)) {
		e.ErrorString("\"equipment\" %q must be a single letter", r.Equipment)
	}
	if t := r.Engines.Type; t != "" && t != "P" && t != "T" && t != "J" {
		e.ErrorString("engine type %q should be \"P\", \"T\", or \"J\"", t)
	}
	if r.Rate.Climb < 0 || r.Rate.Descent < 0 || r.Rate.Accelerate < 0 || r.Rate.Decelerate < 0 {
		e.ErrorString("rates cannot be negative: %+v", r.Rate)
	}
	if r.Speed.Min < 0 || r.Speed.Landing < 0 || r.Speed.CruiseTAS < 0 || r.Speed.MaxTAS < 0 {
		e.ErrorString("speeds cannot be negative: %+v", r.Speed)
	}
}

///////////////////////////////////////////////////////////////////////////
// AircraftType

// AircraftType is the classification and performance data for a single
// aircraft type. It is a value type and is immutable once constructed, so
// it may be freely shared across goroutines.
type AircraftType struct {
	rec AircraftTypeRecord
}

// NewAircraftType validates the given record and returns the corresponding
// AircraftType. The returned error matches ErrTypeConstraint if the record
// does not describe an aircraft type.
func NewAircraftType(rec AircraftTypeRecord) (AircraftType, error) {
	var e util.ErrorLogger
	rec.ICAO = strings.ToUpper(rec.ICAO)
	rec.Equipment = strings.ToUpper(rec.Equipment)

	if rec.ICAO != "" {
		e.Push("Aircraft " + rec.ICAO)
	}
	rec.check(&e)
	if rec.ICAO != "" {
		e.Pop()
	}
	if err := e.Err(ErrTypeConstraint); err != nil {
		return AircraftType{}, err
	}

	// The nav code works with TAS, so convert if only mach was given.
	if rec.Speed.CruiseMach != 0 && rec.Speed.CruiseTAS == 0 {
		rec.Speed.CruiseTAS = 666.739 * rec.Speed.CruiseMach
	}
	if rec.Speed.MaxMach != 0 && rec.Speed.MaxTAS == 0 {
		rec.Speed.MaxTAS = 666.739 * rec.Speed.MaxMach
	}

	return AircraftType{rec: rec}, nil
}

func (t AircraftType) ICAO() string                     { return t.rec.ICAO }
func (t AircraftType) Name() string                     { return t.rec.Name }
func (t AircraftType) WeightClass() WeightClass         { return t.rec.WeightClass }
func (t AircraftType) SRS() SRSCategory                 { return t.rec.Category.SRS }
func (t AircraftType) Categories() SeparationCategories { return t.rec.Category }

// Record returns a copy of the record the type was built from.
func (t AircraftType) Record() AircraftTypeRecord { return t.rec }

// IsHeavyOrSuper returns true iff the type's weight class is heavy or
// super.
func (t AircraftType) IsHeavyOrSuper() bool {
	return t.rec.WeightClass == WeightClassHeavy || t.rec.WeightClass == WeightClassSuper
}

// EquipmentSuffix returns the equipment suffix shown after the type on a
// flight strip.
func (t AircraftType) EquipmentSuffix() string {
	if t.rec.Equipment != "" {
		return t.rec.Equipment
	}
	c := t.rec.Capability
	switch {
	case c.RVSM && c.RNAV:
		return "L"
	case c.RVSM:
		return "W"
	case c.RNAV:
		return "G"
	default:
		return "A"
	}
}

// StripViewType returns the aircraft type as shown on a flight strip,
// e.g. "B737/L" or "H/B744/L". Heavy and super aircraft both get the "H/"
// prefix.
func (t AircraftType) StripViewType() string {
	s := t.rec.ICAO + "/" + t.EquipmentSuffix()
	if t.IsHeavyOrSuper() {
		s = "H/" + s
	}
	return s
}

// TakeoffAcceleration returns the type's acceleration in knots per two
// seconds, with a generic jet value if the catalog didn't provide one.
func (t AircraftType) TakeoffAcceleration() float32 {
	if t.rec.Rate.Accelerate > 0 {
		return t.rec.Rate.Accelerate
	}
	return 5
}

// WithSRS returns a copy of the type with its same-runway separation
// category replaced; t is unchanged.
func (t AircraftType) WithSRS(c SRSCategory) (AircraftType, error) {
	if !c.Valid() {
		return AircraftType{}, fmt.Errorf("%d: %w", int(c), ErrInvalidSRSCategory)
	}
	t.rec.Category.SRS = c
	return t, nil
}

// WithWeightClass returns a copy of the type with its weight class
// replaced; t is unchanged.
func (t AircraftType) WithWeightClass(w WeightClass) (AircraftType, error) {
	if !slices.Contains(weightClasses, w) {
		return AircraftType{}, fmt.Errorf("%q: %w", string(w), ErrInvalidWeightClass)
	}
	t.rec.WeightClass = w
	return t, nil
}

func (t AircraftType) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("icao", t.rec.ICAO),
		slog.String("weight_class", t.rec.WeightClass.String()),
		slog.String("srs", t.rec.Category.SRS.String()))
}
