// cmd/trafficgen/main.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// trafficgen loads an airport's spawn patterns along with an aircraft
// catalog and prints the traffic they generate over a period of time.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	av "github.com/mmp/tracongen/aviation"
	"github.com/mmp/tracongen/log"
	"github.com/mmp/tracongen/nav"
	"github.com/mmp/tracongen/sim"
	"github.com/mmp/tracongen/util"

	"github.com/goforj/godump"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var (
	airportFilename  = flag.String("airport", "", "airport traffic configuration (JSON, optionally .zst compressed)")
	aircraftFilename = flag.String("aircraft", "", "aircraft catalog in openscope format (JSON, optionally .zst compressed)")
	seed             = flag.Int64("seed", 0, "random seed; 0 uses the current time")
	duration         = flag.Duration("duration", time.Hour, "simulated time to generate traffic for")
	step             = flag.Duration("step", time.Second, "simulation time step")
	logLevel         = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir           = flag.String("logdir", "", "log file directory")
	cacheDir         = flag.String("cachedir", "", "directory for cached aircraft catalogs")
	lint             = flag.Bool("lint", false, "check the airport configuration and exit")
	dump             = flag.Bool("dump", false, "dump the loaded airport configuration")
	configFilename   = flag.String("config", "", "optional JSON/YAML/TOML file with settings")
)

// loadSettings merges, in increasing order of precedence, built-in
// defaults, the config file, TRACONGEN_* environment variables, and any
// flags given on the command line.
func loadSettings() (*viper.Viper, error) {
	v := viper.New()
	flag.VisitAll(func(f *flag.Flag) {
		v.SetDefault(f.Name, f.DefValue)
	})

	v.SetEnvPrefix("TRACONGEN")
	v.AutomaticEnv()

	if *configFilename != "" {
		v.SetConfigFile(*configFilename)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		v.Set(f.Name, f.Value.String())
	})
	return v, nil
}

func main() {
	flag.Parse()

	settings, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", *configFilename, err)
		os.Exit(1)
	}

	lg := log.New(settings.GetString("loglevel"), settings.GetString("logdir"))

	airportPath, aircraftPath := settings.GetString("airport"), settings.GetString("aircraft")
	if airportPath == "" || aircraftPath == "" {
		fmt.Fprintf(os.Stderr, "both -airport and -aircraft must be specified\n")
		flag.Usage()
		os.Exit(1)
	}

	cache := &util.ObjectCache{Dir: settings.GetString("cachedir")}

	var catalog *av.AircraftCatalog
	var airport *sim.AirportConfig
	var eg errgroup.Group
	eg.Go(func() error {
		var err error
		catalog, err = av.LoadAircraftCatalogFile(aircraftPath, cache, lg)
		return err
	})
	eg.Go(func() error {
		var err error
		airport, err = sim.LoadAirportConfigFile(airportPath)
		return err
	})
	if err := eg.Wait(); err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if settings.GetBool("dump") {
		godump.Dump(airport)
	}

	loc, err := nav.NewCachedLocator(airport.FixDB(), 1024)
	if err != nil {
		lg.Errorf("%v", err)
		os.Exit(1)
	}

	patterns, err := sim.NewTrafficPatterns(airport, loc)
	if err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	var e util.ErrorLogger
	patterns.CheckAircraftTypes(catalog, &e)
	if e.HaveErrors() {
		e.PrintErrors(lg)
		os.Exit(1)
	}
	lg.Infof("%s: %d spawn patterns, %d fixes cached", patterns.ICAO, patterns.Len(), loc.CachedFixes())

	if settings.GetBool("lint") {
		fmt.Printf("%s: %d spawn patterns OK\n", airportPath, patterns.Len())
		return
	}

	s := settings.GetInt64("seed")
	if s == 0 {
		s = time.Now().UnixNano()
	}
	gen := sim.NewGenerator(patterns, catalog, s, lg)

	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	events := gen.Run(start, settings.GetDuration("duration"), settings.GetDuration("step"))

	var sb strings.Builder
	for _, ev := range events {
		sb.WriteString(ev.String())
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())

	lg.Info("generated traffic", "events", len(events), "pending_departures", gen.PendingDepartures())
}
