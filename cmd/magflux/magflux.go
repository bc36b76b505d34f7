package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/abworrall/helioflux/pkg/fluxstats"
	"github.com/abworrall/helioflux/pkg/helio"
	"github.com/abworrall/helioflux/pkg/solarmap"
)

var (
	fVerbosity  int
	fConfigFile string
	fAt         string
	fQuantity   string
	fAreaUnit   float64
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fConfigFile, "config", "", "yaml file with header keyword overrides")
	flag.StringVar(&fAt, "at", "", "just report on one pixel, given as row,col")
	flag.StringVar(&fQuantity, "quantity", "flux", "what to report with -at: "+strings.Join(helio.Quantities(), ", "))
	flag.Float64Var(&fAreaUnit, "areaunit", 1e14, "histogram resolution for area (cm^2) and flux (Mx)")
}

func main() {
	flag.Parse()
	log.Printf("magflux starting\n")

	if flag.NArg() != 1 {
		log.Fatal("usage: magflux [flags] observation.yaml")
	}

	cfg := solarmap.NewConfig()
	if fConfigFile != "" {
		var err error
		if cfg, err = solarmap.LoadConfig(fConfigFile); err != nil {
			log.Fatal(err)
		}
	}
	cfg.Verbosity = verbosity(cfg.Verbosity, fVerbosity, flagWasSet("v"))

	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	m, err := solarmap.LoadMap(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Loaded %s\n", m)

	ctx, err := m.Context(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if fAt != "" {
		if err := reportPixel(ctx, fAt, fQuantity); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := reportGrids(ctx, fAreaUnit); err != nil {
		log.Fatal(err)
	}
}

// flagWasSet reports whether the named flag was given on the command line.
func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// verbosity lets -v override the config file, but only when it was given.
func verbosity(fromConfig, fromFlag int, flagSet bool) int {
	if flagSet {
		return fromFlag
	}
	return fromConfig
}

func parseRowCol(s string) (int, int, error) {
	bits := strings.Split(s, ",")
	if len(bits) != 2 {
		return 0, 0, fmt.Errorf("pixel '%s': want row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(bits[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("pixel row '%s': %v", bits[0], err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(bits[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("pixel col '%s': %v", bits[1], err)
	}
	return row, col, nil
}

func reportPixel(ctx *helio.Context, at, quantity string) error {
	row, col, err := parseRowCol(at)
	if err != nil {
		return err
	}
	q, err := ctx.Quantity(quantity)
	if err != nil {
		return err
	}

	p := ctx.Projector()
	fmt.Printf("pixel (%d,%d): radius %.2fpx, heliographic %s\n", row, col,
		p.RadialDistance(float64(row), float64(col)), p.Point(float64(row), float64(col)))
	fmt.Printf("  raw  : %g\n", ctx.Intensity(row, col))
	fmt.Printf("  %-5s: %g\n", q.Name(), q.Point(row, col))
	return nil
}

func reportGrids(ctx *helio.Context, unit float64) error {
	log.Printf("Computing grids for %s\n", ctx)

	area, err := fluxstats.Summarize(ctx.Area().Grid(), unit)
	if err != nil {
		return fmt.Errorf("area: %v", err)
	}
	los, err := fluxstats.Summarize(ctx.LineOfSight().Grid(), 1)
	if err != nil {
		return fmt.Errorf("los: %v", err)
	}
	flux := ctx.Flux().Grid()
	fluxSummary, err := fluxstats.Summarize(flux, unit)
	if err != nil {
		return fmt.Errorf("flux: %v", err)
	}

	fmt.Printf("area (cm^2) : %s\n", area)
	fmt.Printf("field (G)   : %s\n", los)
	fmt.Printf("flux (Mx)   : %s\n", fluxSummary)
	fmt.Printf("totals (Mx) : %s\n", fluxstats.Totals(flux))
	return nil
}
