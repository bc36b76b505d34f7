package solarmap

import (
	"fmt"
	"log"

	"github.com/abworrall/helioflux/pkg/emath"
	"github.com/abworrall/helioflux/pkg/helio"
)

// A Map is a magnetogram as handed over by whatever loaded it: the metadata
// header, and the pixel grid.
type Map struct {
	Header
	Data emath.FloatGrid
}

func (m Map) String() string {
	return fmt.Sprintf("Map[%dx%d, detector '%s', %d keywords]", m.Data.Dx(), m.Data.Dy(), m.Detector(), len(m.Header))
}

func (m Map) Detector() string { return m.Header.Text("DETECTOR") }

// Observation pulls the observer geometry out of the header, using the key
// table in cfg.
func (m Map) Observation(cfg Config) (helio.Observation, error) {
	obs := helio.Observation{}
	keys := cfg.Keys

	fields := []struct {
		name string
		kl   KeyLookup
		dst  *float64
	}{
		{"B0", keys.B0, &obs.B0},
		{"L0", keys.L0, &obs.L0},
		{"X0", keys.X0, &obs.X0},
		{"Y0", keys.Y0, &obs.Y0},
		{"ScaleX", keys.ScaleX, &obs.ScaleX},
		{"ScaleY", keys.ScaleY, &obs.ScaleY},
	}

	for _, f := range fields {
		v, key, err := m.Lookup(f.name, f.kl)
		if err != nil {
			return obs, err
		}
		if cfg.Verbosity > 1 {
			log.Printf("%s = %v (from %s)\n", f.name, v, key)
		}
		*f.dst = v
	}

	rsun, err := m.rsunPixels(cfg, obs.ScaleX)
	if err != nil {
		return obs, err
	}
	obs.RsunPixels = rsun

	return obs, nil
}

// rsunPixels converts the reported solar radius into pixels.
func (m Map) rsunPixels(cfg Config, scaleX float64) (float64, error) {
	rsun, key, err := m.Lookup("Rsun", cfg.Keys.Rsun)
	if err != nil {
		return 0, err
	}

	divisor := scaleX
	if scaleKey, exists := cfg.RadiusScaleKeys[m.Detector()]; exists {
		if divisor, _, err = m.Lookup("RsunScale", KeyLookup{Primary: scaleKey}); err != nil {
			return 0, err
		}
		if cfg.Verbosity > 0 {
			log.Printf("detector %s: scaling %s by %s\n", m.Detector(), key, scaleKey)
		}
	}

	if !(divisor > 0) {
		return 0, fmt.Errorf("radius divisor for %s must be > 0, got %v", key, divisor)
	}

	return rsun / divisor, nil
}

// Context builds the geometry context for this map.
func (m Map) Context(cfg Config) (*helio.Context, error) {
	obs, err := m.Observation(cfg)
	if err != nil {
		return nil, fmt.Errorf("map metadata: %w", err)
	}

	c, err := helio.NewContext(obs, m.Data)
	if err != nil {
		return nil, err
	}

	if cfg.Verbosity > 0 {
		log.Printf("Built %s\n", c)
	}

	return c, nil
}
