package solarmap

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abworrall/helioflux/pkg/emath"
)

func exampleHeader() Header {
	return Header{
		"DETECTOR": "HMI",
		"B0":       1.5,
		"L0":       10,
		"X0":       512.0,
		"Y0":       "512.0",
		"CDELT1":   1.0,
		"CDELT2":   1.0,
		"RSUN_OBS": 500.0,
	}
}

func TestHeaderLookup_Fallback(t *testing.T) {
	h := Header{"OBS_B0": 3.25}

	v, key, err := h.Lookup("B0", KeyLookup{"B0", "OBS_B0"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if v != 3.25 || key != "OBS_B0" {
		t.Errorf("Lookup = (%v, %s), want (3.25, OBS_B0)", v, key)
	}
}

func TestHeaderLookup_PrimaryWins(t *testing.T) {
	h := Header{"B0": 1.0, "OBS_B0": 2.0}

	v, key, err := h.Lookup("B0", KeyLookup{"B0", "OBS_B0"})
	if err != nil || v != 1.0 || key != "B0" {
		t.Errorf("Lookup = (%v, %s, %v), want (1, B0, nil)", v, key, err)
	}
}

func TestHeaderLookup_CaseInsensitive(t *testing.T) {
	h := Header{"img_x0": 100}

	if v, _, err := h.Lookup("X0", KeyLookup{"X0", "IMG_X0"}); err != nil || v != 100 {
		t.Errorf("Lookup = (%v, %v), want (100, nil)", v, err)
	}
}

func TestHeaderLookup_Missing(t *testing.T) {
	h := Header{"SOMETHING": 1}

	_, _, err := h.Lookup("L0", KeyLookup{"L0", "OBS_L0"})
	var mme *MissingMetadataError
	if !errors.As(err, &mme) {
		t.Fatalf("Lookup error = %v, want *MissingMetadataError", err)
	}
	if mme.Field != "L0" || len(mme.Keys) != 2 {
		t.Errorf("error = %+v, want field L0 with two keys", mme)
	}
	if !strings.Contains(err.Error(), "OBS_L0") {
		t.Errorf("error text %q doesn't name the keys tried", err)
	}
}

func TestHeaderLookup_BadValue(t *testing.T) {
	h := Header{"B0": "not a number"}

	_, _, err := h.Lookup("B0", KeyLookup{"B0", "OBS_B0"})
	var mme *MissingMetadataError
	if err == nil || errors.As(err, &mme) {
		t.Errorf("Lookup error = %v, want a parse error", err)
	}
}

func TestMapObservation(t *testing.T) {
	m := Map{Header: exampleHeader(), Data: emath.NewFloatGrid(4, 4)}

	obs, err := m.Observation(NewConfig())
	if err != nil {
		t.Fatalf("Observation: %v", err)
	}

	if obs.B0 != 1.5 || obs.L0 != 10 || obs.X0 != 512 || obs.Y0 != 512 {
		t.Errorf("obs = %s, geometry wrong", obs)
	}
	if obs.RsunPixels != 500 {
		t.Errorf("RsunPixels = %v, want 500", obs.RsunPixels)
	}
}

func TestMapObservation_SPMGRadius(t *testing.T) {
	h := exampleHeader()
	h["DETECTOR"] = "SPMG"
	h["CDELT1"] = 2.0
	h["SCALE"] = 1.25
	m := Map{Header: h, Data: emath.NewFloatGrid(4, 4)}

	obs, err := m.Observation(NewConfig())
	if err != nil {
		t.Fatalf("Observation: %v", err)
	}
	if want := 500 / 1.25; obs.RsunPixels != want {
		t.Errorf("SPMG RsunPixels = %v, want %v", obs.RsunPixels, want)
	}

	delete(h, "SCALE")
	_, err = m.Observation(NewConfig())
	var mme *MissingMetadataError
	if !errors.As(err, &mme) || mme.Field != "RsunScale" {
		t.Errorf("SPMG without SCALE: err = %v, want missing RsunScale", err)
	}
}

func TestMapContext_MissingMetadata(t *testing.T) {
	h := exampleHeader()
	delete(h, "X0")
	m := Map{Header: h, Data: emath.NewFloatGrid(4, 4)}

	_, err := m.Context(NewConfig())
	var mme *MissingMetadataError
	if !errors.As(err, &mme) {
		t.Fatalf("Context error = %v, want *MissingMetadataError", err)
	}
	if mme.Field != "X0" {
		t.Errorf("missing field = %s, want X0", mme.Field)
	}
}

func TestMapContext(t *testing.T) {
	g := emath.NewFloatGrid(1024, 1024)
	g.Fill(10)
	m := Map{Header: exampleHeader(), Data: g}

	c, err := m.Context(NewConfig())
	if err != nil {
		t.Fatalf("Context: %v", err)
	}
	hc := c.Projector().Point(512, 512)
	if math.Abs(hc.Lon) > 1e-9 || math.Abs(hc.Lat) > 1e-9 {
		t.Errorf("disk centre = %s, want (0,0)", hc)
	}
}

func TestNewConfigFromYaml_OverlaysDefaults(t *testing.T) {
	cfg, err := newConfigFromYaml([]byte(`
verbosity: 2
keys:
  rsun: {primary: RADIUS, fallback: RSUN_OBS}
radiusscalekeys:
  MDI: PIXSCALE
`))
	if err != nil {
		t.Fatalf("newConfigFromYaml: %v", err)
	}

	if cfg.Verbosity != 2 {
		t.Errorf("Verbosity = %d, want 2", cfg.Verbosity)
	}
	if cfg.Keys.Rsun.Primary != "RADIUS" {
		t.Errorf("Rsun key = %+v, want RADIUS first", cfg.Keys.Rsun)
	}
	if cfg.Keys.B0 != DefaultKeyTable().B0 {
		t.Errorf("B0 key = %+v, want the default", cfg.Keys.B0)
	}
	if cfg.RadiusScaleKeys["SPMG"] != "SCALE" || cfg.RadiusScaleKeys["MDI"] != "PIXSCALE" {
		t.Errorf("RadiusScaleKeys = %v, want SPMG and MDI", cfg.RadiusScaleKeys)
	}
	if !strings.Contains(cfg.AsYaml(), "RADIUS") {
		t.Errorf("AsYaml doesn't round the Rsun key through:\n%s", cfg.AsYaml())
	}
}

func TestNewMapFromYaml(t *testing.T) {
	m, err := NewMapFromYaml([]byte(`
header:
  DETECTOR: HMI
  OBS_B0: 0
  OBS_L0: 0
  IMG_X0: 1
  IMG_Y0: 1
  CDELT1: 1.0
  CDELT2: 1.0
  RSUN_OBS: 1
rows:
  - [1, 2, 3]
  - [4, 5, 6]
  - [7, 8, 9]
`))
	if err != nil {
		t.Fatalf("NewMapFromYaml: %v", err)
	}
	if m.Data.Dx() != 3 || m.Data.Dy() != 3 || m.Data.Get(2, 1) != 6 {
		t.Errorf("data = %s, want 3x3 with 6 at (2,1)", m.Data.Stats())
	}
	if m.Detector() != "HMI" {
		t.Errorf("Detector = %q, want HMI", m.Detector())
	}
	if _, err := m.Context(NewConfig()); err != nil {
		t.Errorf("Context: %v", err)
	}
}

func TestNewMapFromYaml_Fill(t *testing.T) {
	m, err := NewMapFromYaml([]byte("width: 8\nheight: 4\nfill: -2.5\n"))
	if err != nil {
		t.Fatalf("NewMapFromYaml: %v", err)
	}
	if m.Data.Dx() != 8 || m.Data.Dy() != 4 || m.Data.Get(7, 3) != -2.5 {
		t.Errorf("data = %s, want 8x4 filled with -2.5", m.Data.Stats())
	}

	if _, err := NewMapFromYaml([]byte("header: {B0: 1}\n")); err == nil {
		t.Error("expected error for a document with no pixels")
	}
}

func TestLoadMap(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "obs.yaml")
	if err := os.WriteFile(filename, []byte("width: 2\nheight: 2\nfill: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadMap(filename); err != nil {
		t.Errorf("LoadMap: %v", err)
	}
	if _, err := LoadMap(filepath.Join(dir, "obs.fits")); err == nil {
		t.Error("expected error for a non-yaml file")
	}
	if _, err := LoadMap(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}
