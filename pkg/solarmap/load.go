package solarmap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/helioflux/pkg/emath"
)

/* Example observation file. Either list the rows, or give a size and a
   fill value for a uniform field.

header:
  DETECTOR: HMI
  OBS_B0: 0
  OBS_L0: 0
  IMG_X0: 512
  IMG_Y0: 512
  CDELT1: 1.0
  CDELT2: 1.0
  RSUN_OBS: 500
width: 1024
height: 1024
fill: 100

*/

type document struct {
	Header Header
	Width  int
	Height int
	Fill   float64
	Rows   [][]float64
}

// NewMapFromYaml parses an observation document.
func NewMapFromYaml(b []byte) (Map, error) {
	doc := document{}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Map{}, fmt.Errorf("parse: %v", err)
	}

	m := Map{Header: doc.Header}
	if m.Header == nil {
		m.Header = Header{}
	}

	switch {
	case len(doc.Rows) > 0:
		g, err := emath.NewFloatGridFromRows(doc.Rows)
		if err != nil {
			return m, fmt.Errorf("rows: %v", err)
		}
		m.Data = g

	case doc.Width > 0 && doc.Height > 0:
		m.Data = emath.NewFloatGrid(doc.Width, doc.Height)
		m.Data.Fill(doc.Fill)

	default:
		return m, fmt.Errorf("no pixel data: need rows, or width and height")
	}

	return m, nil
}

func LoadMap(filename string) (Map, error) {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".yaml" && ext != ".yml" {
		return Map{}, fmt.Errorf("map %s: only yaml observation files are supported", filename)
	}

	contents, err := os.ReadFile(filename)
	if err != nil {
		return Map{}, fmt.Errorf("map read %s: %v", filename, err)
	}

	m, err := NewMapFromYaml(contents)
	if err != nil {
		return m, fmt.Errorf("map %s: %v", filename, err)
	}
	return m, nil
}

func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	return newConfigFromYaml(contents)
}
