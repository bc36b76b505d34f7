package solarmap

import (
	"log"

	"gopkg.in/yaml.v2"
)

/* Example config file ...

verbosity: 1
keys:
  b0: {primary: B0, fallback: OBS_B0}
  rsun: {primary: RSUN_OBS, fallback: RADIUS}
radiusscalekeys:
  SPMG: SCALE

*/

type Config struct {
	Verbosity int

	Keys KeyTable // Which header keywords hold each observation field

	// Most instruments report RSUN_OBS in arcsec, which we divide by the x
	// pixel scale. The detectors listed here need dividing by a different
	// header keyword instead.
	RadiusScaleKeys map[string]string
}

func NewConfig() Config {
	return Config{
		Keys: DefaultKeyTable(),
		RadiusScaleKeys: map[string]string{
			"SPMG": "SCALE",
		},
	}
}

// newConfigFromYaml overlays the yaml onto the defaults, so a config file
// only needs to list the keys it wants to change.
func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func (c Config) AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}
