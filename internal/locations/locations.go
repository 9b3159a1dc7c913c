package locations

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locations.yaml
var locationsYAML []byte

type State struct {
	Code   string   `yaml:"code" json:"code"`
	Name   string   `yaml:"name" json:"name"`
	Cities []string `yaml:"cities" json:"cities"`
}

// Directory is the static list profile and inquiry locations are checked against.
type Directory struct {
	States []State `yaml:"states" json:"states"`
	byCode map[string]*State
}

var (
	defaultOnce sync.Once
	defaultDir  *Directory
)

// Default returns the embedded directory. It panics if the embedded file is malformed.
func Default() *Directory {
	defaultOnce.Do(func() {
		d, err := Parse(locationsYAML)
		if err != nil {
			panic(fmt.Sprintf("locations: embedded data is invalid: %v", err))
		}
		defaultDir = d
	})
	return defaultDir
}

func Parse(data []byte) (*Directory, error) {
	var d Directory
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse locations: %w", err)
	}
	d.byCode = make(map[string]*State, len(d.States))
	for i := range d.States {
		code := strings.ToUpper(d.States[i].Code)
		if code == "" {
			return nil, fmt.Errorf("state at index %d has no code", i)
		}
		if _, dup := d.byCode[code]; dup {
			return nil, fmt.Errorf("duplicate state code %s", code)
		}
		d.byCode[code] = &d.States[i]
	}
	return &d, nil
}

func (d *Directory) ValidState(code string) bool {
	_, ok := d.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// ValidCity reports whether city is listed under state. Matching ignores case.
func (d *Directory) ValidCity(state, city string) bool {
	s, ok := d.byCode[strings.ToUpper(strings.TrimSpace(state))]
	if !ok {
		return false
	}
	city = strings.TrimSpace(city)
	for _, c := range s.Cities {
		if strings.EqualFold(c, city) {
			return true
		}
	}
	return false
}

// CanonicalCity returns the listed spelling of city, or "" when unknown.
func (d *Directory) CanonicalCity(state, city string) string {
	s, ok := d.byCode[strings.ToUpper(strings.TrimSpace(state))]
	if !ok {
		return ""
	}
	city = strings.TrimSpace(city)
	for _, c := range s.Cities {
		if strings.EqualFold(c, city) {
			return c
		}
	}
	return ""
}
