package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/coppahp/planner/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultForces are always on the roster and cannot be removed.
var DefaultForces = []string{"blue", "red"}

// ForceRoster is the ordered list of teams every project is planned for.
type ForceRoster struct {
	Forces []string
}

func DefaultRoster() ForceRoster {
	return ForceRoster{Forces: slices.Clone(DefaultForces)}
}

func (r ForceRoster) Contains(name string) bool {
	return slices.Contains(r.Forces, normalizeForce(name))
}

// Add returns a roster with name appended. Names are stored lowercase.
func (r ForceRoster) Add(name string) (ForceRoster, error) {
	name = normalizeForce(name)
	if err := domain.ValidateTeamName(name); err != nil {
		return r, err
	}
	if r.Contains(name) {
		return r, fmt.Errorf("force %q already exists", name)
	}
	return ForceRoster{Forces: append(slices.Clone(r.Forces), name)}, nil
}

// Remove returns a roster without name. The default forces stay.
func (r ForceRoster) Remove(name string) (ForceRoster, error) {
	name = normalizeForce(name)
	if slices.Contains(DefaultForces, name) {
		return r, fmt.Errorf("force %q cannot be removed", name)
	}
	i := slices.Index(r.Forces, name)
	if i < 0 {
		return r, fmt.Errorf("force %q: %w", name, domain.ErrNotFound)
	}
	return ForceRoster{Forces: slices.Delete(slices.Clone(r.Forces), i, i+1)}, nil
}

func normalizeForce(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// LoadForces reads the roster file. A missing file yields the default
// roster. The file holds a plain list; a JSON array parses as YAML.
func LoadForces(path string) (ForceRoster, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultRoster(), nil
	}
	if err != nil {
		return ForceRoster{}, fmt.Errorf("reading forces file: %w", err)
	}

	var forces []string
	if err := yaml.Unmarshal(data, &forces); err != nil {
		return ForceRoster{}, fmt.Errorf("parsing forces file %s: %w", path, err)
	}
	if len(forces) == 0 {
		return DefaultRoster(), nil
	}
	return ForceRoster{Forces: forces}, nil
}

// SaveForces writes the roster as a JSON array, which the YAML reader
// and older dashboards both accept.
func SaveForces(path string, r ForceRoster) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating forces directory: %w", err)
	}
	data, err := json.Marshal(r.Forces)
	if err != nil {
		return fmt.Errorf("encoding forces: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing forces file: %w", err)
	}
	return nil
}

// RosterFile persists the roster at Path.
type RosterFile struct {
	Path string
}

func (f RosterFile) Load() (ForceRoster, error) { return LoadForces(f.Path) }

func (f RosterFile) Save(r ForceRoster) error { return SaveForces(f.Path, r) }
