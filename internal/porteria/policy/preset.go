package policy

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

const toleranceNone = "none"

// Tolerance is a grace window in minutes, or "none" meaning the time
// restriction is not applied at all.
type Tolerance struct {
	none    bool
	minutes int
}

// NoTolerance disables the schedule check for the rule it is set on.
func NoTolerance() Tolerance { return Tolerance{none: true} }

// Minutes returns a grace window of n minutes. Negative n is clamped to 0.
func Minutes(n int) Tolerance {
	if n < 0 {
		n = 0
	}
	return Tolerance{minutes: n}
}

func (t Tolerance) IsNone() bool { return t.none }

func (t Tolerance) Minutes() int { return t.minutes }

func (t Tolerance) String() string {
	if t.none {
		return toleranceNone
	}
	return strconv.Itoa(t.minutes)
}

// ParseTolerance accepts "none" (any case) or a non-negative integer.
func ParseTolerance(s string) (Tolerance, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, toleranceNone) {
		return NoTolerance(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Tolerance{}, fmt.Errorf("tolerance must be %q or a non-negative integer, got %q", toleranceNone, s)
	}
	return Minutes(n), nil
}

func (t Tolerance) MarshalJSON() ([]byte, error) {
	if t.none {
		return json.Marshal(toleranceNone)
	}
	return json.Marshal(t.minutes)
}

func (t *Tolerance) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := ParseTolerance(s)
		if err != nil {
			return err
		}
		*t = v
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("tolerance: %w", err)
	}
	if n < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %d", n)
	}
	*t = Minutes(n)
	return nil
}

// UnmarshalText lets YAML scalars ("none", "15") and env values decode into a Tolerance.
func (t *Tolerance) UnmarshalText(b []byte) error {
	v, err := ParseTolerance(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t Tolerance) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Rule is the entry or exit half of a preset.
type Rule struct {
	Allowed    bool      `yaml:"allowed" json:"allowed"`
	BySchedule bool      `yaml:"by_schedule" json:"by_schedule"`
	Tolerance  Tolerance `yaml:"tolerance_minutes" json:"tolerance_minutes"`
}

// Preset holds the entry and exit rules of one access_rule_preset.
type Preset struct {
	Entry Rule `yaml:"entry" json:"entry"`
	Exit  Rule `yaml:"exit" json:"exit"`
}

// Table maps an organization's access_rule_preset key to its rules.
// It is read-only after construction.
type Table struct {
	presets map[string]Preset
}

func NewTable(presets map[string]Preset) *Table {
	cp := make(map[string]Preset, len(presets))
	for k, v := range presets {
		cp[k] = v
	}
	return &Table{presets: cp}
}

// Lookup returns the preset for key. A missing key yields the zero Preset,
// whose flags are all false, and ok=false.
func (t *Table) Lookup(key string) (Preset, bool) {
	if t == nil {
		return Preset{}, false
	}
	p, ok := t.presets[key]
	return p, ok
}

// Keys lists the configured preset keys in sorted order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.presets))
}

// Defaults is the preset table shipped with the service. Config files may
// replace it entirely.
func Defaults() map[string]Preset {
	return map[string]Preset{
		"acceso_total": {
			Entry: Rule{Allowed: true},
			Exit:  Rule{Allowed: true},
		},
		"horario_flexible": {
			Entry: Rule{Allowed: true, Tolerance: NoTolerance()},
			Exit:  Rule{Allowed: true},
		},
		"horario_estricto": {
			Entry: Rule{Allowed: true, BySchedule: true, Tolerance: Minutes(15)},
			Exit:  Rule{Allowed: true},
		},
		"solo_funcionarios": {
			Entry: Rule{Allowed: false},
			Exit:  Rule{Allowed: true},
		},
	}
}
