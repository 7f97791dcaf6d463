package battery

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/energybaselines/agent"
	"github.com/samuelfneumann/energybaselines/agent/baseline"
	"github.com/samuelfneumann/energybaselines/environment"
)

// DefaultField is the observation field holding the hour of the day
const DefaultField string = "D_hour"

func init() {
	// Register ConfigList type so that it can be typed using
	// agent.TypedConfigList to help with serialization/deserialization.
	agent.Register(agent.RuleOfThumbBattery, ConfigList{})
}

// ConfigList implements functionality for storing a number of Config's
// in a simple manner. Instead of storing a slice of Configs, the
// ConfigList stores each field's values and constructs the list by
// every combination of field values.
type ConfigList struct {
	Field    []string
	Windows  [][]Window
	Fallback []float64
	Discount []float64
}

// Config returns an empty Config that is of the type stored by
// ConfigList
func (c ConfigList) Config() agent.Config {
	return Config{}
}

// Type returns the type of agent that can be constructed by Config's
// stored by the list
func (c ConfigList) Type() agent.Type {
	return c.Config().Type()
}

// NumFields returns the number of settable fields for the ConfigList
func (c ConfigList) NumFields() int {
	rValue := reflect.ValueOf(c)
	return rValue.NumField()
}

// Len returns the number of Configs stored by the list
func (c ConfigList) Len() int {
	return agent.ListLen(c)
}

// Config represents a configuration of the rule-of-thumb battery rule
type Config struct {
	Field    string // Observation field holding the hour
	Windows  []Window
	Fallback float64 // Selected when no window holds
	Discount float64
}

// LegacyConfig returns the rule exactly as it was originally written
func LegacyConfig() Config {
	return Config{
		Field: DefaultField,
		Windows: []Window{
			{Hours: r1.Interval{Min: 23, Max: 9}, MaxRate: 10, Reward: 3},
			{Hours: r1.Interval{Min: 9, Max: 23}, MaxRate: 10, Reward: 2},
		},
		Fallback: -7,
		Discount: 1.0,
	}
}

// CreateAgent always returns an error. A missing observation field is
// reported first, and otherwise the defects found by Audit are returned
// as an *AuditError.
func (c Config) CreateAgent(env environment.Environment, _ uint64,
	logger zerolog.Logger) (agent.Agent, error) {
	base, err := baseline.NewBase(env, c.Discount, logger)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}

	field := c.Field
	if field == "" {
		field = DefaultField
	}
	if _, err := base.Field(field); err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}

	err = c.Validate()
	for _, d := range Audit(c) {
		base.Logger().Warn().Err(d.Err).Str("detail", d.Detail).
			Msg("battery rule defect")
	}
	return nil, fmt.Errorf("createAgent: %w", err)
}

// ValidAgent returns false, as no agent can be constructed from the
// rule
func (c Config) ValidAgent(agent.Agent) bool {
	return false
}

// Validate returns the defects of the rule as an *AuditError
func (c Config) Validate() error {
	return &AuditError{Defects: Audit(c)}
}

// Type returns the type of the agent described by the Config
func (c Config) Type() agent.Type {
	return agent.RuleOfThumbBattery
}
