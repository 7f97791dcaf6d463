package flex

import (
	"fmt"
	"math"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/samuelfneumann/energybaselines/agent"
	"github.com/samuelfneumann/energybaselines/environment"
)

// DefaultField is the observation field holding the hour of the day
const DefaultField string = "C_hour"

func init() {
	// Register ConfigList type so that it can be typed using
	// agent.TypedConfigList to help with serialization/deserialization.
	agent.Register(agent.TimeWindowFlexBaseline, ConfigList{})
}

// ConfigList implements functionality for storing a number of Config's
// in a simple manner. Instead of storing a slice of Configs, the
// ConfigList stores each field's values and constructs the list by
// every combination of field values.
type ConfigList struct {
	Hours    [][]float64
	Field    []string
	Discount []float64
}

// NewConfigList returns a new ConfigList as an agent.TypedConfigList
// so that it can easily be JSON serialized/deserialized without
// knowing the underlying concrete type.
func NewConfigList(hours [][]float64, field []string,
	discount []float64) agent.TypedConfigList {
	config := ConfigList{Hours: hours, Field: field, Discount: discount}
	return agent.NewTypedConfigList(config)
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

// Config represents a configuration for the Flex agent
type Config struct {
	Hours    []float64 // Hours to flex in
	Field    string    // Observation field holding the hour
	Discount float64
}

// NewConfig returns a Config flexing in the argument hours, using the
// default observation field
func NewConfig(hours ...float64) Config {
	return Config{Hours: hours, Field: DefaultField, Discount: 1.0}
}

func (c Config) field() string {
	if c.Field == "" {
		return DefaultField
	}
	return c.Field
}

// CreateAgent creates the agent from the Config
func (c Config) CreateAgent(env environment.Environment, _ uint64,
	logger zerolog.Logger) (agent.Agent, error) {
	return New(env, c.Discount, c, logger)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*Flex)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if len(c.Hours) == 0 {
		return fmt.Errorf("validate: no hours to flex in")
	}
	for _, h := range c.Hours {
		if math.IsNaN(h) || h < 0 || h >= 24 {
			return fmt.Errorf("validate: hour %v outside [0, 24)", h)
		}
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.TimeWindowFlexBaseline
}
