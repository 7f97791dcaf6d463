package dispatch

import (
	"fmt"
	"math"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/samuelfneumann/energybaselines/agent"
	"github.com/samuelfneumann/energybaselines/environment"
)

const (
	// DefaultTrigger is the default dispatch trigger
	DefaultTrigger float64 = 200

	// DefaultField is the observation field holding the cumulative
	// mean dispatch price
	DefaultField string = "C_cumulative_mean_dispatch_[$/MWh]"
)

func init() {
	// Register ConfigList type so that it can be typed using
	// agent.TypedConfigList to help with serialization/deserialization.
	agent.Register(agent.ThresholdTriggerBaseline, ConfigList{})
}

// ConfigList implements functionality for storing a number of Config's
// in a simple manner. Instead of storing a slice of Configs, the
// ConfigList stores each field's values and constructs the list by
// every combination of field values.
type ConfigList struct {
	Trigger  []float64
	Field    []string
	Discount []float64
}

// NewConfigList returns a new ConfigList as an agent.TypedConfigList
// so that it can easily be JSON serialized/deserialized without
// knowing the underlying concrete type.
func NewConfigList(trigger []float64, field []string,
	discount []float64) agent.TypedConfigList {
	config := ConfigList{Trigger: trigger, Field: field, Discount: discount}
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

// Config represents a configuration for the Dispatch agent
type Config struct {
	Trigger  float64
	Field    string // Observation field to compare against Trigger
	Discount float64
}

// NewConfig returns a Config with the argument trigger, using the
// default observation field
func NewConfig(trigger float64) Config {
	return Config{Trigger: trigger, Field: DefaultField, Discount: 1.0}
}

// field returns the observation field the Config reads
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
	_, ok := a.(*Dispatch)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if math.IsNaN(c.Trigger) || math.IsInf(c.Trigger, 0) {
		return fmt.Errorf("validate: trigger must be finite, got %v",
			c.Trigger)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.ThresholdTriggerBaseline
}
