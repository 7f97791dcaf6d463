package agent

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/samuelfneumann/energybaselines/environment"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes. The
	// logger is owned by the created agent.
	CreateAgent(env environment.Environment, seed uint64,
		logger zerolog.Logger) (Agent, error)

	// ValidAgent returns whether the argument agent is valid for the
	// Config
	ValidAgent(Agent) bool

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of agent the Config creates
	Type() Type
}

// ConfigList stores a number of Configs in a compact manner. Instead
// of storing a slice of Configs, a ConfigList stores a slice of values
// for each field of the Config and describes every combination of
// those field values.
//
// Each field of a concrete ConfigList must be a slice, and must have
// the same name as the Config field it holds values for.
type ConfigList interface {
	// Config returns an empty Config of the type stored by the list
	Config() Config

	// Type returns the type of agent the Configs in the list create
	Type() Type

	// NumFields returns the number of settable fields
	NumFields() int

	// Len returns the number of Configs stored by the list
	Len() int
}

// ConfigAt returns the Config at index i in the argument ConfigList.
// Combinations are enumerated with the first field varying fastest.
func ConfigAt(i int, c ConfigList) (Config, error) {
	if i < 0 || i >= c.Len() {
		return nil, fmt.Errorf("configAt: index %v out of range [0, %v)", i,
			c.Len())
	}

	list := reflect.ValueOf(c)
	config := reflect.New(reflect.TypeOf(c.Config())).Elem()

	for j := 0; j < list.NumField(); j++ {
		name := list.Type().Field(j).Name
		values := list.Field(j)
		if values.Kind() != reflect.Slice {
			return nil, fmt.Errorf("configAt: field %v of %T is not a slice",
				name, c)
		}

		field := config.FieldByName(name)
		if !field.IsValid() {
			return nil, fmt.Errorf("configAt: %T has no field %v",
				c.Config(), name)
		}

		n := values.Len()
		field.Set(values.Index(i % n))
		i /= n
	}

	return config.Interface().(Config), nil
}

// ListLen returns the number of Configs described by the argument
// ConfigList, which is the product of the lengths of its fields.
// Concrete ConfigLists use it to implement Len.
func ListLen(c ConfigList) int {
	list := reflect.ValueOf(c)
	if list.NumField() == 0 {
		return 0
	}

	n := 1
	for j := 0; j < list.NumField(); j++ {
		n *= list.Field(j).Len()
	}
	return n
}
