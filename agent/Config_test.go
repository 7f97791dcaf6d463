package agent

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/energybaselines/environment"
)

const testType Type = "Test-Agent"

type testConfig struct {
	Rate  float64
	Field string
}

func (c testConfig) CreateAgent(environment.Environment, uint64,
	zerolog.Logger) (Agent, error) {
	return nil, nil
}
func (c testConfig) ValidAgent(Agent) bool { return false }
func (c testConfig) Validate() error       { return nil }
func (c testConfig) Type() Type            { return testType }

type testConfigList struct {
	Rate  []float64
	Field []string
}

func (c testConfigList) Config() Config { return testConfig{} }
func (c testConfigList) Type() Type     { return testType }
func (c testConfigList) NumFields() int { return 2 }
func (c testConfigList) Len() int       { return ListLen(c) }

func init() {
	Register(testType, testConfigList{})
}

func TestConfigAt(t *testing.T) {
	list := testConfigList{
		Rate:  []float64{0.1, 0.2, 0.3},
		Field: []string{"a", "b"},
	}
	require.Equal(t, 6, list.Len())

	want := []testConfig{
		{0.1, "a"}, {0.2, "a"}, {0.3, "a"},
		{0.1, "b"}, {0.2, "b"}, {0.3, "b"},
	}
	for i, w := range want {
		c, err := ConfigAt(i, list)
		require.NoError(t, err)
		assert.Equal(t, w, c)
	}

	_, err := ConfigAt(6, list)
	assert.Error(t, err)
	_, err = ConfigAt(-1, list)
	assert.Error(t, err)
}

func TestConfigAtEmptyField(t *testing.T) {
	list := testConfigList{Rate: []float64{0.1}}
	assert.Equal(t, 0, list.Len())

	_, err := ConfigAt(0, list)
	assert.Error(t, err)
}

func TestTypedConfigListJSON(t *testing.T) {
	list := testConfigList{Rate: []float64{1, 2}, Field: []string{"x"}}
	typed := NewTypedConfigList(list)

	data, err := json.Marshal(typed)
	require.NoError(t, err)

	var decoded TypedConfigList
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, testType, decoded.Type)
	assert.Equal(t, list, decoded.ConfigList)

	c, err := decoded.At(1)
	require.NoError(t, err)
	assert.Equal(t, testConfig{2, "x"}, c)
}

func TestTypedConfigListUnregistered(t *testing.T) {
	var decoded TypedConfigList
	err := json.Unmarshal([]byte(`{"Type": "Nope", "ConfigList": {}}`),
		&decoded)
	assert.Error(t, err)
	assert.False(t, Registered("Nope"))
	assert.True(t, Registered(testType))
}
