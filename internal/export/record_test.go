package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_GetAndKeys(t *testing.T) {
	r := Record{
		{Key: "event_id", Value: 4625},
		{Key: "username", Value: "alice"},
	}

	v, ok := r.Get("event_id")
	assert.True(t, ok)
	assert.Equal(t, 4625, v)

	_, ok = r.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"event_id", "username"}, r.Keys())
}

func TestRecord_MarshalJSON_PreservesOrder(t *testing.T) {
	r := Record{
		{Key: "zulu", Value: 1},
		{Key: "alpha", Value: 2},
		{Key: "mike", Value: 3},
	}

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"zulu":1,"alpha":2,"mike":3}`, string(b))
}

func TestRecord_UnmarshalJSON_PreservesOrder(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"b":2,"a":{"nested":true},"c":null}`), &r))

	assert.Equal(t, []string{"b", "a", "c"}, r.Keys())

	nested, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"nested": true}, nested)

	v, ok := r.Get("c")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestRecord_UnmarshalJSON_RejectsNonObject(t *testing.T) {
	var r Record
	assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &r))
}
