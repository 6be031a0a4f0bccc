package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_JSON_RoundTrip(t *testing.T) {
	e := testExporter()

	records := []Record{
		{
			{Key: "event_id", Value: float64(4625)},
			{Key: "source_ip", Value: "10.0.0,5"},
			{Key: "details", Value: map[string]any{"port": float64(443), "protocol": "tcp"}},
		},
		{
			{Key: "event_id", Value: float64(4624)},
			{Key: "source_ip", Value: "192.168.1.10"},
			{Key: "details", Value: nil},
		},
	}

	doc, err := e.JSON(records)
	require.NoError(t, err)

	assert.Equal(t, "export_data_2023-10-28_10-30-15.json", doc.Filename)
	assert.Equal(t, ContentTypeJSON, doc.ContentType)

	var decoded []Record
	require.NoError(t, json.Unmarshal(doc.Body, &decoded))
	assert.Equal(t, records, decoded)
}

func TestExporter_JSON_Indentation(t *testing.T) {
	e := testExporter()

	doc, err := e.JSON([]Record{{{Key: "event_id", Value: 1}}})
	require.NoError(t, err)

	// Pretty-printed with 2-space indent.
	assert.True(t, strings.HasPrefix(string(doc.Body), "[\n  {"), "got %q", string(doc.Body))
	assert.Contains(t, string(doc.Body), "\n    \"event_id\": 1")
}

func TestExporter_JSON_PreservesPerRecordKeys(t *testing.T) {
	// Unlike CSV, JSON output keeps each record's own key set: no
	// flattening to the first record's header.
	e := testExporter()

	doc, err := e.JSON([]Record{
		{{Key: "event_id", Value: 1}},
		{{Key: "severity", Value: "high"}, {Key: "username", Value: "bob"}},
	})
	require.NoError(t, err)

	var decoded []Record
	require.NoError(t, json.Unmarshal(doc.Body, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, []string{"event_id"}, decoded[0].Keys())
	assert.Equal(t, []string{"severity", "username"}, decoded[1].Keys())
}

func TestExporter_JSON_Empty(t *testing.T) {
	e := testExporter()

	for _, records := range [][]Record{nil, {}} {
		doc, err := e.JSON(records)
		assert.ErrorIs(t, err, ErrNoRecords)
		assert.Nil(t, doc)
	}
}

func TestExporter_IndependentDocuments(t *testing.T) {
	// Repeated calls produce independent documents; there is no shared
	// state between export invocations.
	e := testExporter()
	records := []Record{{{Key: "event_id", Value: 1}}}

	first, err := e.CSV(records)
	require.NoError(t, err)
	second, err := e.CSV(records)
	require.NoError(t, err)

	assert.Equal(t, first.Body, second.Body)
	first.Body[0] = 'X'
	assert.NotEqual(t, first.Body[0], second.Body[0])
}
