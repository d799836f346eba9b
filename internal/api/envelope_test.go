package api

import (
	"encoding/json/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeTransformer_SuccessResponse(t *testing.T) {
	data := map[string]string{"id": "med-123", "title": "Buch A"}

	result, err := EnvelopeTransformer(nil, "200", data)
	require.NoError(t, err)

	env, ok := result.(*Envelope)
	require.True(t, ok)
	assert.True(t, env.Success)
	assert.Equal(t, data, env.Data)
	assert.Nil(t, env.Error)
}

func TestEnvelopeTransformer_NilData(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "204", nil)
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, true, out["success"])
	assert.NotContains(t, out, "data")
	assert.NotContains(t, out, "error")
}

func TestEnvelopeTransformer_TypedNilData(t *testing.T) {
	// A typed nil pointer must serialize like no data at all.
	var b *BorrowingResponse
	result, err := EnvelopeTransformer(nil, "200", b)
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, true, out["success"])
	assert.NotContains(t, out, "data")
}

func TestEnvelopeTransformer_ErrorResponse(t *testing.T) {
	apiErr := &APIError{
		status:  409,
		Code:    "CONFLICT",
		Message: "media med-123 is already borrowed",
	}

	result, err := EnvelopeTransformer(nil, "409", apiErr)
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, false, out["success"])
	assert.NotContains(t, out, "data")

	errObj, ok := out["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", errObj["code"])
	assert.Equal(t, "media med-123 is already borrowed", errObj["message"])
}
