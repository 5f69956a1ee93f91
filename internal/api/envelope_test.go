package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessResponse(t *testing.T) {
	resp := SuccessResponse(map[string]string{"hello": "world"})
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Errors)
	assert.NotNil(t, resp.Result)
}

func TestErrorResponse(t *testing.T) {
	resp := ErrorResponse("something broke")
	assert.False(t, resp.Success)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "something broke", resp.Errors[0].Message)
	assert.False(t, resp.Errors[0].Timestamp.IsZero())
	assert.Nil(t, resp.Result)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, 418, SuccessResponse("teapot"))

	assert.Equal(t, 418, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "teapot", resp.Result)
}
