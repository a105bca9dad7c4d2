// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shophub/internal/platform/apperr"
	"github.com/taibuivan/shophub/internal/platform/respond"
)

/*
TestError_AppError renders the message and status of a client error.
*/
func TestError_AppError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, apperr.NotFound("User"))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "application/json")

	var body respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "User not found", body.Message)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, apperr.CodeNotFound, body.Code)
}

/*
TestError_UnknownErrorBecomesInternal hides raw errors behind a 500.
*/
func TestError_UnknownErrorBecomesInternal(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "relation")
}

/*
TestMessage writes the bare status body.
*/
func TestMessage(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Message(recorder, http.StatusCreated, "User created in database.")

	var body respond.StatusEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, http.StatusCreated, body.Status)
	assert.Equal(t, "User created in database.", body.Message)
}
