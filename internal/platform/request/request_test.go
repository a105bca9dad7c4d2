// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shophub/internal/platform/apperr"
	"github.com/taibuivan/shophub/internal/platform/validate"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

/*
TestDecodeJSON covers valid and malformed bodies.
*/
func TestDecodeJSON(t *testing.T) {
	var target struct {
		Email string `json:"email"`
	}

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c"}`))
	require.NoError(t, DecodeJSON(httptest.NewRecorder(), request, &target))
	assert.Equal(t, "a@b.c", target.Email)

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
	assert.ErrorIs(t, DecodeJSON(httptest.NewRecorder(), request, &target), validate.ErrInvalidJSON)
}

/*
TestMultipartHelpers reads text fields, a single image and a repeated image field.
*/
func TestMultipartHelpers(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("name", "  Runner  "))
	for _, filename := range []string{"a.png", "b.png"} {
		part, err := writer.CreateFormFile("images", filename)
		require.NoError(t, err)
		_, err = part.Write(pngHeader)
		require.NoError(t, err)
	}
	part, err := writer.CreateFormFile("image_base", "base.png")
	require.NoError(t, err)
	_, err = part.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, ParseMultipart(httptest.NewRecorder(), request, 1<<20))

	assert.Equal(t, "Runner", FormValue(request, "name"))

	base, err := FormImage(request, "image_base")
	require.NoError(t, err)
	require.NotNil(t, base)
	assert.Equal(t, "base.png", base.Filename)

	missing, err := FormImage(request, "file")
	require.NoError(t, err)
	assert.Nil(t, missing)

	images, err := FormImages(request, "images", 5)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "a.png", images[0].Filename)
	assert.Equal(t, "b.png", images[1].Filename)
}

/*
TestParseMultipart_RejectsJSON verifies non-multipart bodies fail validation.
*/
func TestParseMultipart_RejectsJSON(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	request.Header.Set("Content-Type", "application/json")

	err := ParseMultipart(httptest.NewRecorder(), request, 1<<20)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestRequiredClaims_Missing verifies a 401 without gate claims.
*/
func TestRequiredClaims_Missing(t *testing.T) {
	_, err := RequiredClaims(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, apperr.HasCode(err, apperr.CodeMissingAuth))
}

// imageForm builds a multipart body with count PNG parts under field.
func imageForm(t *testing.T, field string, count, size int) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, size)...)
	for i := 0; i < count; i++ {
		part, err := writer.CreateFormFile(field, "img.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

/*
TestParseMultipart_BodyLimit verifies an oversized body is a 413, not a parse error.
*/
func TestParseMultipart_BodyLimit(t *testing.T) {
	body, contentType := imageForm(t, "images", 2, 64<<10)

	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Type", contentType)

	err := ParseMultipart(httptest.NewRecorder(), request, 32<<10)
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeTooLarge, appErr.Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, appErr.HTTPStatus)
}

/*
TestFormImages_TooMany verifies the count cap fails before any part is read.
*/
func TestFormImages_TooMany(t *testing.T) {
	body, contentType := imageForm(t, "images", 6, 0)

	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Type", contentType)
	require.NoError(t, ParseMultipart(httptest.NewRecorder(), request, 1<<20))

	images, err := FormImages(request, "images", 5)
	assert.Nil(t, images)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Equal(t, "At most 5 files allowed in images.", appErr.Message)
}
