// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shophub/internal/platform/apperr"
	"github.com/taibuivan/shophub/internal/platform/constants"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// formFile builds a multipart request carrying one file and returns its part.
func formFile(t *testing.T, field, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, request.ParseMultipartForm(constants.MaxUploadMemory))

	file, header, err := request.FormFile(field)
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	return file, header
}

/*
TestReadImage_AcceptsPNG verifies the sniffed type and sanitized filename.
*/
func TestReadImage_AcceptsPNG(t *testing.T) {
	file, header := formFile(t, "image_base", "../../shoe.png", pngHeader)

	image, err := ReadImage("image_base", file, header)
	require.NoError(t, err)

	assert.Equal(t, "image/png", image.ContentType)
	assert.Equal(t, "shoe.png", image.Filename)
	assert.Equal(t, pngHeader, image.Data)
}

/*
TestReadImage_Rejects covers non-images, empty files and oversized files.
*/
func TestReadImage_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"text", []byte("just some text")},
		{"empty", nil},
		{"too_large", append(append([]byte{}, pngHeader...), make([]byte, constants.MaxImageSize)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, header := formFile(t, "file", "x.png", tt.content)

			_, err := ReadImage("file", file, header)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		})
	}
}

type fakePutter struct {
	inputs []*awss3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakePutter) PutObject(_ context.Context, input *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(input.Body)
	f.inputs = append(f.inputs, input)
	f.bodies = append(f.bodies, body)
	return &awss3.PutObjectOutput{}, nil
}

/*
TestS3Uploader_Upload verifies the key layout, object metadata and public URL.
*/
func TestS3Uploader_Upload(t *testing.T) {
	putter := &fakePutter{}
	uploader := newS3Uploader(putter, S3Config{
		Bucket:    "media",
		PublicURL: "https://cdn.example.com/",
	}, slog.New(slog.DiscardHandler))

	image := Image{Filename: "shoe.png", ContentType: "image/png", Data: pngHeader}
	asset, err := uploader.Upload(context.Background(), constants.ProductFolder+"/Runner", image)
	require.NoError(t, err)

	require.Len(t, putter.inputs, 1)
	input := putter.inputs[0]
	assert.Equal(t, "media", *input.Bucket)
	assert.Equal(t, "image/png", *input.ContentType)
	assert.Equal(t, pngHeader, putter.bodies[0])

	assert.True(t, strings.HasPrefix(asset.PublicID, "shophub/data/website/products/Runner/"))
	assert.True(t, strings.HasSuffix(asset.PublicID, ".png"))
	assert.Equal(t, *input.Key, asset.PublicID)
	assert.Equal(t, "https://cdn.example.com/"+asset.PublicID, asset.URL)
}

/*
TestS3Uploader_UploadFailure verifies host errors surface as internal errors.
*/
func TestS3Uploader_UploadFailure(t *testing.T) {
	uploader := newS3Uploader(&fakePutter{err: errors.New("connection reset")},
		S3Config{Bucket: "media", Region: "eu-west-1"}, slog.New(slog.DiscardHandler))

	_, err := uploader.Upload(context.Background(), "folder", Image{ContentType: "image/png", Data: pngHeader})
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
}

/*
TestPublicBaseURL covers the three URL sources.
*/
func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com", publicBaseURL(S3Config{Bucket: "b", PublicURL: "https://cdn.example.com/"}))
	assert.Equal(t, "http://minio:9000/b", publicBaseURL(S3Config{Bucket: "b", Endpoint: "http://minio:9000/"}))
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com", publicBaseURL(S3Config{Bucket: "b", Region: "eu-west-1"}))
}

/*
TestDisabled_Upload verifies the unconfigured host answers 503.
*/
func TestDisabled_Upload(t *testing.T) {
	_, err := Disabled{}.Upload(context.Background(), "folder", Image{})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnavailable))
}
