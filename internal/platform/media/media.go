// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media stores uploaded product and category images on the media host.

Handlers read a multipart part with [ReadImage], which enforces the size limit
and sniffs the content type, and then hand the resulting [Image] to an
[Uploader]. The production uploader writes to an S3-compatible bucket; when no
bucket is configured a [Disabled] uploader answers 503 instead.
*/
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/taibuivan/shophub/internal/platform/apperr"
	"github.com/taibuivan/shophub/internal/platform/constants"
)

// # Types

// Asset is the reference returned by the media host for a stored image.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Image is an uploaded file that passed validation.
type Image struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// Uploader stores an image under folder and returns its public reference.
type Uploader interface {
	Upload(ctx context.Context, folder string, image Image) (Asset, error)
}

// allowedTypes maps sniffed content types to the extension used for keys.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// # Validation

// ReadImage reads one multipart file into memory, rejecting anything larger
// than [constants.MaxImageSize] or not recognised as an image.
func ReadImage(field string, file multipart.File, header *multipart.FileHeader) (Image, error) {
	if header.Size > constants.MaxImageSize {
		return Image{}, tooLarge(field)
	}

	data, err := io.ReadAll(io.LimitReader(file, constants.MaxImageSize+1))
	if err != nil {
		return Image{}, apperr.ValidationError(fmt.Sprintf("Could not read %s.", field))
	}
	if len(data) > constants.MaxImageSize {
		return Image{}, tooLarge(field)
	}
	if len(data) == 0 {
		return Image{}, apperr.ValidationError(fmt.Sprintf("%s is empty.", field))
	}

	contentType := http.DetectContentType(data)
	if _, ok := allowedTypes[contentType]; !ok {
		return Image{}, apperr.ValidationError(
			fmt.Sprintf("%s must be a JPEG, PNG, GIF or WebP image.", field),
			apperr.FieldError{Field: field, Message: "unsupported content type " + contentType},
		)
	}

	return Image{
		Field:       field,
		Filename:    path.Base(header.Filename),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func tooLarge(field string) *apperr.AppError {
	return apperr.ValidationError(
		fmt.Sprintf("%s exceeds the %dMB limit.", field, constants.MaxImageSize>>20),
		apperr.FieldError{Field: field, Message: "file too large"},
	)
}

// extension returns the key suffix for an image's sniffed type.
func extension(image Image) string {
	if ext, ok := allowedTypes[image.ContentType]; ok {
		return ext
	}
	return strings.ToLower(path.Ext(image.Filename))
}

func (image Image) reader() io.Reader {
	return bytes.NewReader(image.Data)
}

// # Disabled Host

// Disabled is the Uploader used when no media host is configured.
type Disabled struct{}

// Upload always fails with 503.
func (Disabled) Upload(context.Context, string, Image) (Asset, error) {
	return Asset{}, apperr.ServiceUnavailable("Media uploads are not configured.")
}
