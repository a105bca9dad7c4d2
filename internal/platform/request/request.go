// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It keeps body decoding, multipart parsing and claim lookup consistent across
handlers so every failure maps to the same error envelope.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/taibuivan/shophub/internal/platform/apperr"
	"github.com/taibuivan/shophub/internal/platform/constants"
	"github.com/taibuivan/shophub/internal/platform/ctxutil"
	"github.com/taibuivan/shophub/internal/platform/media"
	"github.com/taibuivan/shophub/internal/platform/sec"
	"github.com/taibuivan/shophub/internal/platform/validate"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

/*
DecodeJSON reads the request body and decodes it into target.

Returns validate.ErrInvalidJSON if the body is missing, too large or malformed.
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxJSONBody)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ParseMultipart parses a multipart/form-data body of at most maxBytes,
spilling large files to disk.

Returns a 413 when the body exceeds maxBytes and validate.ErrInvalidMultipart
when it cannot be parsed.
*/
func ParseMultipart(writer http.ResponseWriter, request *http.Request, maxBytes int64) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBytes)
	if err := request.ParseMultipartForm(constants.MaxUploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.PayloadTooLarge(fmt.Sprintf("Request body exceeds %dMB.", maxBytes>>20))
		}
		return validate.ErrInvalidMultipart
	}
	return nil
}

/*
FormValue returns a trimmed text field of a parsed multipart form.
*/
func FormValue(request *http.Request, name string) string {
	return strings.TrimSpace(request.FormValue(name))
}

/*
FormImage reads and validates the single file in field.

Returns (nil, nil) when the field is absent so callers decide whether it is
required.
*/
func FormImage(request *http.Request, field string) (*media.Image, error) {
	file, header, err := request.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, validate.ErrInvalidMultipart
	}
	defer file.Close()

	image, err := media.ReadImage(field, file, header)
	if err != nil {
		return nil, err
	}
	return &image, nil
}

/*
FormImages reads and validates every file in field, in upload order.

More than maxCount files is rejected before any of them is read.
*/
func FormImages(request *http.Request, field string, maxCount int) ([]media.Image, error) {
	if request.MultipartForm == nil {
		return nil, nil
	}

	headers := request.MultipartForm.File[field]
	validator := &validate.Validator{}
	validator.MaxCount(field, len(headers), maxCount)
	if err := validator.ErrWithMessage(fmt.Sprintf("At most %d files allowed in %s.", maxCount, field)); err != nil {
		return nil, err
	}

	images := make([]media.Image, 0, len(headers))
	for _, header := range headers {
		image, err := readPart(field, header)
		if err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, nil
}

func readPart(field string, header *multipart.FileHeader) (media.Image, error) {
	file, err := header.Open()
	if err != nil {
		return media.Image{}, validate.ErrInvalidMultipart
	}
	defer file.Close()
	return media.ReadImage(field, file, header)
}

/*
RequiredClaims returns the caller's claims or a 401 when there are none.
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.Caller(request.Context())
	if claims == nil {
		return nil, apperr.MissingToken("Token not provided.")
	}
	return claims, nil
}
