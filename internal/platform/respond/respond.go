// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// Every body carries a human-readable "message" and, for single-shot
// operations, the numeric "status". Listings add "data" and "meta".
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/shophub/internal/platform/apperr"
	"github.com/taibuivan/shophub/internal/platform/constants"
	"github.com/taibuivan/shophub/internal/platform/ctxutil"
	"github.com/taibuivan/shophub/pkg/pagination"
)

// StatusEnvelope is the body of operations that only report an outcome.
type StatusEnvelope struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// DataEnvelope is the body of successful single-resource responses.
type DataEnvelope struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Data    any    `json:"data"`
}

// PaginatedEnvelope is the body of paginated list responses.
type PaginatedEnvelope struct {
	Message string          `json:"message"`
	Data    any             `json:"data"`
	Meta    pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the body of error responses.
type ErrorEnvelope struct {
	Message string              `json:"message"`
	Status  int                 `json:"status"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// Message writes a {message, status} body.
func Message(writer http.ResponseWriter, statusCode int, message string) {
	JSON(writer, statusCode, StatusEnvelope{Message: message, Status: statusCode})
}

// OK writes a 200 response with data wrapped in the standard envelope.
func OK(writer http.ResponseWriter, message string, data any) {
	JSON(writer, http.StatusOK, DataEnvelope{Message: message, Status: http.StatusOK, Data: data})
}

// Created writes a 201 response with data wrapped in the standard envelope.
func Created(writer http.ResponseWriter, message string, data any) {
	JSON(writer, http.StatusCreated, DataEnvelope{Message: message, Status: http.StatusCreated, Data: data})
}

// Paginated writes a 200 response with paginated data and a metadata block.
func Paginated(writer http.ResponseWriter, message string, data any, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Message: message, Data: data, Meta: metadata})
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.Logger(request.Context())
	requestID := ctxutil.RequestID(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", requestID),
		)
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", requestID),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Message: appError.Message,
		Status:  appError.HTTPStatus,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
