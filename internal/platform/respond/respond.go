// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Envelopes
//
// Read endpoints use the data/meta envelope. Form endpoints (admin CMS
// submissions) and the content list use the form-state shape
// {error, errorMessage, resetForm} the CMS front-end consumes.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/readverse/internal/platform/apperr"
	"github.com/taibuivan/readverse/internal/platform/ctxutil"
	"github.com/taibuivan/readverse/pkg/pagination"
)

// SuccessEnvelope wraps single-resource responses.
type SuccessEnvelope struct {
	Data interface{} `json:"data"`
}

// PaginatedEnvelope wraps paginated list responses.
type PaginatedEnvelope struct {
	Data interface{}     `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the JSON body of error responses on read endpoints.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// FormState is the uniform outcome of a form submission.
type FormState struct {
	Error        bool                `json:"error"`
	ErrorMessage string              `json:"errorMessage,omitempty"`
	ResetForm    bool                `json:"resetForm,omitempty"`
	Details      []apperr.FieldError `json:"details,omitempty"`
	Data         interface{}         `json:"data,omitempty"`
}

// JSON writes payload with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// RawJSON writes an already encoded JSON body, e.g. a cached response.
func RawJSON(writer http.ResponseWriter, statusCode int, body []byte) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_, _ = writer.Write(body)
}

// OK writes a 200 response in the success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Created writes a 201 response in the success envelope.
func Created(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// NoContent writes a 204 response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts err into the read-endpoint error envelope.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := classify(request, err)
	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}

// Form writes a successful form outcome.
func Form(writer http.ResponseWriter, statusCode int, state FormState) {
	JSON(writer, statusCode, state)
}

// FormError converts err into {error: true, errorMessage}.
func FormError(writer http.ResponseWriter, request *http.Request, err error) {
	appError := classify(request, err)
	JSON(writer, appError.HTTPStatus, FormState{
		Error:        true,
		ErrorMessage: appError.Message,
		Details:      appError.Details,
	})
}

// classify maps any error to an [apperr.AppError] and logs server-side failures.
// Errors outside the apperr taxonomy keep their raw message.
func classify(request *http.Request, err error) *apperr.AppError {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.External(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	return appError
}
