// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil extracts data from HTTP requests.

It hides the router's parameter extraction and the body decoding variants
(JSON, urlencoded and multipart forms) behind one error convention.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/readverse/internal/platform/apperr"
	"github.com/taibuivan/readverse/internal/platform/constants"
	"github.com/taibuivan/readverse/internal/platform/ctxutil"
	"github.com/taibuivan/readverse/internal/platform/sec"
	"github.com/taibuivan/readverse/internal/platform/validate"
)

// DecodeJSON decodes the request body into target.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// IsJSON reports whether the request body is declared as JSON.
func IsJSON(request *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(request.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// FormValues parses an urlencoded or multipart body and returns its text fields.
// Repeated fields keep every value in submission order.
//
// Urlencoded bodies are read up to [constants.MaxURLEncodedFormBytes] instead
// of net/http's 10 MB default, which is smaller than two full-size images.
func FormValues(request *http.Request) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(request.Header.Get("Content-Type"))

	var err error
	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		err = request.ParseMultipartForm(constants.MaxFormMemory)
	case mediaType == "application/x-www-form-urlencoded":
		return urlencodedValues(request)
	default:
		err = request.ParseForm()
	}
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, apperr.ValidationError("Invalid form payload")
		}
		return nil, apperr.ValidationError("Invalid form payload: " + err.Error())
	}

	return request.PostForm, nil
}

func urlencodedValues(request *http.Request) (url.Values, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(nil, request.Body, constants.MaxURLEncodedFormBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.ValidationError(fmt.Sprintf("Form payload exceeds %d MB", constants.MaxURLEncodedFormBytes>>20))
		}
		return nil, apperr.ValidationError("Invalid form payload: " + err.Error())
	}

	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, apperr.ValidationError("Invalid form payload: " + err.Error())
	}

	request.PostForm = values
	return values, nil
}

// Param returns a named URL parameter.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims returns the authenticated caller, or nil.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims returns the authenticated caller or an Unauthorized error.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}
