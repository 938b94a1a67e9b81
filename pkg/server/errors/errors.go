/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package errors

import (
	"errors"
	"net/http"

	"github.com/unikorn-cloud/petstore/pkg/openapi"
	"github.com/unikorn-cloud/petstore/pkg/server/util"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Error is an error that knows how it is reported to the client.
type Error struct {
	status  int
	message string
	err     error
}

func newError(status int, message string) *Error {
	return &Error{
		status:  status,
		message: message,
	}
}

// WithError attaches the underlying cause, which is logged but never
// returned to the client.
func (e *Error) WithError(err error) *Error {
	e.err = err

	return e
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.message + ": " + e.err.Error()
	}

	return e.message
}

func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode is the HTTP status reported to the client.
func (e *Error) StatusCode() int {
	return e.status
}

func HTTPBadRequest(message string) *Error {
	return newError(http.StatusBadRequest, message)
}

func HTTPUnauthorized(message string) *Error {
	return newError(http.StatusUnauthorized, message)
}

func HTTPNotFound(message string) *Error {
	return newError(http.StatusNotFound, message)
}

func HTTPMethodNotAllowed() *Error {
	return newError(http.StatusMethodNotAllowed, "method not allowed")
}

func HTTPConflict(message string) *Error {
	return newError(http.StatusConflict, message)
}

func HTTPRequestEntityTooLarge(message string) *Error {
	return newError(http.StatusRequestEntityTooLarge, message)
}

func ServerError(message string) *Error {
	return newError(http.StatusInternalServerError, message)
}

// HandleError writes an ApiResponse describing the error. Anything that
// is not an *Error is treated as an internal server error.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := log.FromContext(r.Context())

	var httpError *Error

	if !errors.As(err, &httpError) {
		httpError = ServerError("unhandled error").WithError(err)
	}

	if httpError.status >= http.StatusInternalServerError {
		log.Error(httpError, "request failed", "status", httpError.status)
	} else {
		log.V(1).Info("request rejected", "status", httpError.status, "error", httpError.Error())
	}

	response := &openapi.ApiResponse{
		Code:    int32(httpError.status), //nolint:gosec
		Type:    openapi.ApiResponseTypeError,
		Message: httpError.message,
	}

	util.WriteJSONResponse(w, r, httpError.status, response)
}
