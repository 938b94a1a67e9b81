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
package server

import (
	"context"
	goerrors "errors"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/google/uuid"

	"github.com/unikorn-cloud/petstore/pkg/openapi"
	"github.com/unikorn-cloud/petstore/pkg/server/errors"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// RequestIDHeader carries a per-request identifier, echoed back to the
// client and attached to every log line for that request.
const RequestIDHeader = "X-Request-Id"

// APIKeyHeader is the header the petstore reads credentials from.
const APIKeyHeader = "api_key"

var ErrAPIKeyInvalid = goerrors.New("api key invalid")

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// requestLogger tags the request context with a logger carrying a request ID
// and logs the outcome of every request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, requestID)

		logger := log.FromContext(r.Context()).WithValues("requestID", requestID, "method", r.Method, "path", r.URL.Path)

		if traceParent := r.Header.Get("Traceparent"); traceParent != "" {
			logger = logger.WithValues("traceparent", traceParent)
		}

		recorder := &statusRecorder{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		start := time.Now()

		next.ServeHTTP(recorder, r.WithContext(log.IntoContext(r.Context(), logger)))

		logger.Info("request served", "status", recorder.status, "duration", time.Since(start))
	})
}

// authenticator checks the api_key security scheme.
func authenticator(apiKey string) openapi3filter.AuthenticationFunc {
	return func(_ context.Context, input *openapi3filter.AuthenticationInput) error {
		if input.SecurityScheme == nil || input.SecurityScheme.Type != "apiKey" {
			return nil
		}

		value := input.RequestValidationInput.Request.Header.Get(input.SecurityScheme.Name)

		if value == "" || (apiKey != "" && value != apiKey) {
			return ErrAPIKeyInvalid
		}

		return nil
	}
}

// requireAPIKey enforces the api_key header when schema validation, which
// would otherwise check it, is turned off.
func requireAPIKey(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value := r.Header.Get(APIKeyHeader)

			if value == "" || (apiKey != "" && value != apiKey) {
				errors.HandleError(w, r, errors.HTTPUnauthorized("Unauthorized").WithError(ErrAPIKeyInvalid))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// validateRequests rejects anything that does not conform to the petstore
// schema before it reaches a handler.
func validateRequests(validator *openapi.Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := validator.ValidateRequest(r); err != nil {
				errors.HandleError(w, r, classifyValidationError(err))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func classifyValidationError(err error) *errors.Error {
	var securityError *openapi3filter.SecurityRequirementsError

	switch {
	case goerrors.Is(err, routers.ErrPathNotFound):
		return errors.HTTPNotFound("Not found").WithError(err)
	case goerrors.Is(err, routers.ErrMethodNotAllowed):
		return errors.HTTPMethodNotAllowed().WithError(err)
	case goerrors.As(err, &securityError):
		return errors.HTTPUnauthorized("Unauthorized").WithError(err)
	case goerrors.Is(err, openapi.ErrRequestTooLarge):
		return errors.HTTPRequestEntityTooLarge("Request too large").WithError(err)
	default:
		return errors.HTTPBadRequest("Invalid input").WithError(err)
	}
}

// limitRequestBody caps every request body so that handlers and validation
// agree on what is too large.
func limitRequestBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, openapi.MaxRequestBodySize)
		}

		next.ServeHTTP(w, r)
	})
}
