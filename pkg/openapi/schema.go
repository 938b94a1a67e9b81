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
package openapi

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

//go:embed server.spec.yaml
var spec []byte

// MaxRequestBodySize bounds how much of a request body is accepted, both
// when buffered for validation and when parsed by handlers.
const MaxRequestBodySize = 32 << 20

// ErrRequestTooLarge is returned when a request body exceeds MaxRequestBodySize.
var ErrRequestTooLarge = errors.New("request body too large")

// GetSwagger returns the parsed petstore OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("loading openapi document: %w", err)
	}

	return doc, nil
}

// Validator checks incoming requests against the petstore schema, including
// its api_key security requirement.
type Validator struct {
	router       routers.Router
	authenticate openapi3filter.AuthenticationFunc
}

// NewValidator loads and validates the schema, then builds a router for
// matching requests to operations.
func NewValidator(ctx context.Context, authenticate openapi3filter.AuthenticationFunc) (*Validator, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("creating openapi router: %w", err)
	}

	v := &Validator{
		router:       router,
		authenticate: authenticate,
	}

	return v, nil
}

// ValidateRequest returns routers.ErrPathNotFound or routers.ErrMethodNotAllowed
// for unknown operations, *openapi3filter.SecurityRequirementsError when
// authentication fails, ErrRequestTooLarge for oversized bodies and
// *openapi3filter.RequestError for malformed parameters or bodies. The
// request body is left readable.
func (v *Validator) ValidateRequest(r *http.Request) error {
	route, pathParams, err := v.router.FindRoute(r)
	if err != nil {
		return err
	}

	if r.Body != nil && r.Body != http.NoBody {
		body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
		if err != nil {
			var maxBytesError *http.MaxBytesError

			if errors.As(err, &maxBytesError) {
				return fmt.Errorf("%w: %w", ErrRequestTooLarge, err)
			}

			return fmt.Errorf("reading request body: %w", err)
		}

		if len(body) > MaxRequestBodySize {
			return ErrRequestTooLarge
		}

		r.Body = io.NopCloser(bytes.NewReader(body))

		defer func() {
			r.Body = io.NopCloser(bytes.NewReader(body))
		}()
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: v.authenticate,
		},
	}

	return openapi3filter.ValidateRequest(r.Context(), input)
}
