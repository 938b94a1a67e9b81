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
//go:generate mockgen -source=transport.go -destination=mock/transport.go -package=mock

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Transport issues petstore requests. Every non-2xx response is reported
// as a *StatusError, network failures are returned wrapped.
type Transport interface {
	Get(ctx context.Context, path string) (*Response, error)
	PostJSON(ctx context.Context, path string, body any) (*Response, error)
	PutJSON(ctx context.Context, path string, body any) (*Response, error)
	PostForm(ctx context.Context, path string, values url.Values) (*Response, error)
	Delete(ctx context.Context, path string) (*Response, error)
	PostMultipart(ctx context.Context, path, fileField, filePath string, fields map[string]string) (*Response, error)
}

// Response is a successful response, normalized to its status and body.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body.
func (r *Response) Decode(out any) error {
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}

	return nil
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	TraceID    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %s %s got %d, body: %s (trace ID: %s)", e.Method, e.Path, e.StatusCode, e.Body, e.TraceID)
}
