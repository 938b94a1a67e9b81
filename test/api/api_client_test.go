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
package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/petstore/test/api"
)

var traceParentRegexp = regexp.MustCompile("^00-[0-9a-f]{32}-[0-9a-f]{16}-01$")

func newTestClient(t *testing.T, handler http.HandlerFunc) *api.APIClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return api.NewAPIClientWithConfig(&api.TestConfig{
		BaseURL:        server.URL + "/",
		APIKey:         "secret",
		RequestTimeout: 5 * time.Second,
	})
}

// TestAPIClientBaseURL ensures a trailing slash on the configured endpoint
// does not double up when paths are joined.
func TestAPIClientBaseURL(t *testing.T) {
	t.Parallel()

	client := api.NewAPIClientWithConfig(&api.TestConfig{
		BaseURL: "http://localhost:8080/v2/",
	})

	require.Equal(t, "http://localhost:8080/v2", client.BaseURL())
}

// TestAPIClientHeaders ensures every request carries credentials and trace
// context.
func TestAPIClientHeaders(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(api.APIKeyHeader) != "secret" || !traceParentRegexp.MatchString(r.Header.Get("Traceparent")) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"path":"` + r.URL.RequestURI() + `"}`))
	})

	response, err := client.Get(t.Context(), "/pet/1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var body map[string]string

	require.NoError(t, response.Decode(&body))
	require.Equal(t, "/pet/1", body["path"])
}

// TestAPIClientStatusError ensures non-2xx responses are typed errors that
// carry the body and trace ID.
func TestAPIClientStatusError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Pet not found"))
	})

	_, err := client.Delete(t.Context(), "/pet/1")
	require.Error(t, err)
	require.True(t, api.IsStatusError(err, http.StatusNotFound))
	require.False(t, api.IsValidationError(err))

	var statusError *api.StatusError

	require.ErrorAs(t, err, &statusError)
	require.Equal(t, http.MethodDelete, statusError.Method)
	require.Equal(t, "Pet not found", statusError.Body)
	require.Len(t, statusError.TraceID, 32)
}

// TestAPIClientBodies ensures JSON and form bodies are encoded with the
// right content type.
func TestAPIClientBodies(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]string{
			"method":      r.Method,
			"contentType": r.Header.Get("Content-Type"),
			"body":        string(body),
		})
	})

	cases := []struct {
		do          func() (*api.Response, error)
		method      string
		contentType string
		body        string
	}{
		{
			do: func() (*api.Response, error) {
				return client.PostJSON(t.Context(), "/pet", map[string]int{"id": 1})
			},
			method:      http.MethodPost,
			contentType: "application/json",
			body:        `{"id":1}`,
		},
		{
			do: func() (*api.Response, error) {
				return client.PutJSON(t.Context(), "/pet", map[string]int{"id": 2})
			},
			method:      http.MethodPut,
			contentType: "application/json",
			body:        `{"id":2}`,
		},
		{
			do: func() (*api.Response, error) {
				return client.PostForm(t.Context(), "/pet/3", url.Values{"name": {"Rex"}, "status": {"sold"}})
			},
			method:      http.MethodPost,
			contentType: "application/x-www-form-urlencoded",
			body:        "name=Rex&status=sold",
		},
	}

	for _, c := range cases {
		response, err := c.do()
		require.NoError(t, err)

		var echo map[string]string

		require.NoError(t, response.Decode(&echo))
		require.Equal(t, c.method, echo["method"])
		require.Equal(t, c.contentType, echo["contentType"])
		require.Equal(t, c.body, echo["body"])
	}
}

// TestAPIClientMultipart ensures files are uploaded intact alongside their
// form fields.
func TestAPIClientMultipart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "upload.bin")
	content := []byte("not really a dog")

	require.NoError(t, os.WriteFile(path, content, 0o600))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]string{
			"filename": header.Filename,
			"data":     string(data),
			"metadata": r.FormValue("additionalMetadata"),
		})
	})

	response, err := client.PostMultipart(t.Context(), "/pet/1/uploadImage", "file", path, map[string]string{
		"additionalMetadata": "Dog Pic",
	})
	require.NoError(t, err)

	var echo map[string]string

	require.NoError(t, response.Decode(&echo))
	require.Equal(t, "upload.bin", echo["filename"])
	require.Equal(t, string(content), echo["data"])
	require.Equal(t, "Dog Pic", echo["metadata"])
}

// TestAPIClientMultipartMissingFile ensures a bad path fails before any
// request is made.
func TestAPIClientMultipartMissingFile(t *testing.T) {
	t.Parallel()

	called := make(chan struct{}, 1)

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		called <- struct{}{}
	})

	_, err := client.PostMultipart(t.Context(), "/pet/1/uploadImage", "file", filepath.Join(t.TempDir(), "missing.jpg"), nil)
	require.Error(t, err)
	require.Empty(t, called)
}
