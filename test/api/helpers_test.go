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
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/petstore/pkg/server"
	"github.com/unikorn-cloud/petstore/test/api"
)

// newStubConfig starts an in-process petstore and returns a configuration
// that targets it with a pet list private to the test.
func newStubConfig(t *testing.T) *api.TestConfig {
	t.Helper()

	s := &server.Server{
		Options: server.Options{
			APIKey: api.DefaultAPIKey,
		},
	}

	handler, err := s.Handler(t.Context())
	require.NoError(t, err)

	stub := httptest.NewServer(handler)
	t.Cleanup(stub.Close)

	return &api.TestConfig{
		BaseURL:        stub.URL,
		APIKey:         api.DefaultAPIKey,
		PetsFile:       filepath.Join(t.TempDir(), "pets.json"),
		ImagePath:      filepath.Join("testdata", "cute_dog.jpg"),
		ImageMetadata:  api.DefaultImageMetadata,
		RequestTimeout: 10 * time.Second,
	}
}

// newStubLifecycle returns lifecycle operations bound to a fresh stub and an
// empty pet list.
func newStubLifecycle(t *testing.T) (*api.PetLifecycle, *api.PetStore, *api.TestConfig) {
	t.Helper()

	config := newStubConfig(t)

	store, err := api.OpenPetStore(config.PetsFile)
	require.NoError(t, err)

	return api.NewPetLifecycle(api.NewAPIClientWithConfig(config)), store, config
}
