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
package api

import (
	"context"
	"fmt"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"

	"github.com/unikorn-cloud/petstore/pkg/server"
)

// Session bundles everything a suite needs to exercise the petstore: the
// client, the lifecycle operations and the local pet list.
type Session struct {
	Config    *TestConfig
	Client    *APIClient
	Lifecycle *PetLifecycle
	Store     *PetStore

	stub *httptest.Server
}

// NewSession opens the local pet list and connects to the configured
// petstore. When the config asks for a stub, an in-process server is started
// and the client is pointed at it instead.
func NewSession(ctx context.Context, config *TestConfig) (*Session, error) {
	session := &Session{}

	if config.UseStub {
		s := &server.Server{
			Options: server.Options{
				APIKey: config.APIKey,
			},
		}

		handler, err := s.Handler(ctx)
		if err != nil {
			return nil, fmt.Errorf("starting petstore stub: %w", err)
		}

		session.stub = httptest.NewServer(handler)

		stubConfig := *config
		stubConfig.BaseURL = session.stub.URL
		config = &stubConfig

		ginkgo.GinkgoWriter.Printf("Using petstore stub at %s\n", config.BaseURL)
	}

	store, err := OpenPetStore(config.PetsFile)
	if err != nil {
		session.Close()

		return nil, err
	}

	session.Config = config
	session.Client = NewAPIClientWithConfig(config)
	session.Lifecycle = NewPetLifecycle(session.Client)
	session.Store = store

	return session, nil
}

// Close persists the local pet list and stops any stub.
func (s *Session) Close() error {
	if s.stub != nil {
		s.stub.Close()
	}

	if s.Store == nil {
		return nil
	}

	return s.Store.Save()
}
