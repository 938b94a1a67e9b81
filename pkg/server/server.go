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
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/unikorn-cloud/petstore/pkg/openapi"
	"github.com/unikorn-cloud/petstore/pkg/server/errors"
	"github.com/unikorn-cloud/petstore/pkg/server/handler"
	"github.com/unikorn-cloud/petstore/pkg/server/handler/pet"
)

// Server is a local stand-in for the public petstore.
type Server struct {
	// Options are server specific options e.g. listener address etc.
	Options Options

	// Registry holds the pets served, it is created on demand if not set.
	Registry *pet.Registry
}

// Handler builds the routed, validated HTTP handler.
func (s *Server) Handler(ctx context.Context) (http.Handler, error) {
	if s.Registry == nil {
		s.Registry = pet.NewRegistry()
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger)
	router.Use(limitRequestBody)

	if s.Options.DisableValidation {
		router.Use(requireAPIKey(s.Options.APIKey))
	} else {
		validator, err := openapi.NewValidator(ctx, authenticator(s.Options.APIKey))
		if err != nil {
			return nil, err
		}

		router.Use(validateRequests(validator))
	}

	router.NotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errors.HandleError(w, r, errors.HTTPNotFound("Not found"))
	}))

	router.MethodNotAllowed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errors.HandleError(w, r, errors.HTTPMethodNotAllowed())
	}))

	handlerInterface, err := handler.New(s.Registry)
	if err != nil {
		return nil, err
	}

	chiServerOptions := openapi.ChiServerOptions{
		BaseRouter: router,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			errors.HandleError(w, r, errors.HTTPBadRequest("Invalid input").WithError(err))
		},
	}

	return openapi.HandlerWithOptions(handlerInterface, chiServerOptions), nil
}

// GetServer returns an HTTP server ready to listen on the configured address.
func (s *Server) GetServer(ctx context.Context) (*http.Server, error) {
	h, err := s.Handler(ctx)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:              s.Options.ListenAddress,
		ReadTimeout:       s.Options.ReadTimeout,
		ReadHeaderTimeout: s.Options.ReadTimeout,
		WriteTimeout:      s.Options.WriteTimeout,
		Handler:           h,
	}

	return server, nil
}
