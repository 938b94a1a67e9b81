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
//nolint:revive,stylecheck
package openapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface is implemented by anything that serves the petstore API.
type ServerInterface interface {
	// Add a new pet to the store.
	// (POST /pet)
	AddPet(w http.ResponseWriter, r *http.Request)
	// Update an existing pet.
	// (PUT /pet)
	UpdatePet(w http.ResponseWriter, r *http.Request)
	// Finds pets by status.
	// (GET /pet/findByStatus)
	FindPetsByStatus(w http.ResponseWriter, r *http.Request, params FindPetsByStatusParams)
	// Find a pet by ID.
	// (GET /pet/{petId})
	GetPetById(w http.ResponseWriter, r *http.Request, petID PetIDParameter)
	// Update a pet in the store with form data.
	// (POST /pet/{petId})
	UpdatePetWithForm(w http.ResponseWriter, r *http.Request, petID PetIDParameter)
	// Delete a pet.
	// (DELETE /pet/{petId})
	DeletePet(w http.ResponseWriter, r *http.Request, petID PetIDParameter)
	// Upload an image for a pet.
	// (POST /pet/{petId}/uploadImage)
	UploadFile(w http.ResponseWriter, r *http.Request, petID PetIDParameter)
}

// ChiServerOptions configures how the API is mounted.
type ChiServerOptions struct {
	BaseRouter       chi.Router
	Middlewares      []func(http.Handler) http.Handler
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// InvalidParamFormatError is raised when a parameter cannot be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

type serverInterfaceWrapper struct {
	handler          ServerInterface
	errorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *serverInterfaceWrapper) petID(w http.ResponseWriter, r *http.Request) (PetIDParameter, bool) {
	var petID PetIDParameter

	options := runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	}

	if err := runtime.BindStyledParameterWithOptions("simple", "petId", chi.URLParam(r, "petId"), &petID, options); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "petId", Err: err})
		return 0, false
	}

	return petID, true
}

func (siw *serverInterfaceWrapper) AddPet(w http.ResponseWriter, r *http.Request) {
	siw.handler.AddPet(w, r)
}

func (siw *serverInterfaceWrapper) UpdatePet(w http.ResponseWriter, r *http.Request) {
	siw.handler.UpdatePet(w, r)
}

func (siw *serverInterfaceWrapper) FindPetsByStatus(w http.ResponseWriter, r *http.Request) {
	var params FindPetsByStatusParams

	if err := runtime.BindQueryParameter("form", true, true, "status", r.URL.Query(), &params.Status); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "status", Err: err})
		return
	}

	siw.handler.FindPetsByStatus(w, r, params)
}

func (siw *serverInterfaceWrapper) GetPetById(w http.ResponseWriter, r *http.Request) {
	if petID, ok := siw.petID(w, r); ok {
		siw.handler.GetPetById(w, r, petID)
	}
}

func (siw *serverInterfaceWrapper) UpdatePetWithForm(w http.ResponseWriter, r *http.Request) {
	if petID, ok := siw.petID(w, r); ok {
		siw.handler.UpdatePetWithForm(w, r, petID)
	}
}

func (siw *serverInterfaceWrapper) DeletePet(w http.ResponseWriter, r *http.Request) {
	if petID, ok := siw.petID(w, r); ok {
		siw.handler.DeletePet(w, r, petID)
	}
}

func (siw *serverInterfaceWrapper) UploadFile(w http.ResponseWriter, r *http.Request) {
	if petID, ok := siw.petID(w, r); ok {
		siw.handler.UploadFile(w, r, petID)
	}
}

// HandlerWithOptions mounts every petstore operation on a chi router.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}

	for _, middleware := range options.Middlewares {
		r.Use(middleware)
	}

	errorHandlerFunc := options.ErrorHandlerFunc
	if errorHandlerFunc == nil {
		errorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}

	wrapper := &serverInterfaceWrapper{
		handler:          si,
		errorHandlerFunc: errorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Post("/pet", wrapper.AddPet)
		r.Put("/pet", wrapper.UpdatePet)
		r.Get("/pet/findByStatus", wrapper.FindPetsByStatus)
		r.Get("/pet/{petId}", wrapper.GetPetById)
		r.Post("/pet/{petId}", wrapper.UpdatePetWithForm)
		r.Delete("/pet/{petId}", wrapper.DeletePet)
		r.Post("/pet/{petId}/uploadImage", wrapper.UploadFile)
	})

	return r
}
