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
	"fmt"

	"github.com/oapi-codegen/runtime"

	"github.com/unikorn-cloud/petstore/pkg/openapi"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// petID styles a pet identifier as a simple path segment.
func petID(id int64) (string, error) {
	segment, err := runtime.StyleParamWithLocation("simple", false, "petId", runtime.ParamLocationPath, id)
	if err != nil {
		return "", fmt.Errorf("styling petId parameter: %w", err)
	}

	return segment, nil
}

// Pet collection endpoints.
func (e *Endpoints) CreatePet() string {
	return "/pet"
}

func (e *Endpoints) UpdatePet() string {
	return "/pet"
}

func (e *Endpoints) FindPetsByStatus(status openapi.PetStatus) (string, error) {
	query, err := runtime.StyleParamWithLocation("form", true, "status", runtime.ParamLocationQuery, string(status))
	if err != nil {
		return "", fmt.Errorf("styling status parameter: %w", err)
	}

	return "/pet/findByStatus?" + query, nil
}

// Single pet endpoints.
func (e *Endpoints) GetPet(id int64) (string, error) {
	segment, err := petID(id)
	if err != nil {
		return "", err
	}

	return "/pet/" + segment, nil
}

func (e *Endpoints) UpdatePetWithForm(id int64) (string, error) {
	return e.GetPet(id)
}

func (e *Endpoints) DeletePet(id int64) (string, error) {
	return e.GetPet(id)
}

func (e *Endpoints) UploadImage(id int64) (string, error) {
	segment, err := petID(id)
	if err != nil {
		return "", err
	}

	return "/pet/" + segment + "/uploadImage", nil
}
