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

// PetStatus is the pet's lifecycle status in the store.
type PetStatus string

const (
	PetStatusAvailable PetStatus = "available"
	PetStatusPending   PetStatus = "pending"
	PetStatusSold      PetStatus = "sold"
)

// Category groups pets.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Tag is a free form label attached to a pet.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Pet is a single pet record.
type Pet struct {
	ID        int64     `json:"id"`
	Category  *Category `json:"category,omitempty"`
	Name      string    `json:"name"`
	PhotoUrls []string  `json:"photoUrls"`
	Tags      []Tag     `json:"tags"`
	Status    PetStatus `json:"status,omitempty"`
}

// Pets is an ordered list of pets.
type Pets []Pet

// ApiResponseType is the classification reported in an ApiResponse.
type ApiResponseType string

const (
	ApiResponseTypeUnknown ApiResponseType = "unknown"
	ApiResponseTypeError   ApiResponseType = "error"
)

// ApiResponse is the generic status message returned by operations that
// do not return a pet.
type ApiResponse struct {
	Code    int32           `json:"code"`
	Type    ApiResponseType `json:"type"`
	Message string          `json:"message"`
}

// PetIDParameter is the pet identifier path parameter.
type PetIDParameter = int64

// FindPetsByStatusParams are the query parameters of the find by status
// operation.
type FindPetsByStatusParams struct {
	Status []PetStatus `form:"status" json:"status"`
}
