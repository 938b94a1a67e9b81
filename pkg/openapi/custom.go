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
	"errors"
	"slices"
)

var ErrInvalidPetStatus = errors.New("invalid status: must be one of available, pending or sold")

// PetStatuses returns every defined status, in declaration order.
func PetStatuses() []PetStatus {
	return []PetStatus{
		PetStatusAvailable,
		PetStatusPending,
		PetStatusSold,
	}
}

// Valid reports whether the status is one of the defined values.
func (s PetStatus) Valid() bool {
	return slices.Contains(PetStatuses(), s)
}

// ParsePetStatus converts free text, e.g. a form field, into a status.
func ParsePetStatus(text string) (PetStatus, error) {
	status := PetStatus(text)

	if !status.Valid() {
		return "", ErrInvalidPetStatus
	}

	return status, nil
}
