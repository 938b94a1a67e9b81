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
	"slices"

	"github.com/spjmurray/go-util/pkg/set"

	"github.com/unikorn-cloud/petstore/pkg/openapi"

	"k8s.io/apimachinery/pkg/util/rand"
	"k8s.io/utils/ptr"
)

const (
	// MaxIdentifier bounds generated pet identifiers, exclusive.
	MaxIdentifier = 1_000_000

	// NamePrefix starts every generated pet name.
	NamePrefix = "Doggie"

	// nameSuffixLength is the number of random characters after the prefix.
	nameSuffixLength = 6

	// SamplePhotoURL is attached to newly created pets.
	SamplePhotoURL = "https://commons.wikimedia.org/wiki/File:Cute_dog.jpg"

	// UpdatedPhotoURL replaces the photo list on a full update.
	UpdatedPhotoURL = "https://example.com/updated_doggie.jpg"
)

// NewIdentifier returns a random identifier in [0, MaxIdentifier). It makes
// no attempt to avoid identifiers already in use, see GenerateIdentifier.
func NewIdentifier() int64 {
	return int64(rand.Intn(MaxIdentifier))
}

// GenerateIdentifier returns a random identifier that is not in excluding.
func GenerateIdentifier(excluding set.Set[int64]) int64 {
	for {
		id := NewIdentifier()

		if !excluding.Contains(id) {
			return id
		}
	}
}

// NewName returns the name prefix followed by a random lower case
// alphanumeric suffix. Names are not guaranteed to be unique.
func NewName() string {
	return NamePrefix + rand.String(nameSuffixLength)
}

// NewPetRecord returns a pet, ready to be created, whose identifier does not
// collide with any in excluding.
func NewPetRecord(excluding set.Set[int64]) openapi.Pet {
	return openapi.Pet{
		ID: GenerateIdentifier(excluding),
		Category: ptr.To(openapi.Category{
			ID:   100,
			Name: "test100",
		}),
		Name:      NewName(),
		PhotoUrls: []string{SamplePhotoURL},
		Tags: []openapi.Tag{
			{
				ID:   101,
				Name: "test101",
			},
		},
		Status: openapi.PetStatusAvailable,
	}
}

// UpdatedPetRecord returns a full replacement for pet, keeping its identifier
// and randomizing everything else. The status is drawn from statuses.
func UpdatedPetRecord(pet openapi.Pet, statuses []openapi.PetStatus) openapi.Pet {
	return openapi.Pet{
		ID: pet.ID,
		Category: ptr.To(openapi.Category{
			ID:   NewIdentifier(),
			Name: "Category" + NewName(),
		}),
		Name:      "Updated" + NewName(),
		PhotoUrls: []string{UpdatedPhotoURL},
		Tags: []openapi.Tag{
			{
				ID:   NewIdentifier(),
				Name: "Tag" + NewName(),
			},
		},
		Status: RandomStatus(statuses),
	}
}

// RandomStatus picks uniformly from statuses, or from every defined status
// when none are given.
func RandomStatus(statuses []openapi.PetStatus) openapi.PetStatus {
	if len(statuses) == 0 {
		statuses = openapi.PetStatuses()
	}

	return statuses[rand.Intn(len(statuses))]
}

// StatusesExcept returns statuses without any of those excluded.
func StatusesExcept(statuses []openapi.PetStatus, excluded ...openapi.PetStatus) []openapi.PetStatus {
	return slices.DeleteFunc(slices.Clone(statuses), func(status openapi.PetStatus) bool {
		return slices.Contains(excluded, status)
	})
}
