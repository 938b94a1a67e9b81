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

	"k8s.io/utils/ptr"
)

// PetPayloadBuilder builds pet payloads for testing.
type PetPayloadBuilder struct {
	pet openapi.Pet
}

// NewPetPayload creates a new pet payload builder seeded with a random,
// available pet.
func NewPetPayload() *PetPayloadBuilder {
	return &PetPayloadBuilder{
		pet: NewPetRecord(set.New[int64]()),
	}
}

// NewPetPayloadExcluding is NewPetPayload with an identifier that avoids
// those already in use.
func NewPetPayloadExcluding(excluding set.Set[int64]) *PetPayloadBuilder {
	return &PetPayloadBuilder{
		pet: NewPetRecord(excluding),
	}
}

// WithID sets the pet identifier.
func (b *PetPayloadBuilder) WithID(id int64) *PetPayloadBuilder {
	b.pet.ID = id
	return b
}

// WithName sets the pet name.
func (b *PetPayloadBuilder) WithName(name string) *PetPayloadBuilder {
	b.pet.Name = name
	return b
}

// WithStatus sets the pet status.
func (b *PetPayloadBuilder) WithStatus(status openapi.PetStatus) *PetPayloadBuilder {
	b.pet.Status = status
	return b
}

// WithCategory sets the category.
func (b *PetPayloadBuilder) WithCategory(id int64, name string) *PetPayloadBuilder {
	b.pet.Category = ptr.To(openapi.Category{ID: id, Name: name})
	return b
}

// WithoutCategory omits the category.
func (b *PetPayloadBuilder) WithoutCategory() *PetPayloadBuilder {
	b.pet.Category = nil
	return b
}

// WithPhotoURLs replaces the photo URLs.
func (b *PetPayloadBuilder) WithPhotoURLs(urls ...string) *PetPayloadBuilder {
	b.pet.PhotoUrls = urls
	return b
}

// WithTag appends a tag.
func (b *PetPayloadBuilder) WithTag(id int64, name string) *PetPayloadBuilder {
	b.pet.Tags = append(b.pet.Tags, openapi.Tag{ID: id, Name: name})
	return b
}

// WithoutTags removes all tags.
func (b *PetPayloadBuilder) WithoutTags() *PetPayloadBuilder {
	b.pet.Tags = nil
	return b
}

// Build returns the completed pet payload.
func (b *PetPayloadBuilder) Build() openapi.Pet {
	return clonePet(b.pet)
}

// clonePet returns a copy of pet sharing no slices or pointers with it.
func clonePet(pet openapi.Pet) openapi.Pet {
	out := pet

	if pet.Category != nil {
		out.Category = ptr.To(*pet.Category)
	}

	out.PhotoUrls = slices.Clone(pet.PhotoUrls)
	out.Tags = slices.Clone(pet.Tags)

	return out
}
