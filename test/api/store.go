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
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/spjmurray/go-util/pkg/set"

	"github.com/unikorn-cloud/petstore/pkg/openapi"

	"k8s.io/apimachinery/pkg/util/rand"
)

// PetStore is the local pet list, mirrored to a JSON file after every
// change so state survives between test runs. It is not safe for
// concurrent use.
type PetStore struct {
	path string
	pets openapi.Pets
}

// OpenPetStore seeds the list from path. A missing file is created holding
// an empty list, a malformed one is an error.
func OpenPetStore(path string) (*PetStore, error) {
	s := &PetStore{
		path: path,
		pets: openapi.Pets{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading pet store %s: %w", path, err)
		}

		if err := s.Save(); err != nil {
			return nil, err
		}

		return s, nil
	}

	if err := json.Unmarshal(data, &s.pets); err != nil {
		return nil, fmt.Errorf("parsing pet store %s: %w", path, err)
	}

	if s.pets == nil {
		s.pets = openapi.Pets{}
	}

	return s, nil
}

// Path is the file the list is persisted to.
func (s *PetStore) Path() string {
	return s.path
}

// Save overwrites the file with the full list, indented by two spaces.
func (s *PetStore) Save() error {
	return s.write(s.pets)
}

func (s *PetStore) write(pets openapi.Pets) error {
	data, err := json.MarshalIndent(pets, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling pet store: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing pet store %s: %w", s.path, err)
	}

	return nil
}

// commit persists the candidate list and only then adopts it, so the list
// and the file never disagree after a failed write.
func (s *PetStore) commit(pets openapi.Pets) error {
	if err := s.write(pets); err != nil {
		return err
	}

	s.pets = pets

	return nil
}

// Len is the number of pets in the list.
func (s *PetStore) Len() int {
	return len(s.pets)
}

// Pets returns a copy of the list.
func (s *PetStore) Pets() openapi.Pets {
	out := make(openapi.Pets, len(s.pets))

	for i := range s.pets {
		out[i] = clonePet(s.pets[i])
	}

	return out
}

// IDs returns the set of identifiers in use.
func (s *PetStore) IDs() set.Set[int64] {
	ids := make([]int64, len(s.pets))

	for i := range s.pets {
		ids[i] = s.pets[i].ID
	}

	return set.New(ids...)
}

func (s *PetStore) index(id int64) int {
	return slices.IndexFunc(s.pets, func(pet openapi.Pet) bool {
		return pet.ID == id
	})
}

// Get returns the pet with the given identifier.
func (s *PetStore) Get(id int64) (openapi.Pet, bool) {
	i := s.index(id)
	if i < 0 {
		return openapi.Pet{}, false
	}

	return clonePet(s.pets[i]), true
}

// Find returns the first pet matching the predicate.
func (s *PetStore) Find(predicate func(openapi.Pet) bool) (openapi.Pet, bool) {
	i := slices.IndexFunc(s.pets, predicate)
	if i < 0 {
		return openapi.Pet{}, false
	}

	return clonePet(s.pets[i]), true
}

// Random returns a uniformly chosen pet.
func (s *PetStore) Random() (openapi.Pet, bool) {
	if len(s.pets) == 0 {
		return openapi.Pet{}, false
	}

	return clonePet(s.pets[rand.Intn(len(s.pets))]), true
}

// Append adds a pet to the end of the list and persists it.
func (s *PetStore) Append(pet openapi.Pet) error {
	if s.index(pet.ID) >= 0 {
		return fmt.Errorf("%w: id %d", ErrDuplicatePet, pet.ID)
	}

	return s.commit(append(slices.Clone(s.pets), clonePet(pet)))
}

// Replace swaps the pet with the same identifier in place and persists it.
func (s *PetStore) Replace(pet openapi.Pet) error {
	i := s.index(pet.ID)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrPetNotFound, pet.ID)
	}

	pets := slices.Clone(s.pets)
	pets[i] = clonePet(pet)

	return s.commit(pets)
}

// Patch changes the name and status of a pet in place and persists it.
func (s *PetStore) Patch(id int64, name string, status openapi.PetStatus) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrPetNotFound, id)
	}

	pets := slices.Clone(s.pets)
	pets[i].Name = name
	pets[i].Status = status

	return s.commit(pets)
}

// Remove deletes the pet with the given identifier and persists the list.
func (s *PetStore) Remove(id int64) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrPetNotFound, id)
	}

	return s.commit(slices.Delete(slices.Clone(s.pets), i, i+1))
}
