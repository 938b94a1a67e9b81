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
package pet

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/unikorn-cloud/petstore/pkg/openapi"
	"github.com/unikorn-cloud/petstore/pkg/server/errors"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Registry is the in-memory pet store backing the stub server.
type Registry struct {
	lock  sync.RWMutex
	pets  map[int64]openapi.Pet
	order []int64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		pets: map[int64]openapi.Pet{},
	}
}

// Client wraps up pet related management handling.
type Client struct {
	registry *Registry
}

// NewClient returns a new client.
func NewClient(registry *Registry) *Client {
	return &Client{
		registry: registry,
	}
}

func petNotFound() *errors.Error {
	return errors.HTTPNotFound("Pet not found")
}

// clone returns a copy that shares no slices or pointers with in.
func clone(in openapi.Pet) openapi.Pet {
	out := in

	if in.Category != nil {
		category := *in.Category
		out.Category = &category
	}

	out.PhotoUrls = slices.Clone(in.PhotoUrls)
	out.Tags = slices.Clone(in.Tags)

	if out.PhotoUrls == nil {
		out.PhotoUrls = []string{}
	}

	return out
}

func validate(request *openapi.Pet) error {
	if request.Name == "" {
		return errors.HTTPBadRequest("pet name is required")
	}

	if request.Status != "" && !request.Status.Valid() {
		return errors.HTTPBadRequest("invalid pet status").WithError(openapi.ErrInvalidPetStatus)
	}

	return nil
}

// nextID returns an identifier one greater than any in use, used when a
// client omits the identifier.
func (r *Registry) nextID() int64 {
	var id int64

	for _, existing := range r.order {
		id = max(id, existing)
	}

	return id + 1
}

// Create adds a pet, replacing any pet already registered with the same
// identifier.
func (c *Client) Create(ctx context.Context, request *openapi.Pet) (*openapi.Pet, error) {
	if err := validate(request); err != nil {
		return nil, err
	}

	c.registry.lock.Lock()
	defer c.registry.lock.Unlock()

	pet := clone(*request)

	if pet.ID == 0 {
		pet.ID = c.registry.nextID()
	}

	if _, ok := c.registry.pets[pet.ID]; !ok {
		c.registry.order = append(c.registry.order, pet.ID)
	}

	c.registry.pets[pet.ID] = pet

	log.FromContext(ctx).Info("pet created", "id", pet.ID, "name", pet.Name)

	result := clone(pet)

	return &result, nil
}

// Update replaces an existing pet.
func (c *Client) Update(ctx context.Context, request *openapi.Pet) (*openapi.Pet, error) {
	if err := validate(request); err != nil {
		return nil, err
	}

	c.registry.lock.Lock()
	defer c.registry.lock.Unlock()

	if _, ok := c.registry.pets[request.ID]; !ok {
		return nil, petNotFound()
	}

	pet := clone(*request)

	c.registry.pets[pet.ID] = pet

	log.FromContext(ctx).Info("pet updated", "id", pet.ID, "status", pet.Status)

	result := clone(pet)

	return &result, nil
}

// Get returns a single pet.
func (c *Client) Get(_ context.Context, petID int64) (*openapi.Pet, error) {
	c.registry.lock.RLock()
	defer c.registry.lock.RUnlock()

	pet, ok := c.registry.pets[petID]
	if !ok {
		return nil, petNotFound()
	}

	result := clone(pet)

	return &result, nil
}

// FindByStatus returns every pet whose status is one of those requested,
// in the order they were added.
func (c *Client) FindByStatus(_ context.Context, statuses []openapi.PetStatus) (openapi.Pets, error) {
	for _, status := range statuses {
		if !status.Valid() {
			return nil, errors.HTTPBadRequest("Invalid status value").WithError(openapi.ErrInvalidPetStatus)
		}
	}

	c.registry.lock.RLock()
	defer c.registry.lock.RUnlock()

	result := openapi.Pets{}

	for _, id := range c.registry.order {
		pet := c.registry.pets[id]

		if slices.Contains(statuses, pet.Status) {
			result = append(result, clone(pet))
		}
	}

	return result, nil
}

// UpdateWithForm changes the name and status of a pet. Empty values are
// left untouched.
func (c *Client) UpdateWithForm(ctx context.Context, petID int64, name, status string) (*openapi.ApiResponse, error) {
	var petStatus openapi.PetStatus

	if status != "" {
		s, err := openapi.ParsePetStatus(status)
		if err != nil {
			return nil, errors.HTTPBadRequest("Invalid status value").WithError(err)
		}

		petStatus = s
	}

	c.registry.lock.Lock()
	defer c.registry.lock.Unlock()

	pet, ok := c.registry.pets[petID]
	if !ok {
		return nil, petNotFound()
	}

	if name != "" {
		pet.Name = name
	}

	if petStatus != "" {
		pet.Status = petStatus
	}

	c.registry.pets[petID] = pet

	log.FromContext(ctx).Info("pet form updated", "id", petID, "name", pet.Name, "status", pet.Status)

	return acknowledge(strconv.FormatInt(petID, 10)), nil
}

// Delete removes a pet.
func (c *Client) Delete(ctx context.Context, petID int64) (*openapi.ApiResponse, error) {
	c.registry.lock.Lock()
	defer c.registry.lock.Unlock()

	if _, ok := c.registry.pets[petID]; !ok {
		return nil, petNotFound()
	}

	delete(c.registry.pets, petID)

	c.registry.order = slices.DeleteFunc(c.registry.order, func(id int64) bool {
		return id == petID
	})

	log.FromContext(ctx).Info("pet deleted", "id", petID)

	return acknowledge(strconv.FormatInt(petID, 10)), nil
}

// UploadImage records nothing, it only acknowledges the upload the way the
// public petstore does.
func (c *Client) UploadImage(ctx context.Context, petID int64, additionalMetadata, filename string, size int64) (*openapi.ApiResponse, error) {
	if _, err := c.Get(ctx, petID); err != nil {
		return nil, err
	}

	log.FromContext(ctx).Info("pet image uploaded", "id", petID, "file", filename, "bytes", size)

	message := fmt.Sprintf("additionalMetadata: %s\nFile uploaded to ./%s, %d bytes", additionalMetadata, filename, size)

	return acknowledge(message), nil
}

func acknowledge(message string) *openapi.ApiResponse {
	return &openapi.ApiResponse{
		Code:    200,
		Type:    openapi.ApiResponseTypeUnknown,
		Message: message,
	}
}
