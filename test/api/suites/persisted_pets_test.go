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
//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/petstore/pkg/openapi"
	"github.com/unikorn-cloud/petstore/test/api"
)

// maxStalePets bounds how many remembered pets are checked before giving up
// and creating a new one.
const maxStalePets = 5

var _ = Describe("Persisted Pets", Ordered, func() {
	var pet openapi.Pet

	BeforeAll(func() {
		// Pets remembered from earlier runs may since have been removed or
		// changed by someone else, those are dropped from the list.
		for range maxStalePets {
			candidate, ok := session.Store.Random()
			if !ok {
				break
			}

			_, err := session.Lifecycle.Retrieve(ctx, candidate.ID, candidate.Name)
			if err == nil {
				GinkgoWriter.Printf("Reusing persisted pet with ID: %d\n", candidate.ID)

				pet = candidate

				return
			}

			if !api.IsStatusError(err, http.StatusNotFound) && !api.IsValidationError(err) {
				Expect(err).NotTo(HaveOccurred())
			}

			GinkgoWriter.Printf("Dropping stale pet with ID: %d\n", candidate.ID)

			Expect(session.Store.Remove(candidate.ID)).To(Succeed())
		}

		created, err := session.Lifecycle.Create(ctx, session.Store)
		Expect(err).NotTo(HaveOccurred())

		pet = created
	})

	Context("When updating a persisted pet", func() {
		It("should replace every field and mirror the result locally", func() {
			candidate := api.UpdatedPetRecord(pet, api.StatusesExcept(openapi.PetStatuses(), pet.Status))

			updated, err := session.Lifecycle.Update(ctx, session.Store, candidate)
			Expect(err).NotTo(HaveOccurred())

			local, ok := session.Store.Get(pet.ID)
			Expect(ok).To(BeTrue())
			Expect(local).To(Equal(updated))

			pet = updated
		})

		It("should change name and status with a form", func() {
			name := api.NewName()
			status := api.RandomStatus(openapi.PetStatuses())

			Expect(session.Lifecycle.UpdateWithForm(ctx, session.Store, pet.ID, name, status)).To(Succeed())

			local, ok := session.Store.Find(func(candidate openapi.Pet) bool {
				return candidate.Name == name
			})
			Expect(ok).To(BeTrue())
			Expect(local.ID).To(Equal(pet.ID))
			Expect(local.Status).To(Equal(status))

			pet = local
		})
	})

	Context("When uploading an image for a persisted pet", func() {
		It("should acknowledge the upload with its metadata", func() {
			result, err := session.Lifecycle.UploadImage(ctx, pet.ID, session.Config.ImagePath, session.Config.ImageMetadata)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Type).To(Equal(openapi.ApiResponseTypeUnknown))
		})
	})

	Context("When deleting a persisted pet", func() {
		It("should remove the pet remotely and locally", func() {
			Expect(session.Lifecycle.Delete(ctx, session.Store, pet.ID)).To(Succeed())

			Expect(session.Store.IDs().Contains(pet.ID)).To(BeFalse())
		})
	})
})
