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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/petstore/pkg/openapi"
	"github.com/unikorn-cloud/petstore/test/api"
)

var _ = Describe("Pet Lifecycle", Ordered, func() {
	var pet openapi.Pet

	Context("When creating a pet", func() {
		It("should create the pet and record it locally", func() {
			created, err := session.Lifecycle.Create(ctx, session.Store)
			Expect(err).NotTo(HaveOccurred())

			Expect(created.Name).To(HavePrefix(api.NamePrefix))
			Expect(created.Status).To(Equal(openapi.PetStatusAvailable))

			local, ok := session.Store.Get(created.ID)
			Expect(ok).To(BeTrue())
			Expect(local).To(Equal(created))

			pet = created
		})
	})

	Context("When retrieving the pet", func() {
		It("should return the pet that was created", func() {
			retrieved, err := session.Lifecycle.Retrieve(ctx, pet.ID, pet.Name)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.ID).To(Equal(pet.ID))
			Expect(retrieved.Name).To(Equal(pet.Name))
		})

		It("should be repeatable without changing the local list", func() {
			before := session.Store.Pets()

			_, err := session.Lifecycle.Retrieve(ctx, pet.ID, pet.Name)
			Expect(err).NotTo(HaveOccurred())

			Expect(session.Store.Pets()).To(Equal(before))
		})
	})

	Context("When finding pets by status", func() {
		for _, status := range openapi.PetStatuses() {
			It("should only return pets with status "+string(status), func() {
				pets, err := session.Lifecycle.FindByStatus(ctx, status)
				Expect(err).NotTo(HaveOccurred())

				for _, found := range pets {
					Expect(found.Status).To(Equal(status))
				}
			})
		}

		It("should include the created pet under its status", func() {
			pets, err := session.Lifecycle.FindByStatus(ctx, pet.Status)
			Expect(err).NotTo(HaveOccurred())
			Expect(pets).To(ContainElement(HaveField("ID", pet.ID)))
		})
	})

	Context("When updating the pet", func() {
		It("should replace every field and mirror the result locally", func() {
			candidate := api.UpdatedPetRecord(pet, api.StatusesExcept(openapi.PetStatuses(), pet.Status))

			updated, err := session.Lifecycle.Update(ctx, session.Store, candidate)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.PhotoUrls).To(ConsistOf(api.UpdatedPhotoURL))
			Expect(updated.Status).NotTo(Equal(pet.Status))

			local, ok := session.Store.Get(pet.ID)
			Expect(ok).To(BeTrue())
			Expect(local).To(Equal(updated))

			pet = updated
		})

		It("should change name and status with a form", func() {
			name := api.NewName()
			status := api.RandomStatus(api.StatusesExcept(openapi.PetStatuses(), openapi.PetStatusAvailable))

			Expect(session.Lifecycle.UpdateWithForm(ctx, session.Store, pet.ID, name, status)).To(Succeed())

			local, ok := session.Store.Get(pet.ID)
			Expect(ok).To(BeTrue())
			Expect(local.Name).To(Equal(name))
			Expect(local.Status).To(Equal(status))

			pet = local
		})
	})

	Context("When uploading an image", func() {
		It("should acknowledge the upload with its metadata", func() {
			before := session.Store.Pets()

			result, err := session.Lifecycle.UploadImage(ctx, pet.ID, session.Config.ImagePath, session.Config.ImageMetadata)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Message).To(ContainSubstring(session.Config.ImageMetadata))

			Expect(session.Store.Pets()).To(Equal(before))
		})
	})

	Context("When deleting the pet", func() {
		It("should remove the pet remotely and locally", func() {
			Expect(session.Lifecycle.Delete(ctx, session.Store, pet.ID)).To(Succeed())

			_, ok := session.Store.Get(pet.ID)
			Expect(ok).To(BeFalse())
		})
	})
})
