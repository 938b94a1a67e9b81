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

	"github.com/unikorn-cloud/petstore/test/api"
)

var _ = Describe("Error Handling", func() {
	Context("When a pet does not exist", func() {
		var id int64

		BeforeEach(func() {
			created, err := session.Lifecycle.Create(ctx, session.Store)
			Expect(err).NotTo(HaveOccurred())
			Expect(session.Lifecycle.Delete(ctx, session.Store, created.ID)).To(Succeed())

			id = created.ID
		})

		It("should report not found when retrieving it", func() {
			_, err := session.Lifecycle.Retrieve(ctx, id, "")
			Expect(err).To(HaveOccurred())
			Expect(api.IsStatusError(err, http.StatusNotFound)).To(BeTrue())
			Expect(api.IsValidationError(err)).To(BeFalse())
		})

		It("should leave the local list untouched when updating it", func() {
			before := session.Store.Pets()

			err := session.Lifecycle.UpdateWithForm(ctx, session.Store, id, api.NewName(), "sold")
			Expect(err).To(HaveOccurred())
			Expect(session.Store.Pets()).To(Equal(before))
		})
	})

	Context("When the API key is wrong", func() {
		BeforeEach(func() {
			if !session.Config.UseStub {
				Skip("the public petstore does not enforce API keys")
			}
		})

		It("should be rejected as unauthorized", func() {
			client := api.NewAPIClientWithConfig(session.Config)
			client.SetAPIKey("not-" + session.Config.APIKey)

			_, err := api.NewPetLifecycle(client).Retrieve(ctx, api.NewIdentifier(), "")
			Expect(err).To(HaveOccurred())
			Expect(api.IsStatusError(err, http.StatusUnauthorized)).To(BeTrue())
		})
	})
})
