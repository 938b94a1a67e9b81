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
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/petstore/test/api"
)

var (
	ctx     context.Context
	config  *api.TestConfig
	session *api.Session
)

var _ = BeforeSuite(func() {
	var err error

	config, err = api.LoadTestConfig()
	Expect(err).NotTo(HaveOccurred())

	ctx = context.Background()

	session, err = api.NewSession(ctx, config)
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Petstore at %s, pets persisted to %s\n", session.Client.BaseURL(), session.Store.Path())
})

var _ = AfterSuite(func() {
	if session != nil {
		Expect(session.Close()).To(Succeed())
	}
})

func TestSuites(t *testing.T) {
	RegisterFailHandler(Fail)

	suiteConfig, reporterConfig := GinkgoConfiguration()

	if testConfig, err := api.LoadTestConfig(); err == nil {
		suiteConfig.Timeout = testConfig.TestTimeout
	}

	RunSpecs(t, "Petstore API Test Suites", suiteConfig, reporterConfig)
}
