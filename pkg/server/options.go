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
package server

import (
	"time"

	"github.com/spf13/pflag"
)

// Options control the stub server.
type Options struct {
	// ListenAddress is the host:port to serve on.
	ListenAddress string

	// APIKey is the value required in the api_key header. Empty accepts
	// any non-empty key, as the public petstore does.
	APIKey string

	// ReadTimeout bounds reading a whole request, including uploads.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing a response.
	WriteTimeout time.Duration

	// DisableValidation skips OpenAPI request validation.
	DisableValidation bool
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.ListenAddress, "listen-address", ":8080", "API listener address.")
	f.StringVar(&o.APIKey, "api-key", "", "Required api_key header value, any non-empty key is accepted when unset.")
	f.DurationVar(&o.ReadTimeout, "read-timeout", 30*time.Second, "How long to wait for a request to be read.")
	f.DurationVar(&o.WriteTimeout, "write-timeout", 30*time.Second, "How long to wait for a response to be written.")
	f.BoolVar(&o.DisableValidation, "disable-validation", false, "Disable OpenAPI request validation.")
}
