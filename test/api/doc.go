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
// Package api provides end-to-end test utilities for the petstore API.
//
// # Separate Client Implementation
//
// This package maintains its own HTTP client (APIClient) rather than a
// generated one. Requests are built by hand from the endpoint paths, so a
// change to the petstore's contract shows up here as a failing operation
// instead of being absorbed by regenerated code.
//
// The client carries features that only matter when testing:
//   - W3C trace context propagation for request correlation
//   - Error logging with trace IDs for debugging
//   - Direct access to HTTP status codes and response bodies
//
// # Local Pet List
//
// Every pet created by a run is mirrored into a JSON file (PetStore), and
// kept in step as pets are updated and deleted. The file is rewritten in full
// after each change.
//
// # Targets
//
// Suites run against the public petstore by default. Setting PETSTORE_STUB
// starts the server from pkg/server in-process and points the client at it.
package api
