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
	"errors"
	"fmt"

	"github.com/onsi/gomega/types"
)

var (
	// ErrDuplicatePet is raised when a pet identifier is already in the
	// local pet list.
	ErrDuplicatePet = errors.New("pet already exists in local pet list")

	// ErrPetNotFound is raised when a pet identifier is missing from the
	// local pet list.
	ErrPetNotFound = errors.New("pet not found in local pet list")
)

// ValidationError reports a response that arrived intact but broke the
// contract of the operation, as opposed to a transport failure.
type ValidationError struct {
	Operation string
	Field     string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: validation of %s failed: %s", e.Operation, e.Field, e.Message)
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var validationError *ValidationError

	return errors.As(err, &validationError)
}

// IsStatusError reports whether err is, or wraps, a StatusError with the
// given status code.
func IsStatusError(err error, statusCode int) bool {
	var statusError *StatusError

	return errors.As(err, &statusError) && statusError.StatusCode == statusCode
}

// validation applies Gomega matchers to response fields, remembering the
// first failure.
type validation struct {
	operation string
	err       error
}

func newValidation(operation string) *validation {
	return &validation{
		operation: operation,
	}
}

func (v *validation) expect(field string, actual any, matcher types.GomegaMatcher) *validation {
	if v.err != nil {
		return v
	}

	ok, err := matcher.Match(actual)
	if err != nil {
		v.err = &ValidationError{Operation: v.operation, Field: field, Message: err.Error()}
		return v
	}

	if !ok {
		v.err = &ValidationError{Operation: v.operation, Field: field, Message: matcher.FailureMessage(actual)}
	}

	return v
}

func (v *validation) Err() error {
	return v.err
}
