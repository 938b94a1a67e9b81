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
//nolint:revive
package handler

import (
	goerrors "errors"
	"io"
	"net/http"

	"github.com/unikorn-cloud/petstore/pkg/openapi"
	"github.com/unikorn-cloud/petstore/pkg/server/errors"
	"github.com/unikorn-cloud/petstore/pkg/server/handler/pet"
	"github.com/unikorn-cloud/petstore/pkg/server/util"
)

// maxUploadMemory is how much of a multipart upload is held in memory
// before spilling to temporary files. Any body that is accepted at all
// fits.
const maxUploadMemory = openapi.MaxRequestBodySize

type Handler struct {
	// registry holds every pet known to the stub.
	registry *pet.Registry
}

func New(registry *pet.Registry) (*Handler, error) {
	h := &Handler{
		registry: registry,
	}

	return h, nil
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

func (h *Handler) petClient() *pet.Client {
	return pet.NewClient(h.registry)
}

// invalidBody reports a body that could not be read, distinguishing one that
// was cut off by the request size limit.
func invalidBody(message string, err error) *errors.Error {
	var maxBytesError *http.MaxBytesError

	if goerrors.As(err, &maxBytesError) {
		return errors.HTTPRequestEntityTooLarge("Request too large").WithError(err)
	}

	return errors.HTTPBadRequest(message).WithError(err)
}

func (h *Handler) AddPet(w http.ResponseWriter, r *http.Request) {
	request := &openapi.Pet{}

	if err := util.ReadJSONBody(r, request); err != nil {
		errors.HandleError(w, r, invalidBody("Invalid input", err))
		return
	}

	result, err := h.petClient().Create(r.Context(), request)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	request := &openapi.Pet{}

	if err := util.ReadJSONBody(r, request); err != nil {
		errors.HandleError(w, r, invalidBody("Invalid input", err))
		return
	}

	result, err := h.petClient().Update(r.Context(), request)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) FindPetsByStatus(w http.ResponseWriter, r *http.Request, params openapi.FindPetsByStatusParams) {
	result, err := h.petClient().FindByStatus(r.Context(), params.Status)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) GetPetById(w http.ResponseWriter, r *http.Request, petID openapi.PetIDParameter) {
	result, err := h.petClient().Get(r.Context(), petID)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) UpdatePetWithForm(w http.ResponseWriter, r *http.Request, petID openapi.PetIDParameter) {
	if err := r.ParseForm(); err != nil {
		errors.HandleError(w, r, invalidBody("Invalid input", err))
		return
	}

	result, err := h.petClient().UpdateWithForm(r.Context(), petID, r.PostForm.Get("name"), r.PostForm.Get("status"))
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) DeletePet(w http.ResponseWriter, r *http.Request, petID openapi.PetIDParameter) {
	result, err := h.petClient().Delete(r.Context(), petID)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request, petID openapi.PetIDParameter) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		errors.HandleError(w, r, invalidBody("Invalid multipart form", err))
		return
	}

	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		errors.HandleError(w, r, errors.HTTPBadRequest("No file uploaded").WithError(err))
		return
	}

	defer file.Close()

	// Drain so the reported size reflects what actually arrived.
	size, err := io.Copy(io.Discard, file)
	if err != nil {
		errors.HandleError(w, r, invalidBody("Unreadable file", err))
		return
	}

	result, err := h.petClient().UploadImage(r.Context(), petID, r.FormValue("additionalMetadata"), header.Filename, size)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}
