package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentledger-backend/internal/service"
)

// maxPhotoSize caps uploaded photo bodies at 10 MB.
const maxPhotoSize = 10 << 20

type ContactHandler struct {
	contacts service.ContactService
}

func NewContactHandler(contacts service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.ContactInput
	if !decodeBody(w, r, &in) {
		return
	}
	contact, err := h.contacts.CreateContact(r.Context(), ownerID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	contact, err := h.contacts.GetContact(r.Context(), ownerID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	contacts, err := h.contacts.ListContacts(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.ContactInput
	if !decodeBody(w, r, &in) {
		return
	}
	contact, err := h.contacts.UpdateContact(r.Context(), ownerID, mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.contacts.DeleteContact(r.Context(), ownerID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadPhoto accepts a multipart form with a "photo" file field and
// stores it in blob storage.
func (h *ContactHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed multipart body"})
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing photo file"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/gif":
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unsupported content type"})
		return
	}

	photo, err := h.contacts.UploadPhoto(r.Context(), ownerID, header.Filename, contentType, file, header.Size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, photo)
}
