package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentledger-backend/internal/service"
)

type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.RentalInput
	if !decodeBody(w, r, &in) {
		return
	}
	rental, err := h.rentals.CreateRental(r.Context(), ownerID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentals.GetRental(r.Context(), ownerID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rentals, err := h.rentals.ListRentals(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.RentalInput
	if !decodeBody(w, r, &in) {
		return
	}
	rental, err := h.rentals.UpdateRental(r.Context(), ownerID, mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.rentals.DeleteRental(r.Context(), ownerID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
