package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentledger-backend/internal/service"
)

type AssetHandler struct {
	assets service.AssetService
}

func NewAssetHandler(assets service.AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.AssetInput
	if !decodeBody(w, r, &in) {
		return
	}
	asset, err := h.assets.CreateAsset(r.Context(), ownerID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	asset, err := h.assets.GetAsset(r.Context(), ownerID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	assets, err := h.assets.ListAssets(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.AssetInput
	if !decodeBody(w, r, &in) {
		return
	}
	asset, err := h.assets.UpdateAsset(r.Context(), ownerID, mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.assets.DeleteAsset(r.Context(), ownerID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
