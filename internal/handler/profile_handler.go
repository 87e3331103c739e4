package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialnetwork/internal/filter"
	"socialnetwork/internal/service"
)

// ProfileRequest serves create, PUT and PATCH alike: every field is optional
// and omitted fields keep their value.
type ProfileRequest struct {
	Bio     *string `json:"bio"`
	Country *string `json:"country" validate:"omitempty,max=255"`
	City    *string `json:"city" validate:"omitempty,max=255"`
}

func (req ProfileRequest) changes() service.ProfileChanges {
	return service.ProfileChanges{Bio: req.Bio, Country: req.Country, City: req.City}
}

func (h *Handlers) decodeProfile(w http.ResponseWriter, r *http.Request) (service.ProfileChanges, bool) {
	var req ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return service.ProfileChanges{}, false
	}

	if err := h.validate(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return service.ProfileChanges{}, false
	}

	return req.changes(), true
}

func (h *Handlers) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.ProfileService.List(r.Context(), CallerFrom(r.Context()), filter.ProfileFromQuery(r.URL.Query()))
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderProfiles(ProfileList, profiles), http.StatusOK)
}

func (h *Handlers) CreateProfile(w http.ResponseWriter, r *http.Request) {
	changes, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	profile, err := h.ProfileService.Create(r.Context(), CallerFrom(r.Context()), changes)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderProfile(ProfileCreate, profile), http.StatusCreated)
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.ProfileService.Get(r.Context(), CallerFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderProfile(ProfileRetrieve, profile), http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	changes, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	profile, err := h.ProfileService.Update(r.Context(), CallerFrom(r.Context()), mux.Vars(r)["id"], changes)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderProfile(ProfileUpdate, profile), http.StatusOK)
}

func (h *Handlers) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.ProfileService.Delete(r.Context(), CallerFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeAppError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.ProfileService.Me(r.Context(), CallerFrom(r.Context()))
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderProfile(ProfileMe, profile), http.StatusOK)
}

func (h *Handlers) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	changes, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	profile, err := h.ProfileService.UpdateMe(r.Context(), CallerFrom(r.Context()), changes)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderProfile(ProfileMe, profile), http.StatusOK)
}

func (h *Handlers) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	upload, file, err := h.readUpload(w, r, "image")
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	profile, err := h.ProfileService.SetImage(r.Context(), CallerFrom(r.Context()), upload)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderProfile(ProfileMe, profile), http.StatusOK)
}

func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	message, err := h.FollowService.Follow(r.Context(), CallerFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: message}, http.StatusCreated)
}

func (h *Handlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	if err := h.FollowService.Unfollow(r.Context(), CallerFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeAppError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Followers(w http.ResponseWriter, r *http.Request) {
	edges, err := h.FollowService.Followers(r.Context(), CallerFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderEdges(edges), http.StatusOK)
}

func (h *Handlers) Following(w http.ResponseWriter, r *http.Request) {
	edges, err := h.FollowService.Following(r.Context(), CallerFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderEdges(edges), http.StatusOK)
}
