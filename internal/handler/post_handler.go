package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialnetwork/internal/filter"
	"socialnetwork/internal/service"
)

type PostRequest struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required"`
}

// PostPatchRequest validates only the fields present in the body.
type PostPatchRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=100"`
	Content *string `json:"content"`
}

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.List(r.Context(), CallerFrom(r.Context()), filter.PostFromQuery(r.URL.Query()))
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderPosts(PostList, posts), http.StatusOK)
}

func (h *Handlers) MyPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.Mine(r.Context(), CallerFrom(r.Context()), filter.PostFromQuery(r.URL.Query()))
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderPosts(PostMine, posts), http.StatusOK)
}

func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.Feed(r.Context(), CallerFrom(r.Context()), filter.PostFromQuery(r.URL.Query()))
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderPosts(PostFeed, posts), http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.validate(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.PostService.Create(r.Context(), CallerFrom(r.Context()), req.Title, req.Content)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderPost(PostCreate, post), http.StatusCreated)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostService.Get(r.Context(), CallerFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderPost(PostRetrieve, post), http.StatusOK)
}

// UpdatePost handles PUT (every field required) and PATCH (only supplied fields).
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var changes service.PostChanges

	if r.Method == http.MethodPatch {
		var req PostPatchRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteError(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		err := h.validate(req)
		if err == nil {
			err = notBlank("title", req.Title)
		}
		if err == nil {
			err = notBlank("content", req.Content)
		}
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}

		changes = service.PostChanges{Title: req.Title, Content: req.Content}
	} else {
		var req PostRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteError(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		if err := h.validate(req); err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}

		changes = service.PostChanges{Title: &req.Title, Content: &req.Content}
	}

	post, err := h.PostService.Update(r.Context(), CallerFrom(r.Context()), mux.Vars(r)["id"], changes)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderPost(PostUpdate, post), http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.PostService.Delete(r.Context(), CallerFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeAppError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UploadPostMedia(w http.ResponseWriter, r *http.Request) {
	upload, file, err := h.readUpload(w, r, "media")
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	post, err := h.PostService.AttachMedia(r.Context(), CallerFrom(r.Context()), mux.Vars(r)["id"], upload)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, renderPost(PostUpdate, post), http.StatusOK)
}
