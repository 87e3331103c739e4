package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// byID matches only UUID path ids, so "me" and "feed" never reach the {id} handlers.
const byID = "{id:[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}}"

// NewRouter registers every route on the root router with its full path. A path
// that matches with the wrong method gets the JSON 405. Middlewares run only for
// matched routes, so they can rely on mux.CurrentRoute.
func NewRouter(h *Handlers, middlewares ...mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(NotFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(MethodNotAllowedHandler)
	r.Use(middlewares...)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/refresh-token", h.RefreshToken).Methods(http.MethodPost)

	r.HandleFunc("/api/profiles", h.ListProfiles).Methods(http.MethodGet)
	r.HandleFunc("/api/profiles", h.CreateProfile).Methods(http.MethodPost)
	r.HandleFunc("/api/profiles/me", h.GetMyProfile).Methods(http.MethodGet)
	r.HandleFunc("/api/profiles/me", h.UpdateMyProfile).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/api/profiles/me/image", h.UploadProfileImage).Methods(http.MethodPost)
	r.HandleFunc("/api/profiles/"+byID, h.GetProfile).Methods(http.MethodGet)
	r.HandleFunc("/api/profiles/"+byID, h.UpdateProfile).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/api/profiles/"+byID, h.DeleteProfile).Methods(http.MethodDelete)
	r.HandleFunc("/api/profiles/"+byID+"/follow", h.Follow).Methods(http.MethodPost)
	r.HandleFunc("/api/profiles/"+byID+"/unfollow", h.Unfollow).Methods(http.MethodPost)
	r.HandleFunc("/api/profiles/"+byID+"/followers", h.Followers).Methods(http.MethodGet)
	r.HandleFunc("/api/profiles/"+byID+"/following", h.Following).Methods(http.MethodGet)

	r.HandleFunc("/api/posts", h.ListPosts).Methods(http.MethodGet)
	r.HandleFunc("/api/posts", h.CreatePost).Methods(http.MethodPost)
	r.HandleFunc("/api/posts/me", h.MyPosts).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/feed", h.Feed).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/"+byID, h.GetPost).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/"+byID, h.UpdatePost).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/api/posts/"+byID, h.DeletePost).Methods(http.MethodDelete)
	r.HandleFunc("/api/posts/"+byID+"/media", h.UploadPostMedia).Methods(http.MethodPost)

	return r
}
