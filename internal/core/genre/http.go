// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/readverse/internal/platform/request"
	"github.com/taibuivan/readverse/internal/platform/respond"
)

// # Handler Implementation

// Handler exposes genres over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public genre endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listGenres)
	return router
}

// AdminRoutes returns the genre management endpoints. The caller mounts them
// behind the admin role guard.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.createGenre)
	return router
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

type createGenreRequest struct {
	Genre string `json:"genre"`
	Name  string `json:"name"`
}

// createGenre accepts {"genre": "..."} as JSON or a "genre" form field.
func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var name string

	if requestutil.IsJSON(request) {
		var body createGenreRequest
		if err := requestutil.DecodeJSON(request, &body); err != nil {
			respond.FormError(writer, request, err)
			return
		}
		name = body.Genre
		if name == "" {
			name = body.Name
		}
	} else {
		values, err := requestutil.FormValues(request)
		if err != nil {
			respond.FormError(writer, request, err)
			return
		}
		name = values.Get(FieldName)
	}

	genre, err := handler.service.Create(request.Context(), name)
	if err != nil {
		respond.FormError(writer, request, err)
		return
	}

	respond.Form(writer, http.StatusCreated, respond.FormState{ResetForm: true, Data: genre})
}
