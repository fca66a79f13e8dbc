// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/readverse/internal/platform/request"
	"github.com/taibuivan/readverse/internal/platform/respond"
	"github.com/taibuivan/readverse/pkg/query"
)

// # Handler Implementation

// Handler exposes comment threads over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ThreadRoutes returns the endpoints mounted under /contents/{contentID}/comments.
// Writes require an authenticated caller.
func (handler *Handler) ThreadRoutes(requireAuth func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listComments)
	router.With(requireAuth).Post("/", handler.createComment)
	return router
}

// Routes returns the per-comment endpoints mounted under /comments. The caller
// wraps them with authentication.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Patch("/{id}", handler.editComment)
	router.Delete("/{id}", handler.deleteComment)
	router.Post("/{id}/report", handler.reportComment)
	return router
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	thread := Thread{
		ContentID: requestutil.Param(request, "contentID"),
		ChapterID: values.Get("chapterId"),
	}

	page, err := handler.service.List(request.Context(), thread, SortKey(values.Get("sortKey")), query.Int(values, "page", 1))
	if err != nil {
		respond.FormError(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusOK, page)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.FormError(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.FormError(writer, request, err)
		return
	}
	input.ContentID = requestutil.Param(request, "contentID")

	comment, err := handler.service.Create(request.Context(), caller, input)
	if err != nil {
		respond.FormError(writer, request, err)
		return
	}
	respond.Form(writer, http.StatusCreated, respond.FormState{ResetForm: true, Data: comment})
}

type editRequest struct {
	Message string `json:"message"`
}

func (handler *Handler) editComment(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.FormError(writer, request, err)
		return
	}

	var body editRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.FormError(writer, request, err)
		return
	}

	comment, err := handler.service.Edit(request.Context(), caller, requestutil.Param(request, "id"), body.Message)
	if err != nil {
		respond.FormError(writer, request, err)
		return
	}
	respond.Form(writer, http.StatusOK, respond.FormState{ResetForm: true, Data: comment})
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), caller, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) reportComment(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Report(request.Context(), caller, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
