// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/readverse/internal/platform/constants"
	"github.com/taibuivan/readverse/internal/platform/ctxutil"
	"github.com/taibuivan/readverse/internal/platform/pagecache"
	requestutil "github.com/taibuivan/readverse/internal/platform/request"
	"github.com/taibuivan/readverse/internal/platform/respond"
	"github.com/taibuivan/readverse/pkg/pagination"
	"github.com/taibuivan/readverse/pkg/query"
	"github.com/taibuivan/readverse/pkg/slice"
)

// # Handler Implementation

// Handler exposes contents over HTTP.
type Handler struct {
	service *Service
	cache   pagecache.Cache
}

func NewHandler(service *Service, cache pagecache.Cache) *Handler {
	return &Handler{service: service, cache: cache}
}

// Routes returns the public content endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listContents)
	router.Get("/{id}", handler.getContent)
	return router
}

// AdminRoutes returns the CMS endpoints. The caller mounts them behind the
// admin role guard.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.adminListContents)
	router.Post("/", handler.upsertContent)
	return router
}

// listContents serves GET /contents?filterBy=&sortBy=&tags=&genres=&status=&limit=.
// Failures use the form error shape.
func (handler *Handler) listContents(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	handler.cached(writer, request, constants.PageContentList, respond.FormError, func() (any, error) {
		summaries, err := handler.service.List(request.Context(), filterFromQuery(values), query.Int(values, "limit", 0))
		if err != nil {
			return nil, err
		}
		return respond.SuccessEnvelope{Data: summaries}, nil
	})
}

func (handler *Handler) getContent(writer http.ResponseWriter, request *http.Request) {
	content, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, content)
}

func (handler *Handler) adminListContents(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromValues(request.URL.Query(), constants.ContentListDefaultLimit, constants.ContentListMaxLimit)

	handler.cached(writer, request, constants.PageAdminContent, respond.Error, func() (any, error) {
		summaries, meta, err := handler.service.AdminList(request.Context(), params)
		if err != nil {
			return nil, err
		}
		return respond.PaginatedEnvelope{Data: summaries, Meta: meta}, nil
	})
}

// upsertContent accepts the content form as JSON, urlencoded or multipart.
func (handler *Handler) upsertContent(writer http.ResponseWriter, request *http.Request) {
	var payload Payload

	if requestutil.IsJSON(request) {
		if err := requestutil.DecodeJSON(request, &payload); err != nil {
			respond.FormError(writer, request, err)
			return
		}
	} else {
		values, err := requestutil.FormValues(request)
		if err != nil {
			respond.FormError(writer, request, err)
			return
		}
		payload = PayloadFromForm(values)
	}

	result, err := handler.service.Upsert(request.Context(), payload)
	if err != nil {
		respond.FormError(writer, request, err)
		return
	}

	if result.Created {
		respond.Form(writer, http.StatusCreated, respond.FormState{ResetForm: true, Data: result.Content})
		return
	}
	respond.Form(writer, http.StatusOK, respond.FormState{Data: result.Content})
}

// # Page Cache

// cached serves page from the page cache keyed by the query string. On a miss
// it renders, stores under the generation seen by the lookup and writes the
// body. Cache failures only degrade to an uncached response.
func (handler *Handler) cached(
	writer http.ResponseWriter,
	request *http.Request,
	page string,
	fail func(http.ResponseWriter, *http.Request, error),
	render func() (any, error),
) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)
	variant := request.URL.Query().Encode()

	body, generation, found, err := handler.cache.Get(ctx, page, variant)
	cacheable := err == nil
	if err != nil {
		logger.WarnContext(ctx, "page_cache_read_failed", slog.String("page", page), slog.Any("error", err))
	}
	if found {
		respond.RawJSON(writer, http.StatusOK, body)
		return
	}

	payload, err := render()
	if err != nil {
		fail(writer, request, err)
		return
	}

	body, err = json.Marshal(payload)
	if err != nil {
		fail(writer, request, err)
		return
	}

	if cacheable {
		if err := handler.cache.Set(ctx, page, variant, generation, body); err != nil {
			logger.WarnContext(ctx, "page_cache_write_failed", slog.String("page", page), slog.Any("error", err))
		}
	}
	respond.RawJSON(writer, http.StatusOK, body)
}

func filterFromQuery(values url.Values) ListFilter {
	return ListFilter{
		FilterBy: values.Get("filterBy"),
		SortBy:   values.Get("sortBy"),
		Tags:     slice.Map(query.Strings(values, FieldTags), func(value string) Tag { return Tag(value) }),
		Genres:   query.Strings(values, FieldGenres),
		Status:   Status(values.Get(FieldStatus)),
	}
}
