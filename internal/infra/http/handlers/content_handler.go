package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/entity"
	"github.com/tgiagency/quote-funnel/internal/infra/content"
)

const (
	defaultRelated = 3
	maxRelated     = 10
)

// ContentHandler serves the resources section read API.
type ContentHandler struct {
	Posts  entity.PostRepositoryInterface
	Logger *zap.Logger
}

func NewContentHandler(posts entity.PostRepositoryInterface, logger *zap.Logger) *ContentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentHandler{Posts: posts, Logger: logger}
}

// List handles GET /api/posts with an optional ?category filter.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	category := entity.BlogCategory(r.URL.Query().Get("category"))
	if category != "" && !category.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	posts, err := h.Posts.List(r.Context(), category)
	if err != nil {
		h.Logger.Error("list posts", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load posts")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: posts})
}

// Get handles GET /api/posts/{slug}.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.Posts.FindBySlug(r.Context(), slug)
	if errors.Is(err, entity.ErrPostNotFound) {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.Logger.Error("find post", zap.String("slug", slug), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load post")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: post})
}

// Related handles GET /api/posts/{slug}/related?count=n.
func (h *ContentHandler) Related(w http.ResponseWriter, r *http.Request) {
	n := defaultRelated
	if raw := r.URL.Query().Get("count"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "count must be a positive integer")
			return
		}
		n = min(v, maxRelated)
	}

	slug := chi.URLParam(r, "slug")
	posts, err := content.Related(r.Context(), h.Posts, slug, n)
	if err != nil {
		h.Logger.Error("related posts", zap.String("slug", slug), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load posts")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: posts})
}
