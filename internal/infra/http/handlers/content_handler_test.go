package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) List(ctx context.Context, category entity.BlogCategory) ([]entity.PostMeta, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PostMeta), args.Error(1)
}

func (m *MockPostRepository) FindBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func contentRouter(repo *MockPostRepository) http.Handler {
	return NewRouter(RouterDeps{Content: NewContentHandler(repo, nil)})
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func personalPosts() []entity.PostMeta {
	return []entity.PostMeta{
		{Slug: "flood-basics", Category: entity.CategoryPersonal},
		{Slug: "auto-discounts", Category: entity.CategoryPersonal},
		{Slug: "renters-101", Category: entity.CategoryPersonal},
	}
}

func TestContentList(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("List", mock.Anything, entity.CategoryPersonal).Return(personalPosts(), nil)

	rec := get(contentRouter(repo), "/api/posts?category=personal-insurance")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["data"], 3)
	repo.AssertExpectations(t)
}

func TestContentListUnknownCategory(t *testing.T) {
	repo := new(MockPostRepository)

	rec := get(contentRouter(repo), "/api/posts?category=pets")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestContentListStoreError(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("List", mock.Anything, entity.BlogCategory("")).Return(nil, errors.New("disk"))

	rec := get(contentRouter(repo), "/api/posts")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestContentGet(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("FindBySlug", mock.Anything, "flood-basics").
		Return(&entity.Post{PostMeta: entity.PostMeta{Slug: "flood-basics"}, Body: "# Flood"}, nil)
	repo.On("FindBySlug", mock.Anything, "missing").Return(nil, entity.ErrPostNotFound)

	rec := get(contentRouter(repo), "/api/posts/flood-basics")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "# Flood", data["body"])

	rec = get(contentRouter(repo), "/api/posts/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found", decode(t, rec)["error"])
}

func TestContentRelated(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("FindBySlug", mock.Anything, "flood-basics").
		Return(&entity.Post{PostMeta: personalPosts()[0]}, nil)
	repo.On("List", mock.Anything, entity.CategoryPersonal).Return(personalPosts(), nil)

	rec := get(contentRouter(repo), "/api/posts/flood-basics/related?count=1")

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "auto-discounts", data[0].(map[string]any)["slug"])
}

func TestContentRelatedBadCount(t *testing.T) {
	repo := new(MockPostRepository)

	rec := get(contentRouter(repo), "/api/posts/flood-basics/related?count=zero")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContentCORS(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("List", mock.Anything, entity.BlogCategory("")).Return([]entity.PostMeta{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Origin", "https://tgiagency.com")
	rec := httptest.NewRecorder()
	contentRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
