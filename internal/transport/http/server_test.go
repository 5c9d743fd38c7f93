package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pressroom/internal/apperr"
	httpapp "pressroom/internal/transport/http"
	"pressroom/internal/transport/http/dto"
)

type mockStatsService struct{ mock.Mock }

func (m *mockStatsService) GetDashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardStats), args.Error(1)
}

type mockTagService struct{ mock.Mock }

func (m *mockTagService) ListTags(ctx context.Context) ([]dto.TagResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.TagResponse), args.Error(1)
}

func (m *mockTagService) GetTag(ctx context.Context, id string) (*dto.TagResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TagResponse), args.Error(1)
}

func (m *mockTagService) CreateTag(ctx context.Context, req dto.CreateTagRequest) (*dto.TagResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TagResponse), args.Error(1)
}

func (m *mockTagService) UpdateTag(ctx context.Context, id string, req dto.UpdateTagRequest) (*dto.TagResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TagResponse), args.Error(1)
}

func (m *mockTagService) DeleteTag(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockBlogService struct{ mock.Mock }

func (m *mockBlogService) ListPublished(ctx context.Context, page, perPage int) (*dto.BlogPostListResponse, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BlogPostListResponse), args.Error(1)
}

func (m *mockBlogService) GetPublishedBySlug(ctx context.Context, slug string) (*dto.BlogPostResponse, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BlogPostResponse), args.Error(1)
}

func (m *mockBlogService) GetRelatedPosts(ctx context.Context, slug string) ([]dto.BlogPostResponse, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.BlogPostResponse), args.Error(1)
}

func (m *mockBlogService) RecordView(ctx context.Context, slug, clientIP string) error {
	args := m.Called(ctx, slug, clientIP)
	return args.Error(0)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) UpsertUser(ctx context.Context, req dto.UpsertUserRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, uid string) (*dto.UserResponse, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func newRouters(stats *mockStatsService, tags *mockTagService, blogs *mockBlogService) *httpapp.Routers {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpapp.NewRouter(log, stats, tags, blogs, nil, nil)
}

func newUserRouters(users *mockUserService) *httpapp.Routers {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpapp.NewRouter(log, nil, nil, nil, users, nil)
}

func TestGetDashboardStats(t *testing.T) {
	stats := new(mockStatsService)
	r := newRouters(stats, nil, nil)

	snapshot := &dto.DashboardStats{
		Blogs:          dto.BlogCounts{Total: 12, Published: 8, Draft: 2, Review: 1, PendingReview: 1},
		Views:          dto.ViewStats{Total: 1500, Formatted: "1.5k"},
		Tags:           dto.TagStats{Total: 7},
		PendingReviews: 2,
	}
	stats.On("GetDashboardStats", mock.Anything).Return(snapshot, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, r.GetDashboardStats(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body dto.StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(12), body.Stats.Blogs.Total)
	assert.Equal(t, "1.5k", body.Stats.Views.Formatted)
	assert.Equal(t, int64(2), body.Stats.PendingReviews)
}

func TestCreateTag(t *testing.T) {
	t.Run("missing slug fails request validation", func(t *testing.T) {
		tags := new(mockTagService)
		r := newRouters(nil, tags, nil)

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(`{"name":"Go"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		require.NoError(t, r.CreateTag(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		tags.AssertNotCalled(t, "CreateTag", mock.Anything, mock.Anything)
	})

	t.Run("duplicate slug surfaces as 400", func(t *testing.T) {
		tags := new(mockTagService)
		r := newRouters(nil, tags, nil)

		tags.On("CreateTag", mock.Anything, mock.Anything).
			Return(nil, apperr.Conflict("tag slug already in use"))

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(`{"name":"Go","slug":"go"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		require.NoError(t, r.CreateTag(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "tag slug already in use")
	})

	t.Run("created tag comes back with 201", func(t *testing.T) {
		tags := new(mockTagService)
		r := newRouters(nil, tags, nil)

		tags.On("CreateTag", mock.Anything, dto.CreateTagRequest{Name: "Go", Slug: "go"}).
			Return(&dto.TagResponse{ID: "a1", Name: "Go", Slug: "go"}, nil)

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(`{"name":"Go","slug":"go"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		require.NoError(t, r.CreateTag(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestDeleteTag_NotFound(t *testing.T) {
	tags := new(mockTagService)
	r := newRouters(nil, tags, nil)

	tags.On("DeleteTag", mock.Anything, "deadbeef").Return(apperr.NotFound("tag not found"))

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodDelete, "/api/tags/deadbeef", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("deadbeef")

	require.NoError(t, r.DeleteTag(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRelatedPosts(t *testing.T) {
	t.Run("related posts are listed", func(t *testing.T) {
		blogs := new(mockBlogService)
		r := newRouters(nil, nil, blogs)

		blogs.On("GetRelatedPosts", mock.Anything, "go-generics").Return([]dto.BlogPostResponse{
			{Slug: "go-errors"}, {Slug: "go-interfaces"},
		}, nil)

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodGet, "/api/blogs/go-generics/related", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("slug")
		c.SetParamValues("go-generics")

		require.NoError(t, r.GetRelatedPosts(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body dto.RelatedPostsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Posts, 2)
	})

	t.Run("unknown slug is an empty 200, not a 404", func(t *testing.T) {
		blogs := new(mockBlogService)
		r := newRouters(nil, nil, blogs)

		blogs.On("GetRelatedPosts", mock.Anything, "ghost").Return([]dto.BlogPostResponse{}, nil)

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodGet, "/api/blogs/ghost/related", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("slug")
		c.SetParamValues("ghost")

		require.NoError(t, r.GetRelatedPosts(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body dto.RelatedPostsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Empty(t, body.Posts)
	})
}

func TestGetUser(t *testing.T) {
	t.Run("uid arrives through the query string", func(t *testing.T) {
		users := new(mockUserService)
		r := newUserRouters(users)

		users.On("GetUser", mock.Anything, "uid-1").
			Return(&dto.UserResponse{UID: "uid-1", Email: "a@b.com"}, nil)

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/user?uid=uid-1", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, r.GetUser(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body dto.SingleUserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "uid-1", body.User.UID)
	})

	t.Run("path param takes precedence over the query string", func(t *testing.T) {
		users := new(mockUserService)
		r := newUserRouters(users)

		users.On("GetUser", mock.Anything, "from-path").
			Return(&dto.UserResponse{UID: "from-path"}, nil)

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/user/from-path?uid=from-query", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("uid")
		c.SetParamValues("from-path")

		require.NoError(t, r.GetUser(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		users.AssertExpectations(t)
	})

	t.Run("request naming no uid is a 400", func(t *testing.T) {
		users := new(mockUserService)
		r := newUserRouters(users)

		users.On("GetUser", mock.Anything, "").
			Return(nil, apperr.Validation("uid is required"))

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, r.GetUser(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRecordPostView(t *testing.T) {
	blogs := new(mockBlogService)
	r := newRouters(nil, nil, blogs)

	blogs.On("RecordView", mock.Anything, "go-generics", mock.Anything).Return(nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/blogs/go-generics/view", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("go-generics")

	require.NoError(t, r.RecordPostView(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	blogs.AssertExpectations(t)
}

func TestInfraErrorsAreMasked(t *testing.T) {
	stats := new(mockStatsService)
	r := newRouters(stats, nil, nil)

	stats.On("GetDashboardStats", mock.Anything).Return(nil, assert.AnError)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, r.GetDashboardStats(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	assert.Contains(t, rec.Body.String(), "internal server error")
}
