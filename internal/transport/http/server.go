package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pressroom/internal/apperr"
	"pressroom/internal/lib/logger/sl"
	"pressroom/internal/transport/http/dto"
	"pressroom/internal/transport/http/dto/response"
)

type StatsService interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStats, error)
}

type TagService interface {
	ListTags(ctx context.Context) ([]dto.TagResponse, error)
	GetTag(ctx context.Context, id string) (*dto.TagResponse, error)
	CreateTag(ctx context.Context, req dto.CreateTagRequest) (*dto.TagResponse, error)
	UpdateTag(ctx context.Context, id string, req dto.UpdateTagRequest) (*dto.TagResponse, error)
	DeleteTag(ctx context.Context, id string) error
}

type BlogService interface {
	ListPublished(ctx context.Context, page, perPage int) (*dto.BlogPostListResponse, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*dto.BlogPostResponse, error)
	GetRelatedPosts(ctx context.Context, slug string) ([]dto.BlogPostResponse, error)
	RecordView(ctx context.Context, slug, clientIP string) error
}

type UserService interface {
	UpsertUser(ctx context.Context, req dto.UpsertUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, uid string) (*dto.UserResponse, error)
}

type ProviderService interface {
	ListProviders(ctx context.Context) (*dto.ProviderListResponse, error)
	CreateProvider(ctx context.Context, req dto.CreateProviderRequest) (*dto.ProviderResponse, error)
	UpdateProvider(ctx context.Context, req dto.UpdateProviderRequest) error
}

type Routers struct {
	log             *slog.Logger
	StatsService    StatsService
	TagService      TagService
	BlogService     BlogService
	UserService     UserService
	ProviderService ProviderService
}

func NewRouter(log *slog.Logger, statsService StatsService, tagService TagService, blogService BlogService, userService UserService, providerService ProviderService) *Routers {
	return &Routers{
		log:             log,
		StatsService:    statsService,
		TagService:      tagService,
		BlogService:     blogService,
		UserService:     userService,
		ProviderService: providerService,
	}
}

// GetDashboardStats returns the admin dashboard snapshot: per-status post
// counts, total views with a human-readable rendering, distinct tag count and
// the review queue size.
func (r *Routers) GetDashboardStats(c echo.Context) error {
	const op = "http.routers.GetDashboardStats"
	log := r.log.With(slog.String("op", op))

	stats, err := r.StatsService.GetDashboardStats(c.Request().Context())
	if err != nil {
		log.Error("failed to build dashboard stats", sl.Err(err))
		return r.respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.StatsResponse{Success: true, Stats: *stats})
}

func (r *Routers) ListTags(c echo.Context) error {
	const op = "http.routers.ListTags"
	log := r.log.With(slog.String("op", op))

	tags, err := r.TagService.ListTags(c.Request().Context())
	if err != nil {
		log.Error("failed to list tags", sl.Err(err))
		return r.respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TagListResponse{Success: true, Tags: tags})
}

func (r *Routers) GetTag(c echo.Context) error {
	const op = "http.routers.GetTag"
	log := r.log.With(slog.String("op", op), slog.String("id", c.Param("id")))

	tag, err := r.TagService.GetTag(c.Request().Context(), c.Param("id"))
	if err != nil {
		log.Warn("failed to get tag", sl.Err(err))
		return r.respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SingleTagResponse{Success: true, Tag: *tag})
}

func (r *Routers) CreateTag(c echo.Context) error {
	const op = "http.routers.CreateTag"
	log := r.log.With(slog.String("op", op))

	var req dto.CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid request format"))
	}
	if err := c.Validate(req); err != nil {
		log.Warn("invalid create tag request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error:   "invalid request format",
			Details: err.Error(),
		})
	}

	tag, err := r.TagService.CreateTag(c.Request().Context(), req)
	if err != nil {
		log.Warn("failed to create tag", sl.Err(err))
		return r.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.SingleTagResponse{Success: true, Tag: *tag})
}

func (r *Routers) UpdateTag(c echo.Context) error {
	const op = "http.routers.UpdateTag"
	log := r.log.With(slog.String("op", op), slog.String("id", c.Param("id")))

	var req dto.UpdateTagRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid request format"))
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error:   "invalid request format",
			Details: err.Error(),
		})
	}

	tag, err := r.TagService.UpdateTag(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		log.Warn("failed to update tag", sl.Err(err))
		return r.respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SingleTagResponse{Success: true, Tag: *tag})
}

func (r *Routers) DeleteTag(c echo.Context) error {
	const op = "http.routers.DeleteTag"
	log := r.log.With(slog.String("op", op), slog.String("id", c.Param("id")))

	if err := r.TagService.DeleteTag(c.Request().Context(), c.Param("id")); err != nil {
		log.Warn("failed to delete tag", sl.Err(err))
		return r.respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Response{Success: true, Message: "tag deleted"})
}

func (r *Routers) ListPublishedPosts(c echo.Context) error {
	const op = "http.routers.ListPublishedPosts"
	log := r.log.With(slog.String("op", op))

	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

	posts, err := r.BlogService.ListPublished(c.Request().Context(), page, perPage)
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		return r.respondError(c, err)
	}

	return c.JSON(http.StatusOK, posts)
}

func (r *Routers) GetPostBySlug(c echo.Context) error {
	const op = "http.routers.GetPostBySlug"
	log := r.log.With(slog.String("op", op), slog.String("slug", c.Param("slug")))

	post, err := r.BlogService.GetPublishedBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		log.Warn("failed to get post", sl.Err(err))
		return r.respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SingleBlogPostResponse{Success: true, Post: *post})
}

// GetRelatedPosts serves the "read next" block under a post: up to three
// posts sharing a tag. Unknown slugs get an empty list, not a 404, so a
// stale link never breaks the page.
func (r *Routers) GetRelatedPosts(c echo.Context) error {
	const op = "http.routers.GetRelatedPosts"
	log := r.log.With(slog.String("op", op), slog.String("slug", c.Param("slug")))

	posts, err := r.BlogService.GetRelatedPosts(c.Request().Context(), c.Param("slug"))
	if err != nil {
		log.Error("failed to get related posts", sl.Err(err))
		return r.respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.RelatedPostsResponse{Success: true, Posts: posts})
}

func (r *Routers) RecordPostView(c echo.Context) error {
	const op = "http.routers.RecordPostView"
	log := r.log.With(slog.String("op", op), slog.String("slug", c.Param("slug")))

	err := r.BlogService.RecordView(c.Request().Context(), c.Param("slug"), c.RealIP())
	if err != nil {
		log.Warn("failed to record view", sl.Err(err))
		return r.respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) UpsertUser(c echo.Context) error {
	const op = "http.routers.UpsertUser"
	log := r.log.With(slog.String("op", op))

	var req dto.UpsertUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid request format"))
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error:   "invalid request format",
			Details: err.Error(),
		})
	}

	user, err := r.UserService.UpsertUser(c.Request().Context(), req)
	if err != nil {
		log.Warn("failed to upsert user", sl.Err(err))
		return r.respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SingleUserResponse{Success: true, User: *user})
}

// GetUser fetches a profile by uid, taken from the path or, on the bare
// route, from the query string. A request naming no uid is a 400.
func (r *Routers) GetUser(c echo.Context) error {
	const op = "http.routers.GetUser"

	uid := c.Param("uid")
	if uid == "" {
		uid = c.QueryParam("uid")
	}

	log := r.log.With(slog.String("op", op), slog.String("uid", uid))

	user, err := r.UserService.GetUser(c.Request().Context(), uid)
	if err != nil {
		log.Warn("failed to get user", sl.Err(err))
		return r.respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SingleUserResponse{Success: true, User: *user})
}

func (r *Routers) ListProviders(c echo.Context) error {
	const op = "http.routers.ListProviders"
	log := r.log.With(slog.String("op", op))

	providers, err := r.ProviderService.ListProviders(c.Request().Context())
	if err != nil {
		log.Error("failed to list providers", sl.Err(err))
		return r.respondError(c, err)
	}

	return c.JSON(http.StatusOK, providers)
}

func (r *Routers) CreateProvider(c echo.Context) error {
	const op = "http.routers.CreateProvider"
	log := r.log.With(slog.String("op", op))

	var req dto.CreateProviderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid request format"))
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error:   "invalid request format",
			Details: err.Error(),
		})
	}

	provider, err := r.ProviderService.CreateProvider(c.Request().Context(), req)
	if err != nil {
		log.Warn("failed to create provider", sl.Err(err))
		return r.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.SingleProviderResponse{Success: true, Provider: *provider})
}

func (r *Routers) UpdateProvider(c echo.Context) error {
	const op = "http.routers.UpdateProvider"
	log := r.log.With(slog.String("op", op))

	var req dto.UpdateProviderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid request format"))
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error:   "invalid request format",
			Details: err.Error(),
		})
	}

	if err := r.ProviderService.UpdateProvider(c.Request().Context(), req); err != nil {
		log.Warn("failed to update provider", sl.Err(err))
		return r.respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Response{Success: true, Message: "provider updated"})
}

// respondError translates a service error into the matching HTTP status,
// masking infrastructure details from the client.
func (r *Routers) respondError(c echo.Context, err error) error {
	return c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
}
