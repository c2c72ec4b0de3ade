package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ykaya/deptportal/internal/app/models"
	"github.com/ykaya/deptportal/internal/app/models/dto"
	"github.com/ykaya/deptportal/internal/app/services"
	"github.com/ykaya/deptportal/internal/middleware"
	"github.com/ykaya/deptportal/internal/pkg/helpers"
)

// PostController handles blog posts and their moderation
type PostController struct {
	postService services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService) *PostController {
	return &PostController{
		postService: postService,
	}
}

// CreatePost submits a new post
// @Summary Create a post
// @Description Creates a blog post. Every post enters the moderation queue as pending.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostRequest true "Post content"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse} "Post created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Account not approved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	post, err := c.postService.CreatePost(ctx, actor, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewPostResponse(post)))
}

// GetPost retrieves one post
// @Summary Get a post
// @Description Retrieves a post. Posts that are not published and approved are visible only to their author and moderators.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Post retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var actor *models.Actor
	if a, ok := middleware.ActorFromContext(ctx); ok {
		actor = &a
	}

	post, err := c.postService.GetPost(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPostResponse(post)))
}

// ListPosts lists publicly visible posts
// @Summary List public posts
// @Description Retrieves published, approved posts, newest first.
// @Tags posts
// @Accept json
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse} "Posts retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	posts, total, err := c.postService.ListPublicPosts(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PostListResponse{
		Posts:          mapPostResponses(posts),
		PaginationInfo: helpers.NewPaginationInfo(total, page, size),
	}))
}

// ListModerationQueue lists posts by moderation state
// @Summary List posts for moderation
// @Description Retrieves posts in the given moderation state. Admin or super admin only.
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string true "Approval status" Enums(PENDING, APPROVED, REJECTED)
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse} "Posts retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /moderation/posts [get]
func (c *PostController) ListModerationQueue(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	status := models.ApprovalStatus(ctx.DefaultQuery("status", string(models.ApprovalPending)))
	page, size := helpers.ParsePaginationParams(ctx)

	posts, total, err := c.postService.ListModerationQueue(ctx, actor, status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PostListResponse{
		Posts:          mapPostResponses(posts),
		PaginationInfo: helpers.NewPaginationInfo(total, page, size),
	}))
}

// SetApproval moderates a post
// @Summary Set post approval status
// @Description Approves or rejects a post; re-classification between approved and rejected is allowed. Admin or super admin only.
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID" Format(int64) minimum(1)
// @Param request body dto.SetPostApprovalRequest true "New approval status"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid state transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /moderation/posts/{id}/approval [put]
func (c *PostController) SetApproval(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetPostApprovalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid approval data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	post, err := c.postService.SetApproval(ctx, actor, id, models.ApprovalStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPostResponse(post)))
}

// SetFeatured flips the curation flag on a post
// @Summary Feature or unfeature a post
// @Description Marks a post as featured for front-page curation. Admin or super admin only.
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID" Format(int64) minimum(1)
// @Param request body dto.SetPostFeaturedRequest true "Featured flag"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Flag updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /moderation/posts/{id}/featured [put]
func (c *PostController) SetFeatured(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetPostFeaturedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid featured data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	post, err := c.postService.SetFeatured(ctx, actor, id, req.Featured)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPostResponse(post)))
}

// Like records the caller's like on a post
// @Summary Like a post
// @Description Adds the caller to the post's liked-by set. Liking twice is a no-op.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.LikeCountResponse} "Like recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Account not approved"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/like [post]
func (c *PostController) Like(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	likes, err := c.postService.Like(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LikeCountResponse{LikesCount: likes}))
}

// Unlike removes the caller's like from a post
// @Summary Unlike a post
// @Description Removes the caller from the post's liked-by set. Removing a like that was never recorded is a no-op.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.LikeCountResponse} "Like removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Account not approved"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/like [delete]
func (c *PostController) Unlike(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	likes, err := c.postService.Unlike(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LikeCountResponse{LikesCount: likes}))
}

// RegisterView records a view on a post
// @Summary Register a post view
// @Description Increments the post's monotonic view counter.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.ViewCountResponse} "View recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/view [post]
func (c *PostController) RegisterView(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	views, err := c.postService.RegisterView(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ViewCountResponse{ViewsCount: views}))
}

func mapPostResponses(posts []models.Post) []dto.PostResponse {
	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, dto.NewPostResponse(&posts[i]))
	}
	return responses
}
