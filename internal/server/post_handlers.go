package server

import (
	"strconv"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func parsePostID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// CreatePost handles POST /api/posts. Any authenticated user may create;
// the verified identity becomes the immutable author.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" || req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and content are required"))
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: userID,
	}

	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Re-read to denormalize the author's public profile into the
	// response. The stored row only carries the reference.
	created, err := s.postRepo.GetByID(c.Context(), post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	cache.InvalidatePost(c.Context(), post.ID)

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetPosts handles GET /api/posts, newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 10)

	if limit > 100 {
		limit = 100
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var posts []*models.Post
	err := cache.CacheAside(c.Context(), cache.PostListKey(limit, offset), &posts, cache.PostListTTL, func() error {
		var ferr error
		posts, ferr = s.postRepo.List(c.Context(), limit, offset)
		return ferr
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, ok := parsePostID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post"))
	}

	var post models.Post
	err := cache.CacheAside(c.Context(), cache.PostKey(id), &post, cache.PostTTL, func() error {
		p, ferr := s.postRepo.GetByID(c.Context(), id)
		if ferr != nil {
			return ferr
		}
		post = *p
		return nil
	})
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id. Ownership is enforced inside the
// single filtered UPDATE; zero rows matched means absent or not owned, and
// the two cases intentionally share one response.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, ok := parsePostID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Not authorized to update this post"))
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" || req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and content are required"))
	}

	affected, err := s.postRepo.UpdateOwned(c.Context(), id, userID, req.Title, req.Content)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if affected == 0 {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Not authorized to update this post"))
	}

	updated, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	cache.InvalidatePost(c.Context(), id)

	return c.JSON(updated)
}

// DeletePost handles DELETE /api/posts/:id with the same ownership filter
// and response conflation as UpdatePost.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, ok := parsePostID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Not authorized to delete this post"))
	}

	affected, err := s.postRepo.DeleteOwned(c.Context(), id, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if affected == 0 {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Not authorized to delete this post"))
	}

	cache.InvalidatePost(c.Context(), id)

	return c.JSON(fiber.Map{
		"message": "Post deleted",
	})
}
