package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
//
// UpdateOwned and DeleteOwned are the ownership-enforcing writes: the
// author ID is part of the WHERE clause of the single UPDATE/DELETE
// statement, so ownership verification and the mutation are one atomic
// storage operation. There is deliberately no Update(post) or Delete(id);
// a read-then-write sequence would race with a concurrent mutation.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	UpdateOwned(ctx context.Context, id, authorID uint, title, content string) (int64, error)
	DeleteOwned(ctx context.Context, id, authorID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// List returns posts newest-first. The ordering is part of the API
// contract, not an incidental default.
func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// UpdateOwned updates title and content of the post only if it is owned by
// authorID. Returns the number of rows matched: zero means "absent or not
// owned", which callers must not tell apart.
func (r *postRepository) UpdateOwned(ctx context.Context, id, authorID uint, title, content string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND author_id = ?", id, authorID).
		Updates(map[string]interface{}{
			"title":   title,
			"content": content,
		})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteOwned deletes the post only if it is owned by authorID, reporting
// rows affected like UpdateOwned.
func (r *postRepository) DeleteOwned(ctx context.Context, id, authorID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Delete(&models.Post{})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}
