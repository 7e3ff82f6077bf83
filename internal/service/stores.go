package service

import (
	"context"

	"github.com/xxxsen/draftshare/internal/model"
	"github.com/xxxsen/draftshare/internal/repo"
)

// Narrow store contracts consumed by the services. The sql-backed repos are
// the production implementations; tests plug in in-memory fakes.

type PostStore interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	GetByAuthorID(ctx context.Context, authorID, id string) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, authorID, id string) error
	ListByAuthor(ctx context.Context, authorID string) ([]model.Post, error)
	ListByAuthorAndStatus(ctx context.Context, authorID, status string) ([]model.Post, error)
}

type ShareStore interface {
	Create(ctx context.Context, share *model.Share) error
	GetByKey(ctx context.Context, key string) (*model.Share, error)
	GetByAuthorAndKey(ctx context.Context, authorID, key string) (*model.Share, error)
	UpdateExpiry(ctx context.Context, authorID, key string, expiresAt, mtime int64) error
	Revoke(ctx context.Context, authorID, key string, mtime int64) error
	RevokeByPost(ctx context.Context, authorID, postID string, mtime int64) error
	ListByAuthor(ctx context.Context, authorID string) ([]model.Share, error)
	ListActivePostIDs(ctx context.Context, authorID string) (map[string]struct{}, error)
	PurgeDead(ctx context.Context, expiredBefore int64) (int64, error)
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

var (
	_ PostStore  = (*repo.PostRepo)(nil)
	_ ShareStore = (*repo.ShareRepo)(nil)
	_ UserStore  = (*repo.UserRepo)(nil)
)
