package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/draftshare/internal/model"
	appErr "github.com/xxxsen/draftshare/internal/pkg/errors"
	"github.com/xxxsen/draftshare/internal/repo"
)

// ShareService owns the author-scoped share records: minting a secret key for
// an unpublished post, extending its window, revoking it and listing it back.
type ShareService struct {
	posts     PostStore
	shares    ShareStore
	publicURL string
	now       func() time.Time
}

func NewShareService(posts PostStore, shares ShareStore, publicURL string) *ShareService {
	return &ShareService{
		posts:     posts,
		shares:    shares,
		publicURL: strings.TrimRight(publicURL, "/"),
		now:       time.Now,
	}
}

func (s *ShareService) Create(ctx context.Context, authorID, postID string, durationSeconds int64) (*model.Share, error) {
	if postID == "" {
		return nil, appErr.ErrNotFound
	}
	post, err := s.posts.GetByAuthorID(ctx, authorID, postID)
	if err != nil {
		return nil, err
	}
	if post.Status == model.PostStatusPublish {
		return nil, appErr.ErrPostPublished
	}
	now := s.now().Unix()
	share := &model.Share{
		ID:        newID(),
		AuthorID:  authorID,
		PostID:    post.ID,
		Key:       newShareKey(),
		ExpiresAt: now + durationSeconds,
		State:     repo.ShareStateActive,
		Ctime:     now,
		Mtime:     now,
	}
	if err := s.shares.Create(ctx, share); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("share created",
		zap.String("author_id", authorID),
		zap.String("post_id", post.ID),
		zap.Int64("expires_at", share.ExpiresAt),
	)
	return share, nil
}

// Extend pushes the expiry of an existing share further out. An unknown or
// already-revoked key is a silent no-op. A share that has already lapsed is
// re-based from now, so extending an expired link revives it for the new
// window.
func (s *ShareService) Extend(ctx context.Context, authorID, key string, additionalSeconds int64) error {
	share, err := s.shares.GetByAuthorAndKey(ctx, authorID, key)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil
		}
		return err
	}
	if share.State != repo.ShareStateActive {
		return nil
	}
	now := s.now().Unix()
	base := share.ExpiresAt
	if base < now {
		base = now
	}
	return s.shares.UpdateExpiry(ctx, authorID, key, base+additionalSeconds, now)
}

// Revoke is idempotent: revoking an unknown or already-revoked key does
// nothing.
func (s *ShareService) Revoke(ctx context.Context, authorID, key string) error {
	return s.shares.Revoke(ctx, authorID, key, s.now().Unix())
}

type SharedPostItem struct {
	Key              string `json:"key"`
	PostID           string `json:"post_id"`
	Title            string `json:"title"`
	Status           string `json:"status"`
	ExpiresAt        int64  `json:"expires_at"`
	RemainingSeconds int64  `json:"remaining_seconds"`
	Expired          bool   `json:"expired"`
	ExpiresIn        string `json:"expires_in"`
	URL              string `json:"url"`
}

// List returns the author's active shares in insertion order, with remaining
// time computed at read time against the stored absolute expiry.
func (s *ShareService) List(ctx context.Context, authorID string) ([]SharedPostItem, error) {
	shares, err := s.shares.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	now := s.now().Unix()
	items := make([]SharedPostItem, 0, len(shares))
	for _, share := range shares {
		post, err := s.posts.GetByID(ctx, share.PostID)
		if err != nil {
			if appErr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		remaining := share.ExpiresAt - now
		items = append(items, SharedPostItem{
			Key:              share.Key,
			PostID:           share.PostID,
			Title:            post.Title,
			Status:           post.Status,
			ExpiresAt:        share.ExpiresAt,
			RemainingSeconds: remaining,
			Expired:          remaining <= 0,
			ExpiresIn:        readableRemaining(remaining),
			URL:              s.PreviewURL(share.PostID, share.Key),
		})
	}
	return items, nil
}

// PreviewURL builds the plain viewer link carrying the post id and the secret
// key as query parameters.
func (s *ShareService) PreviewURL(postID, key string) string {
	return fmt.Sprintf("%s/api/v1/public/posts/%s?token=%s", s.publicURL, url.PathEscape(postID), url.QueryEscape(key))
}

func readableRemaining(seconds int64) string {
	switch {
	case seconds <= 0:
		return "expired"
	case seconds > 24*3600:
		return fmt.Sprintf("%d day(s)", seconds/86400)
	case seconds > 3600:
		return fmt.Sprintf("%d hour(s)", seconds/3600)
	case seconds > 60:
		return fmt.Sprintf("%d minute(s)", seconds/60)
	default:
		return fmt.Sprintf("%d second(s)", seconds)
	}
}
