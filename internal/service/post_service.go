package service

import (
	"context"
	"time"

	"github.com/xxxsen/draftshare/internal/model"
	appErr "github.com/xxxsen/draftshare/internal/pkg/errors"
)

type PostService struct {
	posts  PostStore
	shares ShareStore
	now    func() time.Time
}

func NewPostService(posts PostStore, shares ShareStore) *PostService {
	return &PostService{posts: posts, shares: shares, now: time.Now}
}

type PostCreateInput struct {
	Title     string
	Content   string
	Status    string
	PublishAt int64
}

type PostUpdateInput struct {
	Title     string
	Content   string
	Status    string
	PublishAt int64
}

func (s *PostService) Create(ctx context.Context, authorID string, input PostCreateInput) (*model.Post, error) {
	status := input.Status
	if status == "" {
		status = model.PostStatusDraft
	}
	if !model.ValidPostStatus(status) {
		return nil, appErr.ErrInvalid
	}
	now := s.now().Unix()
	post := &model.Post{
		ID:        newID(),
		AuthorID:  authorID,
		Title:     input.Title,
		Content:   input.Content,
		Status:    status,
		PublishAt: input.PublishAt,
		Ctime:     now,
		Mtime:     now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, authorID, postID string) (*model.Post, error) {
	return s.posts.GetByAuthorID(ctx, authorID, postID)
}

func (s *PostService) Update(ctx context.Context, authorID, postID string, input PostUpdateInput) (*model.Post, error) {
	if !model.ValidPostStatus(input.Status) {
		return nil, appErr.ErrInvalid
	}
	post, err := s.posts.GetByAuthorID(ctx, authorID, postID)
	if err != nil {
		return nil, err
	}
	post.Title = input.Title
	post.Content = input.Content
	post.Status = input.Status
	post.PublishAt = input.PublishAt
	post.Mtime = s.now().Unix()
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	// Publishing ends the preview period: keys for a public post are moot.
	if post.Status == model.PostStatusPublish {
		if err := s.shares.RevokeByPost(ctx, authorID, postID, post.Mtime); err != nil {
			return nil, err
		}
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, authorID, postID string) error {
	now := s.now().Unix()
	if err := s.posts.Delete(ctx, authorID, postID); err != nil {
		return err
	}
	return s.shares.RevokeByPost(ctx, authorID, postID, now)
}

func (s *PostService) List(ctx context.Context, authorID string) ([]model.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID)
}

type DraftGroup struct {
	Label string       `json:"label"`
	Count int          `json:"count"`
	Posts []model.Post `json:"posts"`
}

// ListShareCandidates groups the author's unpublished posts for the share
// picker: drafts, scheduled posts, then pending review. Posts that already
// carry an active share are filtered out.
func (s *PostService) ListShareCandidates(ctx context.Context, authorID string) ([]DraftGroup, error) {
	sharedIDs, err := s.shares.ListActivePostIDs(ctx, authorID)
	if err != nil {
		return nil, err
	}
	groups := []struct {
		label  string
		status string
	}{
		{label: "Your Drafts:", status: model.PostStatusDraft},
		{label: "Your Scheduled Posts:", status: model.PostStatusFuture},
		{label: "Pending Review:", status: model.PostStatusPending},
	}
	result := make([]DraftGroup, 0, len(groups))
	for _, g := range groups {
		posts, err := s.posts.ListByAuthorAndStatus(ctx, authorID, g.status)
		if err != nil {
			return nil, err
		}
		unshared := make([]model.Post, 0, len(posts))
		for _, p := range posts {
			if _, ok := sharedIDs[p.ID]; ok {
				continue
			}
			unshared = append(unshared, p)
		}
		result = append(result, DraftGroup{Label: g.label, Count: len(unshared), Posts: unshared})
	}
	return result, nil
}
