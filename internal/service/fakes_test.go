package service

import (
	"context"

	"github.com/xxxsen/draftshare/internal/model"
	appErr "github.com/xxxsen/draftshare/internal/pkg/errors"
	"github.com/xxxsen/draftshare/internal/repo"
)

type fakePostStore struct {
	posts []*model.Post
}

func (f *fakePostStore) Create(_ context.Context, post *model.Post) error {
	f.posts = append(f.posts, post)
	return nil
}

func (f *fakePostStore) GetByID(_ context.Context, id string) (*model.Post, error) {
	for _, p := range f.posts {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (f *fakePostStore) GetByAuthorID(ctx context.Context, authorID, id string) (*model.Post, error) {
	post, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != authorID {
		return nil, appErr.ErrNotFound
	}
	return post, nil
}

func (f *fakePostStore) Update(_ context.Context, post *model.Post) error {
	for i, p := range f.posts {
		if p.ID == post.ID && p.AuthorID == post.AuthorID {
			clone := *post
			f.posts[i] = &clone
			return nil
		}
	}
	return appErr.ErrNotFound
}

func (f *fakePostStore) Delete(_ context.Context, authorID, id string) error {
	kept := f.posts[:0]
	for _, p := range f.posts {
		if p.ID == id && p.AuthorID == authorID {
			continue
		}
		kept = append(kept, p)
	}
	f.posts = kept
	return nil
}

func (f *fakePostStore) ListByAuthor(_ context.Context, authorID string) ([]model.Post, error) {
	items := make([]model.Post, 0)
	for _, p := range f.posts {
		if p.AuthorID == authorID {
			items = append(items, *p)
		}
	}
	return items, nil
}

func (f *fakePostStore) ListByAuthorAndStatus(_ context.Context, authorID, status string) ([]model.Post, error) {
	items := make([]model.Post, 0)
	for _, p := range f.posts {
		if p.AuthorID == authorID && p.Status == status {
			items = append(items, *p)
		}
	}
	return items, nil
}

type fakeShareStore struct {
	shares []*model.Share
}

func (f *fakeShareStore) Create(_ context.Context, share *model.Share) error {
	for _, s := range f.shares {
		if s.Key == share.Key {
			return appErr.ErrConflict
		}
	}
	clone := *share
	f.shares = append(f.shares, &clone)
	return nil
}

func (f *fakeShareStore) GetByKey(_ context.Context, key string) (*model.Share, error) {
	for _, s := range f.shares {
		if s.Key == key {
			clone := *s
			return &clone, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (f *fakeShareStore) GetByAuthorAndKey(ctx context.Context, authorID, key string) (*model.Share, error) {
	share, err := f.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if share.AuthorID != authorID {
		return nil, appErr.ErrNotFound
	}
	return share, nil
}

func (f *fakeShareStore) UpdateExpiry(_ context.Context, authorID, key string, expiresAt, mtime int64) error {
	for _, s := range f.shares {
		if s.AuthorID == authorID && s.Key == key && s.State == repo.ShareStateActive {
			s.ExpiresAt = expiresAt
			s.Mtime = mtime
		}
	}
	return nil
}

func (f *fakeShareStore) Revoke(_ context.Context, authorID, key string, mtime int64) error {
	for _, s := range f.shares {
		if s.AuthorID == authorID && s.Key == key && s.State == repo.ShareStateActive {
			s.State = repo.ShareStateRevoked
			s.Mtime = mtime
		}
	}
	return nil
}

func (f *fakeShareStore) RevokeByPost(_ context.Context, authorID, postID string, mtime int64) error {
	for _, s := range f.shares {
		if s.AuthorID == authorID && s.PostID == postID && s.State == repo.ShareStateActive {
			s.State = repo.ShareStateRevoked
			s.Mtime = mtime
		}
	}
	return nil
}

func (f *fakeShareStore) ListByAuthor(_ context.Context, authorID string) ([]model.Share, error) {
	items := make([]model.Share, 0)
	for _, s := range f.shares {
		if s.AuthorID == authorID && s.State == repo.ShareStateActive {
			items = append(items, *s)
		}
	}
	return items, nil
}

func (f *fakeShareStore) ListActivePostIDs(_ context.Context, authorID string) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	for _, s := range f.shares {
		if s.AuthorID == authorID && s.State == repo.ShareStateActive {
			ids[s.PostID] = struct{}{}
		}
	}
	return ids, nil
}

func (f *fakeShareStore) PurgeDead(_ context.Context, expiredBefore int64) (int64, error) {
	kept := f.shares[:0]
	var purged int64
	for _, s := range f.shares {
		if s.State == repo.ShareStateRevoked || s.ExpiresAt < expiredBefore {
			purged++
			continue
		}
		kept = append(kept, s)
	}
	f.shares = kept
	return purged, nil
}
