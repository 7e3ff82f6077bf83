package service

import (
	"context"
	"time"

	"github.com/xxxsen/draftshare/internal/repo"
)

// AccessService decides whether a presented share key grants read access to a
// specific post. It is a pure predicate over the stored shares; it never
// mutates anything.
//
// The lookup is key-direct and post-specific on purpose: a key minted for
// post A must never unlock post B, and shares held by other authors must not
// influence the verdict.
type AccessService struct {
	shares ShareStore
	now    func() time.Time
}

func NewAccessService(shares ShareStore) *AccessService {
	return &AccessService{shares: shares, now: time.Now}
}

func (s *AccessService) CanView(ctx context.Context, postID, key string) bool {
	if postID == "" || key == "" {
		return false
	}
	share, err := s.shares.GetByKey(ctx, key)
	if err != nil {
		return false
	}
	if share.State != repo.ShareStateActive {
		return false
	}
	if share.PostID != postID {
		return false
	}
	return share.ExpiresAt >= s.now().Unix()
}
