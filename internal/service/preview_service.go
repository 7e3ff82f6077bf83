package service

import (
	"bytes"
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/xxxsen/draftshare/internal/model"
	appErr "github.com/xxxsen/draftshare/internal/pkg/errors"
)

const renderCacheSize = 256

// PreviewService substitutes an unpublished post back into the result list
// when the request carries a valid share key. The interception happens in two
// stages because the normal pipeline drops non-published posts before final
// results are computed: the decision is captured against the pre-filtered
// list and reapplied once the filtered list comes back empty.
type PreviewService struct {
	posts  PostStore
	access *AccessService
	md     goldmark.Markdown
	cache  *lru.Cache[string, string]
}

func NewPreviewService(posts PostStore, access *AccessService) *PreviewService {
	cache, _ := lru.New[string, string](renderCacheSize)
	return &PreviewService{
		posts:  posts,
		access: access,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		cache:  cache,
	}
}

// PreviewState carries the pending preview post through one dispatch. It is
// allocated per request; keeping it on the service would leak a stashed post
// into an unrelated concurrent request.
type PreviewState struct {
	pending *model.Post
}

// InterceptResults is stage one. When the request resolved to exactly one
// post that is not published and the presented key grants access, the post is
// stashed; the list itself passes through unchanged. Anything other than a
// single-post view is left alone.
func (s *PreviewService) InterceptResults(ctx context.Context, st *PreviewState, posts []model.Post, key string) []model.Post {
	if len(posts) != 1 {
		return posts
	}
	post := posts[0]
	if post.Status != model.PostStatusPublish && s.access.CanView(ctx, post.ID, key) {
		st.pending = &post
	}
	return posts
}

// FinalizeResults is stage two. An empty final list with a stashed post means
// the post was hidden only because it is unpublished, so the stash is
// substituted in. On any other outcome the stash is cleared.
func (s *PreviewService) FinalizeResults(st *PreviewState, posts []model.Post) []model.Post {
	if len(posts) == 0 && st.pending != nil {
		pending := st.pending
		st.pending = nil
		return []model.Post{*pending}
	}
	st.pending = nil
	return posts
}

type PostView struct {
	Post *model.Post `json:"post"`
	HTML string      `json:"html"`
}

// View runs the viewer-facing pipeline for a single-post request: load,
// stage-one interception, published-only filtering, stage-two substitution.
func (s *PreviewService) View(ctx context.Context, postID, key string) (*PostView, error) {
	var resolved []model.Post
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil && !appErr.IsNotFound(err) {
		return nil, err
	}
	if err == nil {
		resolved = []model.Post{*post}
	}

	st := &PreviewState{}
	resolved = s.InterceptResults(ctx, st, resolved, key)

	visible := make([]model.Post, 0, len(resolved))
	for _, p := range resolved {
		if p.Status == model.PostStatusPublish {
			visible = append(visible, p)
		}
	}
	visible = s.FinalizeResults(st, visible)
	if len(visible) == 0 {
		return nil, appErr.ErrNotFound
	}

	html, err := s.Render(&visible[0])
	if err != nil {
		return nil, err
	}
	return &PostView{Post: &visible[0], HTML: html}, nil
}

// Render converts the post body to HTML, caching per (id, mtime) so repeated
// views of the same revision skip the markdown pass.
func (s *PreviewService) Render(post *model.Post) (string, error) {
	cacheKey := fmt.Sprintf("%s:%d", post.ID, post.Mtime)
	if html, ok := s.cache.Get(cacheKey); ok {
		return html, nil
	}
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(post.Content), &buf); err != nil {
		return "", err
	}
	html := buf.String()
	s.cache.Add(cacheKey, html)
	return html, nil
}
