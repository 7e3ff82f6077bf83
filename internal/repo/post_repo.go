package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/draftshare/internal/model"
	"github.com/xxxsen/draftshare/internal/pkg/dbutil"
	appErr "github.com/xxxsen/draftshare/internal/pkg/errors"
)

type PostRepo struct {
	db *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db}
}

var postColumns = []string{"id", "author_id", "title", "content", "status", "publish_at", "ctime", "mtime"}

func (r *PostRepo) Create(ctx context.Context, post *model.Post) error {
	data := map[string]interface{}{
		"id":         post.ID,
		"author_id":  post.AuthorID,
		"title":      post.Title,
		"content":    post.Content,
		"status":     post.Status,
		"publish_at": post.PublishAt,
		"ctime":      post.Ctime,
		"mtime":      post.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("posts", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

// GetByID loads a post regardless of owner. The preview pipeline needs this:
// the viewer carrying a share key has no author context.
func (r *PostRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	return r.getOne(ctx, map[string]interface{}{"id": id})
}

func (r *PostRepo) GetByAuthorID(ctx context.Context, authorID, id string) (*model.Post, error) {
	return r.getOne(ctx, map[string]interface{}{"id": id, "author_id": authorID})
}

func (r *PostRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.Post, error) {
	sqlStr, args, err := builder.BuildSelect("posts", where, postColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	post, err := scanPost(rows)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostRepo) Update(ctx context.Context, post *model.Post) error {
	where := map[string]interface{}{"id": post.ID, "author_id": post.AuthorID}
	update := map[string]interface{}{
		"title":      post.Title,
		"content":    post.Content,
		"status":     post.Status,
		"publish_at": post.PublishAt,
		"mtime":      post.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("posts", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *PostRepo) Delete(ctx context.Context, authorID, id string) error {
	where := map[string]interface{}{"id": id, "author_id": authorID}
	sqlStr, args, err := builder.BuildDelete("posts", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *PostRepo) ListByAuthor(ctx context.Context, authorID string) ([]model.Post, error) {
	where := map[string]interface{}{
		"author_id": authorID,
		"_orderby":  "ctime desc, id desc",
	}
	return r.list(ctx, where)
}

func (r *PostRepo) ListByAuthorAndStatus(ctx context.Context, authorID, status string) ([]model.Post, error) {
	where := map[string]interface{}{
		"author_id": authorID,
		"status":    status,
		"_orderby":  "ctime desc, id desc",
	}
	return r.list(ctx, where)
}

func (r *PostRepo) list(ctx context.Context, where map[string]interface{}) ([]model.Post, error) {
	sqlStr, args, err := builder.BuildSelect("posts", where, postColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *post)
	}
	return items, rows.Err()
}

func scanPost(rows *sql.Rows) (*model.Post, error) {
	var post model.Post
	if err := rows.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Content, &post.Status, &post.PublishAt, &post.Ctime, &post.Mtime); err != nil {
		return nil, err
	}
	return &post, nil
}
