package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/draftshare/internal/model"
	"github.com/xxxsen/draftshare/internal/pkg/dbutil"
	appErr "github.com/xxxsen/draftshare/internal/pkg/errors"
)

const (
	ShareStateActive  = 1
	ShareStateRevoked = 2
)

// ShareRepo persists share records one row per key, scoped by author_id.
// Mutations only ever touch the acting author's rows, so two authors saving
// at once cannot clobber each other's shares.
type ShareRepo struct {
	db *sql.DB
}

func NewShareRepo(db *sql.DB) *ShareRepo {
	return &ShareRepo{db: db}
}

var shareColumns = []string{"id", "author_id", "post_id", "key", "expires_at", "state", "ctime", "mtime"}

func (r *ShareRepo) Create(ctx context.Context, share *model.Share) error {
	data := map[string]interface{}{
		"id":         share.ID,
		"author_id":  share.AuthorID,
		"post_id":    share.PostID,
		"key":        share.Key,
		"expires_at": share.ExpiresAt,
		"state":      share.State,
		"ctime":      share.Ctime,
		"mtime":      share.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("shares", []map[string]interface{}{data})
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

func (r *ShareRepo) GetByKey(ctx context.Context, key string) (*model.Share, error) {
	return r.getOne(ctx, map[string]interface{}{"key": key})
}

func (r *ShareRepo) GetByAuthorAndKey(ctx context.Context, authorID, key string) (*model.Share, error) {
	return r.getOne(ctx, map[string]interface{}{"author_id": authorID, "key": key})
}

func (r *ShareRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.Share, error) {
	sqlStr, args, err := builder.BuildSelect("shares", where, shareColumns)
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
	var share model.Share
	if err := rows.Scan(&share.ID, &share.AuthorID, &share.PostID, &share.Key, &share.ExpiresAt, &share.State, &share.Ctime, &share.Mtime); err != nil {
		return nil, err
	}
	return &share, nil
}

func (r *ShareRepo) UpdateExpiry(ctx context.Context, authorID, key string, expiresAt, mtime int64) error {
	where := map[string]interface{}{"author_id": authorID, "key": key, "state": ShareStateActive}
	update := map[string]interface{}{"expires_at": expiresAt, "mtime": mtime}
	sqlStr, args, err := builder.BuildUpdate("shares", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *ShareRepo) Revoke(ctx context.Context, authorID, key string, mtime int64) error {
	where := map[string]interface{}{"author_id": authorID, "key": key, "state": ShareStateActive}
	update := map[string]interface{}{"state": ShareStateRevoked, "mtime": mtime}
	sqlStr, args, err := builder.BuildUpdate("shares", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *ShareRepo) RevokeByPost(ctx context.Context, authorID, postID string, mtime int64) error {
	where := map[string]interface{}{"author_id": authorID, "post_id": postID, "state": ShareStateActive}
	update := map[string]interface{}{"state": ShareStateRevoked, "mtime": mtime}
	sqlStr, args, err := builder.BuildUpdate("shares", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *ShareRepo) ListByAuthor(ctx context.Context, authorID string) ([]model.Share, error) {
	where := map[string]interface{}{
		"author_id": authorID,
		"state":     ShareStateActive,
		"_orderby":  "ctime asc, id asc",
	}
	sqlStr, args, err := builder.BuildSelect("shares", where, shareColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Share, 0)
	for rows.Next() {
		var share model.Share
		if err := rows.Scan(&share.ID, &share.AuthorID, &share.PostID, &share.Key, &share.ExpiresAt, &share.State, &share.Ctime, &share.Mtime); err != nil {
			return nil, err
		}
		items = append(items, share)
	}
	return items, rows.Err()
}

// ListActivePostIDs reports which of the author's posts currently have an
// active share, for filtering the share picker.
func (r *ShareRepo) ListActivePostIDs(ctx context.Context, authorID string) (map[string]struct{}, error) {
	where := map[string]interface{}{"author_id": authorID, "state": ShareStateActive}
	sqlStr, args, err := builder.BuildSelect("shares", where, []string{"post_id"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// PurgeDead removes rows that stopped being useful: revoked shares and shares
// whose expiry lies before the cutoff.
func (r *ShareRepo) PurgeDead(ctx context.Context, expiredBefore int64) (int64, error) {
	sqlStr := `DELETE FROM shares WHERE state = ? OR expires_at < ?`
	args := []interface{}{ShareStateRevoked, expiredBefore}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
