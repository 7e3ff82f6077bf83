package model

type Share struct {
	ID        string `json:"id"`
	AuthorID  string `json:"author_id"`
	PostID    string `json:"post_id"`
	Key       string `json:"key"`
	ExpiresAt int64  `json:"expires_at"`
	State     int    `json:"state"`
	Ctime     int64  `json:"ctime"`
	Mtime     int64  `json:"mtime"`
}
