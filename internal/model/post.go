package model

const (
	PostStatusDraft   = "draft"
	PostStatusPending = "pending"
	PostStatusFuture  = "future"
	PostStatusPublish = "publish"
)

type Post struct {
	ID        string `json:"id"`
	AuthorID  string `json:"author_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Status    string `json:"status"`
	PublishAt int64  `json:"publish_at,omitempty"`
	Ctime     int64  `json:"ctime"`
	Mtime     int64  `json:"mtime"`
}

func ValidPostStatus(status string) bool {
	switch status {
	case PostStatusDraft, PostStatusPending, PostStatusFuture, PostStatusPublish:
		return true
	}
	return false
}
