package model

// User is a registered author account. Only authors exist as users; preview
// visitors are anonymous and never get a row here.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Ctime        int64  `json:"ctime"`
	Mtime        int64  `json:"mtime"`
}
