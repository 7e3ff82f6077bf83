package service

import (
	"crypto/rand"
	"encoding/hex"
)

// shareKeyPrefix namespaces share keys so they cannot collide with other
// token kinds carried on the same query string.
const shareKeyPrefix = "share_"

func newID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func newShareKey() string {
	bytes := make([]byte, 10)
	_, _ = rand.Read(bytes)
	return shareKeyPrefix + hex.EncodeToString(bytes)
}
