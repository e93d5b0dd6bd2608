package filestore

import "io"

// UploadStore persists user-uploaded images (profile pictures, rating
// artwork) and maps stored keys back to servable URLs. Keys are relative
// paths like "ratings/rating_3_abc_name.png".
type UploadStore interface {
	Store(key string, body io.Reader) (url string, err error)
	Remove(key string) error
	Exists(key string) bool
	UrlFromKey(key string) string
}
