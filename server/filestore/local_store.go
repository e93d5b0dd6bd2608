package filestore

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalFileStore writes uploads under a root folder on disk and serves them
// from a URL prefix. This is the default store for local development.
type LocalFileStore struct {
	root      string
	urlPrefix string
}

func NewLocalFileStore(root, urlPrefix string) *LocalFileStore {
	if root == "" {
		root = "uploads"
	}
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}
	return &LocalFileStore{
		root:      root,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}
}

// Root is the on-disk folder, exposed so the router can mount a static
// handler over it.
func (s *LocalFileStore) Root() string { return s.root }

func (s *LocalFileStore) Store(key string, body io.Reader) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "create upload folder")
	}

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create upload file")
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", errors.Wrap(err, "write upload file")
	}
	return s.UrlFromKey(key), nil
}

func (s *LocalFileStore) Remove(key string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return errors.Wrap(err, "remove upload file")
}

func (s *LocalFileStore) Exists(key string) bool {
	_, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(key)))
	return err == nil
}

func (s *LocalFileStore) UrlFromKey(key string) string {
	return s.urlPrefix + "/" + strings.TrimLeft(key, "/")
}
