package filestore

import (
	"io"
	"io/ioutil"
	"strings"
)

// FakeFileStore records uploads in memory for tests.
type FakeFileStore struct {
	Files map[string][]byte
}

func NewFakeFileStore() *FakeFileStore {
	return &FakeFileStore{Files: map[string][]byte{}}
}

func (s *FakeFileStore) Store(key string, body io.Reader) (string, error) {
	data, err := ioutil.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.Files[key] = data
	return s.UrlFromKey(key), nil
}

func (s *FakeFileStore) Remove(key string) error {
	delete(s.Files, key)
	return nil
}

func (s *FakeFileStore) Exists(key string) bool {
	_, ok := s.Files[key]
	return ok
}

func (s *FakeFileStore) UrlFromKey(key string) string {
	return "/uploads/" + strings.TrimLeft(key, "/")
}
