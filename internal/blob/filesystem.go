package blob

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Filesystem stores blobs as files under a root directory.
type Filesystem struct {
	root      string
	publicURL string
}

// NewFilesystem returns a store rooted at root, creating the directory if needed.
func NewFilesystem(root, publicURL string) (*Filesystem, error) {
	if root == "" {
		root = "./uploads"
	}
	if publicURL == "" {
		publicURL = "/uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Filesystem{root: root, publicURL: publicURL}, nil
}

func (s *Filesystem) Driver() Driver { return DriverFilesystem }

// Root is the directory served at PublicURL.
func (s *Filesystem) Root() string { return s.root }

// PublicURL is the URL prefix the root is served under.
func (s *Filesystem) PublicURL() string { return s.publicURL }

func (s *Filesystem) URL(key string) string { return joinURL(s.publicURL, key) }

func (s *Filesystem) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	k, err := cleanKey(key)
	if err != nil {
		return Info{}, err
	}
	dataPath := filepath.Join(s.root, filepath.FromSlash(k))
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return Info{}, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dataPath), ".tmp-*")
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	size, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()
		return Info{}, err
	}
	if err := tmp.Close(); err != nil {
		return Info{}, err
	}
	if err := os.Rename(tmp.Name(), dataPath); err != nil {
		return Info{}, err
	}
	return Info{Key: k, Size: size, ContentType: opts.ContentType, URL: s.URL(k)}, nil
}

func (s *Filesystem) Delete(ctx context.Context, key string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.root, filepath.FromSlash(k)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
