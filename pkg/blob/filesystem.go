package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cropdoc/pkg/errs"
)

// FileStore keeps blobs under a local directory that the server also exposes
// as /uploads. Suitable for single-node deployments; swap in S3Store behind
// the same interface for anything else.
type FileStore struct {
	root    string
	baseURL string
}

func NewFileStore(root, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errs.Wrapf(err, "create upload root %q", root)
	}
	return &FileStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put writes to a temp file in the destination directory and renames it into
// place, so a failed write never leaves a partially-visible image.
func (s *FileStore) Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_ = contentType // recorded in the key's extension; the fs has no metadata

	destPath := filepath.Join(s.root, filepath.FromSlash(key))
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errs.Wrapf(err, "create blob directory %q", dir)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", errs.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return "", errs.Wrap(err, "write blob")
	}
	if err := tmp.Close(); err != nil {
		return "", errs.Wrap(err, "close temp file")
	}
	if size > 0 && written != size {
		return "", fmt.Errorf("size mismatch: expected %d bytes, wrote %d", size, written)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return "", errs.Wrap(err, "commit blob")
	}
	committed = true

	return s.baseURL + "/uploads/" + path.Clean(key), nil
}

func (s *FileStore) Get(ctx context.Context, key string, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("blob not found: %s", key)
		}
		return errs.Wrap(err, "open blob")
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return errs.Wrap(err, "read blob")
	}
	return nil
}

// Root is the directory the router serves statically.
func (s *FileStore) Root() string { return s.root }
