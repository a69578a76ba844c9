package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// LocalStore writes objects beneath a root directory of an afero filesystem.
type LocalStore struct {
	fs   afero.Fs
	root string
}

// NewLocalStore roots the store at dir on the OS filesystem.
func NewLocalStore(dir string) (*LocalStore, error) {
	return NewLocalStoreFs(afero.NewOsFs(), dir)
}

// NewLocalStoreFs is NewLocalStore over an arbitrary afero filesystem.
func NewLocalStoreFs(fsys afero.Fs, dir string) (*LocalStore, error) {
	if err := fsys.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("storage: create root %s: %w", dir, err)
	}
	return &LocalStore{fs: afero.NewBasePathFs(fsys, dir), root: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	name := filepath.FromSlash(key)
	if err := s.fs.MkdirAll(filepath.Dir(name), 0o750); err != nil {
		return fmt.Errorf("storage: mkdir for %s: %w", key, err)
	}

	// Write to a temp name and rename so readers never see a partial file
	tmp := name + ".part"
	f, err := s.fs.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640)
	if err != nil {
		return fmt.Errorf("storage: create %s: %w", key, err)
	}
	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && size >= 0 && written != size {
		err = fmt.Errorf("short write: %d of %d bytes", written, size)
	}
	if err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	if err := s.fs.Rename(tmp, name); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("storage: commit %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(filepath.FromSlash(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: open %s: %w", key, err)
	}
	return f, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(filepath.FromSlash(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}
