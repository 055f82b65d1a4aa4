// Package service contains stuff related to storage and background
// processing of the application
package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
)

const nameCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

var ErrBadName = errors.New("invalid file name")

// Store writes uploaded files to a flat directory on disk. Names are
// generated, so no two uploads can ever target the same path and no
// file is opened for write twice.
type Store struct {
	Dir string
}

func NewStore() *Store {
	return &Store{Dir: viper.GetString("upload.dir")}
}

// Save streams src into a new file named with a generated unique id,
// keeping the original extension. Partial files are removed on error.
func (s *Store) Save(src io.Reader, originalName string) (name string, size int64, err error) {
	id, err := gonanoid.Generate(nameCharset, 16)
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate file name, %w", err)
	}

	name = id + strings.ToLower(path.Ext(originalName))

	dst, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file, %w", err)
	}

	size, err = io.Copy(dst, src)
	if err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", 0, fmt.Errorf("failed to write file, %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", 0, fmt.Errorf("failed to close file, %w", err)
	}

	return name, size, nil
}

// Path resolves a stored file name to its on-disk path, rejecting
// anything that would escape the upload directory.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrBadName
	}

	return filepath.Join(s.Dir, name), nil
}

// Stat returns the size of a stored file.
func (s *Store) Stat(name string) (int64, error) {
	p, err := s.Path(name)
	if err != nil {
		return 0, err
	}

	fi, err := os.Stat(p)
	if err != nil {
		return 0, err
	}

	return fi.Size(), nil
}

// Open opens a stored file for reading.
func (s *Store) Open(name string) (*os.File, error) {
	p, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	return os.Open(p)
}

// Remove deletes a stored file. Missing files are not an error, the
// caller only cares that the file is gone.
func (s *Store) Remove(name string) error {
	p, err := s.Path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
