package fileops

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/toyz/bunner/internal/errors"
)

// FileOps groups the file reads and writes the build pipeline performs
type FileOps struct {
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// NewFileOps creates a FileOps with default permissions
func NewFileOps() *FileOps {
	return &FileOps{
		dirPerm:  0o755,
		filePerm: 0o644,
	}
}

// ReadFile reads a project file
func (fo *FileOps) ReadFile(filePath string) ([]byte, error) {
	cleanPath, err := cleanPath(filePath)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", cleanPath, err)
	}
	return content, nil
}

// WriteIfChanged writes content to filePath unless the file already holds
// exactly those bytes. It reports whether a write happened.
func (fo *FileOps) WriteIfChanged(filePath string, content []byte) (bool, error) {
	cleanPath, err := cleanPath(filePath)
	if err != nil {
		return false, err
	}

	existing, err := os.ReadFile(cleanPath)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !os.IsNotExist(err):
		return false, errors.WrapFileSystemError("read", cleanPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(cleanPath), fo.dirPerm); err != nil {
		return false, errors.WrapFileSystemError("create directory", filepath.Dir(cleanPath), err)
	}
	if err := os.WriteFile(cleanPath, content, fo.filePerm); err != nil {
		return false, errors.WrapFileSystemError("write", cleanPath, err)
	}
	return true, nil
}

// RemoveAll deletes a generated directory tree. A missing directory is not an error.
func (fo *FileOps) RemoveAll(dirPath string) (bool, error) {
	cleanPath, err := cleanPath(dirPath)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		return false, nil
	}
	if err := os.RemoveAll(cleanPath); err != nil {
		return false, errors.WrapFileSystemError("remove", cleanPath, err)
	}
	return true, nil
}

// Exists checks if a path exists
func (fo *FileOps) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir checks if a path exists and is a directory
func (fo *FileOps) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func cleanPath(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}
	return filepath.Clean(filePath), nil
}
