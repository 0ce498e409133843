package utils

import (
	"os"
	"path/filepath"
)

// CreateFile will create a file at the given path and file name combination. If the path is empty, the file will be
// created in the current working directory. Any directories which do not exist will be created.
// Returns the file, or an error if one occurred.
func CreateFile(path string, fileName string) (*os.File, error) {
	if path != "" {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, err
		}
	}
	file, err := os.Create(filepath.Join(path, fileName))
	if err != nil {
		return nil, err
	}
	return file, nil
}

// FileExists checks if a file exists at the given path and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists at the given path.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
