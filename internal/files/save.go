package files

import (
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SaveFile saves a file to the specified path.
// If the destination directory doesn't exist, it will be created.
func SaveFile(filePath string, data []byte) error {
	dirPath := filepath.Dir(filePath)
	// Create directories recursively
	if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
		return err
	}

	dest, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer dest.Close()

	_, err = dest.Write(data)

	return err
}

// SaveExecutable saves a file and marks it executable.
// Used for generated shell scripts.
func SaveExecutable(filePath string, data []byte) error {
	if err := SaveFile(filePath, data); err != nil {
		return err
	}
	return os.Chmod(filePath, 0o755)
}

// IsJSONType checks if the content is a valid JSON document.
func IsJSONType(content []byte) bool {
	var jsonData map[string]interface{}
	return json.Unmarshal(content, &jsonData) == nil
}
