//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
)

const testWords = `fruit: apple
fruit: apricot
fruit: banana
city: amsterdam
city: athens
`

// CreateTestWorkspace creates an isolated directory with a word list
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	dir := tf.t.TempDir()
	tf.workspace = dir
	if err := os.WriteFile(filepath.Join(dir, "words.txt"), []byte(testWords), 0644); err != nil {
		return "", err
	}
	return dir, nil
}

// WriteConfig writes a local config file picked up on start
func (tf *TUITestFramework) WriteConfig(content string) error {
	return os.WriteFile(filepath.Join(tf.workspace, ".autosuggest.toml"), []byte(content), 0644)
}

// CreateFiles creates empty files below the workspace
func (tf *TUITestFramework) CreateFiles(paths ...string) error {
	for _, p := range paths {
		full := filepath.Join(tf.workspace, p)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(full, nil, 0644); err != nil {
			return err
		}
	}
	return nil
}
