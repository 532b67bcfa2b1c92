package fileInfo

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/rescp17/taildropMenu/internal/util"
)

var ErrNotRegular = errors.New("not a regular file")

// FileNode is a regular file that is ready to be handed to `tailscale file cp`.
type FileNode struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type,omitempty"`
	Path     string `json:"-"`
}

// CreateNode describes the regular file at path. Symlinks are followed.
func CreateNode(path string) (FileNode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileNode{}, err
	}
	if !info.Mode().IsRegular() {
		return FileNode{}, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}
	node := FileNode{
		Name: info.Name(),
		Size: info.Size(),
		Path: path,
	}
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		node.MimeType = "application/octet-stream"
	} else {
		node.MimeType = mime.String()
	}
	return node, nil
}

// ExpandDir returns the regular files directly inside dir, in name order.
// Expansion is one level deep on purpose: subdirectories are skipped, not walked.
func ExpandDir(dir string) ([]FileNode, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	nodes := make([]FileNode, 0, len(entries))
	for _, entry := range entries {
		childPath := filepath.Join(dir, entry.Name())
		node, err := CreateNode(childPath)
		if err != nil {
			slog.Debug("Skipping directory entry", "path", childPath, "reason", err)
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// Resolve turns a selection of local paths into the files to send, keeping
// selection order. Directories contribute their immediate files; missing
// paths and special files are dropped.
func Resolve(paths []string) []FileNode {
	var nodes []FileNode
	for _, path := range paths {
		exists, isDir, err := util.CheckDirectory(path)
		if err != nil || !exists {
			slog.Debug("Skipping unreadable selection", "path", path, "error", err)
			continue
		}
		if isDir {
			children, err := ExpandDir(path)
			if err != nil {
				slog.Warn("Failed to read directory", "path", path, "error", err)
				continue
			}
			nodes = append(nodes, children...)
			continue
		}
		node, err := CreateNode(path)
		if err != nil {
			slog.Debug("Skipping selection", "path", path, "reason", err)
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes
}
