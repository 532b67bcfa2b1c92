package util

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

func CheckDirectory(path string) (exists bool, isDir bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, false, nil
		}
		return false, false, err
	}
	return true, info.IsDir(), nil
}

// FileURIToPath resolves a file-manager locator such as
// "file:///home/u/My%20File.txt" to a local path. Locators with any other
// scheme, or a remote host, are reported as not local.
func FileURIToPath(locator string) (string, bool) {
	u, err := url.Parse(locator)
	if err != nil || !strings.EqualFold(u.Scheme, "file") {
		return "", false
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", false
	}
	if u.Path == "" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}

// PathToFileURI turns a local path into a file:// locator, making it absolute first.
func PathToFileURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
