package domain

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// Upload is a local file selected for an upload mutation. Content may be
// preloaded (tests, clipboard imports) or lazily read from Path.
type Upload struct {
	Name    string
	Path    string
	Type    string
	Content []byte
}

// NewUpload wraps an existing file on disk. The file name sent to the
// backend is the base name of the resolved path.
func NewUpload(path string) (ret *Upload, err error) {
	var absPath string
	if absPath, err = filepath.Abs(path); err != nil {
		return ret, err
	}
	if _, err = os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("file %s does not exist", path)
		}
		return ret, err
	}
	ret = &Upload{Name: filepath.Base(absPath), Path: absPath}
	return ret, err
}

// ResolveType returns the MIME type for the upload, detecting it from the
// content or the file on disk when not already set.
func (u *Upload) ResolveType() (ret string, err error) {
	if u.Type != "" {
		ret = u.Type
		return ret, err
	}
	if u.Content != nil {
		u.Type = mimetype.Detect(u.Content).String()
		ret = u.Type
		return ret, err
	}
	if u.Path != "" {
		var mime *mimetype.MIME
		if mime, err = mimetype.DetectFile(u.Path); err != nil {
			return ret, err
		}
		u.Type = mime.String()
		ret = u.Type
		return ret, err
	}
	err = fmt.Errorf("upload has no content to derive a type from")
	return ret, err
}

// ContentBytes returns the file payload, reading it from disk on demand.
func (u *Upload) ContentBytes() (ret []byte, err error) {
	if u.Content != nil {
		ret = u.Content
		return ret, err
	}
	if u.Path != "" {
		if ret, err = os.ReadFile(u.Path); err != nil {
			return ret, err
		}
		return ret, err
	}
	err = fmt.Errorf("no content available")
	return ret, err
}
