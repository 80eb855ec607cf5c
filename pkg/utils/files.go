// Package utils holds small helpers shared by the worker binary.
package utils

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"archive/zip"

	"github.com/bodgit/sevenzip"
)

// mediaExtensions are the file types attachable to the machine. Files
// inside archives are matched against these.
var mediaExtensions = []string{".tap", ".tzx", ".sna", ".z80", ".dsk"}

func isMedia(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range mediaExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// LoadFile reads the given tape, snapshot or disk file. Archives (.zip,
// .7z) and gzip-compressed files are unpacked; for archives the first
// media file inside is returned along with its name, so the caller can
// tell container formats apart.
func LoadFile(filename string) (data []byte, name string, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err = io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, "", err
		}
		r, err := gzip.NewReader(f)
		if err != nil {
			return nil, "", err
		}
		data, err = io.ReadAll(r)
		if err != nil {
			return nil, "", err
		}
		return data, strings.TrimSuffix(filename, ".gz"), nil
	case ".zip":
		r, err := zip.NewReader(f, int64(len(data)))
		if err != nil {
			return nil, "", err
		}
		for _, zf := range r.File {
			if !isMedia(zf.Name) {
				continue
			}
			rc, err := zf.Open()
			if err != nil {
				return nil, "", err
			}
			data, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, "", err
			}
			return data, zf.Name, nil
		}
		return nil, "", fmt.Errorf("no loadable file in archive %q", filename)
	case ".7z":
		r, err := sevenzip.NewReader(f, int64(len(data)))
		if err != nil {
			return nil, "", err
		}
		for _, zf := range r.File {
			if !isMedia(zf.Name) {
				continue
			}
			rc, err := zf.Open()
			if err != nil {
				return nil, "", err
			}
			data, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, "", err
			}
			return data, zf.Name, nil
		}
		return nil, "", fmt.Errorf("no loadable file in archive %q", filename)
	default:
		return data, filename, nil
	}
}
