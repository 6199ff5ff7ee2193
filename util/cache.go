// util/cache.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// ObjectCache stores msgpack-encoded, zstd-compressed objects under a
// directory. The zero value uses the user cache directory.
type ObjectCache struct {
	Dir string
}

func (c ObjectCache) fullPath(path string) (string, error) {
	if c.Dir != "" {
		return filepath.Join(c.Dir, path), nil
	}
	cd, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cd, "tracongen", path), nil
}

func (c ObjectCache) Store(path string, obj any) error {
	path, err := c.fullPath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(zw).Encode(obj); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// Retrieve decodes the object stored at path into obj and returns the
// time it was stored. os.ErrNotExist is returned (wrapped) if there is no
// such object.
func (c ObjectCache) Retrieve(path string, obj any) (time.Time, error) {
	path, err := c.fullPath(path)
	if err != nil {
		return time.Time{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return time.Time{}, err
	}

	zr, err := zstd.NewReader(f)
	if err != nil {
		return time.Time{}, err
	}
	defer zr.Close()

	return fi.ModTime(), msgpack.NewDecoder(zr).Decode(obj)
}

// IsCacheMiss reports whether err from Retrieve means that nothing was
// cached.
func IsCacheMiss(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
