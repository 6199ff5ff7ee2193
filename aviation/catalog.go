// aviation/catalog.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mmp/tracongen/log"
	"github.com/mmp/tracongen/util"
)

// AircraftCatalog is the shared set of aircraft type definitions, indexed
// by ICAO type designator. It is not modified after it is built.
type AircraftCatalog struct {
	types map[string]AircraftType
}

type aircraftCatalogJSON struct {
	Aircraft []AircraftTypeRecord `json:"aircraft"`
}

// NewAircraftCatalog builds a catalog from the given records. Every record
// is validated and all problems are reported together; if there are any,
// no catalog is returned.
func NewAircraftCatalog(records []AircraftTypeRecord) (*AircraftCatalog, error) {
	var e util.ErrorLogger
	cat := &AircraftCatalog{types: make(map[string]AircraftType)}

	for i, rec := range records {
		t, err := NewAircraftType(rec)
		if err != nil {
			var verr *util.ValidationError
			if errors.As(err, &verr) {
				e.Push(fmt.Sprintf("aircraft[%d]", i))
				for _, msg := range verr.Messages {
					e.ErrorString("%s", msg)
				}
				e.Pop()
			} else {
				e.Error(err)
			}
			continue
		}

		if _, ok := cat.types[t.ICAO()]; ok {
			e.ErrorString("%s: aircraft type defined multiple times", t.ICAO())
			continue
		}
		cat.types[t.ICAO()] = t
	}

	if err := e.Err(ErrInvalidConfiguration); err != nil {
		return nil, err
	}
	return cat, nil
}

// LoadAircraftCatalog reads a catalog in openscope-aircraft.json format.
func LoadAircraftCatalog(r io.Reader) (*AircraftCatalog, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseAircraftCatalog(b)
}

func parseAircraftCatalog(b []byte) (*AircraftCatalog, error) {
	var e util.ErrorLogger
	util.CheckJSON[aircraftCatalogJSON](b, &e)
	if err := e.Err(ErrInvalidConfiguration); err != nil {
		return nil, err
	}

	var cj aircraftCatalogJSON
	if err := util.UnmarshalJSONBytes(b, &cj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return NewAircraftCatalog(cj.Aircraft)
}

// cachedCatalog is the on-disk cache entry for a catalog file. The source
// file's path, size and modification time must all match for the records
// to be reused.
type cachedCatalog struct {
	Path    string
	Size    int64
	ModTime time.Time
	Records []AircraftTypeRecord
}

func (cc cachedCatalog) matches(path string, fi os.FileInfo) bool {
	return cc.Path == path && cc.Size == fi.Size() && cc.ModTime.Equal(fi.ModTime())
}

// catalogCacheName returns the cache entry name for the catalog at the
// given absolute path.
func catalogCacheName(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return fmt.Sprintf("catalog-%s-%016x.msgpack.zst", base, h.Sum64())
}

// LoadAircraftCatalogFile loads the catalog at the given path, which may be
// zstd-compressed. If cache is non-nil, the parsed records are cached and
// reused until the file changes.
func LoadAircraftCatalogFile(path string, cache *util.ObjectCache, lg *log.Logger) (*AircraftCatalog, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	cacheName := catalogCacheName(abs)
	if cache != nil {
		var cc cachedCatalog
		if _, err := cache.Retrieve(cacheName, &cc); err == nil && cc.matches(abs, fi) {
			lg.Debugf("%s: using cached aircraft catalog", path)
			return NewAircraftCatalog(cc.Records)
		} else if err != nil && !util.IsCacheMiss(err) {
			lg.Warnf("%s: unable to read cached catalog: %v", path, err)
		}
	}

	b, err := util.ReadResourceFile(path)
	if err != nil {
		return nil, err
	}
	cat, err := parseAircraftCatalog(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if cache != nil {
		cc := cachedCatalog{Path: abs, Size: fi.Size(), ModTime: fi.ModTime(), Records: cat.records()}
		if err := cache.Store(cacheName, cc); err != nil {
			lg.Warnf("%s: unable to cache catalog: %v", path, err)
		}
	}
	lg.Infof("%s: loaded %d aircraft types", path, cat.Len())

	return cat, nil
}

func (c *AircraftCatalog) records() []AircraftTypeRecord {
	var r []AircraftTypeRecord
	for _, icao := range c.ICAOs() {
		r = append(r, c.types[icao].Record())
	}
	return r
}

// Lookup returns the type with the given ICAO designator; the error wraps
// ErrUnknownAircraftType if there isn't one.
func (c *AircraftCatalog) Lookup(icao string) (AircraftType, error) {
	if c != nil {
		if t, ok := c.types[strings.ToUpper(icao)]; ok {
			return t, nil
		}
	}
	return AircraftType{}, fmt.Errorf("%s: %w", icao, ErrUnknownAircraftType)
}

func (c *AircraftCatalog) Has(icao string) bool {
	_, err := c.Lookup(icao)
	return err == nil
}

func (c *AircraftCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.types)
}

// ICAOs returns the catalog's type designators, sorted.
func (c *AircraftCatalog) ICAOs() []string {
	if c == nil {
		return nil
	}
	return util.SortedMapKeys(c.types)
}
