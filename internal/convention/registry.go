package convention

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"sofar/internal/common"
	"sofar/internal/match"
)

// Latest selects the numerically largest version of a convention.
const Latest = "latest"

const (
	standardizedDir = "standardized"
	deprecatedDir   = "deprecated"
	fileExt         = ".yaml"
)

// Registry resolves convention names and versions to schemas. Schemas are
// parsed on first use and cached.
type Registry struct {
	fsys fs.FS

	listOnce sync.Once
	ids      []ID
	listErr  error

	mu      sync.Mutex
	schemas map[string]*Schema
}

// NewRegistry returns a registry over fsys, which must contain the
// standardized/ and deprecated/ directories.
func NewRegistry(fsys fs.FS) *Registry {
	return &Registry{fsys: fsys, schemas: map[string]*Schema{}}
}

// List returns every convention file sorted by name and numeric version.
func (r *Registry) List() ([]ID, error) {
	r.listOnce.Do(func() {
		r.ids, r.listErr = r.scan()
	})

	return append([]ID(nil), r.ids...), r.listErr
}

func (r *Registry) scan() ([]ID, error) {
	var ids []ID

	for _, dir := range []string{standardizedDir, deprecatedDir} {
		files, err := fs.Glob(r.fsys, path.Join(dir, "*"+fileExt))
		if err != nil {
			return nil, fmt.Errorf("failed to list conventions in %s: %w", dir, err)
		}

		for _, file := range files {
			id, err := parseFileName(file)
			if err != nil {
				return nil, err
			}

			id.Deprecated = dir == deprecatedDir
			ids = append(ids, id)
		}
	}

	sort.SliceStable(ids, func(i, j int) bool {
		if ids[i].Name != ids[j].Name {
			return ids[i].Name < ids[j].Name
		}

		return versionValue(ids[i].Version) < versionValue(ids[j].Version)
	})

	return ids, nil
}

// parseFileName splits "<dir>/<Name>_<Version>.yaml".
func parseFileName(file string) (ID, error) {
	base := strings.TrimSuffix(path.Base(file), fileExt)

	idx := strings.LastIndex(base, "_")
	if idx <= 0 || idx == len(base)-1 {
		return ID{}, fmt.Errorf("convention file %s must be named <Name>_<Version>%s", file, fileExt)
	}

	version := base[idx+1:]
	if _, err := strconv.ParseFloat(version, 64); err != nil {
		return ID{}, fmt.Errorf("convention file %s: version %q is not a number", file, version)
	}

	return ID{Name: base[:idx], Version: version, Path: file}, nil
}

func versionValue(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)

	return f
}

// Names returns the distinct convention names in sorted order.
func (r *Registry) Names() ([]string, error) {
	ids, err := r.List()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name
	}

	return common.Unique(names), nil
}

// Paths returns the path of every convention file inside the registry FS.
func (r *Registry) Paths() ([]string, error) {
	ids, err := r.List()
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(ids))
	for i, id := range ids {
		paths[i] = id.Path
	}

	return paths, nil
}

// Versions returns the versions of a convention in ascending order.
func (r *Registry) Versions(name string) ([]ID, error) {
	ids, err := r.List()
	if err != nil {
		return nil, err
	}

	var out []ID

	for _, id := range ids {
		if id.Name == name {
			out = append(out, id)
		}
	}

	if len(out) == 0 {
		names, _ := r.Names()

		return nil, &NotFoundError{Name: name, Available: match.Suggest(name, names, 3)}
	}

	return out, nil
}

// Lookup finds the file of a convention version without parsing it.
// version is either Latest or a number compared by value, so "1" finds "1.0".
func (r *Registry) Lookup(name, version string) (ID, error) {
	versions, err := r.Versions(name)
	if err != nil {
		return ID{}, err
	}

	if version == Latest {
		return versions[len(versions)-1], nil
	}

	want, err := strconv.ParseFloat(version, 64)
	if err == nil {
		for _, id := range versions {
			if versionValue(id.Version) == want {
				return id, nil
			}
		}
	}

	available := make([]string, len(versions))
	for i, id := range versions {
		available[i] = id.Version
	}

	return ID{}, &NotFoundError{Name: name, Version: version, Available: available}
}

// Latest returns the newest version string of a convention.
func (r *Registry) Latest(name string) (string, error) {
	id, err := r.Lookup(name, Latest)
	if err != nil {
		return "", err
	}

	return id.Version, nil
}

// Resolve returns the schema of a convention version.
func (r *Registry) Resolve(name, version string) (*Schema, error) {
	id, err := r.Lookup(name, version)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.schemas[id.Path]; ok {
		return s, nil
	}

	data, err := fs.ReadFile(r.fsys, id.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read convention file %s: %w", id.Path, err)
	}

	s, err := Parse(id, data)
	if err != nil {
		return nil, err
	}

	r.schemas[id.Path] = s

	return s, nil
}
