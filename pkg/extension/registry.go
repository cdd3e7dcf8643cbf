package extension

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// packageMarker is the file documenting a category package. It holds no module.
const packageMarker = "doc.go"

// Registry is the immutable set of loadable module identifiers.
type Registry struct {
	ids []string
	set map[string]struct{}
}

// NewRegistry creates a Registry from the given identifiers.
func NewRegistry(ids ...string) Registry {
	r := Registry{set: make(map[string]struct{}, len(ids))}

	for _, id := range ids {
		if _, ok := r.set[id]; ok {
			continue
		}

		r.set[id] = struct{}{}
		r.ids = append(r.ids, id)
	}

	sort.Strings(r.ids)

	return r
}

// Discover walks rootDir two levels deep (category/module) and returns the
// identifiers of the modules found. Identifiers are formed from the base name
// of rootDir, the category and the file name without extension, joined by dots.
func Discover(rootDir string) (Registry, error) {
	root := filepath.Base(filepath.Clean(rootDir))

	categories, err := os.ReadDir(rootDir)
	if err != nil {
		return Registry{}, fmt.Errorf("read extensions directory: %w", err)
	}

	var ids []string

	for _, category := range categories {
		if !category.IsDir() || isPrivate(category.Name()) {
			continue
		}

		files, err := os.ReadDir(filepath.Join(rootDir, category.Name()))
		if err != nil {
			return Registry{}, fmt.Errorf("read category %q: %w", category.Name(), err)
		}

		for _, file := range files {
			name := file.Name()
			if file.IsDir() || !isModuleFile(name) {
				continue
			}

			ids = append(ids, strings.Join([]string{root, category.Name(), strings.TrimSuffix(name, ".go")}, "."))
		}
	}

	return NewRegistry(ids...), nil
}

func isPrivate(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

func isModuleFile(name string) bool {
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		!isPrivate(name) &&
		name != packageMarker
}

// IDs returns the sorted identifiers.
func (r Registry) IDs() []string {
	ids := make([]string, len(r.ids))
	copy(ids, r.ids)

	return ids
}

// Len returns the number of identifiers.
func (r Registry) Len() int { return len(r.ids) }

// Contains returns whether id is in the registry.
func (r Registry) Contains(id string) bool {
	_, ok := r.set[id]

	return ok
}

// Filter returns a Registry holding the identifiers for which keep returns
// true, along with the dropped identifiers.
func (r Registry) Filter(keep func(id string) bool) (Registry, []string) {
	var kept, dropped []string

	for _, id := range r.ids {
		if keep(id) {
			kept = append(kept, id)
			continue
		}

		dropped = append(dropped, id)
	}

	return NewRegistry(kept...), dropped
}

// Unqualify returns the last dotted segment of id.
func Unqualify(id string) string {
	return id[strings.LastIndex(id, ".")+1:]
}

// Category returns the display category of id: the segments between the root
// and the module name. Two segment identifiers use their first segment.
func Category(id string) string {
	parts := strings.Split(id, ".")

	switch {
	case len(parts) >= 3:
		return strings.Join(parts[1:len(parts)-1], " - ")
	case len(parts) == 2:
		return parts[0]
	default:
		return ""
	}
}
