package convention

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed data
var embedded embed.FS

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry over the conventions shipped
// with the module.
func Default() *Registry {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			panic(err)
		}

		defaultRegistry = NewRegistry(sub)
	})

	return defaultRegistry
}
