// SPDX-License-Identifier: MPL-2.0

package scanner

// DefaultDependencyDir is the directory name npm installs packages into.
const DefaultDependencyDir = "node_modules"

type (
	scanOptions struct {
		dependencyDir string
	}

	// Option configures a scan.
	Option func(*scanOptions)
)

// WithDependencyDir overrides the dependency directory name searched for on
// every level (default "node_modules"). An empty name keeps the default.
func WithDependencyDir(name string) Option {
	return func(o *scanOptions) {
		if name != "" {
			o.dependencyDir = name
		}
	}
}

func resolveOptions(opts []Option) scanOptions {
	options := scanOptions{dependencyDir: DefaultDependencyDir}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
