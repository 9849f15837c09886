// Package loader provides script-source loaders: small wrappers that hand the
// adapter a re-readable view of source text plus a stable source URL used for
// identification and logging.
package loader

import (
	"io"
	"net/url"
)

type Loader interface {
	// GetReader returns a fresh reader over the script source. Each call
	// must return an independent reader so the source can be read again.
	GetReader() (io.ReadCloser, error)

	// GetSourceURL identifies where the source came from.
	GetSourceURL() *url.URL
}
