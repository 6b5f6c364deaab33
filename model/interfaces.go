package model

import "github.com/beevik/etree"

// LocationProber resolves the download location of one data slice. An empty
// string means no download is available.
type LocationProber interface {
	Location(req DownloadRequest) string
}

// DocumentMixin is a unit of data that can be merged into a metadata document
type DocumentMixin interface {
	Apply(root *etree.Element) error
}
