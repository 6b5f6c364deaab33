package model

import "fmt"

// NoYear is the year token for indicators without a year dimension
const NoYear = "null"

// PlatformLabel prefixes every hierarchical title
const PlatformLabel = "AdaptaBrasil"

// TitleSeparator joins the levels of a hierarchical title
const TitleSeparator = " - "

// FallbackResolution is used when no level-1 ancestor declares a default resolution
const FallbackResolution = "municipio"

// DefaultRegion is the region ("recorte") covering the whole country
const DefaultRegion = "BR"

// DefaultSchema namespaces file and parent identifiers
const DefaultSchema = "adaptabrasil"

// Protocol tags identifying the role of an online resource
const (
	PlatformLinkProtocol = "WWW:LINK-1.0-http--link"
	DataAPILinkProtocol  = "WWW:LINK-2.0-http--link"
)

// DownloadProtocol returns the protocol tag of the n-th download link (n >= 1)
func DownloadProtocol(n int) string {
	return fmt.Sprintf("WWW:DOWNLOAD-%d.0-http--download", n)
}
