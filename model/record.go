package model

import "github.com/venicegeo/geojson-go/geojson"

// Link is one online resource of a metadata record. Protocol identifies
// the role of the link within the record.
type Link struct {
	URL         string `json:"url"`
	Protocol    string `json:"protocol"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MetadataRecord is the normalized metadata derived from one indicator,
// ready to be merged into a metadata document
type MetadataRecord struct {
	IndicatorID      int                 `json:"indicatorId"`
	FileIdentifier   string              `json:"fileIdentifier"`
	ParentIdentifier string              `json:"parentIdentifier"`
	Title            string              `json:"title"`
	Abstract         string              `json:"abstract"`
	OverviewURL      string              `json:"overviewUrl"`
	Links            []Link              `json:"links"`
	Extent           geojson.BoundingBox `json:"extent,omitempty"`
}

// LinkByProtocol returns the link with the given protocol tag
func (r MetadataRecord) LinkByProtocol(protocol string) (Link, bool) {
	for _, link := range r.Links {
		if link.Protocol == protocol {
			return link, true
		}
	}
	return Link{}, false
}

// DownloadRequest identifies one downloadable data slice of an indicator.
// Scenario is nil for present-year data.
type DownloadRequest struct {
	IndicatorID int
	Region      string
	Scenario    *int
	Year        string
	Resolution  string
}
