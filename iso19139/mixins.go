package iso19139

import (
	"fmt"
	"strconv"

	"github.com/adaptabrasil/adapta-metadata/model"
	"github.com/adaptabrasil/adapta-metadata/util"
	"github.com/beevik/etree"
	"github.com/venicegeo/geojson-go/geojson"
)

// Fixed element paths
var (
	FileIdentifierPath   = Path{gmd("fileIdentifier"), gco("CharacterString")}
	ParentIdentifierPath = Path{gmd("parentIdentifier"), gco("CharacterString")}
	TitlePath            = Path{gmd("title"), gco("CharacterString")}
	AbstractPath         = Path{gmd("abstract"), gco("CharacterString")}
	OverviewPath         = Path{gmd("MD_BrowseGraphic"), gmd("fileName"), gco("CharacterString")}
	OnlineResourcePath   = Path{gmd("CI_OnlineResource")}
	TransferOptionsPath  = Path{gmd("MD_DigitalTransferOptions")}
	BoundingBoxPath      = Path{gmd("EX_GeographicBoundingBox")}
)

// Paths relative to a CI_OnlineResource
var (
	protocolPath    = Path{gmd("protocol"), gco("CharacterString")}
	linkagePath     = Path{gmd("linkage"), gmd("URL")}
	namePath        = Path{gmd("name"), gco("CharacterString")}
	descriptionPath = Path{gmd("description"), gco("CharacterString")}
)

func setText(root *etree.Element, path Path, text string) bool {
	el := Find(root, path)
	if el == nil {
		return false
	}
	el.SetText(text)
	return true
}

type fixedFields struct {
	record model.MetadataRecord
}

func (m fixedFields) Apply(root *etree.Element) error {
	setText(root, FileIdentifierPath, m.record.FileIdentifier)
	setText(root, ParentIdentifierPath, m.record.ParentIdentifier)
	setText(root, TitlePath, m.record.Title)
	setText(root, AbstractPath, m.record.Abstract)
	setText(root, OverviewPath, m.record.OverviewURL)
	return nil
}

// onlineResources merges links into CI_OnlineResource blocks matched by
// protocol, appending blocks for links the template does not carry
type onlineResources struct {
	links   []model.Link
	context util.LogContext
}

func (m onlineResources) Apply(root *etree.Element) error {
	resources := FindAll(root, OnlineResourcePath)
	for _, link := range m.links {
		if resource := findByProtocol(resources, link.Protocol); resource != nil {
			setText(resource, linkagePath, link.URL)
			setText(resource, namePath, link.Name)
			setText(resource, descriptionPath, link.Description)
			continue
		}

		container := Find(root, TransferOptionsPath)
		if container == nil {
			util.LogAlert(m.context, fmt.Sprintf("Template has no %s; dropping %s link %s", TransferOptionsPath, link.Protocol, link.URL))
			continue
		}
		resources = append(resources, appendResource(container, link))
	}
	return nil
}

func findByProtocol(resources []*etree.Element, protocol string) *etree.Element {
	for _, resource := range resources {
		if el := Find(resource, protocolPath); el != nil && el.Text() == protocol {
			return resource
		}
	}
	return nil
}

// appendResource adds onLine/CI_OnlineResource after the last existing
// onLine of container, or before offLine, or at the end
func appendResource(container *etree.Element, link model.Link) *etree.Element {
	prefix := prefixFor(container, GMD)
	onLine := etree.NewElement(qualify(prefix, "onLine"))

	index := -1
	for _, child := range container.ChildElements() {
		switch {
		case matches(child, gmd("onLine")):
			index = child.Index() + 1
		case matches(child, gmd("offLine")) && index < 0:
			index = child.Index()
		}
	}
	if index < 0 {
		container.AddChild(onLine)
	} else {
		container.InsertChildAt(index, onLine)
	}

	resource := createChild(onLine, gmd("CI_OnlineResource"))
	createChild(createChild(resource, gmd("linkage")), gmd("URL")).SetText(link.URL)
	createChild(createChild(resource, gmd("protocol")), gco("CharacterString")).SetText(link.Protocol)
	createChild(createChild(resource, gmd("name")), gco("CharacterString")).SetText(link.Name)
	createChild(createChild(resource, gmd("description")), gco("CharacterString")).SetText(link.Description)
	return resource
}

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

type geographicExtent struct {
	bbox geojson.BoundingBox
}

func (m geographicExtent) Apply(root *etree.Element) error {
	var west, south, east, north float64
	switch len(m.bbox) {
	case 0:
		return nil
	case 4:
		west, south, east, north = m.bbox[0], m.bbox[1], m.bbox[2], m.bbox[3]
	case 6:
		west, south, east, north = m.bbox[0], m.bbox[1], m.bbox[3], m.bbox[4]
	default:
		return fmt.Errorf("bounding box has %d values", len(m.bbox))
	}

	box := Find(root, BoundingBoxPath)
	if box == nil {
		return nil
	}
	bounds := []struct {
		name  string
		value float64
	}{
		{"westBoundLongitude", west},
		{"eastBoundLongitude", east},
		{"southBoundLatitude", south},
		{"northBoundLatitude", north},
	}
	for _, bound := range bounds {
		if el := Find(box, Path{gmd(bound.name), gco("Decimal")}); el != nil {
			el.SetText(strconv.FormatFloat(bound.value, 'f', -1, 64))
		}
	}
	return nil
}
