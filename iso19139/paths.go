// Package iso19139 fills ISO 19115/19139 metadata templates from derived
// metadata records
package iso19139

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// XML namespaces used by ISO 19139 documents
const (
	GMD = "http://www.isotc211.org/2005/gmd"
	GCO = "http://www.isotc211.org/2005/gco"
)

// preferredPrefixes are used when a namespace has to be declared
var preferredPrefixes = map[string]string{
	GMD: "gmd",
	GCO: "gco",
}

// Name is a namespace-qualified element name
type Name struct {
	Space string
	Local string
}

func gmd(local string) Name { return Name{Space: GMD, Local: local} }
func gco(local string) Name { return Name{Space: GCO, Local: local} }

// Path is a sequence of element names. The first step matches any
// descendant of the search root; each later step matches a direct child.
type Path []Name

func (p Path) String() string {
	steps := make([]string, len(p))
	for i, step := range p {
		steps[i] = preferredPrefixes[step.Space] + ":" + step.Local
	}
	return ".//" + strings.Join(steps, "/")
}

func matches(el *etree.Element, name Name) bool {
	return el.Tag == name.Local && el.NamespaceURI() == name.Space
}

// FindAll returns every element under root that the path resolves to, in
// document order
func FindAll(root *etree.Element, path Path) []*etree.Element {
	if root == nil || len(path) == 0 {
		return nil
	}
	var found []*etree.Element
	var descend func(el *etree.Element)
	descend = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if matches(child, path[0]) {
				found = append(found, followChildren(child, path[1:])...)
			}
			descend(child)
		}
	}
	descend(root)
	return found
}

// Find returns the first element under root that the path resolves to
func Find(root *etree.Element, path Path) *etree.Element {
	if all := FindAll(root, path); len(all) > 0 {
		return all[0]
	}
	return nil
}

func followChildren(el *etree.Element, rest Path) []*etree.Element {
	if len(rest) == 0 {
		return []*etree.Element{el}
	}
	var found []*etree.Element
	for _, child := range el.ChildElements() {
		if matches(child, rest[0]) {
			found = append(found, followChildren(child, rest[1:])...)
		}
	}
	return found
}

// prefixFor returns the prefix bound to uri in scope at el. When no binding
// is in scope one is declared on the document root.
func prefixFor(el *etree.Element, uri string) string {
	var root *etree.Element
	for current := el; current != nil; current = current.Parent() {
		for _, attr := range current.Attr {
			if attr.Space == "xmlns" && attr.Value == uri {
				return attr.Key
			}
			if attr.Space == "" && attr.Key == "xmlns" && attr.Value == uri {
				return ""
			}
		}
		if current.Tag != "" {
			root = current
		}
	}
	if root == nil {
		root = el
	}

	prefix := preferredPrefixes[uri]
	if prefix == "" {
		prefix = "ns"
	}
	candidate := prefix
	for i := 1; declared(root, candidate); i++ {
		candidate = fmt.Sprintf("%s%d", prefix, i)
	}
	root.CreateAttr("xmlns:"+candidate, uri)
	return candidate
}

func declared(el *etree.Element, prefix string) bool {
	for current := el; current != nil; current = current.Parent() {
		if current.SelectAttr("xmlns:"+prefix) != nil {
			return true
		}
	}
	return false
}

// createChild appends a namespace-qualified child element to parent
func createChild(parent *etree.Element, name Name) *etree.Element {
	prefix := prefixFor(parent, name.Space)
	if prefix == "" {
		return parent.CreateElement(name.Local)
	}
	return parent.CreateElement(prefix + ":" + name.Local)
}
