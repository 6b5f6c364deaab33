// Copyright 2024, The AdaptaBrasil Metadata Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package iso19139

import (
	"errors"
	"fmt"
	"os"

	"github.com/adaptabrasil/adapta-metadata/model"
	"github.com/adaptabrasil/adapta-metadata/util"
	"github.com/beevik/etree"
)

// Template is a parsed metadata template. The parsed document is never
// modified; every Fill works on its own copy.
type Template struct {
	doc     *etree.Document
	Context util.LogContext
}

// ParseTemplate parses an XML template
func ParseTemplate(data []byte) (*Template, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	if doc.Root() == nil {
		return nil, errors.New("parse template: document has no root element")
	}
	return &Template{doc: doc, Context: &util.BasicLogContext{}}, nil
}

// LoadTemplate reads and parses the XML template at path
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return ParseTemplate(data)
}

// Mixins returns the merge steps for record, in the order they are applied
func (t *Template) Mixins(record model.MetadataRecord) []model.DocumentMixin {
	return []model.DocumentMixin{
		fixedFields{record: record},
		onlineResources{links: record.Links, context: t.context()},
		geographicExtent{bbox: record.Extent},
	}
}

// Fill returns a new document holding the template merged with record
func (t *Template) Fill(record model.MetadataRecord) (*etree.Document, error) {
	doc := t.doc.Copy()
	for _, mixin := range t.Mixins(record) {
		if err := mixin.Apply(doc.Root()); err != nil {
			return nil, fmt.Errorf("fill %s: %w", record.FileIdentifier, err)
		}
	}
	return doc, nil
}

func (t *Template) context() util.LogContext {
	if t.Context == nil {
		return &util.BasicLogContext{}
	}
	return t.Context
}
