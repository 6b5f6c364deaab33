package iso19139

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/beevik/etree"
	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"
)

// Validator checks filled documents against an XML schema
type Validator struct {
	schema   *xsd.Schema
	location string
}

// LoadValidator compiles the schema at schemaPath
func LoadValidator(schemaPath string) (*Validator, error) {
	schema, err := xsd.LoadFile(schemaPath)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: schema, location: schemaPath}, nil
}

// LoadValidatorFS compiles the schema at location within fsys
func LoadValidatorFS(fsys fs.FS, location string) (*Validator, error) {
	schema, err := xsd.Load(fsys, location)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: schema, location: location}, nil
}

// Validate returns nil when doc conforms to the schema. Schema violations
// can be listed with Violations.
func (v *Validator) Validate(doc *etree.Document) error {
	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serialize document: %w", err)
	}
	if err = v.schema.Validate(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("document does not conform to %s: %w", v.location, err)
	}
	return nil
}

// Violations lists the schema violations carried by an error from Validate
func Violations(err error) []string {
	validations, ok := xsderrors.AsValidations(err)
	if !ok {
		return nil
	}
	messages := make([]string, len(validations))
	for i := range validations {
		messages[i] = validations[i].Error()
	}
	return messages
}
