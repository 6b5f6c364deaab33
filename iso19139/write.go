package iso19139

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
)

const xmlDeclaration = `version="1.0" encoding="UTF-8"`

// prepare indents doc and makes sure it starts with a UTF-8 XML declaration
func prepare(doc *etree.Document) {
	for _, token := range doc.Child {
		if inst, ok := token.(*etree.ProcInst); ok && inst.Target == "xml" {
			inst.Inst = xmlDeclaration
			doc.Indent(2)
			return
		}
	}
	doc.InsertChildAt(0, etree.NewProcInst("xml", xmlDeclaration))
	doc.Indent(2)
}

// Marshal renders doc as indented UTF-8 XML with a declaration
func Marshal(doc *etree.Document) ([]byte, error) {
	prepare(doc)
	return doc.WriteToBytes()
}

// WriteFile writes doc to path, creating the parent directory if needed
func WriteFile(doc *etree.Document, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	prepare(doc)
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
