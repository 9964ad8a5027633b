package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/goccy/go-json"

	"virsat-catia/internal/ports"
	"virsat-catia/internal/types"
)

// DocumentFileAdapter reads and writes CATIA exchange documents.
type DocumentFileAdapter struct {
	Indent string
}

func NewDocumentFileAdapter() DocumentFileAdapter {
	return DocumentFileAdapter{Indent: "  "}
}

func (a DocumentFileAdapter) Read(path string) (types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("document file not found").
			WithCause(err)
	}
	return a.Decode(data)
}

func (a DocumentFileAdapter) Write(path string, doc types.Document) error {
	data, err := a.Encode(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create document directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write document file").
			WithCause(err)
	}
	return nil
}

func (a DocumentFileAdapter) Decode(data []byte) (types.Document, error) {
	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.Document{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse document json").
			WithCause(err)
	}
	if doc.Parts == nil {
		doc.Parts = []*types.Record{}
	}
	return doc, nil
}

func (a DocumentFileAdapter) Encode(doc types.Document) ([]byte, error) {
	if doc.Parts == nil {
		doc.Parts = []*types.Record{}
	}
	var (
		data []byte
		err  error
	)
	if a.Indent != "" {
		data, err = json.MarshalIndent(doc, "", a.Indent)
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode document json").
			WithCause(err)
	}
	return data, nil
}

var _ ports.DocumentPort = DocumentFileAdapter{}
