package ports

import "virsat-catia/internal/types"

type DocumentPort interface {
	Read(path string) (types.Document, error)
	Write(path string, doc types.Document) error
	Decode(data []byte) (types.Document, error)
	Encode(doc types.Document) ([]byte, error)
}

// DocumentWatcherPort reports changes of a document file until Stop is
// called.
type DocumentWatcherPort interface {
	Start() error
	Events() <-chan string
	Stop()
}
