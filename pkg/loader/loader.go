package loader

import (
	"context"
)

type DocumentType string

const (
	DocumentTypePDF  DocumentType = "pdf"
	DocumentTypeText DocumentType = "text"
)

// Document represents a narrative source file that can be processed into
// text for entity extraction. It contains metadata such as the file path
// and the number of leading pages to skip.
//
// The actual file content is retrieved via the associated DocumentLoader.
type Document struct {
	ID           string
	FilePath     string
	DocumentType DocumentType
	SkipPages    int
	Loader       DocumentLoader
}

// NewDocumentParams defines the input parameters for creating a new Document
// instance. It is used by the constructor functions to initialize Document
// values with consistent metadata and loader configuration.
type NewDocumentParams struct {
	ID        string
	FilePath  string
	SkipPages int
	Loader    DocumentLoader
}

// NewPDFDocument creates a new Document of type DocumentTypePDF using the
// provided parameters. SkipPages drops leading cover and index pages from
// the extracted text.
func NewPDFDocument(
	params NewDocumentParams,
) Document {
	return Document{
		ID:           params.ID,
		FilePath:     params.FilePath,
		DocumentType: DocumentTypePDF,
		SkipPages:    params.SkipPages,
		Loader:       params.Loader,
	}
}

// NewTextDocument creates a new Document of type DocumentTypeText using the
// provided parameters. This is used for plain text files whose content is
// consumed as-is.
func NewTextDocument(
	params NewDocumentParams,
) Document {
	return Document{
		ID:           params.ID,
		FilePath:     params.FilePath,
		DocumentType: DocumentTypeText,
		Loader:       params.Loader,
	}
}

// GetText retrieves the raw text content of the document using its Loader.
//
// Example:
//
//	text, err := doc.GetText(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(string(text))
func (d *Document) GetText(ctx context.Context) ([]byte, error) {
	return d.Loader.GetFileText(ctx, *d)
}

// DocumentLoader defines the interface for loading the contents of a Document.
// Implementations may load files from disk, cloud storage, or other sources.
type DocumentLoader interface {
	GetFileText(ctx context.Context, doc Document) ([]byte, error)
}

// CacheKey returns the cache identity of a document. Two documents with the
// same ID and path share the same cached content.
func CacheKey(doc Document) string {
	return doc.ID + ":" + doc.FilePath
}
