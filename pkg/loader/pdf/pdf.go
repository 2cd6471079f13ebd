package pdf

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ontoloom/ontoloom/pkg/loader"
)

// PDFDocumentLoader loads PDF documents and extracts their text content
// via a wrapped byte loader. Extraction results are cached per document.
type PDFDocumentLoader struct {
	loader loader.DocumentLoader

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewPDFDocumentLoader creates a PDF loader that extracts text directly
// from PDF content delivered by the wrapped loader.
func NewPDFDocumentLoader(docLoader loader.DocumentLoader) *PDFDocumentLoader {
	return &PDFDocumentLoader{
		loader: docLoader,
		cache:  make(map[string][]byte),
	}
}

// GetFileText extracts text from a PDF document. The document's SkipPages
// setting drops that many leading pages before extraction starts.
func (l *PDFDocumentLoader) GetFileText(ctx context.Context, doc loader.Document) ([]byte, error) {
	key := loader.CacheKey(doc)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		content, err := l.loader.GetFileText(ctx, doc)
		if err != nil {
			return nil, err
		}

		text, err := parsePDF(content, doc.SkipPages)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = text
		l.cacheMu.Unlock()

		return text, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
