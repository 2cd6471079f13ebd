package s3

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/singleflight"

	"github.com/ontoloom/ontoloom/pkg/loader"
)

// S3DocumentLoader is a DocumentLoader implementation that loads document
// contents from an Amazon S3 bucket. It uses the AWS SDK v2 for Go.
//
// This loader is useful when source documents are stored in S3 instead of
// the local filesystem.
type S3DocumentLoader struct {
	bucket string
	client *s3.Client

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewS3DocumentLoaderWithClient creates a new S3DocumentLoader using an
// existing s3.Client. This is useful if you want to reuse a preconfigured
// AWS client (e.g., with custom middleware or credentials).
func NewS3DocumentLoaderWithClient(bucket string, client *s3.Client) *S3DocumentLoader {
	return &S3DocumentLoader{
		bucket: bucket,
		client: client,
		cache:  make(map[string][]byte),
	}
}

// GetFileText retrieves the contents of the given Document from the
// configured S3 bucket. It implements the DocumentLoader interface.
func (l *S3DocumentLoader) GetFileText(ctx context.Context, doc loader.Document) ([]byte, error) {
	cacheKey := loader.CacheKey(doc)

	l.cacheMu.RLock()
	if cached, ok := l.cache[cacheKey]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(cacheKey, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[cacheKey]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		key := doc.FilePath
		bucket := l.bucket

		out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, err
		}
		defer out.Body.Close()

		buf := new(bytes.Buffer)
		if _, err := io.Copy(buf, out.Body); err != nil {
			return nil, err
		}

		byts := buf.Bytes()

		l.cacheMu.Lock()
		l.cache[cacheKey] = byts
		l.cacheMu.Unlock()

		return byts, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
