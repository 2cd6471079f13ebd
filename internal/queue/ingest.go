package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/ontoloom/ontoloom/internal/storage"
	"github.com/ontoloom/ontoloom/internal/util"
	"github.com/ontoloom/ontoloom/pkg/annotate"
	"github.com/ontoloom/ontoloom/pkg/keyphrase"
	"github.com/ontoloom/ontoloom/pkg/loader"
	"github.com/ontoloom/ontoloom/pkg/logger"
	"github.com/ontoloom/ontoloom/pkg/pipeline"
	"github.com/ontoloom/ontoloom/pkg/resolve"
	"github.com/ontoloom/ontoloom/pkg/textclean"
)

// IngestMessage is the payload published to the ingest queue. FileKey is
// resolved by the processor's file loader, so it is a filesystem path or
// an S3 object key depending on deployment. An empty DocumentID gets a
// generated one.
type IngestMessage struct {
	DocumentID string `json:"document_id"`
	FileKey    string `json:"file_key"`
	FileType   string `json:"file_type"`
	SkipPages  int    `json:"skip_pages"`
}

// Processor runs the extraction pipeline for ingest messages. Files
// resolves raw document bytes and PDF wraps it with text extraction.
// S3Client, when set, receives the run artifacts after a successful run.
type Processor struct {
	Files      loader.DocumentLoader
	PDF        loader.DocumentLoader
	Annotator  *annotate.Adapter
	Keyphrase  keyphrase.Extractor
	Normalizer *textclean.Normalizer
	S3Client   *awss3.Client

	ChunkSize        int
	Resolve          resolve.Config
	RelateThreshold  int
	KeyphraseMinNorm float64
	OutputDir        string

	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
}

// ProcessIngest handles one ingest message end to end. Errors bubble up
// to the consumer loop, which decides between retry and dead-letter.
func (p *Processor) ProcessIngest(ctx context.Context, msg string) error {
	var data IngestMessage
	if err := json.Unmarshal([]byte(msg), &data); err != nil {
		return fmt.Errorf("decode ingest message: %w", err)
	}
	if data.FileKey == "" {
		return fmt.Errorf("ingest message has no file key")
	}
	if data.DocumentID == "" {
		data.DocumentID = gonanoid.Must()
	}

	doc, err := p.buildDocument(data)
	if err != nil {
		return err
	}

	textPath := filepath.Join(p.OutputDir, data.DocumentID+".txt")
	ontologyPath := filepath.Join(p.OutputDir, data.DocumentID+".ttl")
	keyphrasePath := ""
	if p.Keyphrase != nil {
		keyphrasePath = filepath.Join(p.OutputDir, data.DocumentID+"_keyphrases.txt")
	}

	result, err := pipeline.Run(ctx, pipeline.Params{
		Document:         doc,
		Annotator:        p.Annotator,
		Keyphrase:        p.Keyphrase,
		Normalizer:       p.Normalizer,
		ChunkSize:        p.ChunkSize,
		Resolve:          p.Resolve,
		RelateThreshold:  p.RelateThreshold,
		KeyphraseMinNorm: p.KeyphraseMinNorm,
		TextPath:         textPath,
		KeyphrasePath:    keyphrasePath,
		OntologyPath:     ontologyPath,
		Neo4jURI:         p.Neo4jURI,
		Neo4jUser:        p.Neo4jUser,
		Neo4jPassword:    p.Neo4jPassword,
	})
	if err != nil {
		return err
	}

	logger.Info(
		"[Queue] Ingest finished",
		"document", data.DocumentID,
		"entities", len(result.Entities),
		"edges", len(result.Edges),
		"nodes", result.NodeCount,
	)

	if p.S3Client != nil {
		artifacts := []string{textPath, ontologyPath}
		if keyphrasePath != "" {
			artifacts = append(artifacts, keyphrasePath)
		}
		for _, artifact := range artifacts {
			if err := p.uploadArtifact(ctx, data.DocumentID, artifact); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *Processor) buildDocument(data IngestMessage) (loader.Document, error) {
	params := loader.NewDocumentParams{
		ID:        data.DocumentID,
		FilePath:  data.FileKey,
		SkipPages: data.SkipPages,
	}

	switch data.FileType {
	case "pdf":
		params.Loader = p.PDF
		return loader.NewPDFDocument(params), nil
	case "text", "txt", "":
		params.Loader = p.Files
		return loader.NewTextDocument(params), nil
	default:
		return loader.Document{}, fmt.Errorf("unsupported file type %q", data.FileType)
	}
}

func (p *Processor) uploadArtifact(ctx context.Context, documentID string, artifactPath string) error {
	content, err := os.ReadFile(artifactPath)
	if err != nil {
		return fmt.Errorf("read artifact %s: %w", artifactPath, err)
	}

	key := path.Join("artifacts", documentID, filepath.Base(artifactPath))
	return util.RetryErrWithContext(ctx, 3, func(ctx context.Context) error {
		_, err := storage.PutFile(ctx, p.S3Client, key, bytes.NewReader(content))
		return err
	})
}
