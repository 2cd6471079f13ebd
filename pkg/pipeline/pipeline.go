package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator"

	"github.com/ontoloom/ontoloom/pkg/annotate"
	"github.com/ontoloom/ontoloom/pkg/common"
	"github.com/ontoloom/ontoloom/pkg/graphdb"
	"github.com/ontoloom/ontoloom/pkg/keyphrase"
	"github.com/ontoloom/ontoloom/pkg/loader"
	"github.com/ontoloom/ontoloom/pkg/logger"
	"github.com/ontoloom/ontoloom/pkg/ontology"
	"github.com/ontoloom/ontoloom/pkg/relate"
	"github.com/ontoloom/ontoloom/pkg/resolve"
	"github.com/ontoloom/ontoloom/pkg/segment"
	"github.com/ontoloom/ontoloom/pkg/textclean"
)

// Params configures one extraction run.
//
// Keyphrase is an optional pre-pass: when set, entity extraction runs
// over the deduplicated keyphrase text instead of the full document.
// Normalizer optionally rewrites entity aliases in the cleaned text.
// Neo4jURI left empty skips the graph-database load.
type Params struct {
	Document loader.Document

	Annotator  *annotate.Adapter `validate:"required"`
	Keyphrase  keyphrase.Extractor
	Normalizer *textclean.Normalizer

	ChunkSize        int `validate:"required,gt=0"`
	Resolve          resolve.Config
	RelateThreshold  int
	KeyphraseMinNorm float64

	TextPath      string `validate:"required"`
	KeyphrasePath string
	OntologyPath  string `validate:"required"`

	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
}

// Result collects the artifacts of one extraction run.
type Result struct {
	Keyphrases []string
	Entities   []common.CanonicalEntity
	Edges      []common.Edge
	Ontology   string
	NodeCount  int
}

var validate = validator.New()

// Run executes the full extraction pipeline for one document: extract and
// clean the text, persist it, run the optional keyphrase pre-pass,
// segment, annotate each chunk, resolve mentions into canonical entities,
// infer co-occurrence edges, generate the ontology, persist it, and load
// it into Neo4j when configured.
//
// Empty intermediate results flow forward as empty collections; only
// failing I/O on required inputs and failing external services abort
// the run.
func Run(ctx context.Context, params Params) (*Result, error) {
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if params.Document.Loader == nil {
		return nil, fmt.Errorf("invalid params: document has no loader")
	}
	if params.Resolve.Threshold < 0 || params.Resolve.Threshold > 100 {
		return nil, fmt.Errorf("invalid params: resolve threshold %d out of range", params.Resolve.Threshold)
	}

	text, err := extractText(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(params.TextPath, []byte(text), 0o644); err != nil {
		return nil, fmt.Errorf("save text artifact: %w", err)
	}
	logger.Info("[Pipeline] Extracted document text", "document", params.Document.FilePath, "chars", len(text))

	result := &Result{}

	entityText := text
	if params.Keyphrase != nil {
		phrases, err := keyphrasePass(ctx, params, text)
		if err != nil {
			return nil, err
		}
		result.Keyphrases = phrases
		logger.Info("[Pipeline] Keyphrase pre-pass finished", "phrases", len(phrases))

		if len(phrases) > 0 {
			entityText = strings.Join(phrases, "\n")
		}
	}

	chunks, err := segment.Split(entityText, params.ChunkSize)
	if err != nil {
		return nil, err
	}
	logger.Info("[Pipeline] Segmented text", "chunks", len(chunks))

	var mentions []common.Mention
	for _, chunk := range chunks {
		chunkMentions, err := params.Annotator.Annotate(ctx, chunk.Text)
		if err != nil {
			return nil, fmt.Errorf("annotate chunk %d: %w", chunk.Index, err)
		}
		mentions = append(mentions, chunkMentions...)
	}
	logger.Info("[Pipeline] Annotation finished", "mentions", len(mentions))

	result.Entities = resolve.Resolve(mentions, params.Resolve)
	logger.Info("[Pipeline] Resolved canonical entities", "entities", len(result.Entities))

	result.Edges = relate.Extract(paragraphText(chunks), result.Entities, params.RelateThreshold)
	logger.Info("[Pipeline] Extracted co-occurrence edges", "edges", len(result.Edges))

	result.Ontology, err = ontology.Generate(result.Entities, result.Edges)
	if err != nil {
		return nil, fmt.Errorf("generate ontology: %w", err)
	}
	if err := os.WriteFile(params.OntologyPath, []byte(result.Ontology), 0o644); err != nil {
		return nil, fmt.Errorf("save ontology artifact: %w", err)
	}
	logger.Info("[Pipeline] Ontology saved", "path", params.OntologyPath)

	if params.Neo4jURI != "" {
		nodeCount, err := graphdb.InsertOntology(ctx, params.Neo4jURI, params.Neo4jUser, params.Neo4jPassword, result.Ontology)
		if err != nil {
			return nil, fmt.Errorf("insert ontology: %w", err)
		}
		result.NodeCount = nodeCount
	}

	return result, nil
}

func extractText(ctx context.Context, params Params) (string, error) {
	raw, err := params.Document.GetText(ctx)
	if err != nil {
		return "", fmt.Errorf("extract document text: %w", err)
	}

	text := textclean.Clean(string(raw))
	if params.Normalizer != nil {
		text = params.Normalizer.Apply(text)
	}
	return text, nil
}

// keyphrasePass extracts scored phrases per chunk, filters them, dedupes
// preserving first occurrence and persists the newline-joined artifact.
// An empty result is valid.
func keyphrasePass(ctx context.Context, params Params, text string) ([]string, error) {
	chunks, err := segment.Split(text, params.ChunkSize)
	if err != nil {
		return nil, err
	}

	var phrases []string
	for _, chunk := range chunks {
		scored, err := params.Keyphrase.Extract(ctx, chunk.Text)
		if err != nil {
			return nil, fmt.Errorf("extract keyphrases from chunk %d: %w", chunk.Index, err)
		}
		phrases = append(phrases, keyphrase.Filter(scored, params.KeyphraseMinNorm)...)
	}

	unique := keyphrase.DedupeOrdered(phrases)

	if params.KeyphrasePath != "" {
		if err := os.WriteFile(params.KeyphrasePath, []byte(strings.Join(unique, "\n")), 0o644); err != nil {
			return nil, fmt.Errorf("save keyphrase artifact: %w", err)
		}
	}

	return unique, nil
}

// paragraphText joins chunks with blank lines so each chunk forms one
// paragraph for co-occurrence extraction. Cleaned text carries no blank
// lines of its own.
func paragraphText(chunks []segment.Chunk) string {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	return strings.Join(texts, "\n\n")
}
