package setup

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ontoloom/ontoloom/internal/queue"
	"github.com/ontoloom/ontoloom/internal/storage"
	"github.com/ontoloom/ontoloom/internal/util"
	"github.com/ontoloom/ontoloom/pkg/annotate"
	"github.com/ontoloom/ontoloom/pkg/annotate/remote"
	"github.com/ontoloom/ontoloom/pkg/common"
	"github.com/ontoloom/ontoloom/pkg/keyphrase"
	"github.com/ontoloom/ontoloom/pkg/loader"
	loaderio "github.com/ontoloom/ontoloom/pkg/loader/io"
	"github.com/ontoloom/ontoloom/pkg/loader/pdf"
	s3loader "github.com/ontoloom/ontoloom/pkg/loader/s3"
	"github.com/ontoloom/ontoloom/pkg/logger"
	"github.com/ontoloom/ontoloom/pkg/relate"
	"github.com/ontoloom/ontoloom/pkg/resolve"
	"github.com/ontoloom/ontoloom/pkg/textclean"
)

// NewProcessor builds an ingest processor from the environment. Both the
// worker and the batch driver run documents through the same construction
// so a document behaves identically no matter which entry point it came
// in on. Invalid configuration is fatal.
func NewProcessor(ctx context.Context) *queue.Processor {
	var files loader.DocumentLoader
	var s3Client *awss3.Client

	switch util.GetEnvString("STORAGE_ADAPTER", "fs") {
	case "s3":
		s3Client = storage.NewS3Client(ctx)
		if s3Client == nil {
			logger.Fatal("Could not create S3 client")
		}
		bucket := util.GetEnvString("AWS_BUCKET", "ontoloom")
		files = s3loader.NewS3DocumentLoaderWithClient(bucket, s3Client)
	default:
		files = loaderio.NewIODocumentLoader()
	}

	return &queue.Processor{
		Files:      files,
		PDF:        pdf.NewPDFDocumentLoader(files),
		Annotator:  annotate.NewAdapter(annotate.NewAdapterParams{Backends: backends()}),
		Keyphrase:  keyphraseExtractor(),
		Normalizer: normalizer(util.GetEnv("ALIAS_FILE")),
		S3Client:   s3Client,

		ChunkSize:        util.GetEnvInt("CHUNK_SIZE", 4000),
		Resolve:          resolveConfig(),
		RelateThreshold:  util.GetEnvInt("RELATE_THRESHOLD", relate.DefaultThreshold),
		KeyphraseMinNorm: float64(util.GetEnvInt("KEYPHRASE_MIN_NORM_PCT", 70)) / 100,
		OutputDir:        util.GetEnvString("ARTIFACT_DIR", os.TempDir()),

		Neo4jURI:      util.GetEnv("NEO4J_URI"),
		Neo4jUser:     util.GetEnv("NEO4J_USER"),
		Neo4jPassword: util.GetEnv("NEO4J_PASSWORD"),
	}
}

// backends configures the primary NER backend plus an optional dates-only
// backend when NER_DATES_URL is set.
func backends() []annotate.Backend {
	list := []annotate.Backend{{
		Name: "ner",
		Annotator: remote.NewClient(remote.NewClientParams{
			Name:      "ner",
			URL:       util.GetEnv("NER_URL"),
			ApiKey:    util.GetEnv("NER_KEY"),
			Encoder:   util.GetEnvString("NER_ENCODER", "cl100k_base"),
			MaxTokens: util.GetEnvInt("NER_MAX_TOKENS", 512),
		}),
		Labels:    annotate.DefaultLabels(),
		AllowList: splitList(util.GetEnv("NER_ALLOW_TERMS")),
	}}

	if datesURL := util.GetEnv("NER_DATES_URL"); datesURL != "" {
		list = append(list, annotate.Backend{
			Name: "dates",
			Annotator: remote.NewClient(remote.NewClientParams{
				Name:      "dates",
				URL:       datesURL,
				ApiKey:    util.GetEnv("NER_DATES_KEY"),
				Encoder:   util.GetEnvString("NER_ENCODER", "cl100k_base"),
				MaxTokens: util.GetEnvInt("NER_MAX_TOKENS", 512),
			}),
			Labels:    annotate.DefaultLabels(),
			DatesOnly: true,
		})
	}

	return list
}

func keyphraseExtractor() keyphrase.Extractor {
	keyphraseURL := util.GetEnv("KEYPHRASE_URL")
	if keyphraseURL == "" {
		return nil
	}

	return keyphrase.NewClient(keyphrase.NewClientParams{
		URL:        keyphraseURL,
		ApiKey:     util.GetEnv("KEYPHRASE_KEY"),
		MaxPhrases: util.GetEnvInt("KEYPHRASE_MAX_PHRASES", 30),
		MaxWords:   util.GetEnvInt("KEYPHRASE_MAX_WORDS", 3),
	})
}

func resolveConfig() resolve.Config {
	types, err := minCountTypes(util.GetEnvString("RESOLVE_MIN_COUNT_TYPES", "Person,Place"))
	if err != nil {
		logger.Fatal("Invalid RESOLVE_MIN_COUNT_TYPES entry", "err", err)
	}

	return resolve.Config{
		Threshold:     util.GetEnvInt("RESOLVE_THRESHOLD", 40),
		MinCount:      util.GetEnvInt("RESOLVE_MIN_COUNT", 0),
		MinCountTypes: types,
		BestMatch:     util.GetEnvBool("RESOLVE_BEST_MATCH", false),
	}
}

// minCountTypes parses the comma-separated type list scoping the
// min-count filter. "all" applies the filter to every type.
func minCountTypes(value string) ([]common.EntityType, error) {
	if strings.EqualFold(strings.TrimSpace(value), "all") {
		return nil, nil
	}

	var types []common.EntityType
	for _, name := range splitList(value) {
		entityType, err := common.ParseEntityType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, entityType)
	}
	return types, nil
}

// normalizer loads the optional alias table, a JSON object mapping
// surface forms to canonical names.
func normalizer(path string) *textclean.Normalizer {
	if path == "" {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("Could not read alias file", "path", path, "err", err)
	}

	var aliases map[string]string
	if err := json.Unmarshal(content, &aliases); err != nil {
		logger.Fatal("Could not parse alias file", "path", path, "err", err)
	}

	return textclean.NewNormalizer(aliases)
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
