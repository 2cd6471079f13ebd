package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ontoloom/ontoloom/pkg/annotate"
	"github.com/ontoloom/ontoloom/pkg/common"
	"github.com/ontoloom/ontoloom/pkg/keyphrase"
	"github.com/ontoloom/ontoloom/pkg/loader"
	loaderio "github.com/ontoloom/ontoloom/pkg/loader/io"
	"github.com/ontoloom/ontoloom/pkg/resolve"
)

type stubAnnotator struct {
	raw []annotate.Raw
}

func (s *stubAnnotator) Annotate(ctx context.Context, text string) ([]annotate.Raw, error) {
	var hits []annotate.Raw
	for _, r := range s.raw {
		if strings.Contains(text, r.Word) {
			hits = append(hits, r)
		}
	}
	return hits, nil
}

type stubExtractor struct {
	phrases []keyphrase.Keyphrase
}

func (s *stubExtractor) Extract(ctx context.Context, text string) ([]keyphrase.Keyphrase, error) {
	return s.phrases, nil
}

func writeDocument(t *testing.T, dir string, content string) loader.Document {
	t.Helper()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write input document: %v", err)
	}
	return loader.NewTextDocument(loader.NewDocumentParams{
		ID:       "test",
		FilePath: path,
		Loader:   loaderio.NewIODocumentLoader(),
	})
}

func testAdapter() *annotate.Adapter {
	return annotate.NewAdapter(annotate.NewAdapterParams{
		Backends: []annotate.Backend{{
			Name: "stub",
			Annotator: &stubAnnotator{raw: []annotate.Raw{
				{Word: "Jon", Group: "PER", Score: 0.99},
				{Word: "Bill", Group: "PER", Score: 0.99},
				{Word: "Derry", Group: "LOC", Score: 0.99},
			}},
			Labels: annotate.DefaultLabels(),
		}},
	})
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	doc := writeDocument(t, dir, "Jon met Bill in Derry. Jon and Bill stayed in Derry.")

	result, err := Run(context.Background(), Params{
		Document:     doc,
		Annotator:    testAdapter(),
		ChunkSize:    4000,
		Resolve:      resolve.Config{Threshold: 60},
		TextPath:     filepath.Join(dir, "text.txt"),
		OntologyPath: filepath.Join(dir, "ontology.ttl"),
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	wantEntities := []common.CanonicalEntity{
		{Name: "Jon", Type: common.EntityTypePerson, Count: 1},
		{Name: "Bill", Type: common.EntityTypePerson, Count: 1},
		{Name: "Derry", Type: common.EntityTypePlace, Count: 1},
	}
	if len(result.Entities) != len(wantEntities) {
		t.Fatalf("entities = %+v, want %+v", result.Entities, wantEntities)
	}
	for i, want := range wantEntities {
		if result.Entities[i] != want {
			t.Errorf("entity %d = %+v, want %+v", i, result.Entities[i], want)
		}
	}

	if len(result.Edges) != 3 {
		t.Errorf("expected 3 edges for fully co-occurring entities, got %+v", result.Edges)
	}

	if !strings.HasPrefix(result.Ontology, "@prefix ex:") {
		t.Errorf("ontology missing prefix header:\n%s", result.Ontology)
	}

	savedText, err := os.ReadFile(filepath.Join(dir, "text.txt"))
	if err != nil {
		t.Fatalf("read text artifact: %v", err)
	}
	if len(savedText) == 0 {
		t.Error("text artifact is empty")
	}

	savedOntology, err := os.ReadFile(filepath.Join(dir, "ontology.ttl"))
	if err != nil {
		t.Fatalf("read ontology artifact: %v", err)
	}
	if string(savedOntology) != result.Ontology {
		t.Error("ontology artifact does not match result")
	}
}

func TestRun_KeyphrasePrePass(t *testing.T) {
	dir := t.TempDir()
	doc := writeDocument(t, dir, "Jon met Bill in Derry under gray autumn skies.")

	keyphrasePath := filepath.Join(dir, "keyphrases.txt")
	result, err := Run(context.Background(), Params{
		Document:  doc,
		Annotator: testAdapter(),
		Keyphrase: &stubExtractor{phrases: []keyphrase.Keyphrase{
			{Text: "Jon met Bill", Score: 0.01},
			{Text: "gray autumn skies", Score: 0.9},
		}},
		ChunkSize:     4000,
		Resolve:       resolve.Config{Threshold: 60},
		TextPath:      filepath.Join(dir, "text.txt"),
		KeyphrasePath: keyphrasePath,
		OntologyPath:  filepath.Join(dir, "ontology.ttl"),
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(result.Keyphrases) != 1 || result.Keyphrases[0] != "Jon met Bill" {
		t.Errorf("keyphrases = %v, want [Jon met Bill]", result.Keyphrases)
	}

	saved, err := os.ReadFile(keyphrasePath)
	if err != nil {
		t.Fatalf("read keyphrase artifact: %v", err)
	}
	if string(saved) != "Jon met Bill" {
		t.Errorf("keyphrase artifact = %q", string(saved))
	}

	// Entity extraction ran over the keyphrase text, so Derry is absent.
	for _, entity := range result.Entities {
		if entity.Name == "Derry" {
			t.Errorf("entity extracted outside keyphrase text: %+v", entity)
		}
	}
}

func TestRun_InvalidParams(t *testing.T) {
	dir := t.TempDir()
	doc := writeDocument(t, dir, "text")

	tests := []struct {
		name   string
		params Params
	}{
		{
			name: "missing annotator",
			params: Params{
				Document:     doc,
				ChunkSize:    100,
				TextPath:     filepath.Join(dir, "t.txt"),
				OntologyPath: filepath.Join(dir, "o.ttl"),
			},
		},
		{
			name: "zero chunk size",
			params: Params{
				Document:     doc,
				Annotator:    testAdapter(),
				TextPath:     filepath.Join(dir, "t.txt"),
				OntologyPath: filepath.Join(dir, "o.ttl"),
			},
		},
		{
			name: "missing document loader",
			params: Params{
				Annotator:    testAdapter(),
				ChunkSize:    100,
				TextPath:     filepath.Join(dir, "t.txt"),
				OntologyPath: filepath.Join(dir, "o.ttl"),
			},
		},
		{
			name: "threshold out of range",
			params: Params{
				Document:     doc,
				Annotator:    testAdapter(),
				ChunkSize:    100,
				Resolve:      resolve.Config{Threshold: 150},
				TextPath:     filepath.Join(dir, "t.txt"),
				OntologyPath: filepath.Join(dir, "o.ttl"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(context.Background(), tt.params); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRun_EmptyDocument(t *testing.T) {
	dir := t.TempDir()
	doc := writeDocument(t, dir, "")

	result, err := Run(context.Background(), Params{
		Document:     doc,
		Annotator:    testAdapter(),
		ChunkSize:    4000,
		Resolve:      resolve.Config{Threshold: 60},
		TextPath:     filepath.Join(dir, "text.txt"),
		OntologyPath: filepath.Join(dir, "ontology.ttl"),
	})
	if err != nil {
		t.Fatalf("empty document should not error: %v", err)
	}
	if len(result.Entities) != 0 || len(result.Edges) != 0 {
		t.Errorf("expected empty results, got %+v", result)
	}
	if !strings.HasPrefix(result.Ontology, "@prefix ex:") {
		t.Errorf("ontology missing prefix header for empty run")
	}
}
