package graphdb

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/ontoloom/ontoloom/pkg/logger"
	"github.com/ontoloom/ontoloom/pkg/ontology"
)

type importStep struct {
	name   string
	query  string
	params map[string]any
}

// InsertOntology loads a Turtle document into Neo4j through the n10s
// plugin. Within one scoped session it wipes the graph, initializes and
// configures n10s, imports the document inline, folds the prefixed name
// properties to a plain "name", and removes nodes left without
// relationships. Each step runs in its own write transaction and any
// failure aborts the remaining steps.
//
// The returned count is the number of nodes present after import; zero
// means the import produced nothing.
func InsertOntology(ctx context.Context, uri string, username string, password string, turtle string) (int, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return 0, fmt.Errorf("create driver: %w", err)
	}
	defer driver.Close(ctx)

	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	setConfig := fmt.Sprintf(`
		CALL n10s.graphconfig.set({
			handleVocabUris: 'SHORTEN',
			handleMultival: 'ARRAY',
			keepLangTag: true,
			handleRDFTypes: 'LABELS',
			prefixMappings: { ex: '%s' }
		})`, ontology.NamespaceEX)

	steps := []importStep{
		{
			name:  "clear graph",
			query: "MATCH (n) DETACH DELETE n",
		},
		{
			name:  "init n10s config",
			query: "CALL n10s.graphconfig.init()",
		},
		{
			name:  "set n10s config",
			query: setConfig,
		},
		{
			name:   "import ontology",
			query:  "CALL n10s.rdf.import.inline($turtle, 'Turtle')",
			params: map[string]any{"turtle": turtle},
		},
		{
			name: "normalize ns0 name property",
			query: `
				MATCH (n)
				WHERE n.ns0__name IS NOT NULL
				SET n.name = n.ns0__name
				REMOVE n.ns0__name`,
		},
		{
			name: "normalize ns1 name property",
			query: `
				MATCH (n)
				WHERE n.ns1__name IS NOT NULL
				SET n.name = n.ns1__name
				REMOVE n.ns1__name`,
		},
		{
			name: "remove isolated nodes",
			query: `
				MATCH (n)
				WHERE NOT (n)--()
				DELETE n`,
		},
	}

	for _, step := range steps {
		logger.Info("[GraphDB] Running import step", "step", step.name)
		if err := runWriteStep(ctx, session, step); err != nil {
			return 0, fmt.Errorf("%s: %w", step.name, err)
		}
	}

	nodeCount, err := countNodes(ctx, session)
	if err != nil {
		return 0, fmt.Errorf("validate import: %w", err)
	}

	if nodeCount > 0 {
		logger.Info("[GraphDB] Import finished", "nodes", nodeCount)
	} else {
		logger.Warn("[GraphDB] Import produced no nodes")
	}

	return nodeCount, nil
}

func runWriteStep(ctx context.Context, session neo4j.SessionWithContext, step importStep) error {
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, step.query, step.params)
		if err != nil {
			return nil, err
		}
		_, err = result.Consume(ctx)
		return nil, err
	})
	return err
}

func countNodes(ctx context.Context, session neo4j.SessionWithContext) (int, error) {
	count, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, "MATCH (n) RETURN count(n) AS node_count", nil)
		if err != nil {
			return nil, err
		}
		record, err := result.Single(ctx)
		if err != nil {
			return nil, err
		}

		value, ok := record.Get("node_count")
		if !ok {
			return int64(0), nil
		}
		return value, nil
	})
	if err != nil {
		return 0, err
	}

	nodeCount, ok := count.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected node count type %T", count)
	}
	return int(nodeCount), nil
}
