package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ontoloom/ontoloom/internal/queue"
	"github.com/ontoloom/ontoloom/internal/setup"
	"github.com/ontoloom/ontoloom/internal/util"
	"github.com/ontoloom/ontoloom/pkg/logger"
	"github.com/ontoloom/ontoloom/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	file := flag.String("file", "", "document path or object key")
	fileType := flag.String("type", "pdf", "document type: pdf or text")
	documentID := flag.String("id", "", "document id, generated when empty")
	skipPages := flag.Int("skip-pages", 2, "leading PDF pages to skip")
	enqueue := flag.Bool("enqueue", false, "publish to the ingest queue instead of running locally")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  debug,
		Prefix: "pipeline",
	})
	logger.Init(consoleLogger)

	if *file == "" {
		logger.Fatal("No document given, use -file")
	}

	msg, err := json.Marshal(queue.IngestMessage{
		DocumentID: *documentID,
		FileKey:    *file,
		FileType:   *fileType,
		SkipPages:  *skipPages,
	})
	if err != nil {
		logger.Fatal("Could not encode ingest message", "err", err)
	}

	if *enqueue {
		conn := queue.Init()
		defer conn.Close()

		ch, err := conn.Channel()
		if err != nil {
			logger.Fatal("Failed to open channel", "err", err)
		}
		defer ch.Close()

		if err := queue.SetupQueues(ch, []string{queue.IngestQueue}); err != nil {
			logger.Fatal("Failed to set up queues", "err", err)
		}
		err = util.RetryErr(3, func() error {
			return queue.PublishFIFO(ch, queue.IngestQueue, msg)
		})
		if err != nil {
			logger.Fatal("Failed to publish ingest message", "err", err)
		}

		logger.Info("Ingest message published", "file", *file)
		return
	}

	processor := setup.NewProcessor(ctx)
	if err := processor.ProcessIngest(ctx, string(msg)); err != nil {
		logger.Fatal("Pipeline run failed", "file", *file, "err", err)
	}
}
