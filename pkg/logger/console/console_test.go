package console

import (
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ontoloom/ontoloom/pkg/logger"
)

var _ logger.LoggerInstance = (*ConsoleLogger)(nil)

func TestNewConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		name   string
		params ConsoleLoggerParams
		want   log.Level
	}{
		{name: "default level", params: ConsoleLoggerParams{}, want: log.InfoLevel},
		{name: "debug level", params: ConsoleLoggerParams{Debug: true}, want: log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConsoleLogger(tt.params)
			if got := c.logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewConsoleLogger_Prefix(t *testing.T) {
	c := NewConsoleLogger(ConsoleLoggerParams{Prefix: "worker"})
	if got := c.logger.GetPrefix(); got != "worker" {
		t.Errorf("prefix = %q, want %q", got, "worker")
	}
}
