package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ApplyFlags overrides environment settings with command-line flags.
// Flags left unset keep the values loaded from the environment.
func ApplyFlags(cfg *Config, name string, args []string) error {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	port := fs.String("port", cfg.Port, "HTTP listen port")
	nodeID := fs.Int64("node-id", cfg.NodeID, "snowflake node id, unique per process")
	consumer := fs.String("consumer", cfg.Notification.Consumer, "redis consumer name for the notification worker")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *nodeID < 0 || *nodeID > 1023 {
		return fmt.Errorf("--node-id must be between 0 and 1023, got %d", *nodeID)
	}

	cfg.Port = *port
	cfg.NodeID = *nodeID
	cfg.Notification.Consumer = *consumer
	return nil
}
