package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mohammadpnp/unique-id/internal/config"
	"github.com/mohammadpnp/unique-id/internal/logging"
)

type commandContext struct {
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     config.Config
	configErr  error
}

func newCommandContext(logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.LogLevel = *c.logLevelFlag
		}
		if c.logFormatFlag != nil && strings.TrimSpace(*c.logFormatFlag) != "" {
			cfg.LogFormat = *c.logFormatFlag
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger writes to the command's stderr so stdout stays clean for results.
func (c *commandContext) logger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
}
