package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"logscribe/internal/config"
)

// engineFlags are shared by the run and check commands.
type engineFlags struct {
	engine   string
	model    string
	language string
}

type commandContext struct {
	configFlag *string
	engine     *engineFlags

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string, engine *engineFlags) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		engine:     engine,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		c.configPath = resolved
		c.configExists = exists
		if c.engine != nil {
			err = cfg.ApplyOverrides(config.Overrides{
				Engine:   strings.TrimSpace(c.engine.engine),
				Model:    strings.TrimSpace(c.engine.model),
				Language: strings.TrimSpace(c.engine.language),
			})
			if err != nil {
				c.configErr = err
				return
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
