package config

// Overrides holds CLI flag values that take priority over the config file and
// environment. Empty strings and nil pointers leave the loaded value alone.
type Overrides struct {
	Engine          string
	Model           string
	Language        string
	ContinueOnError *bool
	Progress        *bool
}

// ApplyOverrides applies non-empty overrides and re-runs normalization and
// validation so flag values obey the same rules as file values.
func (c *Config) ApplyOverrides(o Overrides) error {
	if o.Engine != "" {
		c.Engine.Name = o.Engine
	}
	if o.Model != "" {
		c.Engine.Model = o.Model
	}
	if o.Language != "" {
		c.Engine.Language = o.Language
	}
	if o.ContinueOnError != nil {
		c.Output.ContinueOnError = *o.ContinueOnError
	}
	if o.Progress != nil {
		c.Output.Progress = *o.Progress
	}
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}
