package coordinator

import (
	"strings"

	"suited/pkg/types"
)

// RegisterSuite validates and stores a suite configuration. Validation is
// all-or-nothing: any failure leaves no partial state. A configuration may
// replace a prior one of the same name only while that suite is not
// resident; overwriting an active suite would let stale handles outlive
// their definition.
func (c *Coordinator) RegisterSuite(cfg types.SuiteConfiguration) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if strings.TrimSpace(cfg.Name) == "" {
		return errValidation("suite name must be non-empty")
	}
	if strings.TrimSpace(cfg.BaseModel) == "" {
		return errValidation("suite %s: base_model is required", cfg.Name)
	}
	c.mu.RLock()
	_, active := c.cache.get(cfg.Name)
	c.mu.RUnlock()
	if active {
		return errAlreadyActive(cfg.Name)
	}
	for _, ref := range cfg.ModelPaths() {
		if err := c.validator.Validate(ref.Path); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.configs[cfg.Name] = cfg
	c.mu.Unlock()

	c.log.Info().Str("suite", cfg.Name).Int("models", len(cfg.ModelPaths())).Msg("suite registered")
	c.publish("register", cfg.Name, map[string]any{"models": len(cfg.ModelPaths())})
	return nil
}

// DeregisterSuite removes an inactive configuration. Removing a resident
// suite's configuration is a conflict; unload it first.
func (c *Coordinator) DeregisterSuite(name string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.configs[name]; !ok {
		return errNotFound(name)
	}
	if _, active := c.cache.get(name); active {
		return errAlreadyActive(name)
	}
	delete(c.configs, name)
	return nil
}
