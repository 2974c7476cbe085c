package brewery

// Config holds the tunable policies of the engine.
type Config struct {
	// KegEmptyEpsilon is the residual volume in liters under which a keg
	// is treated as emptied after bottling from it.
	KegEmptyEpsilon float64 `yaml:"keg_empty_epsilon"`

	// FactoryKeywords classify a dispatch destination as in-house when the
	// destination text contains any of them (case-insensitive).
	FactoryKeywords []string `yaml:"factory_keywords"`
}

// DefaultConfig returns the engine defaults used by the desktop app.
func DefaultConfig() Config {
	return Config{
		KegEmptyEpsilon: 0.1,
		FactoryKeywords: []string{"fábrica", "estoque"},
	}
}

// withDefaults fills zero-valued fields so a partially populated Config
// from YAML still behaves.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.KegEmptyEpsilon <= 0 {
		c.KegEmptyEpsilon = d.KegEmptyEpsilon
	}
	if len(c.FactoryKeywords) == 0 {
		c.FactoryKeywords = d.FactoryKeywords
	}
	return c
}
