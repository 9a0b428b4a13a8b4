package config

// LocalConfig holds local filesystem configuration
type LocalConfig struct {
	Limits
	Path string `validate:"required"`
}

func (lc *LocalConfig) Driver() string {
	return "local"
}

func (lc *LocalConfig) Validate() error {
	return validate(lc.Driver(), lc)
}
