package cli

import (
	"bytes"
	_ "embed"
)

// defaultConfigurationDocument carries the card.io release defaults merged beneath user configuration files.
//
//go:embed default_config.yaml
var defaultConfigurationDocument []byte

// EmbeddedDefaultConfiguration returns a private copy of the embedded defaults and their format.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return bytes.Clone(defaultConfigurationDocument), configurationTypeConstant
}
