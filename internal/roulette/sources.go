package roulette

import "strings"

// SensitivityMarker prefixes attachment names from sensitive sources.
// Discord renders such attachments blurred.
const SensitivityMarker = "SPOILER_"

type Source struct {
	Name      string `yaml:"name"`
	Sensitive bool   `yaml:"sensitive,omitempty"`
}

// SourceConfig is the ordered set of feed sources the command picks from.
// It is read-only after startup.
type SourceConfig []Source

func (c SourceConfig) Names() []string {
	names := make([]string, len(c))
	for i, source := range c {
		names[i] = source.Name
	}

	return names
}

func (c SourceConfig) IsSensitive(name string) bool {
	for _, source := range c {
		if strings.EqualFold(source.Name, name) {
			return source.Sensitive
		}
	}

	return false
}

// Tag prepends SensitivityMarker to the filename when the source is sensitive.
func (c SourceConfig) Tag(filename, source string) string {
	if c.IsSensitive(source) {
		return SensitivityMarker + filename
	}

	return filename
}
