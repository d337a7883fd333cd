package media

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var sizeRegexp = regexp.MustCompile(`^(\d+)([kmg])?$`)

const (
	B  Size = 1
	KB Size = 1 << 10
	MB Size = 1 << 20
	GB Size = 1 << 30
)

// MaxImageSize is the default upload limit for downloaded images.
const MaxImageSize Size = 10 * MB

// Size is a byte count which may be written as "512k" or "10m" in configuration.
type Size int64

func ParseSize(value string) (Size, error) {
	match := sizeRegexp.FindStringSubmatch(strings.ToLower(strings.TrimSpace(value)))
	if len(match) < 2 {
		return 0, errors.Errorf(`expected expression matching %s, got "%s"`, sizeRegexp, value)
	}

	amount, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse amount %s", match[1])
	}

	unit := B
	switch match[2] {
	case "k":
		unit = KB
	case "m":
		unit = MB
	case "g":
		unit = GB
	}

	return unit * Size(amount), nil
}

func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	value, err := ParseSize(node.Value)
	if err != nil {
		return err
	}

	*s = value
	return nil
}

func (s Size) MarshalYAML() (any, error) {
	return s.String(), nil
}

func (s Size) String() string {
	switch {
	case s >= GB && s%GB == 0:
		return fmt.Sprintf("%dg", int64(s/GB))
	case s >= MB && s%MB == 0:
		return fmt.Sprintf("%dm", int64(s/MB))
	case s >= KB && s%KB == 0:
		return fmt.Sprintf("%dk", int64(s/KB))
	default:
		return strconv.FormatInt(int64(s), 10)
	}
}
