package logx

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	red    = 31
	green  = 32
	yellow = 33
	blue   = 36

	defaultTimeFormat = "2006-01-02 15:04:05.000"
	templateColored   = "\x1b[%dm%s\x1b[0m"
)

var levels = map[logrus.Level]string{
	logrus.PanicLevel: "PANIC",
	logrus.FatalLevel: "FATAL",
	logrus.ErrorLevel: "ERROR",
	logrus.WarnLevel:  "WARN ",
	logrus.InfoLevel:  "INFO ",
	logrus.DebugLevel: "DEBUG",
	logrus.TraceLevel: "TRACE",
}

type format struct {
	colored bool
}

func (f *format) Format(entry *logrus.Entry) ([]byte, error) {
	sb := new(strings.Builder)
	sb.WriteString(entry.Time.Format(defaultTimeFormat))
	sb.WriteRune(' ')
	sb.WriteString(f.level(entry.Level))
	if name, ok := entry.Data[NameField]; ok {
		sb.WriteString(" [")
		sb.WriteString(fmt.Sprint(name))
		sb.WriteRune(']')
	}

	sb.WriteRune(' ')
	sb.WriteString(strings.TrimRight(entry.Message, "\n"))

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != NameField {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)
	for _, key := range keys {
		sb.WriteRune(' ')
		sb.WriteString(key)
		sb.WriteRune('=')
		value := entry.Data[key]
		if err, ok := value.(error); ok {
			value = err.Error()
		}

		sb.WriteString(fmt.Sprintf("%q", fmt.Sprint(value)))
	}

	sb.WriteRune('\n')
	return []byte(sb.String()), nil
}

func (f *format) level(l logrus.Level) string {
	text := levels[l]
	if !f.colored {
		return text
	}

	var color int
	switch l {
	case logrus.InfoLevel:
		color = green
	case logrus.WarnLevel:
		color = yellow
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		color = red
	default:
		color = blue
	}

	return fmt.Sprintf(templateColored, color, text)
}
