// Package config loads bot settings from an optional YAML file and the environment.
package config

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"traderjoe/internal/3rdparty/openrouter"
	"traderjoe/internal/3rdparty/reddit"
	"traderjoe/internal/httpx"
	"traderjoe/internal/logx"
	"traderjoe/internal/media"
	"traderjoe/internal/roulette"
	"traderjoe/internal/storage"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultRedditUserAgent = "discord:trader-joe-bot:v1.0 (by /u/your_reddit_username)"

var DefaultSources = roulette.SourceConfig{
	{Name: "memes"},
	{Name: "birdswitharms"},
	{Name: "garageporn"},
	{Name: "kittens"},
	{Name: "Tinder"},
}

type Discord struct {
	Token  string `yaml:"token"`
	Prefix string `yaml:"prefix,omitempty"`
}

type Roulette struct {
	Sources      roulette.SourceConfig `yaml:"sources,omitempty"`
	Sort         string                `yaml:"sort,omitempty"`
	TimeFilter   string                `yaml:"timeFilter,omitempty"`
	BatchSize    int                   `yaml:"batchSize,omitempty"`
	Budget       time.Duration         `yaml:"budget,omitempty"`
	FetchTimeout time.Duration         `yaml:"fetchTimeout,omitempty"`
	MaxImageSize media.Size            `yaml:"maxImageSize,omitempty"`
}

type Server struct {
	Port int `yaml:"port,omitempty"`
}

type Config struct {
	Discord    Discord           `yaml:"discord"`
	OpenRouter openrouter.Config `yaml:"openrouter"`
	Reddit     reddit.Config     `yaml:"reddit"`
	Roulette   Roulette          `yaml:"roulette,omitempty"`
	HTTP       httpx.Config      `yaml:"http,omitempty"`
	Server     Server            `yaml:"server,omitempty"`
	Storage    storage.Config    `yaml:"storage,omitempty"`
	Logging    logx.Config       `yaml:"logging,omitempty"`
}

func Default() Config {
	return Config{
		Discord: Discord{Prefix: "!"},
		Reddit:  reddit.Config{UserAgent: DefaultRedditUserAgent, Timeout: 30 * time.Second},
		Roulette: Roulette{
			Sources:      DefaultSources,
			Sort:         roulette.SortTop,
			TimeFilter:   "day",
			BatchSize:    roulette.DefaultBatchSize,
			Budget:       roulette.DefaultBudget,
			FetchTimeout: media.DefaultFetchTimeout,
			MaxImageSize: media.MaxImageSize,
		},
		HTTP:    httpx.Config{MaxIdleConnsPerHost: 10},
		Server:  Server{Port: 10000},
		Storage: storage.Config{Driver: storage.DefaultDriver},
	}
}

type env struct {
	key   string
	apply func(c *Config, value string) error
}

var environ = []env{
	{"DISCORD_TOKEN", func(c *Config, v string) error { c.Discord.Token = v; return nil }},
	{"OPENROUTER_API_KEY", func(c *Config, v string) error { c.OpenRouter.APIKey = v; return nil }},
	{"REDDIT_CLIENT_ID", func(c *Config, v string) error { c.Reddit.ClientID = v; return nil }},
	{"REDDIT_CLIENT_SECRET", func(c *Config, v string) error { c.Reddit.ClientSecret = v; return nil }},
	{"REDDIT_USER_AGENT", func(c *Config, v string) error { c.Reddit.UserAgent = v; return nil }},
	{"PORT", func(c *Config, v string) (err error) { c.Server.Port, err = strconv.Atoi(v); return }},
	{"DB_DRIVER", func(c *Config, v string) error { c.Storage.Driver = v; return nil }},
	{"DB_DSN", func(c *Config, v string) error { c.Storage.DSN = v; return nil }},
	{"LOG_LEVEL", func(c *Config, v string) error { c.Logging.Level = v; return nil }},
}

// Load reads the dotenv file and the YAML file when their paths are not empty,
// then applies environment variables on top.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrapf(err, "load %s", envFile)
		}
	}

	config := Default()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open config")
		}

		defer file.Close()
		if err := Decode(file, &config); err != nil {
			return nil, errors.Wrapf(err, "decode %s", path)
		}
	}

	if err := ApplyEnv(&config, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Decode expands ${VAR} references before parsing the YAML document.
func Decode(r io.Reader, config *Config) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read")
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), config); err != nil {
		return errors.Wrap(err, "unmarshal")
	}

	return nil
}

func ApplyEnv(config *Config, lookup func(string) (string, bool)) error {
	for _, env := range environ {
		value, ok := lookup(env.key)
		if !ok || value == "" {
			continue
		}

		if err := env.apply(config, value); err != nil {
			return errors.Wrapf(err, "parse %s", env.key)
		}
	}

	return nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.Discord.Token == "" {
		missing = append(missing, "DISCORD_TOKEN")
	}

	if c.OpenRouter.APIKey == "" {
		missing = append(missing, "OPENROUTER_API_KEY")
	}

	if c.Reddit.ClientID == "" || c.Reddit.ClientSecret == "" {
		missing = append(missing, "REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET")
	}

	if len(missing) > 0 {
		return errors.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}

	if len(c.Roulette.Sources) == 0 {
		return errors.New("roulette.sources must not be empty")
	}

	switch c.Roulette.Sort {
	case roulette.SortTop, roulette.SortHot:
	default:
		return errors.Errorf("unsupported roulette.sort: %s", c.Roulette.Sort)
	}

	if _, ok := storage.Drivers[c.Storage.Driver]; !ok {
		return errors.Errorf("unsupported storage.driver: %s", c.Storage.Driver)
	}

	return nil
}
