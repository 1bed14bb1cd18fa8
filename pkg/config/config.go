package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"

	"github.com/umputun/topnews/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// default settings
const (
	DefaultFetchTimeout    = 15 * time.Second
	DefaultMaxWorkers      = 5
	DefaultUserAgent       = "Mozilla/5.0 (compatible; topnews/1.0)"
	DefaultPrioritySection = domain.SectionAI
	DefaultListen          = ":8080"
	DefaultServerTimeout   = 30 * time.Second
)

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address for serve mode"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Fetch FetchConfig `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`

	Ranking RankingConfig `yaml:"ranking" json:"ranking" jsonschema:"description=Ranking configuration"`

	Sections []Section `yaml:"sections" json:"sections" jsonschema:"description=Sections with their feeds, built-in table used when empty"`
}

// FetchConfig holds feed fetching settings
type FetchConfig struct {
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Per-feed fetch timeout"`
	MaxWorkers int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,minimum=1,description=Maximum concurrent feed fetches"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for HTTP requests"`
}

// RankingConfig holds ranking settings
type RankingConfig struct {
	PrioritySection string `yaml:"priority_section" json:"priority_section" jsonschema:"default=ai,description=Section placed first in priority mode"`
}

// Section is a named group of feeds
type Section struct {
	Name  string `yaml:"name" json:"name" jsonschema:"required,description=Section tag, e.g. world, us or ai"`
	Feeds []Feed `yaml:"feeds" json:"feeds" jsonschema:"required,description=Feeds of the section in processing order"`
}

// Feed is a single news source
type Feed struct {
	Name string `yaml:"name" json:"name" jsonschema:"description=Source display name, defaults to url"`
	URL  string `yaml:"url" json:"url" jsonschema:"required,description=RSS or Atom feed URL"`
}

// Default returns configuration with the built-in feed table
func Default() *Config {
	cfg := &Config{Sections: defaultSections()}
	setDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file. Empty path means built-in defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if len(cfg.Sections) == 0 {
		cfg.Sections = defaultSections()
	}
	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = DefaultListen
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = DefaultServerTimeout
	}

	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = DefaultFetchTimeout
	}
	if cfg.Fetch.MaxWorkers == 0 {
		cfg.Fetch.MaxWorkers = DefaultMaxWorkers
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = DefaultUserAgent
	}

	if cfg.Ranking.PrioritySection == "" {
		cfg.Ranking.PrioritySection = DefaultPrioritySection
	}

	for i := range cfg.Sections {
		for j := range cfg.Sections[i].Feeds {
			if cfg.Sections[i].Feeds[j].Name == "" {
				cfg.Sections[i].Feeds[j].Name = cfg.Sections[i].Feeds[j].URL
			}
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Fetch.Timeout < 100*time.Millisecond {
		return fmt.Errorf("fetch timeout must be at least 100ms")
	}
	if cfg.Fetch.MaxWorkers < 1 {
		return fmt.Errorf("fetch max_workers must be at least 1")
	}
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	seen := make(map[string]bool, len(cfg.Sections))
	for i, sec := range cfg.Sections {
		if sec.Name == "" {
			return fmt.Errorf("sections[%d].name is required", i)
		}
		// section lookup ignores case, so names differing only in case collide
		key := strings.ToLower(sec.Name)
		if seen[key] {
			return fmt.Errorf("duplicate section %q", sec.Name)
		}
		seen[key] = true
		for j, f := range sec.Feeds {
			if f.URL == "" {
				return fmt.Errorf("sections[%d].feeds[%d].url is required", i, j)
			}
			u, err := url.Parse(f.URL)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("sections[%d].feeds[%d].url %q is not a valid http(s) url", i, j, f.URL)
			}
		}
	}
	return nil
}

// Table returns sections as the feed table used by the aggregator
func (c *Config) Table() domain.FeedTable {
	res := make(domain.FeedTable, 0, len(c.Sections))
	for _, sec := range c.Sections {
		sources := make([]domain.Source, 0, len(sec.Feeds))
		for _, f := range sec.Feeds {
			sources = append(sources, domain.Source{Name: f.Name, URL: f.URL})
		}
		res = append(res, domain.SectionFeeds{Section: sec.Name, Sources: sources})
	}
	return res
}

// defaultSections is the built-in feed table
func defaultSections() []Section {
	return []Section{
		{Name: domain.SectionWorld, Feeds: []Feed{
			{Name: "BBC World", URL: "https://feeds.bbci.co.uk/news/world/rss.xml"},
			{Name: "NYT Home/Top", URL: "https://rss.nytimes.com/services/xml/rss/nyt/HomePage.xml"},
			{Name: "Google News (US Top Stories)", URL: "https://news.google.com/rss?hl=en-US&gl=US&ceid=US:en"},
			{Name: "Reuters World (legacy)", URL: "https://www.reuters.com/rss/worldNews"},
			{Name: "Reuters Top (legacy)", URL: "https://feeds.reuters.com/reuters/topNews"},
		}},
		{Name: domain.SectionUS, Feeds: []Feed{
			{Name: "BBC US & Canada", URL: "https://feeds.bbci.co.uk/news/world/us_and_canada/rss.xml"},
			{Name: "NYT U.S.", URL: "https://rss.nytimes.com/services/xml/rss/nyt/US.xml"},
			{Name: "Google News (US Nation)", URL: "https://news.google.com/rss/headlines/section/topic/NATION.en_us/US?hl=en-US&gl=US&ceid=US:en"},
			{Name: "Reuters U.S. (legacy)", URL: "https://feeds.reuters.com/Reuters/domesticNews"},
		}},
		{Name: domain.SectionAI, Feeds: []Feed{
			{Name: "Google News (AI topic)", URL: "https://news.google.com/rss/search?q=AI%20OR%20artificial%20intelligence&hl=en-US&gl=US&ceid=US:en"},
			{Name: "NYT Technology", URL: "https://rss.nytimes.com/services/xml/rss/nyt/Technology.xml"},
			{Name: "BBC Technology", URL: "https://feeds.bbci.co.uk/news/technology/rss.xml"},
			{Name: "Reuters Technology (legacy)", URL: "https://feeds.reuters.com/reuters/technologyNews"},
		}},
	}
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
