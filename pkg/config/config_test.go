package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/topnews/pkg/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
server:
  listen: ":9090"
  timeout: 45s

fetch:
  timeout: 5s
  max_workers: 3
  user_agent: test-agent

ranking:
  priority_section: world

sections:
  - name: world
    feeds:
      - name: Feed1
        url: https://example.com/feed1.xml
      - url: https://example.com/feed2.xml
  - name: tech
    feeds:
      - name: Feed3
        url: http://example.com/feed3.xml
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, 3, cfg.Fetch.MaxWorkers)
		assert.Equal(t, "test-agent", cfg.Fetch.UserAgent)
		assert.Equal(t, "world", cfg.Ranking.PrioritySection)

		require.Len(t, cfg.Sections, 2)
		assert.Equal(t, "world", cfg.Sections[0].Name)
		require.Len(t, cfg.Sections[0].Feeds, 2)
		assert.Equal(t, "Feed1", cfg.Sections[0].Feeds[0].Name)
		assert.Equal(t, "https://example.com/feed2.xml", cfg.Sections[0].Feeds[1].Name, "name defaults to url")
		assert.Equal(t, "tech", cfg.Sections[1].Name)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "fetch:\n  max_workers: 2\n"))
		require.NoError(t, err)

		assert.Equal(t, DefaultListen, cfg.Server.Listen)
		assert.Equal(t, DefaultServerTimeout, cfg.Server.Timeout)
		assert.Equal(t, DefaultFetchTimeout, cfg.Fetch.Timeout)
		assert.Equal(t, 2, cfg.Fetch.MaxWorkers)
		assert.Equal(t, DefaultUserAgent, cfg.Fetch.UserAgent)
		assert.Equal(t, "ai", cfg.Ranking.PrioritySection)
		assert.Equal(t, Default().Sections, cfg.Sections, "built-in table when no sections")
	})

	t.Run("empty path", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("TOPNEWS_TEST_HOST", "news.example.com")
		cfg, err := Load(writeConfig(t, `
sections:
  - name: world
    feeds:
      - name: Env
        url: https://${TOPNEWS_TEST_HOST}/rss
`))
		require.NoError(t, err)
		assert.Equal(t, "https://news.example.com/rss", cfg.Sections[0].Feeds[0].URL)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "fetch:\n  max_workers: -1\n"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "validate config")
	})
}

func TestValidate(t *testing.T) {
	tbl := []struct {
		name   string
		modify func(cfg *Config)
		errMsg string
	}{
		{name: "default is valid", modify: func(*Config) {}},
		{name: "short fetch timeout", modify: func(c *Config) { c.Fetch.Timeout = time.Millisecond },
			errMsg: "fetch timeout must be at least 100ms"},
		{name: "bad workers", modify: func(c *Config) { c.Fetch.MaxWorkers = -2 },
			errMsg: "fetch max_workers must be at least 1"},
		{name: "short server timeout", modify: func(c *Config) { c.Server.Timeout = time.Millisecond },
			errMsg: "server timeout must be at least 1 second"},
		{name: "empty section name", modify: func(c *Config) { c.Sections[0].Name = "" },
			errMsg: "sections[0].name is required"},
		{name: "duplicate section", modify: func(c *Config) { c.Sections[1].Name = c.Sections[0].Name },
			errMsg: `duplicate section "world"`},
		{name: "duplicate section in other case", modify: func(c *Config) { c.Sections[1].Name = "World" },
			errMsg: `duplicate section "World"`},
		{name: "empty url", modify: func(c *Config) { c.Sections[2].Feeds[1].URL = "" },
			errMsg: "sections[2].feeds[1].url is required"},
		{name: "not http url", modify: func(c *Config) { c.Sections[0].Feeds[0].URL = "ftp://example.com/rss" },
			errMsg: "is not a valid http(s) url"},
		{name: "no host", modify: func(c *Config) { c.Sections[0].Feeds[0].URL = "https:///rss" },
			errMsg: "is not a valid http(s) url"},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := validate(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultFetchTimeout, cfg.Fetch.Timeout)
	assert.Equal(t, DefaultMaxWorkers, cfg.Fetch.MaxWorkers)
	assert.Equal(t, domain.SectionAI, cfg.Ranking.PrioritySection)

	table := cfg.Table()
	assert.Equal(t, []string{"world", "us", "ai"}, table.Sections())
	assert.Len(t, table.Sources("world"), 5)
	assert.Len(t, table.Sources("us"), 4)
	assert.Len(t, table.Sources("ai"), 4)
	assert.Equal(t, domain.Source{Name: "BBC World", URL: "https://feeds.bbci.co.uk/news/world/rss.xml"},
		table.Sources("world")[0])
	assert.Equal(t, "Reuters Technology (legacy)", table.Sources("ai")[3].Name)

	// defaults are fresh copies
	cfg.Sections[0].Name = "changed"
	assert.Equal(t, "world", Default().Sections[0].Name)
}

func TestConfig_Table(t *testing.T) {
	cfg := &Config{Sections: []Section{
		{Name: "tech", Feeds: []Feed{{Name: "A", URL: "https://a.example.com"}, {Name: "B", URL: "https://b.example.com"}}},
		{Name: "empty"},
	}}
	table := cfg.Table()
	require.Len(t, table, 2)
	assert.Equal(t, []domain.Source{{Name: "A", URL: "https://a.example.com"}, {Name: "B", URL: "https://b.example.com"}},
		table.Sources("tech"))
	assert.Empty(t, table.Sources("empty"))
	assert.Nil(t, table.Sources("unknown"))
}
