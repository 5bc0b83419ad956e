// Package config loads the siteforge.yaml application configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Serve   ServeConfig   `yaml:"serve"`
}

// SiteConfig holds template-visible site metadata.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	Author      string `yaml:"author,omitempty"`
}

// ContentConfig locates the source inputs.
type ContentConfig struct {
	Dir       string `yaml:"dir"`       // markdown source root
	Templates string `yaml:"templates"` // template directory
	Static    string `yaml:"static"`    // static assets copied verbatim (optional)
}

// OutputConfig locates the generated site.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// ServeConfig configures the local preview server.
type ServeConfig struct {
	Addr    string `yaml:"addr,omitempty"`
	Metrics bool   `yaml:"metrics,omitempty"`
}

// TemplateData returns the site metadata in the shape templates consume.
func (s SiteConfig) TemplateData() map[string]any {
	return map[string]any{
		"title":       s.Title,
		"description": s.Description,
		"base_url":    s.BaseURL,
		"author":      s.Author,
	}
}

// Load reads configuration from path. Environment variables referenced in
// the file are expanded; a .env/.env.local file is loaded first when
// present (existing process variables win).
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Siteforge Site"
	}
	if c.Content.Dir == "" {
		c.Content.Dir = "./content"
	}
	if c.Content.Templates == "" {
		c.Content.Templates = "./templates"
	}
	if c.Content.Static == "" {
		c.Content.Static = "./static"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "./site"
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = ":8080"
	}
}

func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
			return
		}
	}
}

const exampleConfig = `# Siteforge configuration
site:
  title: "My Blog"
  description: "Things I write about"
  base_url: "https://example.com"
  author: "Your Name"

content:
  dir: ./content
  templates: ./templates
  static: ./static

output:
  dir: ./site

serve:
  addr: ":8080"
  metrics: false
`

// Init creates a new configuration file with example content.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
