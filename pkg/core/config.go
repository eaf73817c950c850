package core

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadConfig reads configuration from the environment, loading a .env
// file first when one is present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Site:     strings.TrimRight(getEnv("JIRA_SITE", ""), "/"),
		Email:    getEnv("JIRA_EMAIL", ""),
		APIToken: getEnv("JIRA_API_TOKEN", ""),
		AuthType: getEnv("JIRA_AUTH_TYPE", AuthTypeBasic),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration and returns an error describing every
// problem found. The site URL is normalized to https:// when no scheme is
// given.
func (c *Config) Validate() error {
	var problems []string

	if c.Site == "" {
		problems = append(problems, "JIRA_SITE is required")
	} else {
		if !strings.Contains(c.Site, "://") {
			c.Site = "https://" + c.Site
		}
		site, err := url.Parse(c.Site)
		switch {
		case err != nil:
			problems = append(problems, fmt.Sprintf("invalid JIRA_SITE '%s': %v", c.Site, err))
		case site.Scheme != "http" && site.Scheme != "https":
			problems = append(problems, fmt.Sprintf("invalid JIRA_SITE '%s': scheme must be http or https", c.Site))
		case site.Host == "":
			problems = append(problems, fmt.Sprintf("invalid JIRA_SITE '%s': missing host", c.Site))
		}
	}

	if c.APIToken == "" {
		problems = append(problems, "JIRA_API_TOKEN is required")
	}

	switch c.AuthType {
	case AuthTypeBasic:
		// Jira Cloud basic auth pairs the account email with an API token
		if c.Email == "" {
			problems = append(problems, "JIRA_EMAIL is required")
		}
	case AuthTypeBearer:
	default:
		problems = append(problems, fmt.Sprintf("invalid JIRA_AUTH_TYPE '%s': must be one of [basic bearer]", c.AuthType))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid LOG_LEVEL '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}

	return nil
}

// BrowseURL returns the human-facing link for an issue key.
func (c *Config) BrowseURL(issueKey string) string {
	return strings.TrimRight(c.Site, "/") + "/browse/" + issueKey
}

// getEnv returns the value of an environment variable or a default when
// it is unset or empty
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
