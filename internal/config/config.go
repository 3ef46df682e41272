package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	PrimaryRemote string `mapstructure:"primary_remote"`
	MirrorRemote  string `mapstructure:"mirror_remote"`
	OutputDir     string `mapstructure:"output_dir"`
	Pypirc        string `mapstructure:"pypirc"`
	GithubToken   string `mapstructure:"github_token"`
	GithubOwner   string `mapstructure:"github_owner"`
	GithubRepo    string `mapstructure:"github_repo"`
}

// DefaultConfig returns a Config with default values matching the
// original release script: origin plus a mirror, artifacts in dist/.
func DefaultConfig() *Config {
	return &Config{
		PrimaryRemote: "origin",
		MirrorRemote:  "mirror",
		OutputDir:     "dist",
	}
}

var remoteNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._\-/]*$`)

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := ValidateRemoteName(c.PrimaryRemote); err != nil {
		return fmt.Errorf("invalid primary_remote: %w", err)
	}
	if err := ValidateRemoteName(c.MirrorRemote); err != nil {
		return fmt.Errorf("invalid mirror_remote: %w", err)
	}
	if c.PrimaryRemote == c.MirrorRemote {
		return fmt.Errorf("primary_remote and mirror_remote must name distinct remotes: %s", c.PrimaryRemote)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	// Check for path traversal in the output directory
	if strings.Contains(c.OutputDir, "..") {
		return fmt.Errorf("output_dir contains invalid path traversal")
	}
	// GitHub token is optional - only validate if provided
	if c.GithubToken != "" {
		if err := ValidateGitHubToken(c.GithubToken); err != nil {
			return fmt.Errorf("invalid github_token: %w", err)
		}
		if err := ValidateGitHubOwnerRepo(c.GithubOwner, c.GithubRepo); err != nil {
			return fmt.Errorf("invalid github configuration: %w", err)
		}
	}
	return nil
}

// ValidateRemoteName validates a git remote name.
func ValidateRemoteName(name string) error {
	if name == "" {
		return fmt.Errorf("remote name cannot be empty")
	}
	if !remoteNameRegex.MatchString(name) {
		return fmt.Errorf("invalid remote name format: %s", name)
	}
	return nil
}

// ValidateGitHubToken validates GitHub token format (exported for reuse)
func ValidateGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	if len(token) < 40 {
		return fmt.Errorf("token too short: expected at least 40 characters")
	}
	classicPAT := regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	fineGrainedPAT := regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]{82}$`)
	appToken := regexp.MustCompile(`^ghs_[a-zA-Z0-9]{36}$`)
	oauthToken := regexp.MustCompile(`^gho_[a-zA-Z0-9]{36}$`)
	if !classicPAT.MatchString(token) &&
		!fineGrainedPAT.MatchString(token) &&
		!appToken.MatchString(token) &&
		!oauthToken.MatchString(token) {
		return fmt.Errorf("invalid token format")
	}
	return nil
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	validName := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	if !validName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !validName.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".release")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	// Configure environment variables
	viper.SetEnvPrefix("RELEASE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Explicitly bind environment variables
	// BindEnv allows multiple env vars - it will check them in order
	if err := viper.BindEnv("primary_remote", "RELEASE_PRIMARY_REMOTE"); err != nil {
		return nil, fmt.Errorf("failed to bind primary_remote env: %w", err)
	}
	if err := viper.BindEnv("mirror_remote", "RELEASE_MIRROR_REMOTE"); err != nil {
		return nil, fmt.Errorf("failed to bind mirror_remote env: %w", err)
	}
	if err := viper.BindEnv("output_dir", "RELEASE_OUTPUT_DIR"); err != nil {
		return nil, fmt.Errorf("failed to bind output_dir env: %w", err)
	}
	if err := viper.BindEnv("pypirc", "RELEASE_PYPIRC"); err != nil {
		return nil, fmt.Errorf("failed to bind pypirc env: %w", err)
	}
	if err := viper.BindEnv("github_token", "GITHUB_TOKEN", "RELEASE_GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind github_token env: %w", err)
	}
	if err := viper.BindEnv("github_owner", "GITHUB_OWNER", "RELEASE_GITHUB_OWNER"); err != nil {
		return nil, fmt.Errorf("failed to bind github_owner env: %w", err)
	}
	if err := viper.BindEnv("github_repo", "GITHUB_REPO", "RELEASE_GITHUB_REPO"); err != nil {
		return nil, fmt.Errorf("failed to bind github_repo env: %w", err)
	}
	// Set defaults
	defaults := DefaultConfig()
	viper.SetDefault("primary_remote", defaults.PrimaryRemote)
	viper.SetDefault("mirror_remote", defaults.MirrorRemote)
	viper.SetDefault("output_dir", defaults.OutputDir)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}
