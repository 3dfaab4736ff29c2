package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// DefaultDocumentPath is where the rendered task document lives unless
// TASKS_FILE or the -file flag says otherwise.
const DefaultDocumentPath = "docs/tasks.md"

// Sync holds the settings for the document sync pipeline.
type Sync struct {
	Owner         string
	ProjectNumber int
	Token         string
	RepoName      string
	DocumentPath  string
	LedgerPath    string
	Today         time.Time
}

// Notify holds the settings for the overdue notification pipeline. A channel
// is active when its webhook URL is non-empty.
type Notify struct {
	SlackWebhookURL   string
	DiscordWebhookURL string
	NotifyOnce        bool
	DocumentPath      string
	LedgerPath        string
	Today             time.Time
}

func LoadSync() (Sync, error) {
	loadDotenv()

	cfg := Sync{
		Owner:        os.Getenv("REPO_OWNER"),
		Token:        os.Getenv("GITHUB_TOKEN"),
		RepoName:     os.Getenv("REPO_NAME"),
		DocumentPath: getEnv("TASKS_FILE", DefaultDocumentPath),
		LedgerPath:   os.Getenv("LEDGER_PATH"),
	}

	if cfg.Owner == "" {
		return Sync{}, fmt.Errorf("REPO_OWNER is not set")
	}
	if cfg.Token == "" {
		return Sync{}, fmt.Errorf("GITHUB_TOKEN is not set")
	}

	number, err := strconv.Atoi(os.Getenv("GITHUB_PROJECT_NUMBER"))
	if err != nil || number <= 0 {
		return Sync{}, fmt.Errorf("GITHUB_PROJECT_NUMBER must be a positive integer")
	}
	cfg.ProjectNumber = number

	cfg.Today, err = resolveToday()
	if err != nil {
		return Sync{}, err
	}

	return cfg, nil
}

func LoadNotify() (Notify, error) {
	loadDotenv()

	cfg := Notify{
		NotifyOnce:   envBool("NOTIFY_ONCE"),
		DocumentPath: getEnv("TASKS_FILE", DefaultDocumentPath),
		LedgerPath:   os.Getenv("LEDGER_PATH"),
	}

	if envBool("ENABLE_SLACK_NOTIFICATION") {
		cfg.SlackWebhookURL = os.Getenv("SLACK_WEBHOOK_URL")
		if cfg.SlackWebhookURL == "" {
			log.Warn("slack notification is enabled but SLACK_WEBHOOK_URL is not set")
		}
	}
	if envBool("ENABLE_DISCORD_NOTIFICATION") {
		cfg.DiscordWebhookURL = os.Getenv("DISCORD_WEBHOOK_URL")
		if cfg.DiscordWebhookURL == "" {
			log.Warn("discord notification is enabled but DISCORD_WEBHOOK_URL is not set")
		}
	}

	if cfg.SlackWebhookURL == "" && cfg.DiscordWebhookURL == "" {
		return Notify{}, fmt.Errorf("no notification channel is enabled and configured")
	}

	if cfg.NotifyOnce && cfg.LedgerPath == "" {
		return Notify{}, fmt.Errorf("NOTIFY_ONCE requires LEDGER_PATH")
	}

	var err error
	cfg.Today, err = resolveToday()
	if err != nil {
		return Notify{}, err
	}

	return cfg, nil
}

// Debug reports whether verbose logging was requested via the DEBUG variable.
func Debug() bool {
	return envBool("DEBUG")
}

func loadDotenv() {
	// Missing .env is fine: CI and cron environments set variables directly.
	_ = godotenv.Load()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

var truthy = map[string]bool{"true": true, "1": true, "yes": true, "y": true}

func envBool(key string) bool {
	return truthy[strings.ToLower(strings.TrimSpace(os.Getenv(key)))]
}

// resolveToday returns the date used for overdue comparison: the TODAY
// variable when set, otherwise the current UTC date.
func resolveToday() (time.Time, error) {
	val := os.Getenv("TODAY")
	if val == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	day, err := time.Parse("2006-01-02", val)
	if err != nil {
		return time.Time{}, fmt.Errorf("TODAY must be YYYY-MM-DD: %w", err)
	}

	return day, nil
}
