package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/avelar/inkpress"
	"github.com/avelar/inkpress/frontmatter"
	"github.com/avelar/inkpress/views"
)

// setupLogging installs a JSON slog logger at the level named by LOG_LEVEL.
func setupLogging() {
	var level slog.Level
	switch strings.ToLower(inkpress.EnvOr("LOG_LEVEL", "info")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// siteConfigFromEnv builds the SiteConfig the way deployments configure it:
// environment variables, with .env as a development convenience.
func siteConfigFromEnv() inkpress.SiteConfig {
	return inkpress.SiteConfig{
		Name:              inkpress.EnvOr("SITE_NAME", "Blog"),
		URL:               strings.TrimSuffix(inkpress.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description:       os.Getenv("SITE_DESCRIPTION"),
		Author:            os.Getenv("SITE_AUTHOR"),
		Addr:              inkpress.EnvOr("ADDR", ":3000"),
		DatabasePath:      inkpress.EnvOr("DATABASE_PATH", "data/blog.db"),
		ContentDir:        os.Getenv("CONTENT_DIR"),
		StatsEnabled:      strings.EqualFold(os.Getenv("STATS_ENABLED"), "true"),
		StatsDatabasePath: inkpress.EnvOr("STATS_DATABASE_PATH", "data/stats.db"),
		AdminPassword:     inkpress.MustEnv("ADMIN_PASSWORD"),
		SessionSecret:     inkpress.MustEnv("ADMIN_SESSION_SECRET"),
		CookieSecure:      strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
	}
}

func runServe() error {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}
	setupLogging()

	cfg := siteConfigFromEnv()
	app := inkpress.New(cfg, views.Default(cfg))
	defer app.Close()
	return app.Start()
}

func runImport(dir string) error {
	if err := godotenv.Load(); err == nil {
		slog.Debug(".env loaded")
	}
	setupLogging()

	store, err := inkpress.NewStore(inkpress.EnvOr("DATABASE_PATH", "data/blog.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := inkpress.SyncDir(store, dir)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d posts from %s\n", n, dir)
	return nil
}

func runNew(title string) error {
	date := time.Now().Format(frontmatter.DateLayout)
	fm := frontmatter.FrontMatter{
		Layout: "post",
		Title:  title,
		Date:   date,
	}
	data, err := frontmatter.Encode(fm, "\nWrite your post here.\n")
	if err != nil {
		return err
	}

	dir := inkpress.EnvOr("CONTENT_DIR", "content")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := dir + "/" + inkpress.PostSlug(date, title) + ".md"
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", path)
	return nil
}
