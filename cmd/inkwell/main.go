// Command inkwell runs a single-author blog with the default views.
// All site branding and secrets come from environment variables.
package main

import (
	"log"
	"os"

	"github.com/avenel/inkwell"
)

func main() {
	cfg := inkwell.SiteConfig{
		Name:        inkwell.EnvOr("SITE_NAME", "Blog"),
		URL:         inkwell.EnvOr("SITE_URL", "http://localhost:3000"),
		Description: os.Getenv("SITE_DESCRIPTION"),
		Author:      os.Getenv("SITE_AUTHOR"),

		Addr:         inkwell.EnvOr("ADDR", ":3000"),
		DatabasePath: inkwell.EnvOr("DATABASE_PATH", "data/entries.db"),

		AdminUsername: inkwell.MustEnv("ADMIN_USERNAME"),
		AdminPassword: inkwell.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: inkwell.MustEnv("SESSION_SECRET"),
		CookieSecure:  os.Getenv("COOKIE_SECURE") == "true",
	}

	app := inkwell.New(cfg, defaultViews(cfg),
		inkwell.WithStaticDir(inkwell.EnvOr("STATIC_DIR", "public")))
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
