// Command atelier runs the portfolio site server. All branding and
// credentials come from environment variables (a .env file is honored) and
// the YAML profile.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/alexchen/atelier"
	"github.com/alexchen/atelier/views"
)

func main() {
	// Missing .env is fine; production sets real environment variables.
	_ = godotenv.Load()

	cfg := atelier.SiteConfig{
		Name:        atelier.EnvOr("SITE_NAME", "Atelier"),
		URL:         atelier.EnvOr("SITE_URL", "http://localhost:3000"),
		Description: atelier.EnvOr("SITE_DESCRIPTION", ""),
		Author:      atelier.EnvOr("SITE_AUTHOR", ""),

		Addr:         atelier.EnvOr("ADDR", ":3000"),
		DatabasePath: atelier.EnvOr("DATABASE_PATH", "data/site.db"),
		ProfilePath:  atelier.EnvOr("PROFILE_PATH", "profile.yaml"),

		AdminUsername: atelier.EnvOr("ADMIN_USERNAME", "admin"),
		AdminPassword: atelier.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: atelier.MustEnv("SESSION_SECRET"),
		CookieSecure:  atelier.EnvOr("COOKIE_SECURE", "") == "true",

		GenAPIKey:   atelier.EnvOr("API_KEY", ""),
		GenModel:    atelier.EnvOr("GEN_MODEL", ""),
		GenEndpoint: atelier.EnvOr("GEN_ENDPOINT", ""),
	}

	app := atelier.New(cfg, views.Funcs())
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
