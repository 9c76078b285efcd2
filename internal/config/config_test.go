package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFromEnvAppliesDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("ADMIN_EMAIL", " admin@hiringdekho.in ")
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("LEAD_RECIPIENTS", "")
	t.Setenv("MAIL_TRANSPORT", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("GEMINI_MODEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.AdminEmail != "admin@hiringdekho.in" {
		t.Fatalf("expected trimmed admin email, got %q", cfg.AdminEmail)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Server.Addr)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Fatalf("expected default session ttl, got %v", cfg.Auth.SessionTTL)
	}
	if cfg.LLM.Model != "gemini-2.5-flash" {
		t.Fatalf("expected default model, got %q", cfg.LLM.Model)
	}
	if cfg.Mail.Transport != "smtp" || cfg.Mail.Port != 587 {
		t.Fatalf("expected smtp on 587, got %s:%d", cfg.Mail.Transport, cfg.Mail.Port)
	}
	if len(cfg.Mail.LeadRecipients) != 1 || cfg.Mail.LeadRecipients[0] != "admin@hiringdekho.in" {
		t.Fatalf("expected lead recipients to default to admin email, got %v", cfg.Mail.LeadRecipients)
	}
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
admin_email: owner@hiringdekho.in
server:
  addr: ":9090"
database:
  driver: sqlite
  sqlite_path: ` + filepath.Join(dir, "portal.db") + `
auth:
  jwt_secret: from-file
  session_ttl: 2h
mail:
  host: smtp.example.com
  port: 2525
  lead_recipients: ["sales@hiringdekho.in"]
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SMTP_PORT", "465")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("expected env to override file secret, got %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.SessionTTL != 2*time.Hour {
		t.Fatalf("expected session ttl from file, got %v", cfg.Auth.SessionTTL)
	}
	if cfg.Mail.Host != "smtp.example.com" || cfg.Mail.Port != 465 {
		t.Fatalf("unexpected mail settings: %+v", cfg.Mail)
	}
	if cfg.Mail.LeadRecipients[0] != "sales@hiringdekho.in" {
		t.Fatalf("expected recipients from file, got %v", cfg.Mail.LeadRecipients)
	}
}

func TestValidateReportsMissingPostgresSettings(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Auth:     AuthConfig{JWTSecret: "x"},
		Database: DatabaseConfig{Driver: "postgres", Host: "localhost"},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, name := range []string{"DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PORT"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("expected %s in error, got %v", name, err)
		}
	}
	if strings.Contains(err.Error(), "DB_HOST") {
		t.Fatalf("DB_HOST was set, got %v", err)
	}
}

func TestValidateRequiresJWTSecret(t *testing.T) {
	t.Parallel()

	cfg := Config{Database: DatabaseConfig{Driver: "sqlite", SQLitePath: "x.db"}}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	cfg := Config{Auth: AuthConfig{JWTSecret: "x"}, Database: DatabaseConfig{Driver: "mongo"}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
