package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	LLM      LLMConfig      `yaml:"llm"`
	Mail     MailConfig     `yaml:"mail"`
	// AdminEmail is the one address resolved to the admin role.
	AdminEmail string `yaml:"admin_email"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Driver     string `yaml:"driver"`
	Host       string `yaml:"host"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	Port       string `yaml:"port"`
	SSLMode    string `yaml:"sslmode"`
	SQLitePath string `yaml:"sqlite_path"`
}

type AuthConfig struct {
	JWTSecret          string        `yaml:"jwt_secret"`
	SessionTTL         time.Duration `yaml:"session_ttl"`
	GoogleClientID     string        `yaml:"google_client_id"`
	GoogleClientSecret string        `yaml:"google_client_secret"`
	GoogleRedirectURL  string        `yaml:"google_redirect_url"`
}

type LLMConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key"`
	Model        string `yaml:"model"`
}

type MailConfig struct {
	Transport        string   `yaml:"transport"`
	Host             string   `yaml:"host"`
	Port             int      `yaml:"port"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	From             string   `yaml:"from"`
	LeadRecipients   []string `yaml:"lead_recipients"`
	GmailCredentials string   `yaml:"gmail_credentials"`
	GmailToken       string   `yaml:"gmail_token"`
}

// DSN builds the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// Load reads .env, then the optional YAML file named by CONFIG_FILE, then
// environment overrides, and finally applies defaults and validation.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var cfg Config
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings the process cannot start without.
// Mail and LLM settings are checked by the operations that need them.
func (c Config) Validate() error {
	var missing []string
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	switch c.Database.Driver {
	case "postgres":
		required := map[string]string{
			"DB_HOST":     c.Database.Host,
			"DB_USER":     c.Database.User,
			"DB_PASSWORD": c.Database.Password,
			"DB_NAME":     c.Database.Name,
			"DB_PORT":     c.Database.Port,
		}
		for _, name := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PORT"} {
			if required[name] == "" {
				missing = append(missing, name)
			}
		}
	case "sqlite":
		if c.Database.SQLitePath == "" {
			missing = append(missing, "SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if len(missing) > 0 {
		return errors.New("missing required configuration: " + strings.Join(missing, ", "))
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.AdminEmail, "ADMIN_EMAIL")

	setString(&cfg.Server.Addr, "SERVER_ADDR")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SERVER_ADDR") == "" {
		cfg.Server.Addr = ":" + port
	}
	setList(&cfg.Server.CORSOrigins, "CORS_ORIGINS")

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")
	setString(&cfg.Database.SQLitePath, "SQLITE_PATH")

	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Auth.SessionTTL = d
		} else {
			log.Printf("ignoring invalid SESSION_TTL %q", v)
		}
	}
	setString(&cfg.Auth.GoogleClientID, "GOOGLE_CLIENT_ID")
	setString(&cfg.Auth.GoogleClientSecret, "GOOGLE_CLIENT_SECRET")
	setString(&cfg.Auth.GoogleRedirectURL, "GOOGLE_REDIRECT_URL")

	setString(&cfg.LLM.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&cfg.LLM.Model, "GEMINI_MODEL")

	setString(&cfg.Mail.Transport, "MAIL_TRANSPORT")
	setString(&cfg.Mail.Host, "SMTP_HOST")
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Mail.Port = port
		} else {
			log.Printf("ignoring invalid SMTP_PORT %q", v)
		}
	}
	setString(&cfg.Mail.Username, "SMTP_USERNAME")
	setString(&cfg.Mail.Password, "SMTP_PASSWORD")
	setString(&cfg.Mail.From, "MAIL_FROM")
	setList(&cfg.Mail.LeadRecipients, "LEAD_RECIPIENTS")
	setString(&cfg.Mail.GmailCredentials, "GMAIL_CREDENTIALS")
	setString(&cfg.Mail.GmailToken, "GMAIL_TOKEN")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Driver == "sqlite" && cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "hiringdekho.db"
	}
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = 24 * time.Hour
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gemini-2.5-flash"
	}
	if cfg.Mail.Transport == "" {
		cfg.Mail.Transport = "smtp"
	}
	if cfg.Mail.Port == 0 && cfg.Mail.Transport == "smtp" {
		cfg.Mail.Port = 587
	}
	if len(cfg.Mail.LeadRecipients) == 0 && cfg.AdminEmail != "" {
		cfg.Mail.LeadRecipients = []string{cfg.AdminEmail}
	}
	if cfg.Mail.GmailCredentials == "" {
		cfg.Mail.GmailCredentials = "credential.json"
	}
	if cfg.Mail.GmailToken == "" {
		cfg.Mail.GmailToken = "token.json"
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = strings.TrimSpace(v)
	}
}

func setList(dst *[]string, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*dst = out
}
