package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Secrets is the service configuration, read from a JSON secrets file with
// environment-variable overrides for containerized deployments.
type Secrets struct {
	OpenAIApiKey    string    `json:"openai"`
	AnthropicApiKey string    `json:"anthropic"`
	LLMProvider     string    `json:"llmProvider"` // "gpt" (default) or "claude"
	JwtSecret       string    `json:"jwtSecret"`
	CatalogPath     string    `json:"catalogPath"`
	Db              DbSecrets `json:"db"`
}

type DbSecrets struct {
	Host      string `json:"host"`
	User      string `json:"user"`
	Port      string `json:"port"`
	Password  string `json:"password"`
	Database  string `json:"database"`
	EnableSsl bool   `json:"enableSsl"`
}

func (t DbSecrets) ToConnectionStr() string {
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

func LoadSecrets() (*Secrets, error) {
	secretsFile := "secrets.json"
	if env := os.Getenv("RM_ENV"); env == "dev" {
		secretsFile = "secrets-dev.json"
	} else if env == "test" {
		secretsFile = "secrets-test.json"
	}
	if override := os.Getenv("RM_SECRETS_FILE"); override != "" {
		secretsFile = override
	}

	f, err := os.ReadFile(secretsFile)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", secretsFile, err)
	}

	secrets := Secrets{}
	if err := json.Unmarshal(f, &secrets); err != nil {
		return nil, err
	}

	applyEnvOverrides(&secrets)

	if secrets.LLMProvider == "" {
		secrets.LLMProvider = "gpt"
	}
	if secrets.CatalogPath == "" {
		secrets.CatalogPath = "data/core_credit_products.csv"
	}

	return &secrets, nil
}

func applyEnvOverrides(s *Secrets) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		s.OpenAIApiKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		s.AnthropicApiKey = v
	}
	if v := os.Getenv("RM_LLM_PROVIDER"); v != "" {
		s.LLMProvider = v
	}
	if v := os.Getenv("RM_JWT_SECRET"); v != "" {
		s.JwtSecret = v
	}
	if v := os.Getenv("RM_CATALOG_PATH"); v != "" {
		s.CatalogPath = v
	}
	if v := os.Getenv("RM_DB_HOST"); v != "" {
		s.Db.Host = v
	}
	if v := os.Getenv("RM_DB_PASSWORD"); v != "" {
		s.Db.Password = v
	}
}
