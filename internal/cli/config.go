package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds CLI configuration, populated from the environment with
// flags layered on top.
type Config struct {
	ServerURL   string `env:"EVENTFLOW_SERVER" envDefault:"http://localhost:8000"`
	SessionFile string `env:"EVENTFLOW_SESSION_FILE"`
	GatewayURL  string `env:"EVENTFLOW_GATEWAY_URL" envDefault:"https://pay.eventflow.example"`
	ReturnURL   string `env:"EVENTFLOW_RETURN_URL" envDefault:"http://localhost:8000/payment/done"`
	ReportDir   string `env:"EVENTFLOW_REPORT_DIR" envDefault:"."`
	Output      string `env:"EVENTFLOW_OUTPUT" envDefault:"text"`
	Verbose     bool   `env:"EVENTFLOW_VERBOSE"`
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
