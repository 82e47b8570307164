package config

import (
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"gobank/models"
)

// AppConfig holds the runtime parameters read from the YAML file pointed to
// by GOBANK_CONFIG (default config/gobank.yml). Missing file or fields fall
// back to defaults so the binaries run out of the box.
type AppConfig struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Storage struct {
		Dir string `yaml:"dir"`
	} `yaml:"storage"`
	ViaCEP struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"viacep"`
	Accounts struct {
		CheckingTransferLimit  string `yaml:"checking_transfer_limit"`
		SavingsTransferLimit   string `yaml:"savings_transfer_limit"`
		CheckingMaintenanceFee string `yaml:"checking_maintenance_fee"`
		SavingsMonthlyRate     string `yaml:"savings_monthly_rate"`
	} `yaml:"accounts"`
	Daemon struct {
		AdjustmentAt string `yaml:"adjustment_at"`
	} `yaml:"daemon"`
}

var App AppConfig

func InitializeConfig() error {
	NewLoggerService()
	if err := LoadAppConfig(); err != nil {
		return err
	}
	return nil
}

func LoadAppConfig() error {
	path := os.Getenv("GOBANK_CONFIG")
	if path == "" {
		path = "config/gobank.yml"
	}

	App = AppConfig{}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &App); err != nil {
			return err
		}
	} else if Logger != nil {
		Logger.Warnf("Config file %s not found, using defaults", path)
	}

	if App.Server.Addr == "" {
		App.Server.Addr = ":3000"
	}
	if App.Storage.Dir == "" {
		App.Storage.Dir = "data"
	}
	if App.ViaCEP.TimeoutSeconds == 0 {
		App.ViaCEP.TimeoutSeconds = 5
	}
	if App.Daemon.AdjustmentAt == "" {
		App.Daemon.AdjustmentAt = "03:00"
	}

	params := models.DefaultParams()
	if err := overrideAmount(&params.CheckingTransferLimit, App.Accounts.CheckingTransferLimit); err != nil {
		return err
	}
	if err := overrideAmount(&params.SavingsTransferLimit, App.Accounts.SavingsTransferLimit); err != nil {
		return err
	}
	if err := overrideAmount(&params.CheckingMaintenanceFee, App.Accounts.CheckingMaintenanceFee); err != nil {
		return err
	}
	if err := overrideAmount(&params.SavingsMonthlyRate, App.Accounts.SavingsMonthlyRate); err != nil {
		return err
	}
	models.Configure(params)

	return nil
}

func ViaCEPTimeout() time.Duration {
	return time.Duration(App.ViaCEP.TimeoutSeconds) * time.Second
}

// JWTSecret reads the session signing key from the environment, with a fixed
// development fallback. Not suitable for anything beyond this demo.
func JWTSecret() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("gobank-development-secret")
}

func overrideAmount(target *decimal.Decimal, raw string) error {
	if raw == "" {
		return nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return err
	}
	*target = value
	return nil
}
