package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Pricing.DeliveryFee != 10000 {
		t.Errorf("Pricing.DeliveryFee = %v, want 10000", cfg.Pricing.DeliveryFee)
	}
	if cfg.Pricing.TaxRate != 0.10 {
		t.Errorf("Pricing.TaxRate = %v, want 0.10", cfg.Pricing.TaxRate)
	}
	if !cfg.Features.EnableOrderEvents {
		t.Error("Features.EnableOrderEvents should default to true")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PRICING_DELIVERY_FEE", "5000")
	t.Setenv("ENABLE_ORDER_EVENTS", "false")
	t.Setenv("DB_CONN_MAX_LIFETIME", "10")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Pricing.DeliveryFee != 5000 {
		t.Errorf("Pricing.DeliveryFee = %v, want 5000", cfg.Pricing.DeliveryFee)
	}
	if cfg.Features.EnableOrderEvents {
		t.Error("Features.EnableOrderEvents should be false")
	}
	if cfg.Database.MaxLifetime != 10*time.Minute {
		t.Errorf("Database.MaxLifetime = %v, want 10m", cfg.Database.MaxLifetime)
	}
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("PRICING_TAX_RATE", "ten percent")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Pricing.TaxRate != 0.10 {
		t.Errorf("Pricing.TaxRate = %v, want default 0.10", cfg.Pricing.TaxRate)
	}
}

func TestConnectionString(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Name: "storefront", SSLMode: "disable",
	}
	want := "host=db port=5432 user=u password=p dbname=storefront sslmode=disable"
	if got := d.ConnectionString(); got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}
