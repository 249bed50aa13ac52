package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPAddr != ":8081" {
		t.Errorf("HTTPAddr = %s", cfg.HTTPAddr)
	}
	if cfg.ServiceFee != 1000 {
		t.Errorf("ServiceFee = %d, want 1000", cfg.ServiceFee)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %s", cfg.TokenTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("SERVICE_FEE", "2500")
	t.Setenv("TOKEN_TTL_MINUTES", "30")

	cfg := Load()
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "k1:9092" || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if cfg.ServiceFee != 2500 {
		t.Errorf("ServiceFee = %d", cfg.ServiceFee)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %s", cfg.TokenTTL)
	}
}

func TestLoadBadIntFallsBack(t *testing.T) {
	t.Setenv("SERVICE_FEE", "gratis")
	if cfg := Load(); cfg.ServiceFee != 1000 {
		t.Errorf("ServiceFee = %d, want default 1000", cfg.ServiceFee)
	}
}
