package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("USE_MOCK_DATA", "")
	t.Setenv("MOCK_DELAY", "")
	t.Setenv("REPOSITORY", "")

	cfg := Load()
	if cfg.Client.UseMockData {
		t.Fatalf("mock mode must be off by default")
	}
	if cfg.Client.MockDelay != 500*time.Millisecond || cfg.Client.Retries != 1 {
		t.Fatalf("unexpected client defaults: %+v", cfg.Client)
	}
	if cfg.Server.Repository != RepositoryMemory || cfg.Server.Storage.Driver != StorageLocal {
		t.Fatalf("unexpected server defaults: %+v", cfg.Server)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("USE_MOCK_DATA", "true")
	t.Setenv("MOCK_DELAY", "0s")
	t.Setenv("HTTP_RETRIES", "3")
	t.Setenv("HTTP_RATE_LIMIT", "2.5")
	t.Setenv("REPOSITORY", "postgres")
	t.Setenv("DB_NAME", "apps")

	cfg := Load()
	if !cfg.Client.UseMockData || cfg.Client.MockDelay != 0 || cfg.Client.Retries != 3 || cfg.Client.RateLimit != 2.5 {
		t.Fatalf("client env not applied: %+v", cfg.Client)
	}
	if cfg.Server.Repository != RepositoryPostgres || cfg.Server.Database.Name != "apps" {
		t.Fatalf("server env not applied: %+v", cfg.Server)
	}
}

func TestClientValidate(t *testing.T) {
	if err := (Client{}).Validate(); err == nil {
		t.Fatalf("http mode without a base url must be rejected")
	}
	if err := (Client{UseMockData: true}).Validate(); err != nil {
		t.Fatalf("mock mode needs no base url: %v", err)
	}
	if err := (Client{APIBaseURL: "http://localhost:8080", Retries: -1}).Validate(); err == nil {
		t.Fatalf("negative retries must be rejected")
	}
}

func TestServerValidate(t *testing.T) {
	ok := Server{Repository: RepositoryMemory, Storage: Storage{Driver: StorageLocal, Dir: "/tmp"}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	bad := ok
	bad.Repository = "mongo"
	if err := bad.Validate(); err == nil {
		t.Fatalf("unknown repository must be rejected")
	}

	bad = ok
	bad.Storage = Storage{Driver: StorageS3}
	if err := bad.Validate(); err == nil {
		t.Fatalf("s3 without a bucket must be rejected")
	}
}

func TestDSN(t *testing.T) {
	d := Database{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	if got := d.DSN(); got != "host=db port=5432 user=u password=p dbname=n sslmode=disable" {
		t.Fatalf("unexpected dsn %q", got)
	}
}
