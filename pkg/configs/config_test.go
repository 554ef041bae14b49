package configs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yeisme/genovault/pkg/configs"
	"github.com/yeisme/genovault/pkg/rule"
)

func TestDefaultsAreValid(t *testing.T) {
	c := configs.Default()

	if err := rule.ValidateStruct(&c); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}

	if c.DB.Type != configs.SQLite || c.Events.Enabled || c.Auth.Enabled {
		t.Fatalf("unexpected defaults: db=%s events=%v auth=%v", c.DB.Type, c.Events.Enabled, c.Auth.Enabled)
	}
}

func TestDSN(t *testing.T) {
	cases := []struct {
		cfg    configs.DBConfig
		family string
		dsn    string
	}{
		{
			configs.DBConfig{Type: configs.Pg, Host: "db", Port: 5432, User: "u", Password: "p", Database: "gv", SSLMode: "disable"},
			"postgres",
			"host=db port=5432 user=u password=p dbname=gv sslmode=disable TimeZone=UTC",
		},
		{
			configs.DBConfig{Type: configs.MariaDB, Host: "db", Port: 3306, User: "u", Password: "p", Database: "gv"},
			"mysql",
			"u:p@tcp(db:3306)/gv?charset=utf8mb4&parseTime=True&loc=UTC",
		},
		{configs.DBConfig{Type: configs.SQLite, Database: "gv"}, "sqlite", "file:gv.db?_pragma=foreign_keys(1)"},
		{configs.DBConfig{Type: configs.SQLite, Path: "/var/lib/gv/catalog.db"}, "sqlite", "file:/var/lib/gv/catalog.db?_pragma=foreign_keys(1)"},
		{configs.DBConfig{Type: "oracle"}, "", ""},
	}

	for _, tc := range cases {
		if got := tc.cfg.Family(); got != tc.family {
			t.Errorf("%s: family = %q, want %q", tc.cfg.Type, got, tc.family)
		}

		if got := tc.cfg.GetDSN(); got != tc.dsn {
			t.Errorf("%s: dsn = %q, want %q", tc.cfg.Type, got, tc.dsn)
		}
	}
}

func TestInitConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()

	yaml := []byte("server:\n  port: 9000\ncatalog:\n  page_size: 50\ndb:\n  type: sqlite\n  path: catalog.db\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GENOVAULT_SERVER_PORT", "9100")
	t.Setenv("GENOVAULT_EVENTS_ENABLED", "true")

	if err := configs.InitConfig(dir); err != nil {
		t.Fatal(err)
	}

	c := configs.GetConfig()
	if c.Server.Port != 9100 {
		t.Errorf("env must win over file: port = %d", c.Server.Port)
	}

	if c.Catalog.PageSize != 50 || !c.Events.Enabled {
		t.Errorf("page_size = %d, events = %v", c.Catalog.PageSize, c.Events.Enabled)
	}

	if c.DB.GetDSN() != "file:catalog.db?_pragma=foreign_keys(1)" {
		t.Errorf("dsn = %s", c.DB.GetDSN())
	}
}

func TestInitConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("kv:\n  type: etcd\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := configs.InitConfig(dir); err == nil {
		t.Fatal("expected validation error for unknown kv type")
	}
}
