package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bridge.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	path := writeConfig(t, `{"receipt":{"secret":"s3cret","issuer":"club","ttl_seconds":60},"deal_seed":7,"log_level":"debug"}`)

	c, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if c.Receipt.Secret != "s3cret" || c.Receipt.Issuer != "club" || c.Receipt.TTLSeconds != 60 {
		t.Fatalf("unexpected receipt config: %+v", c.Receipt)
	}
	if c.DealSeed == nil || *c.DealSeed != 7 || c.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestParseEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"receipt":{"secret":"from-file"},"redis_url":"redis://file:6379/0"}`)
	t.Setenv("BRIDGE_RECEIPT_SECRET", "from-env")
	t.Setenv("BRIDGE_DEAL_SEED", "42")

	c, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if c.Receipt.Secret != "from-env" {
		t.Fatalf("secret = %q, want from-env", c.Receipt.Secret)
	}
	if c.DealSeed == nil || *c.DealSeed != 42 {
		t.Fatalf("deal seed = %v, want 42", c.DealSeed)
	}
	if c.RedisURL != "redis://file:6379/0" {
		t.Fatalf("redis url = %q, file value should survive", c.RedisURL)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Parse(writeConfig(t, `{not json`)); err == nil {
		t.Fatalf("expected error for malformed file")
	}
	t.Setenv("BRIDGE_DEAL_SEED", "many")
	if _, err := Parse(""); err == nil {
		t.Fatalf("expected error for malformed env value")
	}
}

func TestReceiptDefaults(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })

	cfg = nil
	rc := Receipt()
	if rc.Issuer != DefaultReceiptIssuer || rc.TTLSeconds != DefaultReceiptTTLSeconds {
		t.Fatalf("unexpected defaults: %+v", rc)
	}
	if seed, ok := DealSeed(); ok || seed != 0 {
		t.Fatalf("DealSeed() without config = %d, %v; want unset", seed, ok)
	}

	cfg = &BridgeConfig{}
	if _, ok := DealSeed(); ok {
		t.Fatal("DealSeed() should be unset when the config omits it")
	}

	nine := int64(9)
	cfg = &BridgeConfig{Receipt: ReceiptConfig{Secret: "x", TTLSeconds: 30}, DealSeed: &nine}
	rc = Receipt()
	if rc.Secret != "x" || rc.TTLSeconds != 30 || rc.Issuer != DefaultReceiptIssuer {
		t.Fatalf("unexpected receipt config: %+v", rc)
	}
	if seed, ok := DealSeed(); !ok || seed != 9 {
		t.Fatalf("DealSeed() = %d, %v; want 9", seed, ok)
	}
}

func TestParseFromExplicitEnvironment(t *testing.T) {
	t.Setenv("BRIDGE_RECEIPT_ISSUER", "process")
	c, err := ParseFrom("", map[string]string{
		"BRIDGE_RECEIPT_SECRET": "runtime-secret",
		"BRIDGE_DEAL_SEED":      "3",
	})
	if err != nil {
		t.Fatalf("ParseFrom error: %v", err)
	}
	if c.Receipt.Secret != "runtime-secret" || c.DealSeed == nil || *c.DealSeed != 3 {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.Receipt.Issuer != "" {
		t.Fatalf("issuer = %q, process environment should be ignored", c.Receipt.Issuer)
	}
}
