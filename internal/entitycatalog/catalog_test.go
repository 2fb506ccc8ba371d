package entitycatalog

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
patterns:
  cm_mac:
    - "CmMacAddress\":\"([0-9a-f]{2}(:[0-9a-f]{2}){5})\""
  cpe_ip:
    - "CpeIpAddress\":\"([0-9a-fA-F:.]+)\""
aliases:
  cm_mac:
    - cm
    - cable modem
  cpe_ip:
    - cpe
relationships:
  cm_mac:
    - cpe_ip
  cpe_ip:
    - cm_mac
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "entities.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatalf("write sample config: %v", err)
	}
	return path
}

func TestLoadParsesTypes(t *testing.T) {
	cat, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cat.Names()) != 2 {
		t.Fatalf("want 2 types, got %d", len(cat.Names()))
	}
	cm, ok := cat.Get("cm_mac")
	if !ok {
		t.Fatal("cm_mac not found")
	}
	if len(cm.Aliases) != 2 || cm.Aliases[0] != "cm" {
		t.Fatalf("unexpected aliases: %v", cm.Aliases)
	}
	if len(cm.Relationships) != 1 || cm.Relationships[0] != "cpe_ip" {
		t.Fatalf("unexpected relationships: %v", cm.Relationships)
	}
}

func TestLoadRejectsMalformedRegex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	bad := "patterns:\n  broken:\n    - \"(unclosed\"\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("want error for malformed regex")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path.yaml"); err == nil {
		t.Fatal("want error for missing file")
	}
}
