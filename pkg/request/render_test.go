package request

import (
	"encoding/json"
	"strings"
	"testing"
)

func sampleResult() Result {
	return Result{
		Changed:     true,
		Username:    "alice",
		Password:    "[REDACTED]",
		Realm:       "EXAMPLE.COM",
		Principal:   "alice@EXAMPLE.COM",
		Force:       false,
		Forwardable: "-f",
	}
}

func TestWriteJSON(t *testing.T) {
	var buf strings.Builder
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["changed"] != true {
		t.Errorf("changed = %v", decoded["changed"])
	}
	if decoded["principal"] != "alice@EXAMPLE.COM" {
		t.Errorf("principal = %v", decoded["principal"])
	}
	if decoded["password"] != "[REDACTED]" {
		t.Errorf("password = %v", decoded["password"])
	}
	if _, present := decoded["failed"]; present {
		t.Error("failed should be omitted on success")
	}
}

func TestWriteJSONFailureFields(t *testing.T) {
	res := sampleResult()
	res.Changed = false
	res.Failed = true
	res.Msg = "kinit: Password incorrect"

	var buf strings.Builder
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if !strings.Contains(buf.String(), "kinit: Password incorrect") {
		t.Error("diagnostic missing from JSON output")
	}
}

func TestWriteTable(t *testing.T) {
	var buf strings.Builder
	if err := WriteTable(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteTable() error: %v", err)
	}

	for _, want := range []string{"alice@EXAMPLE.COM", "[REDACTED]", "changed"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("table output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	var buf strings.Builder
	if err := Write(&buf, sampleResult(), "xml"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
