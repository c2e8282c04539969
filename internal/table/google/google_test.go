package google

import (
	"context"
	"testing"
)

func TestIsHeaderRow(t *testing.T) {
	cases := []struct {
		cells []string
		want  bool
	}{
		{[]string{"id", "description"}, true},
		{[]string{"ID", "DESCRIPTION"}, true},
		{[]string{"abc-123", "coffee"}, false},
		{[]string{}, false},
	}
	for i, tc := range cases {
		if got := isHeaderRow(tc.cells); got != tc.want {
			t.Fatalf("case %d: isHeaderRow(%v) = %v, want %v", i, tc.cells, got, tc.want)
		}
	}
}

func TestToStringsTrims(t *testing.T) {
	got := toStrings([]interface{}{" a ", 12.5, true})
	if got[0] != "a" || got[1] != "12.5" || got[2] != "true" {
		t.Fatalf("unexpected conversion: %v", got)
	}
}

func TestIsEmptyRow(t *testing.T) {
	if !isEmptyRow([]string{"", "", ""}) {
		t.Fatalf("all-blank row should be empty")
	}
	if isEmptyRow([]string{"", "x"}) {
		t.Fatalf("row with content is not empty")
	}
}

func TestNewRequiresSpreadsheetID(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error for missing spreadsheet id")
	}
}

func TestResolveCredentialsPrefersInline(t *testing.T) {
	data, err := resolveCredentials(Config{CredentialsJSON: `{"type":"service_account"}`, CredentialsFile: "/does/not/exist"})
	if err != nil {
		t.Fatalf("resolveCredentials: %v", err)
	}
	if string(data) != `{"type":"service_account"}` {
		t.Fatalf("unexpected credentials: %s", data)
	}

	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	if _, err := resolveCredentials(Config{}); err == nil {
		t.Fatalf("expected error when no credentials are configured")
	}
}
