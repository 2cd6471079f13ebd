package common

import (
	"strings"
	"testing"
)

func TestParseEntityType(t *testing.T) {
	tests := []struct {
		name string
		want EntityType
	}{
		{name: "person", want: EntityTypePerson},
		{name: "PLACE", want: EntityTypePlace},
		{name: " Date ", want: EntityTypeDate},
		{name: "Organization", want: EntityTypeOrganization},
	}

	for _, tt := range tests {
		got, err := ParseEntityType(tt.name)
		if err != nil {
			t.Errorf("ParseEntityType(%q) returned error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEntityType(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestParseEntityType_Suggestions(t *testing.T) {
	tests := []struct {
		name       string
		suggestion string
	}{
		{name: "Persn", suggestion: "Person"},
		{name: "platz", suggestion: "Place"},
		{name: "orgzn", suggestion: "Organization"},
	}

	for _, tt := range tests {
		_, err := ParseEntityType(tt.name)
		if err == nil {
			t.Errorf("ParseEntityType(%q) expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.suggestion) {
			t.Errorf("ParseEntityType(%q) error %q missing suggestion %q", tt.name, err, tt.suggestion)
		}
	}
}

func TestParseEntityType_Unknown(t *testing.T) {
	_, err := ParseEntityType("xyz")
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("unexpected suggestion for %q: %v", "xyz", err)
	}
}
