package utils

import "testing"

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  <b>hi</b>  "); got != "&lt;b&gt;hi&lt;/b&gt;" {
		t.Errorf("SanitizeString = %q", got)
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Alice@Example.COM  ", "alice@example.com"},
		{"+1415\t5552671", "+14155552671"},
		{"User_Name", "user_name"},
	}

	for _, tt := range tests {
		if got := SanitizeIdentifier(tt.input); got != tt.want {
			t.Errorf("SanitizeIdentifier(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeUserInputPreservesCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  AliceSmith  ", "AliceSmith"},
		{"Alice@Example.COM", "Alice@Example.COM"},
		{"+1415\t5552671", "+14155552671"},
	}

	for _, tt := range tests {
		if got := SanitizeUserInput(tt.input); got != tt.want {
			t.Errorf("SanitizeUserInput(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeTextKeepsNewlines(t *testing.T) {
	got := SanitizeText("line one\nline two")
	if got != "line one\nline two" {
		t.Errorf("SanitizeText = %q", got)
	}

	if got := SanitizeText("<script>x</script>"); got == "<script>x</script>" {
		t.Error("SanitizeText did not escape HTML")
	}
}
