package sanitizer

import (
	"strings"
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Chicken Biryani  ",
			want:  "Chicken Biryani",
		},
		{
			name:  "multiple spaces between words",
			input: "Chicken    Biryani",
			want:  "Chicken Biryani",
		},
		{
			name:  "tabs and newlines",
			input: "Chicken\t\nBiryani",
			want:  "Chicken Biryani",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Café & Crème brûlée ",
			want:  "Café & Crème brûlée",
		},
		{
			name:  "sinhala characters",
			input: " කිරිබත්  ",
			want:  "කිරිබත්",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "Fried rice",
			want:  "Fried rice",
		},
		{
			name:  "tags removed",
			input: "<b>Fried</b> <i>rice</i>",
			want:  "Fried rice",
		},
		{
			name:  "script removed",
			input: "Cake<script>alert(1)</script>",
			want:  "Cake",
		},
		{
			name:  "entities decoded",
			input: "Fish &amp; chips",
			want:  "Fish & chips",
		},
		{
			name:  "ampersand survives",
			input: "Fish & chips",
			want:  "Fish & chips",
		},
		{
			name:  "whitespace collapsed after stripping",
			input: "<p>Lime</p>\n\n<p>juice</p>",
			want:  "Lime juice",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlainText(tt.input)
			if got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlainText_LongInput(t *testing.T) {
	in := strings.Repeat("<span>word</span> ", 5000)
	got := PlainText(in)
	if strings.Contains(got, "<") {
		t.Error("markup left in output")
	}
	if !strings.HasPrefix(got, "word word") {
		t.Errorf("unexpected prefix: %q", got[:20])
	}
}
