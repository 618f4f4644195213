package webintel

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"www.acme.com", "https://www.acme.com", false},
		{"acme.com/", "https://acme.com", false},
		{"https://acme.com", "https://acme.com", false},
		{"http://acme.com", "http://acme.com", false},
		{"  acme.io  ", "https://acme.io", false},
		{"", "", true},
		{"localhost", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NormalizeURL(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeURL(%q): %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestExtractTitleAndDescription(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<title>Acme — Rockets as a Service</title>
		<meta name="description" content="Acme builds rockets.">
	</head><body></body></html>`)

	snap := extract(doc)
	if snap.Title != "Acme — Rockets as a Service" {
		t.Errorf("title = %q", snap.Title)
	}
	if snap.Description != "Acme builds rockets." {
		t.Errorf("description = %q", snap.Description)
	}
}

func TestExtractFallsBackToOpenGraph(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<meta property="og:site_name" content="Acme">
		<meta property="og:description" content="Rockets, delivered.">
	</head><body></body></html>`)

	snap := extract(doc)
	if snap.Title != "Acme" {
		t.Errorf("title = %q, want og:site_name fallback", snap.Title)
	}
	if snap.Description != "Rockets, delivered." {
		t.Errorf("description = %q", snap.Description)
	}
}

func TestDetectTechnologies(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<script src="/_next/static/main.js"></script>
		<script src="https://js.stripe.com/v3/"></script>
		<script src="https://www.googletagmanager.com/gtm.js"></script>
		<link href="/wp-content/themes/acme/style.css" rel="stylesheet">
	</head><body></body></html>`)

	techs := detectTechnologies(doc)
	want := map[string]bool{"Next.js": true, "Stripe": true, "Google Tag Manager": true, "WordPress": true}
	if len(techs) != len(want) {
		t.Fatalf("techs = %v, want %d entries", techs, len(want))
	}
	for _, tech := range techs {
		if !want[tech] {
			t.Errorf("unexpected technology %q", tech)
		}
	}
}

func TestDetectTechnologiesDeduplicates(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<script src="/react.production.min.js"></script>
		<script src="/react-dom.production.min.js"></script>
	</head><body></body></html>`)

	techs := detectTechnologies(doc)
	if len(techs) != 1 || techs[0] != "React" {
		t.Errorf("techs = %v, want [React]", techs)
	}
}
