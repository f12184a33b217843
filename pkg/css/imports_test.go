package css

import (
	"net/url"
	"reflect"
	"testing"
)

func TestScanImports(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "no imports",
			body: "body { color: red; }",
			want: nil,
		},
		{
			name: "double quoted",
			body: `@import "reset.css"; body {}`,
			want: []string{"reset.css"},
		},
		{
			name: "single quoted",
			body: `@import 'reset.css';`,
			want: []string{"reset.css"},
		},
		{
			name: "url form bare",
			body: `@import url(theme/dark.css);`,
			want: []string{"theme/dark.css"},
		},
		{
			name: "url form quoted",
			body: `@import url("theme/dark.css");`,
			want: []string{"theme/dark.css"},
		},
		{
			name: "multiple imports",
			body: "@import \"a.css\";\n@import url(b.css);\nbody{}",
			want: []string{"a.css", "b.css"},
		},
		{
			name: "media condition after reference ignored",
			body: `@import "print.css" print;`,
			want: []string{"print.css"},
		},
		{
			name: "commented out import skipped",
			body: "/* @import \"a.css\"; */\n@import \"b.css\";",
			want: []string{"b.css"},
		},
		{
			name: "unterminated quote",
			body: `@import "broken.css`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanImports(tt.body)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ScanImports() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewStylesheet(t *testing.T) {
	u, _ := url.Parse("https://example.com/site.css")
	s := NewStylesheet(u, `@import "reset.css"; body { margin: 0 }`)

	if s.URL() != u {
		t.Errorf("URL() = %v, want %v", s.URL(), u)
	}
	if got := s.Imports(); len(got) != 1 || got[0] != "reset.css" {
		t.Errorf("Imports() = %v, want [reset.css]", got)
	}

	m := ParseMediaQuery("screen")
	if s.WithMedia(m).Media() != m {
		t.Error("WithMedia should attach the descriptor")
	}
}

func TestSheetView(t *testing.T) {
	u, _ := url.Parse("https://example.com/site.css")
	v := NewSheetView(NewStylesheet(u, "body{}"))

	if v.ContentType() != "text/css" {
		t.Errorf("ContentType() = %q, want text/css", v.ContentType())
	}
	if v.Href() != "https://example.com/site.css" {
		t.Errorf("Href() = %q", v.Href())
	}
	if !v.OriginClean() {
		t.Error("new view should start origin-clean")
	}

	v.SetOriginClean(false)
	if v.OriginClean() {
		t.Error("SetOriginClean(false) should stick")
	}

	v.SetDisabled(true)
	if !v.Disabled() {
		t.Error("SetDisabled(true) should stick")
	}

	v.SetTitle("main")
	if v.Title() != "main" {
		t.Errorf("Title() = %q, want main", v.Title())
	}
}
