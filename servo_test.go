package servo

import (
	"testing"

	"github.com/dwijnand/servo/pkg/css"
)

// stubLoader completes every request with a fixed body on the next drain.
func stubLoader(body string) LoaderFunc {
	return func(req Request, owner Owner) {
		owner.NoteLoadStarted(req.Generation)
		u := req.URL
		owner.PostTask(func() {
			owner.InstallStylesheet(req.Generation, css.NewStylesheet(u, body))
			owner.NoteLoadFinished(req.Generation, true)
		})
	}
}

func TestLinkLifecycleThroughFacade(t *testing.T) {
	doc, err := NewDocument("https://example.com/page")
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}

	el := NewLink(doc, stubLoader("body { margin: 0 }"))
	el.Node().SetAttr("rel", "stylesheet")
	el.Node().SetAttr("href", "/styles/site.css")
	el.Node().Attach()
	doc.Drain()

	sheets := doc.Stylesheets()
	if len(sheets) != 1 {
		t.Fatalf("document stylesheets = %d, want 1", len(sheets))
	}
	if got := sheets[0].URL().String(); got != "https://example.com/styles/site.css" {
		t.Errorf("sheet URL = %q", got)
	}

	view := el.SheetView()
	if view == nil || view.Href() != "https://example.com/styles/site.css" {
		t.Errorf("unexpected sheet view: %+v", view)
	}

	el.Node().Detach()
	doc.Drain()
	if got := len(doc.Stylesheets()); got != 0 {
		t.Errorf("document stylesheets after detach = %d, want 0", got)
	}
}

func TestFacadeDocumentOptions(t *testing.T) {
	if _, err := NewDocument("not a url"); err == nil {
		t.Fatal("expected an error for a relative base URL")
	}

	doc, err := NewDocument("https://example.com/", WithoutBrowsingContext())
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	if doc.HasBrowsingContext() {
		t.Fatal("expected no browsing context")
	}
}

func TestParseMediaQueryFacade(t *testing.T) {
	m := ParseMediaQuery("screen, print and (min-width: 10em)")
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	if got := m.Text(); got != "screen, print and (min-width: 10em)" {
		t.Errorf("Text() = %q", got)
	}
}
