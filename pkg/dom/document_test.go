package dom

import (
	"context"
	"testing"
	"time"

	"github.com/dwijnand/servo/pkg/css"
	"github.com/dwijnand/servo/pkg/embedder"
)

// fakeOwner is a minimal StylesheetOwner for registry tests.
type fakeOwner struct {
	el       *Element
	blocking bool
}

func (o *fakeOwner) OwnerElement() *Element { return o.el }
func (o *fakeOwner) Blocking() bool         { return o.blocking }

func TestNewDocumentValidation(t *testing.T) {
	if _, err := NewDocument("https://example.com/"); err != nil {
		t.Errorf("absolute URL should be accepted: %v", err)
	}
	if _, err := NewDocument("/relative/path"); err == nil {
		t.Error("relative base URL should be rejected")
	}
	if _, err := NewDocument("://bad"); err == nil {
		t.Error("malformed base URL should be rejected")
	}
}

func TestResolveURL(t *testing.T) {
	d := newTestDoc(t)

	u, err := d.ResolveURL("styles/site.css")
	if err != nil {
		t.Fatalf("ResolveURL: %v", err)
	}
	if u.String() != "https://example.com/styles/site.css" {
		t.Errorf("resolved = %q", u)
	}
}

func TestStylesheetRegistryOrderAndIdempotence(t *testing.T) {
	d := newTestDoc(t)
	a := &fakeOwner{el: d.CreateElement("link")}
	b := &fakeOwner{el: d.CreateElement("link")}

	s1 := css.NewStylesheet(nil, "a{}")
	s2 := css.NewStylesheet(nil, "b{}")

	d.AddStylesheet(a, s1)
	d.AddStylesheet(b, s2)

	sheets := d.Stylesheets()
	if len(sheets) != 2 || sheets[0] != s1 || sheets[1] != s2 {
		t.Fatalf("Stylesheets() = %v", sheets)
	}

	// Removing an unregistered sheet is a no-op.
	d.RemoveStylesheet(a, s2)
	if len(d.Stylesheets()) != 2 {
		t.Error("removing unregistered sheet must not change the list")
	}

	d.RemoveStylesheet(a, s1)
	if sheets := d.Stylesheets(); len(sheets) != 1 || sheets[0] != s2 {
		t.Errorf("after remove, Stylesheets() = %v", sheets)
	}

	// Second removal is a no-op.
	d.RemoveStylesheet(a, s1)
	if len(d.Stylesheets()) != 1 {
		t.Error("double removal must be a no-op")
	}
}

func TestBlockingAccounting(t *testing.T) {
	d := newTestDoc(t)
	blocking := &fakeOwner{el: d.CreateElement("link"), blocking: true}
	plain := &fakeOwner{el: d.CreateElement("link")}

	d.NoteBlockingLoadStarted(plain)
	if d.PendingBlockingLoads() != 0 {
		t.Error("non-blocking owner must not count")
	}

	d.NoteBlockingLoadStarted(blocking)
	d.NoteBlockingLoadStarted(blocking)
	if d.PendingBlockingLoads() != 2 {
		t.Errorf("PendingBlockingLoads = %d, want 2", d.PendingBlockingLoads())
	}

	d.NoteStylesheetLoaded(plain, false)
	if d.PendingBlockingLoads() != 2 {
		t.Error("non-blocking outcome must not decrement")
	}

	d.NoteStylesheetLoaded(blocking, false)
	d.NoteStylesheetLoaded(blocking, true)
	if d.PendingBlockingLoads() != 0 {
		t.Errorf("PendingBlockingLoads = %d, want 0", d.PendingBlockingLoads())
	}
}

func TestWaitQuiescent(t *testing.T) {
	d := newTestDoc(t)
	owner := &fakeOwner{el: d.CreateElement("link"), blocking: true}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.Post(func() { d.NoteBlockingLoadStarted(owner) })

	released := make(chan error, 1)
	go func() {
		released <- d.WaitQuiescent(context.Background())
	}()

	select {
	case <-released:
		t.Fatal("WaitQuiescent returned while a blocking load is pending")
	case <-time.After(50 * time.Millisecond):
	}

	d.Post(func() { d.NoteStylesheetLoaded(owner, false) })

	select {
	case err := <-released:
		if err != nil {
			t.Errorf("WaitQuiescent: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WaitQuiescent did not release")
	}
}

func TestWaitQuiescentContextCancel(t *testing.T) {
	d := newTestDoc(t)
	owner := &fakeOwner{el: d.CreateElement("link"), blocking: true}

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()
	go d.Run(runCtx)

	d.Post(func() { d.NoteBlockingLoadStarted(owner) })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := d.WaitQuiescent(ctx); err != context.DeadlineExceeded {
		t.Errorf("WaitQuiescent = %v, want deadline exceeded", err)
	}
}

func TestNotifyIcon(t *testing.T) {
	var c embedder.Collector
	d := newTestDoc(t, WithEmbedder(&c))

	u, _ := d.ResolveURL("/favicon.ico")
	d.NotifyIcon(embedder.Icon{URL: u})
	if c.Len() != 1 {
		t.Errorf("collector got %d notices, want 1", c.Len())
	}

	// No embedder configured: a silent no-op.
	d2 := newTestDoc(t)
	d2.NotifyIcon(embedder.Icon{URL: u})
}
