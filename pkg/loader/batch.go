package loader

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/url"
	"strings"

	"github.com/dwijnand/servo/internal/errors"
	"github.com/dwijnand/servo/pkg/css"
	"github.com/dwijnand/servo/pkg/link"
)

// fetchFunc retrieves the body of one stylesheet URL.
type fetchFunc func(ctx context.Context, u *url.URL) ([]byte, error)

// batchRun drives the sub-load protocol for one Load call. Fetches happen
// on their own goroutines; every piece of owner-visible bookkeeping (the
// visited set included) runs on the element's execution context, so no
// locking is needed.
type batchRun struct {
	owner    link.Owner
	req      link.Request
	fetch    fetchFunc
	logger   *slog.Logger
	maxDepth int

	visited map[string]bool
}

// start begins the batch. Must be called on the element's execution
// context, i.e. from Load itself.
func start(req link.Request, owner link.Owner, fetch fetchFunc, logger *slog.Logger, maxDepth int) {
	b := &batchRun{
		owner:    owner,
		req:      req,
		fetch:    fetch,
		logger:   logger,
		maxDepth: maxDepth,
		visited:  map[string]bool{req.URL.String(): true},
	}

	owner.NoteLoadStarted(req.Generation)
	go b.fetchOne(req.URL, 0, true)
}

// fetchOne performs one sub-load and posts its bookkeeping back.
func (b *batchRun) fetchOne(u *url.URL, depth int, isRoot bool) {
	body, err := b.fetch(context.Background(), u)

	ok := err == nil
	if !ok {
		b.logger.Debug("sub-load failed",
			"url", u.String(),
			"generation", uint32(b.req.Generation),
			"error", errors.FromError(err, "E020").FormatCompact())
	}
	if ok && isRoot && b.req.Integrity != "" {
		if ierr := verifyIntegrity(body, b.req.Integrity); ierr != nil {
			b.logger.Warn("integrity check failed",
				"url", u.String(),
				"error", ierr.FormatCompact())
			ok = false
		}
	}

	b.owner.PostTask(func() {
		var sheet *css.Stylesheet
		var nested []*url.URL

		if ok {
			sheet = css.NewStylesheet(u, string(body))
			if isRoot {
				sheet.WithMedia(b.req.Media)
			}

			refs := sheet.Imports()
			if len(refs) > 0 && depth >= b.maxDepth {
				b.logger.Warn("import depth exceeded",
					"url", u.String(),
					"error", errors.New("E022").FormatCompact())
				ok = false
			} else {
				nested = b.resolveImports(u, refs)
				// Starts must land before this completion: otherwise the
				// batch could drain while imports are still fanning out.
				for range nested {
					b.owner.NoteLoadStarted(b.req.Generation)
				}
			}
		}

		if ok && isRoot {
			b.owner.InstallStylesheet(b.req.Generation, sheet)
		}
		b.owner.NoteLoadFinished(b.req.Generation, ok)

		for _, nu := range nested {
			go b.fetchOne(nu, depth+1, false)
		}
	})
}

// resolveImports resolves import references against the importing sheet's
// URL, dropping references that don't resolve or were already fetched in
// this batch (import cycles).
func (b *batchRun) resolveImports(base *url.URL, refs []string) []*url.URL {
	var out []*url.URL
	for _, ref := range refs {
		nu, err := base.Parse(ref)
		if err != nil {
			b.logger.Debug("import did not resolve", "ref", ref, "error", err)
			continue
		}
		key := nu.String()
		if b.visited[key] {
			continue
		}
		b.visited[key] = true
		out = append(out, nu)
	}
	return out
}

// verifyIntegrity checks a body against integrity metadata of the form
// "sha256-<base64 digest>".
func verifyIntegrity(body []byte, integrity string) *errors.ServoError {
	encoded, ok := strings.CutPrefix(integrity, "sha256-")
	if !ok {
		return errors.New("E024")
	}
	want, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return errors.New("E024").Wrap(err)
	}

	sum := sha256.Sum256(body)
	if subtle.ConstantTimeCompare(sum[:], want) != 1 {
		return errors.New("E021")
	}
	return nil
}
