package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/dwijnand/servo"
	"github.com/dwijnand/servo/internal/config"
	"github.com/dwijnand/servo/internal/errors"
	"github.com/dwijnand/servo/pkg/link"
	"github.com/dwijnand/servo/pkg/loader"
)

func loadCmd() *cobra.Command {
	var (
		base           string
		rel            string
		media          string
		integrity      string
		crossorigin    string
		sizes          string
		parserInserted bool
		timeout        time.Duration
		maxDepth       int
		s3Region       string
		verbose        bool
	)

	cmd := &cobra.Command{
		Use:   "load <href>",
		Short: "Load a stylesheet or icon through a link element",
		Long: `Load resolves href against the base URL, runs the link element's
attribute evaluation, and waits for the load batch to complete.

The rel attribute decides what happens: "stylesheet" fetches the
sheet and its imports as one batch, "icon" dispatches an embedder
notice without fetching.

Examples:
  servoload load /styles/site.css --base=https://example.com/
  servoload load print.css --base=https://example.com/ --media=print
  servoload load site.css --base=https://example.com/ --integrity=sha256-...
  servoload load s3://assets/site.css --base=https://example.com/ --s3-region=us-east-1
  servoload load favicon.svg --base=https://example.com/ --rel=icon --sizes=any`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("base") && cfg.Base != "" {
				base = cfg.Base
			}
			if base == "" {
				return errors.New("E060").
					WithSuggestion("Pass --base or set \"base\" in servoload.json")
			}
			if !cmd.Flags().Changed("max-depth") {
				maxDepth = cfg.Loader.MaxDepth
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = cfg.LoadTimeout()
			}
			if !cmd.Flags().Changed("s3-region") && cfg.Loader.S3Region != "" {
				s3Region = cfg.Loader.S3Region
			}
			return runLoad(loadOptions{
				href:           args[0],
				base:           base,
				rel:            rel,
				media:          media,
				integrity:      integrity,
				crossorigin:    crossorigin,
				sizes:          sizes,
				parserInserted: parserInserted,
				timeout:        timeout,
				maxDepth:       maxDepth,
				s3Region:       s3Region,
				verbose:        verbose,
			})
		},
	}

	cmd.Flags().StringVarP(&base, "base", "b", "", "Document base URL (required)")
	cmd.Flags().StringVarP(&rel, "rel", "r", "stylesheet", "Link relationship (rel attribute)")
	cmd.Flags().StringVarP(&media, "media", "m", "", "Media descriptor (media attribute)")
	cmd.Flags().StringVarP(&integrity, "integrity", "i", "", "Integrity metadata, e.g. sha256-<base64>")
	cmd.Flags().StringVar(&crossorigin, "crossorigin", "", "CORS mode: anonymous or use-credentials")
	cmd.Flags().StringVar(&sizes, "sizes", "", "Icon sizes (sizes attribute)")
	cmd.Flags().BoolVar(&parserInserted, "parser-inserted", false, "Treat the element as parser-created (blocking)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "Overall load timeout")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 8, "Nested @import depth limit")
	cmd.Flags().StringVar(&s3Region, "s3-region", "", "Enable s3:// hrefs against this region")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	return cmd
}

type loadOptions struct {
	href           string
	base           string
	rel            string
	media          string
	integrity      string
	crossorigin    string
	sizes          string
	parserInserted bool
	timeout        time.Duration
	maxDepth       int
	s3Region       string
	verbose        bool
}

// reportMonitor forwards the outcomes the CLI waits on.
type reportMonitor struct {
	link.NopMonitor
	batches chan bool
	icons   chan string
}

func (m *reportMonitor) BatchCompleted(gen link.GenerationID, anyFailed bool) {
	m.batches <- anyFailed
}

func (m *reportMonitor) IconNotified(u *url.URL) {
	m.icons <- u.String()
}

func runLoad(opts loadOptions) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	doc, err := servo.NewDocument(opts.base, servo.WithDocumentLogger(logger))
	if err != nil {
		return err
	}
	defer doc.Close()

	mon := &reportMonitor{
		batches: make(chan bool, 1),
		icons:   make(chan string, 4),
	}

	linkOpts := []servo.LinkOption{
		servo.WithMonitor(mon),
		servo.WithLinkLogger(logger),
	}
	if opts.parserInserted {
		linkOpts = append(linkOpts, servo.ParserInserted())
	}

	el := servo.NewLink(doc, buildLoader(doc, logger, opts), linkOpts...)

	// All element state belongs to the document's execution context.
	doc.Post(func() {
		n := el.Node()
		n.SetAttr("rel", opts.rel)
		if opts.media != "" {
			n.SetAttr("media", opts.media)
		}
		if opts.integrity != "" {
			n.SetAttr("integrity", opts.integrity)
		}
		if opts.crossorigin != "" {
			n.SetAttr("crossorigin", opts.crossorigin)
		}
		if opts.sizes != "" {
			n.SetAttr("sizes", opts.sizes)
		}
		n.SetAttr("href", opts.href)
		n.Attach()
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()
	go doc.Run(ctx)

	select {
	case anyFailed := <-mon.batches:
		if anyFailed {
			warn("load batch completed with failures")
			return fmt.Errorf("one or more sub-loads failed")
		}
		success("stylesheet loaded")
		// Read the slot on the execution context, like everything else.
		type sheetInfo struct {
			url     string
			imports int
			bytes   int
		}
		infoc := make(chan *sheetInfo, 1)
		doc.Post(func() {
			if sheet := el.Stylesheet(); sheet != nil {
				infoc <- &sheetInfo{
					url:     sheet.URL().String(),
					imports: len(sheet.Imports()),
					bytes:   len(sheet.Body()),
				}
				return
			}
			infoc <- nil
		})
		if si := <-infoc; si != nil {
			info("url:     %s", si.url)
			info("imports: %d", si.imports)
			info("bytes:   %d", si.bytes)
		}
		return nil

	case iconURL := <-mon.icons:
		success("icon notice dispatched")
		info("url: %s", iconURL)
		if opts.sizes != "" {
			info("sizes: %s", opts.sizes)
		}
		return nil

	case <-ctx.Done():
		errorMsg("no load completed within %s", opts.timeout)
		return ctx.Err()
	}
}

// buildLoader assembles the scheme mux: http(s) always, s3 when enabled.
func buildLoader(doc *servo.Document, logger *slog.Logger, opts loadOptions) servo.Loader {
	origin := (&url.URL{Scheme: doc.BaseURL().Scheme, Host: doc.BaseURL().Host}).String()

	httpLoader := loader.NewHTTP(
		loader.WithLogger(logger),
		loader.WithMaxDepth(opts.maxDepth),
		loader.WithTimeout(opts.timeout),
		loader.WithReferrer(doc.BaseURL().String()),
		loader.WithOrigin(origin),
	)

	mux := loader.NewMux(logger).
		Handle("http", httpLoader).
		Handle("https", httpLoader)

	if opts.s3Region != "" {
		client := s3.New(s3.Options{Region: opts.s3Region})
		mux.Handle("s3", loader.NewS3(client,
			loader.WithS3Logger(logger),
			loader.WithS3MaxDepth(opts.maxDepth)))
	}

	return mux
}
