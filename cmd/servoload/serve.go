package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dwijnand/servo"
	"github.com/dwijnand/servo/internal/config"
	"github.com/dwijnand/servo/pkg/embedder"
	"github.com/dwijnand/servo/pkg/link"
	"github.com/dwijnand/servo/pkg/loader"
	"github.com/dwijnand/servo/pkg/observe"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		base    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the coordinator debug server",
		Long: `Serve runs an HTTP server that drives link elements on demand.

Endpoints:
  POST /load?href=...&rel=...   issue a load and report the outcome
  GET  /embedder                WebSocket bridge broadcasting icon notices
  GET  /metrics                 Prometheus metrics
  GET  /assets/*                sample stylesheets for local experiments

Examples:
  servoload serve
  servoload serve --addr=:9090 --base=http://localhost:9090/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Serve.Addr
			}
			if !cmd.Flags().Changed("base") && cfg.Base != "" {
				base = cfg.Base
			}
			return runServe(addr, base, verbose)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	cmd.Flags().StringVarP(&base, "base", "b", "", "Document base URL (default: http://localhost<addr>/)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	return cmd
}

// sampleSheets is served under /assets/ so a bare serve invocation has
// something to load against.
var sampleSheets = map[string]string{
	"site.css":  "@import \"reset.css\";\n\nbody { margin: 0; font-family: sans-serif }\n",
	"reset.css": "* { box-sizing: border-box }\n",
	"print.css": "nav { display: none }\n",
}

type loadReport struct {
	URL       string `json:"url,omitempty"`
	Outcome   string `json:"outcome"`
	AnyFailed bool   `json:"any_failed,omitempty"`
	Icon      string `json:"icon,omitempty"`
}

func runServe(addr, base string, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if base == "" {
		base = fmt.Sprintf("http://localhost%s/", addr)
	}

	bridge := embedder.NewBridge(embedder.WithLogger(logger))
	defer bridge.Close()

	doc, err := servo.NewDocument(base,
		servo.WithDocumentLogger(logger),
		servo.WithEmbedder(embedder.Fanout(bridge, embedder.Log(logger))),
	)
	if err != nil {
		return err
	}
	defer doc.Close()

	metrics := observe.Prometheus()
	httpLoader := loader.NewHTTP(
		loader.WithLogger(logger),
		loader.WithReferrer(base),
		loader.WithTimeout(15*time.Second),
	)
	mux := loader.NewMux(logger).
		Handle("http", httpLoader).
		Handle("https", httpLoader)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go doc.Run(ctx)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/embedder", bridge)

	r.Get("/assets/{name}", func(w http.ResponseWriter, req *http.Request) {
		body, ok := sampleSheets[chi.URLParam(req, "name")]
		if !ok {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "text/css")
		fmt.Fprint(w, body)
	})

	r.Post("/load", func(w http.ResponseWriter, req *http.Request) {
		href := req.URL.Query().Get("href")
		if href == "" {
			http.Error(w, "missing href parameter", http.StatusBadRequest)
			return
		}
		rel := req.URL.Query().Get("rel")
		if rel == "" {
			rel = "stylesheet"
		}

		report, err := driveElement(req.Context(), doc, mux, metrics, driveRequest{
			href:  href,
			rel:   rel,
			media: req.URL.Query().Get("media"),
			sizes: req.URL.Query().Get("sizes"),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusGatewayTimeout)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	})

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutCtx)
	}()

	printBanner()
	success("listening on %s", addr)
	info("document base: %s", base)
	info("POST /load?href=/assets/site.css to issue a load")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

type driveRequest struct {
	href  string
	rel   string
	media string
	sizes string
}

// driveElement runs one attach-to-outcome cycle on a fresh link element.
func driveElement(ctx context.Context, doc *servo.Document, l servo.Loader, metrics servo.Monitor, dr driveRequest) (*loadReport, error) {
	mon := &reportMonitor{
		batches: make(chan bool, 1),
		icons:   make(chan string, 4),
	}

	el := servo.NewLink(doc, l, servo.WithMonitor(servo.MultiMonitor(metrics, mon)))
	doc.Post(func() {
		n := el.Node()
		n.SetAttr("rel", dr.rel)
		if dr.media != "" {
			n.SetAttr("media", dr.media)
		}
		if dr.sizes != "" {
			n.SetAttr("sizes", dr.sizes)
		}
		n.SetAttr("href", dr.href)
		n.Attach()
	})
	defer doc.Post(func() { el.Node().Detach() })

	select {
	case anyFailed := <-mon.batches:
		outcome := "clean"
		if anyFailed {
			outcome = "degraded"
		}
		report := &loadReport{Outcome: outcome, AnyFailed: anyFailed}
		infoc := make(chan string, 1)
		doc.Post(func() {
			if sheet := el.Stylesheet(); sheet != nil {
				infoc <- sheet.URL().String()
				return
			}
			infoc <- ""
		})
		report.URL = <-infoc
		return report, nil

	case icon := <-mon.icons:
		return &loadReport{Outcome: "icon", Icon: icon}, nil

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

var _ link.Monitor = (*reportMonitor)(nil)
