package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chabad360/oscaddress/address"
	"github.com/chabad360/oscaddress/internal/demo"
	"github.com/chabad360/oscaddress/osc"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Listen      string
	MetricsAddr string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Receive OSC packets and print the decoded messages",
		Long: `Receive OSC packets over UDP and print every message that decodes into
the service message tree. Bundles are held until their time tag is due.
Messages that do not decode are logged and counted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.Listen, "listen", "l", "", "UDP listen address (overrides config)")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "HTTP address for /metrics (overrides config)")

	return cmd
}

// lockedWriter serializes writes from concurrent handlers.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func runServe(ctx context.Context, opts *ServeOptions, out io.Writer) error {
	cfg := opts.Config
	listen := cfg.Listen
	if opts.Listen != "" {
		listen = opts.Listen
	}
	metricsAddr := cfg.MetricsAddr
	if opts.MetricsAddr != "" {
		metricsAddr = opts.MetricsAddr
	}
	logger := opts.Logger

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := osc.NewMetrics(reg)

	w := &lockedWriter{w: out}
	d := &address.Dispatcher[demo.Toplevel]{
		Parse: demo.ParseToplevel,
		Handler: func(m demo.Toplevel, from net.Addr) {
			addr, _ := address.Address(m)
			logger.Info("message", zap.String("address", addr), zap.Any("from", from))
			fmt.Fprintf(w, "%s %#v\n", addr, m)
		},
		Logger:  logger,
		Metrics: metrics,
	}

	conn, err := net.ListenPacket("udp", listen)
	if err != nil {
		return err
	}

	srv := &osc.Server{
		Handler:     d.Dispatch,
		ReadTimeout: cfg.ReadTimeout,
		Logger:      logger,
		Metrics:     metrics,
	}

	if metricsAddr != "" {
		hs := &http.Server{
			Addr:              metricsAddr,
			Handler:           metricsHandler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = hs.Shutdown(shutdownCtx)
		}()
		logger.Info("serving metrics", zap.String("addr", metricsAddr))
	}

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	logger.Info("listening", zap.Stringer("addr", conn.LocalAddr()))
	fmt.Fprintf(w, "listening on %s\n", conn.LocalAddr())

	return srv.Serve(conn)
}

func metricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}
