package cli

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/roach88/w65harness/internal/harness"
)

// jobPath is the WebSocket endpoint.
const jobPath = "/job"

// defaultMaxMessage bounds one job message. Jobs embed whole memory images
// as base64, so this is generous.
const defaultMaxMessage = 4 << 20

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr       string
	MaxMessage int64
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run jobs sent over a WebSocket",
		Long: `Accept WebSocket connections on /job. Each text message is a JSON job;
each reply is the report, or {"error": "..."} if the job was rejected.
Messages on one connection run in order; connections run concurrently.

Example:
  w65harness serve --addr 127.0.0.1:6502`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "127.0.0.1:6502", "listen address")
	cmd.Flags().Int64Var(&opts.MaxMessage, "max-message", defaultMaxMessage, "largest accepted job message in bytes")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           newJobServer(slog.Default(), opts.MaxMessage).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving jobs", "addr", opts.Addr, "path", jobPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return WrapExitError(ExitCommandError, "server failed", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// jobServer runs jobs received over WebSocket connections.
type jobServer struct {
	logger     *slog.Logger
	upgrader   websocket.Upgrader
	maxMessage int64
}

func newJobServer(logger *slog.Logger, maxMessage int64) *jobServer {
	if maxMessage <= 0 {
		maxMessage = defaultMaxMessage
	}
	return &jobServer{logger: logger, maxMessage: maxMessage}
}

// Handler routes the job endpoint.
func (s *jobServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(jobPath, s.serveClient)
	return mux
}

func (s *jobServer) serveClient(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade error", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.maxMessage)

	logger := s.logger.With("client", conn.RemoteAddr().String())
	logger.Debug("client connected")
	for {
		tp, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("closing client connection", "error", err)
			}
			logger.Debug("client disconnected")
			return
		}

		var reply []byte
		if tp != websocket.TextMessage {
			reply = errorReply(errors.New("expected a text message containing a JSON job"))
		} else {
			reply = s.runMessage(r.Context(), msg)
		}
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			logger.Warn("write failed", "error", err)
			return
		}
	}
}

// runMessage turns one job message into its reply.
func (s *jobServer) runMessage(ctx context.Context, msg []byte) []byte {
	job, _, err := harness.ParseJob("message", msg, ".json")
	if err != nil {
		return errorReply(err)
	}
	result, err := harness.RunContext(ctx, job, harness.WithLogger(s.logger))
	if err != nil {
		return errorReply(err)
	}
	data, err := result.Report.Marshal()
	if err != nil {
		return errorReply(err)
	}
	s.logger.Debug("job finished",
		"cause", result.Report.TerminationCause,
		"cycles", result.Report.NumCycles)
	return data
}

func errorReply(err error) []byte {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return data
}
