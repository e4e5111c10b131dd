package worker

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sahilKumar1122/pr-pilot/internal/config"
	"github.com/sahilKumar1122/pr-pilot/internal/logger"
	"github.com/sahilKumar1122/pr-pilot/internal/queue"
)

// Server runs the queue consumer
type Server struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log *logger.Logger
}

// NewServer creates the queue consumer. Retries are scheduled by the queue
// with a fixed delay; the redelivery wait never occupies a worker goroutine.
func NewServer(cfg config.QueueConfig, handler *Worker, log *logger.Logger) (*Server, error) {
	opt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: cfg.Concurrency,
		RetryDelayFunc: func(n int, e error, t *asynq.Task) time.Duration {
			return cfg.RetryDelay
		},
		Logger: &asynqLogger{log: log},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypePRAnalysis, handler.HandlePRAnalysis)

	return &Server{srv: srv, mux: mux, log: log}, nil
}

// Start starts the consumer in the background
func (s *Server) Start() error {
	s.log.Info("Starting analysis worker")
	if err := s.srv.Start(s.mux); err != nil {
		return fmt.Errorf("failed to start worker server: %w", err)
	}
	return nil
}

// Shutdown waits for in-flight jobs and stops the consumer
func (s *Server) Shutdown() {
	s.srv.Shutdown()
	s.log.Info("Worker shutdown complete")
}

// asynqLogger adapts our logger to the asynq.Logger interface
type asynqLogger struct {
	log *logger.Logger
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.log.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.log.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.log.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.log.Error(fmt.Sprint(args...), nil)
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.log.Fatal(fmt.Sprint(args...), nil)
}
