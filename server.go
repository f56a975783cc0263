package wastatus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// our limit on inbound webhook bodies
const maxRequestBytes = 1048576

// StatusHandler processes one raw webhook payload against the backing store
type StatusHandler interface {
	Reconcile(ctx context.Context, payload []byte) (Outcome, error)
}

// Server is the HTTP surface of the service, it serves the provider's
// verification handshake and the status webhook itself
type Server interface {
	Config() *Config
	Backend() Backend

	// Router returns our underlying router, used directly in tests
	Router() http.Handler

	Start() error
	Stop() error
}

// NewServer creates a new server for the passed in config, backend and
// handler. You need to start it in order for it to serve requests.
func NewServer(config *Config, backend Backend, handler StatusHandler) Server {
	s := &server{
		config:    config,
		backend:   backend,
		handler:   handler,
		waitGroup: &sync.WaitGroup{},
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))

	router.Get("/", s.handleIndex)
	router.Get("/health", s.handleHealth)
	router.Get("/webhook", s.handleVerify)
	router.Post("/webhook", s.handleWebhook)
	s.router = router

	return s
}

type server struct {
	config  *Config
	backend Backend
	handler StatusHandler

	router     *chi.Mux
	httpServer *http.Server
	waitGroup  *sync.WaitGroup
}

func (s *server) Config() *Config      { return s.config }
func (s *server) Backend() Backend     { return s.backend }
func (s *server) Router() http.Handler { return s.router }

// Start starts our server listening for requests, returning immediately
func (s *server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.waitGroup.Add(1)
	go func() {
		defer s.waitGroup.Done()
		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("error listening for requests")
		}
	}()

	logrus.WithFields(logrus.Fields{
		"address": s.config.Address,
		"port":    s.config.Port,
		"version": s.config.Version,
	}).Info("server listening")
	return nil
}

// Stop drains in flight requests and shuts our server down
func (s *server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "error shutting down server")
	}
	s.waitGroup.Wait()
	logrus.Info("server stopped")
	return nil
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "wastatus %s\n", s.config.Version)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

// handleVerify answers the provider's one time subscription handshake,
// echoing the challenge back when the shared secret matches
func (s *server) handleVerify(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode != "subscribe" || token != s.config.VerifyToken {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	logrus.Info("webhook verified")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(challenge))
}

// handleWebhook hands the raw payload to our status handler and translates
// its outcome into a response code. Everything except a missing entry
// container and a store failure is acknowledged with a 200 so the provider
// does not keep redelivering.
func (s *server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		logrus.WithError(err).Error("error reading request body")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	outcome, err := s.handler.Reconcile(r.Context(), body)
	if err != nil {
		logrus.WithError(err).Error("error processing status webhook")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if outcome == OutcomeMalformed {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}
