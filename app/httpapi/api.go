package httpapi

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/bookapp-api/app/shared/shell"
	"github.com/AntonStoeckl/bookapp-api/mediator"
)

const (
	maxBodyBytes = 1 << 20

	logMsgDispatchUnrecoverable = "request dispatch failed"
	logMsgRequestRejected       = "request rejected by domain rule"
	logMsgRequestCanceled       = "request canceled before dispatch completed"
	logMsgEncodeFailed          = "failed to encode response"
	logMsgHealthCheckFailed     = "health check failed"
	logAttrMessageType          = "message_type"
	logAttrReason               = "reason"
	logAttrError                = "error"
	logAttrRequestID            = "request_id"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	errMalformedID = errors.New("malformed id")
	errEmptyBody   = errors.New("empty request body")
)

// Dispatcher routes a message to its handler. *mediator.Dispatcher satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg mediator.Message) (mediator.Result, error)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// API holds the dependencies of the HTTP handlers.
type API struct {
	dispatcher Dispatcher
	pinger     Pinger
	logger     *slog.Logger
	validate   *validator.Validate
}

// NewRouter creates the chi router with all routes and middleware.
func NewRouter(dispatcher Dispatcher, pinger Pinger, logger *slog.Logger) http.Handler {
	api := &API{
		dispatcher: dispatcher,
		pinger:     pinger,
		logger:     logger,
		validate:   newValidator(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(caseInsensitiveResources)

	r.Get("/healthz", api.healthz)

	r.Route("/Authors", func(r chi.Router) {
		r.Post("/", api.addAuthor)
		r.Get("/", api.getAllAuthors)
		r.Get("/{id}", api.getAuthor)
		r.Put("/{id}", api.updateAuthor)
		r.Delete("/{id}", api.deleteAuthor)
	})

	r.Route("/Books", func(r chi.Router) {
		r.Post("/", api.addBook)
		r.Get("/", api.getAllBooks)
		r.Get("/{id}", api.getBook)
		r.Put("/{id}", api.updateBook)
		r.Delete("/{id}", api.deleteBook)
	})

	return r
}

// dispatch sends msg through the mediator and writes the response.
func (a *API) dispatch(w http.ResponseWriter, r *http.Request, msg mediator.Message, successStatus int) {
	result, err := a.dispatcher.Dispatch(r.Context(), msg)
	if errors.Is(err, context.Canceled) {
		a.logger.WarnContext(r.Context(), logMsgRequestCanceled,
			logAttrMessageType, msg.MessageType(),
			logAttrError, err.Error(),
			logAttrRequestID, middleware.GetReqID(r.Context()))
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	if err != nil {
		a.logger.Log(r.Context(), shell.LevelCritical, logMsgDispatchUnrecoverable,
			logAttrMessageType, msg.MessageType(),
			logAttrError, err.Error(),
			logAttrRequestID, middleware.GetReqID(r.Context()))
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	if !result.IsSuccess() {
		a.logger.WarnContext(r.Context(), logMsgRequestRejected,
			logAttrMessageType, msg.MessageType(),
			logAttrReason, result.Reason(),
			logAttrRequestID, middleware.GetReqID(r.Context()))
		a.writeJSON(w, http.StatusBadRequest, EnvelopeFrom(result))

		return
	}

	a.writeJSON(w, successStatus, EnvelopeFrom(result))
}

// decodeAndValidate reads a JSON body into target and validates it.
// The body must hold exactly one JSON value. Any error means the request is malformed.
func (a *API) decodeAndValidate(w http.ResponseWriter, r *http.Request, target any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return errEmptyBody
	}

	if err := json.Unmarshal(body, target); err != nil {
		return err
	}

	return a.validate.Struct(target)
}

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	return validate
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		a.logger.Error(logMsgEncodeFailed, logAttrError, err.Error())
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func (a *API) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.pinger.Ping(ctx); err != nil {
		a.logger.WarnContext(ctx, logMsgHealthCheckFailed, logAttrError, err.Error())
		a.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})

		return
	}

	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func badRequest(w http.ResponseWriter) {
	w.WriteHeader(http.StatusBadRequest)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errors.Join(errMalformedID, err)
	}

	return id, nil
}
