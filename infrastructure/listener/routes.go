package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/scenebridge/scenebridge/application/schema"
	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/scenebridge/scenebridge/domain/errors"
	"github.com/scenebridge/scenebridge/hostfuncs"
)

// HeaderRequestID carries the per-request id on every response.
const HeaderRequestID = "X-Request-Id"

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(s.requestLogMiddleware)
	router.Use(s.recoverMiddleware)

	router.Post(PathExecute, s.handleExecute)
	router.Get(PathSceneInfo, s.handleSceneInfo)

	router.NotFound(handleNotFound)
	router.MethodNotAllowed(handleNotFound)
	return router
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		s.writeExecuteFailure(w, r, &errors.RequestError{Reason: "failed to read body", Err: err})
		return
	}

	if s.validator != nil {
		if err := s.validator.ValidatePayload(schema.ExecuteRequest, body); err != nil {
			s.writeExecuteFailure(w, r, err)
			return
		}
	}

	var req entities.ExecuteRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeExecuteFailure(w, r, &errors.RequestError{Reason: "malformed JSON body", Err: err})
		return
	}

	// A client hanging up does not cancel the evaluation; it runs to
	// completion against the host.
	res, err := s.eval.Exec(context.WithoutCancel(r.Context()), req.Code)
	if err != nil {
		s.writeExecuteFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewExecuteSuccess(res.Output))
}

func (s *Server) writeExecuteFailure(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.WarnContext(r.Context(), "execute failed", "request_id", requestID(r), "error", err)
	writeJSON(w, http.StatusInternalServerError, entities.NewExecuteFailure(err.Error(), errors.Traceback(err)))
}

func (s *Server) handleSceneInfo(w http.ResponseWriter, r *http.Request) {
	resp, err := hostfuncs.Call[hostfuncs.SceneObjectsRequest, hostfuncs.SceneObjectsResponse](
		hostfuncs.WithCaller(r.Context(), "listener"), s.host, hostfuncs.FuncSceneObjects,
		hostfuncs.SceneObjectsRequest{})
	if err != nil {
		detail := errors.ToErrorDetail(err)
		s.logger.WarnContext(r.Context(), "scene query failed", "request_id", requestID(r), "error", err)
		writeJSON(w, http.StatusInternalServerError, entities.SceneErrorResponse{Result: entities.ResultError, Error: detail.Message})
		return
	}

	objects := resp.Objects
	if objects == nil {
		objects = []string{}
	}
	writeJSON(w, http.StatusOK, entities.SceneInfoResponse{Objects: objects})
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, entities.NotFoundResponse{Error: entities.NotFoundMessage})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type requestIDKey struct{}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

// requestLogMiddleware tags the request with a fresh id and logs the
// exchange once it completes.
func (s *Server) requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(HeaderRequestID, id)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.logger.LogAttrs(r.Context(), slog.LevelInfo, "request",
			slog.String("request_id", id),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// recoverMiddleware answers a panicking handler with a failure body instead
// of dropping the connection. The execute route gets the execute failure
// shape with the panic stack as traceback. Nothing is written when the
// handler had already sent its header.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.logger.ErrorContext(r.Context(), "handler panic", "request_id", requestID(r), "panic", rec)

			if ww, ok := w.(middleware.WrapResponseWriter); ok && ww.Status() != 0 {
				return
			}
			if r.URL.Path == PathExecute {
				tb := fmt.Sprintf("panic: %v\n\n%s", rec, debug.Stack())
				writeJSON(w, http.StatusInternalServerError, entities.NewExecuteFailure("internal error", tb))
				return
			}
			writeJSON(w, http.StatusInternalServerError, entities.SceneErrorResponse{
				Result: entities.ResultError,
				Error:  "internal error",
			})
		}()
		next.ServeHTTP(w, r)
	})
}
