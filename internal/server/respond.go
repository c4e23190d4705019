package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leohubert/go-omdb/pkg/logtb"
	"github.com/leohubert/go-omdb/pkg/omdb"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error          string `json:"error"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}

// statusForError maps a client error to the gateway status and, when OMDb
// answered, the upstream status code.
func statusForError(err error) (int, int) {
	var failed *omdb.RequestFailedError
	var decodeErr *omdb.DecodeError

	switch {
	case errors.Is(err, omdb.ErrInvalidArgument):
		return http.StatusBadRequest, 0
	case errors.Is(err, omdb.ErrNotFound):
		return http.StatusNotFound, 0
	case errors.As(err, &failed):
		return http.StatusBadGateway, failed.StatusCode
	case errors.As(err, &decodeErr):
		return http.StatusBadGateway, 0
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, 0
	default:
		return http.StatusBadGateway, 0
	}
}

func (s *Server) writeError(res http.ResponseWriter, req *http.Request, err error) {
	status, upstream := statusForError(err)

	if status >= http.StatusInternalServerError {
		logtb.ExtractLogger(req.Context()).Error("omdb lookup failed",
			zap.String("path", req.URL.Path),
			zap.Int("upstream_status", upstream),
			zap.Error(err),
		)
	}

	writeJSONError(res, status, err.Error(), upstream)
}

func writeJSONError(res http.ResponseWriter, status int, message string, upstream int) {
	writeJSON(res, status, errorResponse{Error: message, UpstreamStatus: upstream})
}

func writeJSON(res http.ResponseWriter, status int, body any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	_ = json.NewEncoder(res).Encode(body)
}
