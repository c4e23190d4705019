package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/leohubert/go-omdb/pkg/logtb"
	"go.uber.org/zap"
)

// MovieHandler looks a title up by IMDb id
func (s *Server) MovieHandler(res http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	payload, err := s.OmdbClient.FindByID(req.Context(), id)
	if err != nil {
		s.writeError(res, req, err)
		return
	}

	writeJSON(res, http.StatusOK, payload)
}

// TitleHandler looks a title up by name, with an optional year
func (s *Server) TitleHandler(res http.ResponseWriter, req *http.Request) {
	title := req.URL.Query().Get("t")
	if strings.TrimSpace(title) == "" {
		writeJSONError(res, http.StatusBadRequest, "Missing t parameter", 0)
		return
	}

	year, ok := optionalInt(req, "y")
	if !ok {
		writeJSONError(res, http.StatusBadRequest, "Invalid y parameter", 0)
		return
	}

	payload, err := s.OmdbClient.FindByTitle(req.Context(), title, year)
	if err != nil {
		s.writeError(res, req, err)
		return
	}

	writeJSON(res, http.StatusOK, payload)
}

// SearchHandler runs a free-text search
func (s *Server) SearchHandler(res http.ResponseWriter, req *http.Request) {
	key := req.URL.Query().Get("s")
	if strings.TrimSpace(key) == "" {
		writeJSONError(res, http.StatusBadRequest, "Missing s parameter", 0)
		return
	}

	payload, err := s.OmdbClient.Find(req.Context(), key)
	if err != nil {
		s.writeError(res, req, err)
		return
	}

	writeJSON(res, http.StatusOK, payload)
}

// PosterHandler streams back the poster image of a title
func (s *Server) PosterHandler(res http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	height, ok := optionalInt(req, "height")
	if !ok || height < 0 {
		writeJSONError(res, http.StatusBadRequest, "Invalid height parameter", 0)
		return
	}

	poster, err := s.OmdbClient.FindPoster(req.Context(), id, height)
	if err != nil {
		s.writeError(res, req, err)
		return
	}

	res.Header().Set("Content-Type", http.DetectContentType(poster))
	res.Header().Set("Content-Length", strconv.Itoa(len(poster)))
	res.WriteHeader(http.StatusOK)
	if _, err := res.Write(poster); err != nil {
		logtb.ExtractLogger(req.Context()).Warn("failed to write poster", zap.String("id", id), zap.Error(err))
	}
}

// optionalInt reads an integer query parameter; absent means zero.
func optionalInt(req *http.Request, key string) (int, bool) {
	raw := req.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
