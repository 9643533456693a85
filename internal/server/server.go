// Package server hands a merged profile to a viewer over local HTTP, the way
// the profiler front-end expects: one JSON document fetched cross-origin
// from a localhost URL.
package server

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/CAFxX/httpcompression"
	"github.com/goccy/go-json"
	"github.com/julienschmidt/httprouter"

	"stitch/internal/gecko"
)

const viewerBaseURL = "https://profiler.firefox.com/from-url/"

type Server struct {
	addr    string
	payload []byte
}

// New serializes the document once; every request is served from the same
// immutable bytes.
func New(addr string, d *gecko.Document) (*Server, error) {
	payload, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return &Server{addr: addr, payload: payload}, nil
}

func (s *Server) Router() (http.Handler, error) {
	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		return nil, err
	}

	router := httprouter.New()
	router.Handler(http.MethodGet, "/profile.json", compress(http.HandlerFunc(s.getProfile)))
	router.HandlerFunc(http.MethodGet, "/health", s.getHealth)
	return router, nil
}

// ProfileURL is the localhost URL the document is served at.
func (s *Server) ProfileURL() string {
	return fmt.Sprintf("http://%s/profile.json", s.addr)
}

// ViewerURL points the hosted profiler front-end at the served document.
func (s *Server) ViewerURL() string {
	return viewerBaseURL + url.QueryEscape(s.ProfileURL())
}

func (s *Server) getProfile(w http.ResponseWriter, _ *http.Request) {
	// The profiler front-end fetches from a different origin.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.payload)
}

func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
