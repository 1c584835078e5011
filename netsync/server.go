package netsync

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"ringseq/debug"
	"ringseq/sequencer"
)

// Server hosts the sync hub plus a plain HTTP snapshot endpoint for
// clients that want to read state without joining the session.
type Server struct {
	addr    string
	hub     *Hub
	manager *sequencer.Manager
}

// NewServer wires a hub to the manager and prepares the HTTP surface.
func NewServer(addr string, m *sequencer.Manager) *Server {
	return &Server{
		addr:    addr,
		hub:     NewHub(m),
		manager: m,
	}
}

// Hub returns the sync hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler builds the routed, CORS-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/ws", s.hub.ServeWS)
	router.HandleFunc("/state", s.handleState).Methods("GET")
	return cors.Default().Handler(router)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.manager.Snapshot()); err != nil {
		debug.Log("sync", "state encode: %v", err)
	}
}

// ListenAndServe blocks serving the sync surface.
func (s *Server) ListenAndServe() error {
	debug.Log("sync", "listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}
