package server

import (
	"net/http"

	"letter-rush/internal/config"
)

type Server struct {
	store      *Store
	ws         *wsHub
	cfg        config.Config
	categories *CategorySource
}

func New(cfg config.Config) *Server {
	return &Server{
		store:      NewStore(),
		ws:         newWSHub(),
		cfg:        cfg,
		categories: LoadCategorySource(cfg.CategoryPoolPath),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	mux.HandleFunc("GET /qr/{code}", s.handleJoinQR)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ok"))
}
