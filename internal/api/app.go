package api

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/rishav-dahal/studyapp/internal/config"
	"github.com/rishav-dahal/studyapp/internal/database"
	"github.com/rishav-dahal/studyapp/internal/stats"
)

type StudyApp struct {
	log        *log.Logger
	db         database.StudyRepository
	templates  map[string]*template.Template
	mux        *http.Server
	stats      stats.StatsProvider
	signingKey []byte
	mediaDir   string
}

func NewStudyApp(mux *http.ServeMux, logger *log.Logger, db database.StudyRepository, sp stats.StatsProvider, cfg *config.Config) (*StudyApp, error) {
	tc, err := NewTemplateCache()
	if err != nil {
		return nil, fmt.Errorf("template cache: %w", err)
	}

	s := &StudyApp{
		log:        logger,
		db:         db,
		templates:  tc,
		stats:      sp,
		signingKey: cfg.SigningKey,
		mediaDir:   cfg.MediaDir,
	}

	mux.HandleFunc("GET /{$}", s.home)
	mux.HandleFunc("/login", s.loginPage)
	mux.HandleFunc("GET /logout", s.logoutUser)
	mux.HandleFunc("/register", s.registerPage)
	mux.HandleFunc("/room/{id}", s.room)
	mux.HandleFunc("GET /profile/{id}", s.requireLogin(s.userProfile))
	mux.HandleFunc("/create-room", s.requireLogin(s.createRoom))
	mux.HandleFunc("/update-room/{id}", s.requireLogin(s.updateRoom))
	mux.HandleFunc("/delete-room/{id}", s.requireLogin(s.deleteRoom))
	mux.HandleFunc("/delete-message/{id}", s.requireLogin(s.deleteMessage))
	mux.HandleFunc("/update-user", s.requireLogin(s.editProfile))
	mux.Handle("GET /media/", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaDir))))

	var h http.Handler = handlers.LoggingHandler(logger.Writer(), mux)
	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s, nil
}

func (s *StudyApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *StudyApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
