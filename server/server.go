package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cifrateca/config"
	"cifrateca/core/catalog"
	"cifrateca/logger"
	"cifrateca/repository"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// The catalog root must exist before anything walks it.
	ensureDirExists(cfg.CifrasDir)

	// Missing metadata documents are only warned about here; requests that
	// need them fail explicitly until `cifrateca initdata` creates them.
	for _, path := range []string{cfg.CategoriesFile, cfg.PlaylistsFile, cfg.SettingsFile} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logger.Warn("metadata document missing, run `cifrateca initdata`", logger.String("path", path))
		}
	}

	catalogSvc := catalog.NewService(cfg.CifrasDir)
	categoryRepo := repository.NewFileCategoryRepository(cfg.CategoriesFile)
	playlistRepo := repository.NewFilePlaylistRepository(cfg.PlaylistsFile)
	settingsRepo := repository.NewFileSettingsRepository(cfg.SettingsFile)

	apiHandler := NewAPIHandler(catalogSvc, categoryRepo, playlistRepo, settingsRepo, cfg)
	server.Handler = newRouter(apiHandler, cfg)

	// Watch the catalog so edits made outside the API show up in the logs.
	watcher, err := catalog.NewWatcher(cfg.CifrasDir)
	if err != nil {
		logger.Warn("catalog watcher unavailable", logger.ErrorField(err))
	} else {
		watcher.Start()
		defer watcher.Close()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on :%s...", cfg.Port)
		log.Printf("Access the UI at http://localhost:%s/", cfg.Port)
		log.Printf("Catalog root: %s", cfg.CifrasDir)
		log.Printf("Metadata documents: %s", cfg.DataDir)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// newRouter wires every endpoint. Kept separate from Start so handler
// tests can drive the real routing table.
func newRouter(h *APIHandler, cfg *config.Config) *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware, loggingMiddleware)

	// Catalog
	router.HandleFunc("/api/cifras", h.GetCatalogHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/cifras/flat", h.GetFlatCatalogHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/cifra", h.GetCifraContentHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/search", h.SearchHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/cifras/upload", h.UploadCifraHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/cifras/upload-multiple", h.UploadMultipleHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/cifras/{path:.+}", h.DeleteCifraHandler).Methods(http.MethodDelete)

	// Categories
	router.HandleFunc("/api/categories", h.GetCategoriesHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/categories", h.CreateCategoryHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/categories/add-song", h.AddSongToCategoryHandler).Methods(http.MethodPost)

	// Playlists
	router.HandleFunc("/api/playlists", h.GetPlaylistsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists", h.CreatePlaylistHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}", h.UpdatePlaylistHandler).Methods(http.MethodPut)
	router.HandleFunc("/api/playlists/{id}", h.DeletePlaylistHandler).Methods(http.MethodDelete)

	// Settings
	router.HandleFunc("/api/settings", h.GetSettingsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/settings", h.UpdateSettingsHandler).Methods(http.MethodPut)

	// Frontend UI serving
	router.PathPrefix("/").Handler(NewStaticHandler(cfg.WebAppDir))

	return router
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if strings.HasPrefix(r.URL.Path, "/api/") {
			logger.Debug("request served",
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Duration("elapsed", time.Since(start)))
		}
	})
}

func ensureDirExists(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("Creating directory: %s", path)
		if err := os.MkdirAll(path, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", path, err)
		}
	} else if err != nil {
		log.Fatalf("Failed to check directory %s: %v", path, err)
	}
}
