package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/fontaine-sante/scos/cache"
	"github.com/fontaine-sante/scos/config"
	"github.com/fontaine-sante/scos/filestore"
	"github.com/fontaine-sante/scos/handlers"
	"github.com/fontaine-sante/scos/logger"
	"github.com/fontaine-sante/scos/middleware"
	"github.com/fontaine-sante/scos/routes"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {

	versionFlag := flag.Bool("version", false, "Print version info and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}

	config.LoadEnv()

	if err := logger.Init(&logger.Config{
		Level:       config.Env("LOG_LEVEL", "info"),
		Environment: config.Env("APP_ENV", "production"),
		ServiceName: "scos",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "could not initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Get().Sync()

	config.Connect()

	store, err := filestore.New(config.Env("DATA_DIR", "./data"))
	if err != nil {
		logger.Get().Fatal("could not open data mirror directory", zap.Error(err))
	}

	api := handlers.New(config.DB, cache.New(cache.DefaultTTL), store)
	metrics := middleware.NewHTTPMetrics("scos")

	handler := routes.RegisterRoutes(api, metrics)
	handlerWithCORS := enableCORS(handler)

	port := config.Env("PORT", "8080")
	logger.Get().Info("server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, handlerWithCORS); err != nil {
		logger.Get().Fatal("server stopped", zap.Error(err))
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Required CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, x-api-key, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		// Handle preflight (OPTIONS)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
