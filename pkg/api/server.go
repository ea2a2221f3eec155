// Package api hexlint REST API
//
// @title           hexlint REST API
// @version         1.0.0
// @description     This is the REST API for hexlint, an Intel HEX record validation service.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	"github.com/firmtools/hexlint/pkg/monitoring"
)

// NewRouter builds the routing tree for an API server
func NewRouter(server *Server) chi.Router {
	metrics := server.metrics

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	origins := server.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Health check stays outside the API key group so probes
		// need no credentials
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware(server.config.APIKey, metrics))

			// Validation
			r.Post("/validate", metrics.InstrumentHandler("POST", "/api/v1/validate", server.handleValidate))

			// Archived reports
			r.Post("/reports", metrics.InstrumentHandler("POST", "/api/v1/reports", server.handleCreateReport))
			r.Get("/reports/{id}", metrics.InstrumentHandler("GET", "/api/v1/reports/{id}", server.handleGetReport))
			r.Delete("/reports/{id}", metrics.InstrumentHandler("DELETE", "/api/v1/reports/{id}", server.handleDeleteReport))
		})
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", serveSwagger)

	return r
}

// serveSwagger serves the Swagger UI and the generated API document
func serveSwagger(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/swagger/" || path == "/swagger/index.html" {
		w.Header().Set("Content-Type", "text/html")
		html := `<!DOCTYPE html>
<html>
<head>
	 <title>hexlint API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/swagger.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`
		w.Write([]byte(html))
		return
	}

	if path == "/swagger/swagger.json" {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			http.Error(w, "Failed to generate Swagger documentation", 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
		return
	}

	http.NotFound(w, r)
}

// StartServer starts the HTTP server with all routes configured
func StartServer(reports ReportStore, config ServerConfig) error {
	// Set Swagger host with port
	if SwaggerInfo != nil {
		SwaggerInfo.Host = fmt.Sprintf("localhost:%d", config.Port)
	}

	metrics := NewMetrics()
	server := NewServer(reports, config, metrics)
	router := NewRouter(server)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)

	logger := monitoring.NewLogger("api")
	logger.Log(context.Background(), monitoring.INFO, "server_start", "starting REST API server", map[string]interface{}{
		"addr":    addr,
		"metrics": fmt.Sprintf("http://%s/metrics", addr),
		"swagger": fmt.Sprintf("http://%s/swagger/", addr),
	})

	return http.ListenAndServe(addr, router)
}
