// Package api assembles the HTTP surface.
package api

import (
	"net/http"

	"statement_insight/pkg/api/chat"
	"statement_insight/pkg/api/health"
	"statement_insight/pkg/api/middleware"
	"statement_insight/pkg/api/respond"
	"statement_insight/pkg/api/statement"
	"statement_insight/pkg/api/web"
)

type Deps struct {
	Statements *statement.Handler
	Chat       *chat.Handler
	Health     *health.Handler
	StaticDir  string

	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter wires routes and the global middleware chain.
func NewRouter(d Deps) http.Handler {
	apiMux := http.NewServeMux()
	apiMux.Handle("/api/process-pdf", middleware.Method(http.MethodPost, d.Statements.HandleProcessPDF))
	apiMux.Handle("/api/export/xlsx", middleware.Method(http.MethodPost, d.Statements.HandleExportXLSX))
	apiMux.Handle("/api/chat", middleware.Method(http.MethodPost, d.Chat.HandleChat))
	apiMux.Handle("/api/health", middleware.Method(http.MethodGet, d.Health.HandleHealth))
	apiMux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusNotFound, "Not Found")
	})

	rootMux := http.NewServeMux()
	rootMux.Handle("/api/", middleware.RateLimit(d.RateLimitRPS, d.RateLimitBurst)(apiMux))
	rootMux.Handle("/", web.SPA(d.StaticDir))

	return middleware.Chain(rootMux,
		middleware.RequestID,
		middleware.Logging,
		middleware.Recover,
		middleware.CORS,
	)
}
