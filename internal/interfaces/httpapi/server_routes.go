package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/matches", handler.ListMatches)
	mux.HandleFunc("GET /api/matches/{matchID}", handler.GetMatch)
}

func registerDiscoveryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/youtube", handler.SearchVideos)
	mux.HandleFunc("GET /api/ai-discovery", handler.GetDiscoveryStatus)
	mux.HandleFunc("POST /api/ai-discovery/process", handler.TriggerDiscovery)
	mux.HandleFunc("GET /api/ai-discovery/highlights/{matchID}", handler.ListHighlights)
	mux.HandleFunc("DELETE /api/ai-discovery/clear/{matchID}", handler.ClearHighlights)
}
