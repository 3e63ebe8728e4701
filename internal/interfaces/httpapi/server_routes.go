package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/games/{gameID}/sample", handler.GetSample)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/games/{gameID}", RequireAuth(verifier, http.HandlerFunc(handler.GetGame)))
	mux.Handle("GET /v1/games/{gameID}/progress", RequireAuth(verifier, http.HandlerFunc(handler.GetProgress)))
	mux.Handle("PUT /v1/games/{gameID}/progress", RequireAuth(verifier, http.HandlerFunc(handler.SaveProgress)))
	mux.Handle("DELETE /v1/games/{gameID}/progress", RequireAuth(verifier, http.HandlerFunc(handler.ClearProgress)))
	mux.Handle("POST /v1/games/{gameID}/check", RequireAuth(verifier, http.HandlerFunc(handler.CheckAnswer)))
	mux.Handle("POST /v1/games/{gameID}/submit", RequireAuth(verifier, http.HandlerFunc(handler.SubmitGame)))
	mux.Handle("GET /v1/games/{gameID}/submission", RequireAuth(verifier, http.HandlerFunc(handler.GetSubmission)))
	mux.Handle("POST /v1/advisory/signals", RequireAuth(verifier, http.HandlerFunc(handler.SubmitAdvisorySignal)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/purge-progress", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunPurgeProgressJob)))
}
