package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/report/cumulative", handler.ProduceReport)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/run-draw", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunDrawJob)))
	mux.Handle("POST /v1/internal/jobs/run-between", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunBetweenJob)))
	mux.Handle("POST /v1/internal/jobs/cumulate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ProduceReport)))
	mux.Handle("POST /v1/internal/schedule/publish", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.PublishSchedule)))
	mux.Handle("PUT /v1/internal/selections", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.UpdateSelections)))
}
