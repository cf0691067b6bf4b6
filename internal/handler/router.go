package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/segyhp/leasing-engine/pkg/response"
)

func NewRouter(agreements *AgreementHandler, health *HealthHandler, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.RequestIDMiddleware, response.LoggingMiddleware(logger), response.CORSMiddleware)

	router.HandleFunc("/health", health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", health.Ready).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/agreements", agreements.CreateAgreement).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/agreements/{agreementId}", agreements.GetAgreement).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/employees/{employeeId}/agreements", agreements.ListEmployeeAgreements).Methods(http.MethodGet, http.MethodOptions)

	return router
}
