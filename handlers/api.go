package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ens-api/metrics"
	"ens-api/types"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

var logger = logrus.New().WithField("module", "handlers")

const (
	missingParametersMessage = "Missing required parameters"
	serverErrorMessage       = "An error occurred on the server"
	maxRequestBodySize       = 1 << 20
)

// NewRouter returns the api router. Everything below /api/v1/private requires basic auth.
func NewRouter(api *EnsApi, cfg *types.ApiConfig) (*mux.Router, error) {
	auth, err := NewBasicAuth(cfg.Username, cfg.Password)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Use(metrics.HttpMiddleware)
	router.HandleFunc("/health", ApiHealth).Methods("GET")

	private := router.PathPrefix("/api/v1/private").Subrouter()
	private.Use(auth.Middleware)
	private.HandleFunc("/check", api.ApiCheck).Methods("GET")
	private.HandleFunc("/commitment", api.ApiCommitment).Methods("POST")
	private.HandleFunc("/register", api.ApiRegister).Methods("POST")
	private.HandleFunc("/setAddress", api.ApiSetAddress).Methods("POST")
	private.HandleFunc("/transferEns", api.ApiTransferEns).Methods("POST")
	private.HandleFunc("/transferRegister", api.ApiTransferRegister).Methods("POST")
	private.HandleFunc("/ens", api.ApiDomains).Methods("GET")
	private.HandleFunc("/ens/{name}", api.ApiDomain).Methods("GET")

	return router, nil
}

// ApiHealth godoc
// @Summary Liveness of the api
// @Tags Health
// @Produce  json
// @Success 200 {object} types.ApiHealthResponse
// @Router /health [get]
func ApiHealth(w http.ResponseWriter, r *http.Request) {
	sendJSONResponse(w, r.URL.String(), http.StatusOK, &types.ApiHealthResponse{Status: "OK"})
}

func sendJSONResponse(w http.ResponseWriter, route string, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		logger.Errorf("error serializing json data for API %v route: %v", route, err)
	}
}

func sendErrorResponse(w http.ResponseWriter, route string, status int, message string) {
	sendJSONResponse(w, route, status, &types.ApiErrorResponse{Error: message})
}

func sendServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	// the ens service already logged the failure with its context
	logger.WithFields(logrus.Fields{"route": r.URL.Path, "method": r.Method}).WithError(err).Debug("error handling request")
	sendErrorResponse(w, r.URL.String(), http.StatusInternalServerError, serverErrorMessage)
}

func decodeRequest(r *http.Request, w http.ResponseWriter, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
