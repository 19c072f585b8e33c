package pricingapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/european-pricer/src/eventmodels"
	"github.com/jiaming2012/european-pricer/src/eventservices"
)

const (
	errorTypeMalformedRequest = "malformed_request"
	maxBodyBytes              = 1 << 20
)

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return decoder
}

// DefaultLimits bounds a single api request: at most ten million paths, one worker per
// available cpu, a thousand steps and fifty million normal draws.
func DefaultLimits() eventmodels.MonteCarloLimits {
	return eventmodels.MonteCarloLimits{
		MaxNumPaths: 10_000_000,
		MaxWorkers:  runtime.GOMAXPROCS(0),
		MaxSteps:    1_000,
		MaxDraws:    50_000_000,
	}
}

type pricingHandler struct {
	cache  *ReportCache
	limits eventmodels.MonteCarloLimits
}

func (h *pricingHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*eventmodels.PricingRequestDTO, error) {
	var dto eventmodels.PricingRequestDTO

	switch r.Method {
	case http.MethodGet:
		if err := queryDecoder.Decode(&dto, r.URL.Query()); err != nil {
			return nil, fmt.Errorf("failed to decode query: %w", err)
		}
	case http.MethodPost:
		body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(body).Decode(&dto); err != nil {
			return nil, fmt.Errorf("failed to decode body: %w", err)
		}
	}

	return &dto, nil
}

func (h *pricingHandler) handleEuropean(w http.ResponseWriter, r *http.Request) {
	dto, err := h.decodeRequest(w, r)
	if err != nil {
		if respErr := setErrorResponse(errorTypeMalformedRequest, http.StatusBadRequest, err, w); respErr != nil {
			log.Errorf("handleEuropean: failed to set error response: %v", respErr)
		}
		return
	}

	req, err := dto.ToModel()
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := req.MonteCarlo.CheckLimits(h.limits); err != nil {
		h.writeError(w, fmt.Errorf("handleEuropean: %w", err))
		return
	}

	requestID := uuid.New()
	key := dto.CacheKey()

	if dto.IsReproducible() {
		if report, found := h.cache.Get(key); found {
			h.writeReport(w, report.ToDTO(requestID, true))
			return
		}
	}

	report, err := eventservices.PriceEuropeanOption(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if dto.IsReproducible() {
		h.cache.Set(key, report)
	}

	log.WithContext(r.Context()).WithField("request_id", requestID).Debugf("handleEuropean: priced %s", req.Contract)

	h.writeReport(w, report.ToDTO(requestID, false))
}

func (h *pricingHandler) writeReport(w http.ResponseWriter, report *eventmodels.PricingReportDTO) {
	if err := setResponse(report, w); err != nil {
		h.writeError(w, err)
	}
}

func (h *pricingHandler) writeError(w http.ResponseWriter, err error) {
	statusCode := http.StatusBadRequest
	if !errors.Is(err, eventmodels.DomainErr) {
		statusCode = http.StatusInternalServerError
		log.Errorf("handleEuropean: %v", err)
	}

	if respErr := setErrorResponse(eventmodels.DomainErrorType(err), statusCode, err, w); respErr != nil {
		log.Errorf("handleEuropean: failed to set error response: %v", respErr)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := setResponse(map[string]string{"status": "ok"}, w); err != nil {
		log.Errorf("handleHealth: failed to set response: %v", err)
	}
}

// SetupHandler registers the pricing routes on router. Seeded requests share cache and every
// request is held to limits.
func SetupHandler(router *mux.Router, cache *ReportCache, limits eventmodels.MonteCarloLimits) {
	h := &pricingHandler{cache: cache, limits: limits}

	router.HandleFunc("/pricing/european", h.handleEuropean).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
}

func NewRouter() *mux.Router {
	router := mux.NewRouter()
	SetupHandler(router, NewReportCache(), DefaultLimits())
	return router
}
