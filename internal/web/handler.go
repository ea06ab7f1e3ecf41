package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/corlevo/corlevo/internal/catalog"
	"github.com/corlevo/corlevo/internal/logging"
	"github.com/corlevo/corlevo/internal/models"
)

const maxBodyBytes = 1 << 20

// ProductService is the product API the handlers drive.
type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, filter models.SearchFilter) ([]models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, req models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ErrorRecorder persists unexpected failures and returns the stored message.
type ErrorRecorder interface {
	Record(ctx context.Context, err error) (string, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type MessageResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	products ProductService
	recorder ErrorRecorder
	db       Pinger
}

func NewHandler(products ProductService, recorder ErrorRecorder, db Pinger) *Handler {
	return &Handler{
		products: products,
		recorder: recorder,
		db:       db,
	}
}

// Routes builds the router with the full middleware chain.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(RecoveryMiddleware)
	r.Use(RequestIDMiddleware)
	r.Use(TracingMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(MetricsMiddleware)

	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/search", h.handleSearch)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})

	return r
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.respondUnexpected(w, r, err)
		return
	}
	respondProducts(w, products)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.SearchFilter{SearchText: queryValue(query, "SearchText")}

	var err error
	if filter.MinPrice, err = parseOptionalFloat(queryValue(query, "MinPrice")); err != nil {
		respondJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid MinPrice Value"})
		return
	}
	if filter.MaxPrice, err = parseOptionalFloat(queryValue(query, "MaxPrice")); err != nil {
		respondJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid MaxPrice Value"})
		return
	}

	products, err := h.products.Search(r.Context(), filter)
	if err != nil {
		h.respondUnexpected(w, r, err)
		return
	}
	respondProducts(w, products)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, "Product not found", "")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.products.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err, "", req.Name)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.products.Update(r.Context(), id, req)
	if err != nil {
		name := ""
		if req.Name != nil {
			name = *req.Name
		}
		h.respondError(w, r, err, "Invalid Id Value", name)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err, "Invalid Id Value", "")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	if err := h.db.Ping(r.Context()); err != nil {
		logging.Warn(r.Context()).Err(err).Msg("health check failed")
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}

// respondError answers expected failures directly and hands everything else
// to respondUnexpected.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage, name string) {
	switch {
	case errors.Is(err, catalog.ErrInvalidName):
		respondJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid Product Name"})
	case errors.Is(err, catalog.ErrInvalidPrice):
		respondJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid Price"})
	case errors.Is(err, catalog.ErrNameConflict):
		respondJSON(w, http.StatusConflict, MessageResponse{
			Message: fmt.Sprintf("Product Name '%s' Already In Use!", name),
		})
	case errors.Is(err, catalog.ErrNotFound):
		respondJSON(w, http.StatusNotFound, MessageResponse{Message: notFoundMessage})
	default:
		h.respondUnexpected(w, r, err)
	}
}

func (h *Handler) respondUnexpected(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	message, logErr := h.recorder.Record(ctx, err)
	if logErr != nil {
		respondJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal server error"})
		return
	}

	respondJSON(w, http.StatusInternalServerError, MessageResponse{
		Message: "An Error Occurred! Error Message: " + message,
	})
}

func respondProducts(w http.ResponseWriter, products []models.Product) {
	if len(products) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Logger().Error().Err(err).Msg("error encoding JSON")
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid Id Value"})
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid Request Body"})
		return false
	}
	return true
}

// queryValue looks key up ignoring case, so SearchText and searchtext both work.
func queryValue(query url.Values, key string) string {
	if v := query.Get(key); v != "" {
		return v
	}
	for k, values := range query {
		if strings.EqualFold(k, key) && len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return ""
}

func parseOptionalFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
