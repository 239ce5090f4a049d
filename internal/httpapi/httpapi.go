package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/peter9889466/midori-view-sub000/internal/application/service"
	"github.com/peter9889466/midori-view-sub000/internal/domain"
	"github.com/peter9889466/midori-view-sub000/internal/observability"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

type TradeService interface {
	GetTradeData(ctx context.Context, period string, products []domain.Product, countries []domain.Country) (*service.Result, error)
	Refresh(ctx context.Context, period string, products []domain.Product, countries []domain.Country) (*service.Result, error)
}

type Server struct {
	service TradeService
	router  chi.Router
	logger  *zap.Logger
	metrics observability.Metrics
}

func New(svc TradeService, logger *zap.Logger, metrics observability.Metrics) *Server {
	s := &Server{
		service: svc,
		logger:  logger,
		metrics: metrics,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		ServerTimingApp(s.metrics),
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/api/trade-data", s.getTradeData)
	r.Post("/api/trade-data/refresh", s.refreshTradeData)

	s.router = r
}

type tradeDataRequest struct {
	Period    string           `json:"period"`
	Products  []domain.Product `json:"products"`
	Countries []domain.Country `json:"countries"`
}

type tradeDataResponse struct {
	Summary service.RunSummary   `json:"summary"`
	Count   int                  `json:"count"`
	Data    []domain.TradeRecord `json:"data"`
}

func (s *Server) getTradeData(w http.ResponseWriter, r *http.Request) {
	s.handleTradeData(w, r, s.service.GetTradeData)
}

func (s *Server) refreshTradeData(w http.ResponseWriter, r *http.Request) {
	s.handleTradeData(w, r, s.service.Refresh)
}

func (s *Server) handleTradeData(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, string, []domain.Product, []domain.Country) (*service.Result, error),
) {
	var req tradeDataRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		s.logger.Error("bad trade-data request body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	res, err := op(r.Context(), req.Period, req.Products, req.Countries)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("trade-data request failed",
			zap.String("period", req.Period),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	st := res.Lookup
	observability.AppendServerTiming(w, "cache", st.CacheMs, "")
	observability.AppendServerTiming(w, "db", st.DBMs, "")
	observability.AppendServerTiming(w, "api", st.APIMs, "")
	observability.AppendServerTiming(w, "source", 0, string(st.Source))
	w.Header().Set("X-Source", string(st.Source))
	observability.SetIfPos(w, "X-Cache-Time", st.CacheMs)
	observability.SetIfPos(w, "X-DB-Time", st.DBMs)

	writeJSON(w, tradeDataResponse{
		Summary: res.Summary,
		Count:   len(res.Records),
		Data:    res.Records,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}

func (s *Server) Handler() http.Handler { return s.router }
