package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/peter9889466/midori-view-sub000/internal/application/service"
	"github.com/peter9889466/midori-view-sub000/internal/domain"
	"github.com/peter9889466/midori-view-sub000/internal/observability"
)

type Orchestrator interface {
	GetTradeData(ctx context.Context, period string, products []domain.Product, countries []domain.Country) (*service.Result, error)
	Refresh(ctx context.Context, period string, products []domain.Product, countries []domain.Country) (*service.Result, error)
}

// RefreshCommand is the message shape on the refresh topic: a full request
// payload plus a force flag that bypasses the cache check.
type RefreshCommand struct {
	Period    string           `json:"period"`
	Products  []domain.Product `json:"products"`
	Countries []domain.Country `json:"countries"`
	Force     bool             `json:"force"`
}

// RefreshHandler turns refresh commands into orchestration runs, so periods
// can be prefetched before a dashboard user asks for them.
type RefreshHandler struct {
	orchestrator Orchestrator
	logger       *zap.Logger
	metrics      observability.Metrics
}

func NewRefreshHandler(orchestrator Orchestrator, logger *zap.Logger, metrics observability.Metrics) *RefreshHandler {
	return &RefreshHandler{
		orchestrator: orchestrator,
		logger:       logger,
		metrics:      metrics,
	}
}

func (h *RefreshHandler) Handle(ctx context.Context, msg kafkago.Message) error {
	start := time.Now()

	var cmd RefreshCommand
	if err := json.Unmarshal(msg.Value, &cmd); err != nil {
		// A malformed command can never succeed; commit it away instead of
		// blocking the partition.
		h.logger.Error("dropping malformed refresh command",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		h.metrics.ObserveKafka(convertToMs(start), false)
		return nil
	}

	op := h.orchestrator.GetTradeData
	if cmd.Force {
		op = h.orchestrator.Refresh
	}

	res, err := op(ctx, cmd.Period, cmd.Products, cmd.Countries)
	if err != nil {
		h.metrics.ObserveKafka(convertToMs(start), false)
		if errors.Is(err, domain.ErrInvalidInput) {
			h.logger.Error("dropping invalid refresh command",
				zap.String("period", cmd.Period),
				zap.Error(err),
			)
			return nil
		}
		return fmt.Errorf("refresh %s: %w", cmd.Period, err)
	}

	h.metrics.ObserveKafka(convertToMs(start), true)
	h.logger.Info("refresh command processed",
		zap.String("period", cmd.Period),
		zap.Bool("force", cmd.Force),
		zap.String("data_source", res.Summary.DataSource),
		zap.Int("records", len(res.Records)),
	)
	return nil
}

func convertToMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
