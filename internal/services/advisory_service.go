package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/terraincognita07/cyclecare/internal/logger"
	"github.com/terraincognita07/cyclecare/internal/models"
)

const DefaultAdvisoryTimeout = 30 * time.Second

var (
	ErrAdvisoryClosed     = errors.New("advisory service closed")
	ErrPredictionNoCycles = errors.New("no cycles to predict from")
)

// AdvisoryGateway produces predictions and reports from cycle data.
type AdvisoryGateway interface {
	PredictNext(ctx context.Context, history []models.CycleRecord) (models.PredictionResult, error)
	GenerateReport(ctx context.Context, cycle models.CycleRecord) (models.HealthReport, error)
}

type PredictionState struct {
	Loading   bool
	Result    *models.PredictionResult
	Error     string
	UpdatedAt time.Time
}

type ReportState struct {
	Loading   bool
	CycleID   string
	Result    *models.HealthReport
	Error     string
	UpdatedAt time.Time
}

// AdvisoryService runs gateway calls in the background and keeps the latest
// outcome of each kind. Results are applied in completion order.
type AdvisoryService struct {
	gateway AdvisoryGateway
	timeout time.Duration
	log     *logger.Logger
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu                 sync.Mutex
	closed             bool
	pendingPredictions int
	pendingReports     int
	prediction         PredictionState
	report             ReportState
}

func NewAdvisoryService(gateway AdvisoryGateway, timeout time.Duration, log *logger.Logger) *AdvisoryService {
	if timeout <= 0 {
		timeout = DefaultAdvisoryTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &AdvisoryService{
		gateway: gateway,
		timeout: timeout,
		log:     log,
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (service *AdvisoryService) HistoryChanged(history []models.CycleRecord) {
	if len(history) == 0 {
		service.mu.Lock()
		service.prediction.Result = nil
		service.prediction.Error = ""
		service.prediction.UpdatedAt = service.now()
		service.mu.Unlock()
		return
	}
	if err := service.RefreshPrediction(history); err != nil {
		service.log.Debug("prediction refresh skipped", "error", err)
	}
}

func (service *AdvisoryService) CycleFinished(cycle models.CycleRecord) {
	if err := service.RegenerateReport(cycle); err != nil {
		service.log.Debug("report generation skipped", "cycle_id", cycle.ID, "error", err)
	}
}

func (service *AdvisoryService) RefreshPrediction(history []models.CycleRecord) error {
	if len(history) == 0 {
		return ErrPredictionNoCycles
	}

	service.mu.Lock()
	if service.closed {
		service.mu.Unlock()
		return ErrAdvisoryClosed
	}
	service.pendingPredictions++
	service.prediction.Loading = true
	service.wg.Add(1)
	service.mu.Unlock()

	snapshot := cloneRecords(history)
	go func() {
		defer service.wg.Done()
		ctx, cancel := context.WithTimeout(service.ctx, service.timeout)
		defer cancel()

		started := service.now()
		result, err := service.gateway.PredictNext(ctx, snapshot)
		service.applyPrediction(result, err, service.now().Sub(started))
	}()
	return nil
}

func (service *AdvisoryService) applyPrediction(result models.PredictionResult, err error, elapsed time.Duration) {
	service.mu.Lock()
	defer service.mu.Unlock()

	service.pendingPredictions--
	service.prediction.Loading = service.pendingPredictions > 0
	service.prediction.UpdatedAt = service.now()
	if err != nil {
		service.prediction.Error = err.Error()
		service.log.Warn("prediction failed", "op", "predict_next", "elapsed", elapsed, "error", err)
		return
	}
	service.prediction.Error = ""
	service.prediction.Result = &result
	service.log.Info("prediction updated", "next_date", result.NextDate, "confidence", result.Confidence, "elapsed", elapsed)
}

func (service *AdvisoryService) RegenerateReport(cycle models.CycleRecord) error {
	service.mu.Lock()
	if service.closed {
		service.mu.Unlock()
		return ErrAdvisoryClosed
	}
	service.pendingReports++
	service.report.Loading = true
	service.wg.Add(1)
	service.mu.Unlock()

	snapshot := cycle.Clone()
	go func() {
		defer service.wg.Done()
		ctx, cancel := context.WithTimeout(service.ctx, service.timeout)
		defer cancel()

		started := service.now()
		report, err := service.gateway.GenerateReport(ctx, snapshot)
		service.applyReport(snapshot.ID, report, err, service.now().Sub(started))
	}()
	return nil
}

func (service *AdvisoryService) applyReport(cycleID string, report models.HealthReport, err error, elapsed time.Duration) {
	service.mu.Lock()
	defer service.mu.Unlock()

	service.pendingReports--
	service.report.Loading = service.pendingReports > 0
	service.report.UpdatedAt = service.now()
	if err != nil {
		service.report.Error = err.Error()
		service.log.Warn("report generation failed", "op", "generate_report", "cycle_id", cycleID, "elapsed", elapsed, "error", err)
		return
	}
	service.report.Error = ""
	service.report.CycleID = cycleID
	service.report.Result = &report
	service.log.Info("report updated", "cycle_id", cycleID, "elapsed", elapsed)
}

func (service *AdvisoryService) Prediction() PredictionState {
	service.mu.Lock()
	defer service.mu.Unlock()

	state := service.prediction
	if state.Result != nil {
		result := *state.Result
		state.Result = &result
	}
	return state
}

func (service *AdvisoryService) Report() ReportState {
	service.mu.Lock()
	defer service.mu.Unlock()

	state := service.report
	if state.Result != nil {
		report := *state.Result
		state.Result = &report
	}
	return state
}

// Close cancels outstanding gateway calls and waits for them to return.
func (service *AdvisoryService) Close() {
	service.mu.Lock()
	service.closed = true
	service.mu.Unlock()

	service.cancel()
	service.wg.Wait()
}
