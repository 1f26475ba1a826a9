package payments

import (
	"context"
	"hospital-billing-service/internal/app/config"
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/utils"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultExpiryCronSpec = "@every 1m"

// ExpiryWorker periodically expires payments whose checkout window passed.
// Only the instance holding the leader lock does the work on each tick.
type ExpiryWorker struct {
	log            *zap.Logger
	cfg            *config.InternalConfig
	locker         contracts.LockerService
	paymentUsecase contracts.PaymentUsecase
	cron           *cron.Cron
	runCtx         context.Context
	cancel         context.CancelFunc
	now            func() time.Time
}

func NewExpiryWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, paymentUsecase contracts.PaymentUsecase) contracts.PaymentExpiryWorker {
	return &ExpiryWorker{
		log:            log,
		cfg:            cfg,
		locker:         lockerSvc,
		paymentUsecase: paymentUsecase,
		now:            time.Now,
	}
}

func (w *ExpiryWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Worker.PaymentExpiryCronSpec
	if spec == "" {
		spec = defaultExpiryCronSpec
	}
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("payments.expiryWorker: invalid cron spec, falling back to default",
			zap.String("spec", spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultExpiryCronSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
	w.log.Info("payments.expiryWorker started", zap.String("spec", spec))
}

// Stop cancels in-flight runs and waits for the running job to return.
func (w *ExpiryWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *ExpiryWorker) runOnce(ctx context.Context) {
	requestID := utils.GenerateRequestID()
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, requestID)

	ttl := constvars.PaymentExpiryLeaderLockTTL
	acquired, token, err := w.locker.TryLock(ctx, constvars.PaymentExpiryLeaderLock, ttl)
	if err != nil {
		w.log.Warn("payments.expiryWorker: leader lock attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}
	if !acquired {
		w.log.Debug("payments.expiryWorker: leader lock held by another instance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return
	}
	defer w.locker.Unlock(ctx, constvars.PaymentExpiryLeaderLock, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(refreshCtx, constvars.PaymentExpiryLeaderLock, token, ttl); err != nil {
					w.log.Warn("payments.expiryWorker: failed to refresh leader lock TTL",
						zap.String(constvars.LoggingRequestIDKey, requestID),
						zap.Error(err),
					)
				}
			}
		}
	}()

	expired, err := w.paymentUsecase.ExpireStalePayments(ctx, w.now())
	if err != nil {
		w.log.Error("payments.expiryWorker: expiring payments failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}
	if expired > 0 {
		w.log.Info("payments.expiryWorker: expired stale payments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingCountKey, expired),
		)
	}
}
