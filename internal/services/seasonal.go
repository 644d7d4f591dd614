package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/repositories"
)

// InSeasonJob emails listeners whose products have come into season
type InSeasonJob struct {
	products  repositories.ProductRepository
	listeners repositories.ListenerRepository
	email     EmailService
	template  InSeasonTemplate
	logger    *zap.Logger
}

func NewInSeasonJob(products repositories.ProductRepository, listeners repositories.ListenerRepository, email EmailService, template InSeasonTemplate, logger *zap.Logger) *InSeasonJob {
	return &InSeasonJob{
		products:  products,
		listeners: listeners,
		email:     email,
		template:  template,
		logger:    logger,
	}
}

// Run sends one email per listener and in-season SKU, then forgets that SKU for the listener.
// A failed send keeps the SKU so the next run retries it. Returns the number of emails sent.
func (j *InSeasonJob) Run(ctx context.Context) (int, error) {
	listeners, err := j.listeners.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list in-season listeners: %w", err)
	}

	sent := 0
	for _, listener := range listeners {
		for _, sku := range listener.SKUs {
			product, err := j.products.FindOne(ctx, models.ProductFilter{SKU: sku})
			if err != nil {
				return sent, err
			}
			if product == nil || !product.InSeason {
				continue
			}

			if err := j.notify(ctx, listener.Email, product); err != nil {
				j.logger.Error("failed to send in-season notification",
					zap.String("email", listener.Email),
					zap.String("sku", sku),
					zap.Error(err))
				continue
			}
			if err := j.listeners.RemoveSKU(ctx, listener.Email, sku); err != nil {
				return sent, err
			}
			sent++
		}
	}
	return sent, nil
}

func (j *InSeasonJob) notify(ctx context.Context, to string, product *models.Product) error {
	var body bytes.Buffer
	if err := j.template(product).Render(ctx, &body); err != nil {
		return fmt.Errorf("failed to render in-season email: %w", err)
	}
	return j.email.Send(ctx, EmailMessage{
		To:       to,
		Subject:  fmt.Sprintf("%s is now in season", product.Name),
		HTMLBody: body.String(),
	})
}

// Scheduler runs background jobs on cron schedules
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithParser(cronParser), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		logger: logger,
	}
}

// ScheduleInSeason registers the in-season job under the given cron spec
func (s *Scheduler) ScheduleInSeason(spec string, job *InSeasonJob) error {
	_, err := s.cron.AddFunc(spec, func() {
		sent, err := job.Run(context.Background())
		if err != nil {
			s.logger.Error("in-season job failed", zap.Error(err))
			return
		}
		s.logger.Info("in-season job finished", zap.Int("sent", sent))
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
