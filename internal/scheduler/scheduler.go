// Package scheduler ejecuta tareas periódicas de mantenimiento del inventario.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// DaysInStockRefresher recalcula days_in_stock de todos los productos.
type DaysInStockRefresher interface {
	RefreshDaysInStock(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler administra las tareas programadas.
type Scheduler struct {
	cron     *cron.Cron
	products DaysInStockRefresher
	now      func() time.Time
	timeout  time.Duration
}

// New crea el scheduler. Las expresiones usan el parser estándar de 5 campos, en UTC.
func New(products DaysInStockRefresher, now func() time.Time) *Scheduler {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		products: products,
		now:      now,
		timeout:  2 * time.Minute,
	}
}

// Start registra el job de days_in_stock con la expresión dada y arranca el cron.
func (s *Scheduler) Start(daysInStockSpec string) error {
	if _, err := s.cron.AddFunc(daysInStockSpec, s.refreshJob); err != nil {
		return fmt.Errorf("scheduler: expresión %q: %w", daysInStockSpec, err)
	}
	s.cron.Start()
	log.Info().Str("days_in_stock", daysInStockSpec).Msg("scheduler iniciado")
	return nil
}

// Stop detiene el cron y espera a que terminen los jobs en curso (o a que venza ctx).
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		log.Warn().Msg("scheduler: job en curso no terminó antes del apagado")
	}
}

// RefreshDaysInStock corre el recálculo una vez.
func (s *Scheduler) RefreshDaysInStock(ctx context.Context) (int64, error) {
	return s.products.RefreshDaysInStock(ctx, s.now())
}

func (s *Scheduler) refreshJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.RefreshDaysInStock(ctx)
	if err != nil {
		log.Error().Err(err).Msg("scheduler: falló el recálculo de days_in_stock")
		return
	}
	log.Info().Int64("productos", n).Dur("duracion", time.Since(start)).Msg("days_in_stock recalculado")
}
