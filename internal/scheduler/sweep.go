package scheduler

import (
	"context"
	"time"

	"pet-care-scheduler/internal/domain/events"
	"pet-care-scheduler/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule es el intervalo del sweep si SWEEP_SCHEDULE no está seteado.
const DefaultSchedule = "@every 1h"

// Sweeper corre la materialización global en background. El sweep es
// idempotente, así que un schedule agresivo solo cuesta queries, nunca
// duplica eventos.
type Sweeper struct {
	cron *cron.Cron
	mat  *events.Materializer
	log  logger.Logger
}

func NewSweeper(mat *events.Materializer, log logger.Logger) *Sweeper {
	return &Sweeper{
		cron: cron.New(),
		mat:  mat,
		log:  log,
	}
}

// Start registra el job y arranca el cron. Corre un sweep inmediato para no
// esperar el primer tick tras un reinicio.
func (s *Sweeper) Start(spec string) error {
	if spec == "" {
		spec = DefaultSchedule
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return err
	}

	s.cron.Start()
	go s.run()

	s.log.Info("sweeper iniciado", map[string]any{"schedule": spec})
	return nil
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.mat.Sweep(ctx); err != nil {
		s.log.Error("sweep falló", map[string]any{"err": err.Error()})
	}
}

// Stop frena el cron y espera a que termine el job en curso.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
