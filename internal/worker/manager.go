package worker

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Manager управляет жизненным циклом зарегистрированных воркеров
type Manager struct {
	workers []Worker
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewWorkerManager создает новый Manager
func NewWorkerManager(logger *zap.Logger) *Manager {
	return &Manager{
		logger: logger,
	}
}

// Register регистрирует воркер
func (m *Manager) Register(w Worker) {
	m.workers = append(m.workers, w)
}

// Start запускает все зарегистрированные воркеры
func (m *Manager) Start(ctx context.Context) error {
	if len(m.workers) == 0 {
		return fmt.Errorf("no workers registered")
	}

	for _, w := range m.workers {
		m.wg.Add(1)
		go func(w Worker) {
			defer m.wg.Done()
			m.logger.Info("Worker started", zap.String("name", w.Name()))
			if err := w.Start(ctx); err != nil && err != context.Canceled {
				m.logger.Error("Worker exited with error",
					zap.String("name", w.Name()),
					zap.Error(err))
			}
		}(w)
	}

	return nil
}

// Stop останавливает все воркеры и ждёт их завершения
func (m *Manager) Stop() error {
	for _, w := range m.workers {
		if err := w.Stop(); err != nil {
			m.logger.Error("Failed to stop worker",
				zap.String("name", w.Name()),
				zap.Error(err))
		}
	}

	m.wg.Wait()
	m.logger.Info("All workers stopped")
	return nil
}
