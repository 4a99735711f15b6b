package worker

import (
	"context"
	"sync"
	"time"

	"projectFlow/internal/logger"

	"go.uber.org/zap"
)

// TimerScheduler выполняет отложенные одноразовые задачи на time.AfterFunc
type TimerScheduler struct {
	mtx     sync.Mutex
	nextID  uint64
	timers  map[uint64]*time.Timer
	stopped bool
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{
		timers: make(map[uint64]*time.Timer),
	}
}

// Schedule не блокирует вызывающего. После Stop новые задачи не запускаются.
func (s *TimerScheduler) Schedule(delay time.Duration, fn func()) (cancel func()) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.stopped {
		logger.Warn("Worker: Планировщик остановлен, задача отброшена")
		return func() {}
	}

	s.nextID++
	id := s.nextID

	s.timers[id] = time.AfterFunc(delay, func() {
		s.mtx.Lock()
		_, ok := s.timers[id]
		delete(s.timers, id)
		s.mtx.Unlock()

		if !ok {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				logger.Warn("Worker: Паника в отложенной задаче", zap.Any("panic", r))
			}
		}()
		fn()
	})

	return func() {
		s.mtx.Lock()
		defer s.mtx.Unlock()

		if t, ok := s.timers[id]; ok {
			t.Stop()
			delete(s.timers, id)
		}
	}
}

func (s *TimerScheduler) Pending() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return len(s.timers)
}

// Stop отменяет все несработавшие задачи
func (s *TimerScheduler) Stop() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// Run блокируется до отмены ctx, затем останавливает планировщик
func (s *TimerScheduler) Run(ctx context.Context) error {
	logger.Info("Worker: Планировщик запущен")
	<-ctx.Done()

	dropped := s.Pending()
	s.Stop()
	logger.Info("Worker: Планировщик остановлен", zap.Int("dropped", dropped))
	return nil
}
