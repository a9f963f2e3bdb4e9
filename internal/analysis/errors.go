package analysis

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrNoFeatures - в коллекции нет участков, анализировать нечего
	ErrNoFeatures = errors.New("analysis: no features to analyze")
	// ErrProviderUnavailable - провайдер вернул ошибку или некорректный ответ
	ErrProviderUnavailable = errors.New("analysis: provider unavailable")
	// ErrProviderTimeout - провайдер не ответил за отведенное время
	ErrProviderTimeout = errors.New("analysis: provider timeout")
)

// ProviderError - сбой обработки конкретного чанка
type ProviderError struct {
	Chunk      int
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("chunk %d: %v (status %d)", e.Chunk, e.Err, e.StatusCode)
	}
	return fmt.Sprintf("chunk %d: %v", e.Chunk, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsProviderError сообщает, что ошибка относится к анализу (любая из трех категорий)
func IsProviderError(err error) bool {
	return errors.Is(err, ErrNoFeatures) ||
		errors.Is(err, ErrProviderUnavailable) ||
		errors.Is(err, ErrProviderTimeout)
}

// classify сводит транспортную ошибку к таймауту или недоступности провайдера
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrProviderTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrProviderTimeout
	}
	return ErrProviderUnavailable
}
