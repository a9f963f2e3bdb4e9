package validation

import (
	"fmt"
	"strings"
)

// Области, к которым относится ошибка
const (
	ScopeBatch   = ""
	ScopeRecord  = "record"
	ScopeFeature = "feature"
)

// ValidationError - ошибка проверки поля или геометрии.
// Index - номер строки CSV (с 1) или индекс участка GeoJSON (с 0).
type ValidationError struct {
	Scope  string `json:"scope,omitempty"`
	Index  int    `json:"index"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

func (e ValidationError) Error() string {
	switch e.Scope {
	case ScopeRecord:
		return fmt.Sprintf("Record %d: %s", e.Index, e.Reason)
	case ScopeFeature:
		return fmt.Sprintf("Feature %d: %s", e.Index, e.Reason)
	default:
		return e.Reason
	}
}

// Errors - набор ошибок проверки пакета. Пустой набор означает валидный пакет.
type Errors []ValidationError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Messages возвращает человекочитаемые сообщения
func (e Errors) Messages() []string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return msgs
}

func batchError(reason string) ValidationError {
	return ValidationError{Scope: ScopeBatch, Index: -1, Reason: reason}
}

func recordError(index int, field, reason string) ValidationError {
	return ValidationError{Scope: ScopeRecord, Index: index, Field: field, Reason: reason}
}

func featureError(index int, field, reason string) ValidationError {
	return ValidationError{Scope: ScopeFeature, Index: index, Field: field, Reason: reason}
}
