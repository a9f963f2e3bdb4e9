package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound - запись отсутствует в хранилище
	ErrNotFound = errors.New("not found")
	// ErrPersistence - запись не прошла проверку или не сохранилась
	ErrPersistence = errors.New("persistence failed")
)

// PersistenceError - сбой сохранения конкретной записи пакета.
// Index - номер записи с единицы, как в ошибках проверки CSV.
type PersistenceError struct {
	Index  int
	Fields map[string]string
	Err    error
}

func (e *PersistenceError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("Record %d: %v", e.Index, e.Err)
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s failed on %q", name, e.Fields[name])
	}
	return fmt.Sprintf("Record %d: %s", e.Index, strings.Join(parts, ", "))
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

func newPersistenceError(index int, err error) *PersistenceError {
	pe := &PersistenceError{Index: index, Err: err}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		pe.Fields = make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			pe.Fields[fe.Field()] = fe.Tag()
		}
	}
	return pe
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
