package errors

import (
	"errors"
	"fmt"
)

// ErrPartialWrite a primeira etapa de uma gravação composta foi persistida e a segunda falhou.
// Não há transação entre as etapas; o estado fica inconsistente até a próxima correção manual.
var ErrPartialWrite = errors.New("gravação parcial: registro principal salvo, sincronização falhou")

// ValidationError campo obrigatório ausente ou inválido, detectado antes de qualquer escrita
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation cria um ValidationError
func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation indica se err (ou algum erro encadeado) é de validação
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
