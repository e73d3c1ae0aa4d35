// Package response содержит тела JSON-ответов HTTP-обработчиков.
// Ошибки и подтверждения возвращаются в едином формате {"message": "..."}.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Message тело ответа с текстом ошибки или подтверждения.
type Message struct {
	Message string `json:"message"`
}

// Error возвращает тело ответа с текстом ошибки.
func Error(msg string) Message {
	return Message{Message: msg}
}

// OK возвращает тело ответа с текстом подтверждения.
func OK(msg string) Message {
	return Message{Message: msg}
}

// ValidationError формирует сообщение из ошибок валидации.
// Нарушения объединяются через запятую.
func ValidationError(errs validator.ValidationErrors) Message {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Message{Message: strings.Join(errsMsgs, ", ")}
}
