package telegram

import "errors"

var (
	// ErrRejected возвращается, когда Bot API ответил ok=false
	ErrRejected = errors.New("telegram client: message rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("telegram client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("telegram client: invalid response")
)
