package assistant

import "errors"

var (
	// ErrUnauthorized возвращается, когда API отклонил ключ
	ErrUnauthorized = errors.New("assistant client: unauthorized")

	// ErrRateLimited возвращается, когда превышен лимит запросов
	ErrRateLimited = errors.New("assistant client: rate limited")

	// ErrEmptyAnswer возвращается, когда в ответе нет текста
	ErrEmptyAnswer = errors.New("assistant client: empty answer")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("assistant client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("assistant client: invalid response")
)
