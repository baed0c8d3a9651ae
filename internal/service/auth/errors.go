package auth

import "errors"

var (
	// ErrInvalidCredentials неверный email или пароль
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrInvalidToken токен отсутствует, повреждён или истёк
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("auth: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("auth: internal error")
)
