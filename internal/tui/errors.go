// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/service"
)

// ErrUserQuit is returned when the user leaves the auth flow.
var ErrUserQuit = errors.New("вышел из программы")

var humanMessages = []struct {
	target error
	text   string
}{
	{service.ErrWrongPassword, "Неверный email или пароль"},
	{service.ErrSessionExpired, "Сессия истекла, войдите снова"},
	{service.ErrEmailAlreadyExists, "Этот email уже зарегистрирован"},
	{service.ErrInvalidDraft, "Проверьте описание, фото и координаты"},
	{service.ErrInvalidDataProvided, "Некорректные данные"},
	{service.ErrNotStoryOwner, "Можно удалять только свои истории"},
	{service.ErrStoryNotFound, "История не найдена"},
	{adapter.ErrNetwork, "Отсутствует сеть или Сервер недоступен"},
}

func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	for _, m := range humanMessages {
		if errors.Is(err, m.target) {
			return m.text
		}
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return err.Error()
}
