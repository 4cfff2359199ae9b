// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"

	"github.com/MKhiriev/go-story-sync/models"
)

const appTitle = "Истории рядом"

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	body := fmt.Sprintf("%-9s│ %s\n%-9s│ %s\n%-9s│ %s\n%-9s│ %s",
		"Программа", appTitle,
		"Версия", info.BuildVersion(),
		"Дата", info.BuildDate(),
		"Коммит", info.BuildCommit(),
	)
	return renderPage("О ПРОГРАММЕ", body, "esc: назад")
}
