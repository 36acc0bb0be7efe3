// Package utils содержит утилитарные функции, используемые в разных частях приложения
package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var genreCaser = cases.Title(language.English)

// FormatDuration форматирует time.Duration в формат HH:MM:SS
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatDurationMS форматирует длительность песни в миллисекундах в формат MM:SS
// (HH:MM:SS для длинных записей)
func FormatDurationMS(ms int) string {
	if ms < 0 {
		ms = 0
	}
	d := time.Duration(ms) * time.Millisecond
	if d >= time.Hour {
		return FormatDuration(d)
	}
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// FormatTempo возвращает метку темпа вида "120 BPM" (дробная часть отбрасывается)
func FormatTempo(tempo float64) string {
	return fmt.Sprintf("%d BPM", int(math.Trunc(tempo)))
}

// FormatGenre приводит жанр датасета ("hip-hop", "j-rock") к виду для заголовков
func FormatGenre(genre string) string {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return "-"
	}
	return genreCaser.String(genre)
}

// FormatFileSize форматирует размер в байтах в человекочитаемый вид
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

// TruncateString обрезает строку до указанной длины в рунах, добавляя "..." если строка длиннее
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
