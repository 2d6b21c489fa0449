package schedule

import (
	"fmt"
	"time"
)

// ===============================
// Aritmética de HH:MM / minutos
// ===============================

// ParseHM converte "HH:MM" em minutos desde meia-noite.
// Valores vazios ou malformados viram -1 (janela inexistente).
func ParseHM(hm string) int {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

// FormatHM converte minutos desde meia-noite em "HH:MM".
func FormatHM(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// minuteOf extrai os minutos desde meia-noite de um timestamp.
func minuteOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// overlaps é o teste semiaberto usado em todo o engine:
// extremos encostados não conflitam.
func overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && endA > startB
}

// sameDay compara só a data civil, na location de ref.
func sameDay(t, ref time.Time) bool {
	y1, m1, d1 := t.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// dateOnly trunca para meia-noite preservando a location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
