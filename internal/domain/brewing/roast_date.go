// Package brewing reúne las funciones puras del dominio de extracción:
// selección de la fecha de tueste más cercana y métricas derivadas del brew.
package brewing

import "time"

// ClosestRoastDate devuelve la fecha más cercana a "ahora" (evaluado en cada llamada).
// ok = false si dates está vacío.
func ClosestRoastDate(dates []time.Time) (closest time.Time, ok bool) {
	return ClosestRoastDateAt(dates, time.Now())
}

// ClosestRoastDateAt igual que ClosestRoastDate pero con un instante explícito.
// Reducción de izquierda a derecha: solo reemplaza al mejor actual si la distancia es
// estrictamente menor, así que ante un empate gana la primera fecha en el orden de entrada.
func ClosestRoastDateAt(dates []time.Time, now time.Time) (time.Time, bool) {
	return Closest(dates, func(t time.Time) time.Time { return t }, now)
}

// Closest aplica la misma reducción sobre registros arbitrarios (ej. entity.RoastDate).
func Closest[T any](items []T, dateOf func(T) time.Time, now time.Time) (T, bool) {
	var best T
	if len(items) == 0 {
		return best, false
	}
	best = items[0]
	bestDiff := distance(now, dateOf(best))
	for _, it := range items[1:] {
		if d := distance(now, dateOf(it)); d < bestDiff {
			best, bestDiff = it, d
		}
	}
	return best, true
}

func distance(now, t time.Time) time.Duration {
	d := now.Sub(t)
	if d < 0 {
		return -d
	}
	return d
}
