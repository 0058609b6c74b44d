// Package migrations embebe el esquema SQL que aplica postgres.Migrate al arrancar.
package migrations

import "embed"

// FS archivos NNNN_nombre.sql, aplicados en orden lexicográfico.
//
//go:embed *.sql
var FS embed.FS
