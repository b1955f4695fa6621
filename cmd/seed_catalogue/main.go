// seed_catalogue genera un script SQL para cargar la lista de precios de un proveedor
// como artículos de stock.
//
// Uso: go run ./cmd/seed_catalogue <company_id> <supplier_id> <lista.csv> [salida.sql]
//
// Columnas (con cabecera): name, sku, unit, unit_price, par_level, shelf_life_days, is_perishable.
// La lista puede venir en UTF-8 o en Windows-1252 (exportaciones de Excel); se detecta sola.
// Sin salida se escribe en stdout.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalogue <company_id> <supplier_id> <lista.csv> [salida.sql]")
		os.Exit(2)
	}
	companyID, supplierID, csvPath := os.Args[1], os.Args[2], os.Args[3]
	for _, id := range []string{companyID, supplierID} {
		if _, err := uuid.Parse(id); err != nil {
			fmt.Fprintf(os.Stderr, "UUID inválido %q\n", id)
			os.Exit(2)
		}
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	rows, err := parseCatalogue(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if len(os.Args) > 4 {
		f, err := os.Create(os.Args[4])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := writeSQL(out, companyID, supplierID, rows, uuid.NewString); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generados %d artículos para el proveedor %s\n", len(rows), supplierID)
}
