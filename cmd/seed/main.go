// seed genera un script SQL con datos de demostración: el catálogo típico de
// una frutería y un usuario administrador inicial.
//
// Uso: go run ./cmd/seed [email admin] [password admin]
// Por defecto admin@fruteria.local / cambiame123.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_demo.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fruteria-api/internal/domain/entity"
)

type demoProduct struct {
	name      string
	category  string
	unit      string
	buyPrice  string
	sellPrice string
	stock     string
	threshold string
}

// Categoría y unidad salen de las constantes de entity para que lo sembrado
// pase las mismas validaciones que usa la API.
var demoProducts = []demoProduct{
	{"Manzana", entity.CategoryFruta, entity.UnitKg, "2.50", "4.90", "30", "5"},
	{"Banana", entity.CategoryFruta, entity.UnitKg, "1.80", "3.50", "40", "8"},
	{"Naranja", entity.CategoryFruta, entity.UnitKg, "2.00", "3.90", "35", "6"},
	{"Pera", entity.CategoryFruta, entity.UnitKg, "3.00", "5.50", "20", "4"},
	{"Uva", entity.CategoryFruta, entity.UnitKg, "4.50", "8.90", "15", "3"},
	{"Sandía", entity.CategoryFruta, entity.UnitUnidad, "6.00", "12.00", "10", "2"},
	{"Piña", entity.CategoryFruta, entity.UnitUnidad, "3.50", "7.00", "12", "3"},
	{"Jugo de naranja 1L", entity.CategoryProcesado, entity.UnitUnidad, "2.20", "4.50", "24", "6"},
	{"Pulpa de fruta congelada", entity.CategoryProcesado, entity.UnitUnidad, "1.50", "3.20", "30", "8"},
	{"Ensalada de frutas", entity.CategoryProcesado, entity.UnitUnidad, "2.80", "5.90", "15", "4"},
	{"Bolsa reutilizable", entity.CategoryOtro, entity.UnitUnidad, "0.50", "1.50", "100", "20"},
}

func main() {
	adminEmail := "admin@fruteria.local"
	adminPassword := "cambiame123"
	if len(os.Args) > 1 {
		adminEmail = os.Args[1]
	}
	if len(os.Args) > 2 {
		adminPassword = os.Args[2]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash de password: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_demo.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Datos de demostración: catálogo de frutería y admin inicial.\n")
	out.WriteString("-- Generado por cmd/seed. No usar en producción sin cambiar el password.\n\n")

	out.WriteString("-- 1. Usuario administrador\n")
	fmt.Fprintf(out, "INSERT INTO users (id, name, email, password_hash, role, status)\nVALUES ('%s', 'Administrador', '%s', '%s', '%s', '%s')\nON CONFLICT (email) DO NOTHING;\n\n",
		uuid.New().String(), escapeSQL(adminEmail), escapeSQL(string(hash)), entity.RoleAdmin, entity.StatusActive)

	out.WriteString("-- 2. Catálogo de productos\n")
	out.WriteString("INSERT INTO products (id, name, category, unit, purchase_price, selling_price, stock, low_stock_threshold) VALUES\n")
	for i, p := range demoProducts {
		sep := ","
		if i == len(demoProducts)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s', '%s', %s, %s, %s, %s)%s\n",
			uuid.New().String(), escapeSQL(p.name), p.category, p.unit,
			p.buyPrice, p.sellPrice, p.stock, p.threshold, sep)
	}
	out.WriteString("ON CONFLICT DO NOTHING;\n")

	fmt.Printf("Generado %s: %d productos, admin %s\n", outPath, len(demoProducts), adminEmail)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
