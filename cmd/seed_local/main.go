// seed_local inicializa el espejo local con el conjunto fijo de la relojería.
//
// Uso: go run ./cmd/seed_local [-path data/mirror.db] [-reset]
// Sin -reset es idempotente: si el espejo ya fue sembrado no toca nada.
// Con -reset borra todas las colecciones y la bandera antes de sembrar.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/relojeria-admin/internal/infrastructure/seed"
	"github.com/jhoicas/relojeria-admin/internal/infrastructure/sqlite"
	"github.com/jhoicas/relojeria-admin/pkg/config"
	"github.com/jhoicas/relojeria-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	path := flag.String("path", cfg.Local.Path, "archivo SQLite del espejo local")
	reset := flag.Bool("reset", false, "borrar el espejo antes de sembrar")
	flag.Parse()

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	if err := run(context.Background(), *path, *reset, log, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run siembra el espejo en path y escribe el resumen en out. El store se cierra
// siempre antes de retornar, también en los caminos de error.
func run(ctx context.Context, path string, reset bool, log *logger.Logger, out io.Writer) error {
	store, err := sqlite.Open(ctx, path, sqlite.WithLogger(log))
	if err != nil {
		return fmt.Errorf("abrir espejo: %w", err)
	}
	defer store.Close()

	if reset {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("limpiar espejo: %w", err)
		}
	}

	seeded, err := seed.NewSeeder(store, seed.Dataset(), log).EnsureSeeded(ctx)
	if err != nil {
		return fmt.Errorf("sembrar: %w", err)
	}

	p := message.NewPrinter(language.Spanish)
	if seeded {
		p.Fprintf(out, "Espejo sembrado en %s\n", store.Path())
	} else {
		p.Fprintf(out, "El espejo %s ya estaba sembrado, sin cambios\n", store.Path())
	}
	counts := store.Counts()
	for _, b := range sqlite.Buckets {
		p.Fprintf(out, "  %-17s %d\n", b, counts[b])
	}
	return nil
}
