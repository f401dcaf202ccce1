// import carga un catálogo desde CSV (sku;name;price;quantity;category) usando la
// misma pasarela y almacenamiento configurado que la API.
//
// Uso: go run ./cmd/import -file catalogo.csv [-charset iso-8859-1]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/simple-inventory/internal/application/catalog"
	"github.com/jhoicas/simple-inventory/internal/application/importer"
	"github.com/jhoicas/simple-inventory/internal/infrastructure/memory"
	"github.com/jhoicas/simple-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/simple-inventory/pkg/config"
	"github.com/jhoicas/simple-inventory/pkg/logger"
)

func main() {
	path := flag.String("file", "catalogo.csv", "ruta del CSV")
	charset := flag.String("charset", importer.CharsetUTF8, "codificación del archivo: utf-8 | iso-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("abrir CSV")
	}
	defer f.Close()

	r, err := importer.DecodeReader(f, *charset)
	if err != nil {
		log.Fatal().Err(err).Msg("charset")
	}
	rows, invalid, err := importer.Parse(r)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	for _, e := range invalid {
		log.Warn().Int("line", e.Line).Err(e.Err).Msg("fila mal formada")
	}

	ctx := context.Background()
	var gw *catalog.Gateway
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		gw = catalog.NewGateway(store.Categories(), store.Products(), store, catalog.WithLogger(log.Component("catalog")))
		log.Warn().Msg("almacenamiento en memoria: la importación solo valida el archivo")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("crear esquema")
			}
		}
		gw = catalog.NewGateway(
			postgres.NewCategoryRepository(pool),
			postgres.NewProductRepository(pool),
			postgres.NewTxRunner(pool),
			catalog.WithLogger(log.Component("catalog")),
		)
	}

	sum, err := importer.New(gw, log.Component("import")).Import(ctx, rows)
	if err != nil {
		log.Error().Err(err).Int("created", sum.Created).Msg("importación interrumpida")
		os.Exit(1)
	}
	fmt.Printf("Importadas %d de %d filas (%d categorías nuevas, %d descartadas, %d mal formadas)\n",
		sum.Created, sum.Rows, sum.CategoriesCreated, len(sum.Skipped), len(invalid))
}
