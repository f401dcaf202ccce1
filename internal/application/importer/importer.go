// Package importer carga un catálogo desde CSV (sku;name;price;quantity;category)
// pasando cada fila por la pasarela, de modo que aplica la misma validación que la API.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/simple-inventory/internal/domain"
	"github.com/jhoicas/simple-inventory/internal/domain/entity"
	"github.com/jhoicas/simple-inventory/pkg/logger"
)

// Charsets soportados para el archivo de entrada.
const (
	CharsetUTF8   = "utf-8"
	CharsetLatin1 = "iso-8859-1"
)

// CatalogWriter operaciones de la pasarela que usa la importación.
type CatalogWriter interface {
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error)
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
}

// Row fila ya parseada. Line es la línea del archivo (base 1) para los mensajes.
type Row struct {
	Line     int
	SKU      string
	Name     string
	Price    decimal.Decimal
	Quantity int
	Category string
}

// RowError fila descartada y su motivo.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("línea %d: %v", e.Line, e.Err)
}

// Summary resultado de una importación.
type Summary struct {
	Rows              int
	Created           int
	CategoriesCreated int
	Skipped           []RowError
}

// DecodeReader devuelve un lector UTF-8 según charset.
func DecodeReader(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", CharsetUTF8, "utf8":
		return r, nil
	case CharsetLatin1, "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
}

// Parse lee el CSV separado por ';'. Una primera fila que empiece por "sku" se toma
// como cabecera. Las filas mal formadas se devuelven aparte sin cortar la lectura.
func Parse(r io.Reader) ([]Row, []RowError, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		rows    []Row
		invalid []RowError
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				invalid = append(invalid, RowError{Line: perr.StartLine, Err: perr.Err})
				continue
			}
			return nil, nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(rows) == 0 && len(invalid) == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "sku") {
			continue
		}
		row, err := parseRecord(rec)
		if err != nil {
			invalid = append(invalid, RowError{Line: line, Err: err})
			continue
		}
		row.Line = line
		rows = append(rows, row)
	}
	return rows, invalid, nil
}

func parseRecord(rec []string) (Row, error) {
	if len(rec) != 5 {
		return Row{}, fmt.Errorf("se esperaban 5 columnas, hay %d", len(rec))
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	price, err := decimal.NewFromString(strings.Replace(rec[2], ",", ".", 1))
	if err != nil {
		return Row{}, fmt.Errorf("precio inválido %q", rec[2])
	}
	qty, err := strconv.Atoi(rec[3])
	if err != nil {
		return Row{}, fmt.Errorf("cantidad inválida %q", rec[3])
	}
	return Row{SKU: rec[0], Name: rec[1], Price: price, Quantity: qty, Category: rec[4]}, nil
}

// Importer crea categorías y productos a partir de filas parseadas.
type Importer struct {
	catalog CatalogWriter
	log     *logger.Logger
}

// New construye el importador. log puede ser nil.
func New(catalog CatalogWriter, log *logger.Logger) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{catalog: catalog, log: log}
}

// Import procesa las filas en orden. Los errores de validación descartan la fila;
// cualquier otro error detiene la importación.
func (im *Importer) Import(ctx context.Context, rows []Row) (Summary, error) {
	sum := Summary{Rows: len(rows)}

	existing, err := im.catalog.ListCategories(ctx)
	if err != nil {
		return sum, fmt.Errorf("listar categorías: %w", err)
	}
	byName := make(map[string]int64, len(existing))
	for _, c := range existing {
		byName[c.Name] = c.ID
	}

	for _, row := range rows {
		categoryID, ok := byName[row.Category]
		if !ok {
			created, err := im.catalog.CreateCategory(ctx, &entity.Category{Name: row.Category})
			if err != nil {
				if errors.Is(err, domain.ErrInvalidInput) {
					im.skip(&sum, row.Line, err)
					continue
				}
				return sum, fmt.Errorf("línea %d: %w", row.Line, err)
			}
			categoryID = created.ID
			byName[created.Name] = created.ID
			sum.CategoriesCreated++
			im.log.Debug().Str("category", created.Name).Int64("id", created.ID).Msg("categoría creada")
		}

		_, err := im.catalog.CreateProduct(ctx, &entity.Product{
			SKU:        row.SKU,
			Name:       row.Name,
			Price:      row.Price,
			Quantity:   row.Quantity,
			CategoryID: categoryID,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				im.skip(&sum, row.Line, err)
				continue
			}
			return sum, fmt.Errorf("línea %d: %w", row.Line, err)
		}
		sum.Created++
	}
	return sum, nil
}

func (im *Importer) skip(sum *Summary, line int, err error) {
	sum.Skipped = append(sum.Skipped, RowError{Line: line, Err: err})
	im.log.Warn().Int("line", line).Err(err).Msg("fila descartada")
}
