// seed pobla la base con el inventario de equipos biomédicos desde un archivo
// exportado: JSON (arreglo de equipos) o XML del sistema patrimonial (que llega
// en ISO-8859-1).
//
// Uso:
//
//	go run ./cmd/seed -archivo inventario.json
//	go run ./cmd/seed -archivo inventario.xml
//	go run ./cmd/seed -verificar
//
// La carga borra el inventario existente (equipos y órdenes, en lotes de 500)
// antes de insertar. -verificar solo lista lo cargado, sin tocar nada.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Aurea-api/internal/domain/entity"
	"github.com/jhoicas/Aurea-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Aurea-api/pkg/config"
	"github.com/jhoicas/Aurea-api/pkg/logger"
)

// lote tamaño de borrado por ronda; el export completo ronda los 3000 equipos.
const lote = 500

// seedUser identidad de auditoría de las filas cargadas por este comando.
const seedUser = "seed"

func main() {
	archivo := flag.String("archivo", "", "inventario a cargar (.json o .xml)")
	verificar := flag.Bool("verificar", false, "listar el inventario cargado y salir")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if *verificar {
		if err := verificarInventario(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("verificar inventario")
		}
		return
	}

	if *archivo == "" {
		fmt.Fprintln(os.Stderr, "uso: seed -archivo inventario.json|inventario.xml | seed -verificar")
		os.Exit(1)
	}

	equipos, err := cargarArchivo(*archivo)
	if err != nil {
		log.Fatal().Err(err).Str("archivo", *archivo).Msg("leer inventario")
	}
	log.Info().Int("equipos", len(equipos)).Str("archivo", *archivo).Msg("inventario leído")

	borrados, err := limpiarInventario(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("limpiar inventario existente")
	}
	log.Info().Int("filas", borrados).Msg("inventario anterior eliminado")

	if err := insertarEquipos(ctx, pool, equipos); err != nil {
		log.Fatal().Err(err).Msg("insertar equipos")
	}
	log.Info().Int("equipos", len(equipos)).Msg("inventario cargado")
}

// cargarArchivo despacha por extensión: .xml pasa por el decodificador
// ISO-8859-1, cualquier otra cosa se trata como JSON.
func cargarArchivo(ruta string) ([]*entity.Equipment, error) {
	f, err := os.Open(ruta)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(ruta), ".xml") {
		return parseXML(f)
	}
	return parseJSON(f)
}

// equipoJSON forma del export JSON: los bloques con los mismos nombres de
// campo que la API.
type equipoJSON struct {
	ID               string                `json:"id"`
	Identificacion   entity.Identificacion `json:"identificacion"`
	EstadoSistema    string                `json:"estadoSistema"`
	CondicionIngreso string                `json:"condicionIngreso"`
	Localizacion     entity.Localizacion   `json:"localizacion"`
	Adquisicion      entity.Adquisicion    `json:"adquisicion"`
	Vida             entity.Vida           `json:"vida"`
	Riesgo           entity.Riesgo         `json:"riesgo"`
}

func parseJSON(r io.Reader) ([]*entity.Equipment, error) {
	var rows []equipoJSON
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decodificar JSON: %w", err)
	}
	out := make([]*entity.Equipment, 0, len(rows))
	for i, row := range rows {
		e, err := construirEquipo(row.ID, row.Identificacion, row.EstadoSistema,
			row.CondicionIngreso, row.Localizacion, row.Adquisicion, row.Vida, row.Riesgo)
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// parseXML lee el export del sistema patrimonial:
//
//	<inventario>
//	  <equipo codigo="IC-0001" estado="OPERATIVO">
//	    <nombre>VENTILADOR MECANICO</nombre>
//	    <marca>DRAGER</marca> <modelo>EVITA V300</modelo> <serie>SN-1</serie>
//	    <ubicacion sede="SEDE CENTRAL" area="UCI ADULTOS" nivel="3"/>
//	    <adquisicion precio="185000.00" moneda="PEN"/>
//	    <riesgo criticidad="ALTO"/>
//	  </equipo>
//	</inventario>
func parseXML(r io.Reader) ([]*entity.Equipment, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("decodificar XML: %w", err)
	}
	root := doc.SelectElement("inventario")
	if root == nil {
		return nil, fmt.Errorf("XML sin elemento raíz <inventario>")
	}

	var out []*entity.Equipment
	for i, el := range root.SelectElements("equipo") {
		ident := entity.Identificacion{
			Nombre: textoDe(el, "nombre"),
			Marca:  textoDe(el, "marca"),
			Modelo: textoDe(el, "modelo"),
			Serie:  textoDe(el, "serie"),
		}
		var loc entity.Localizacion
		if u := el.SelectElement("ubicacion"); u != nil {
			loc = entity.Localizacion{
				Sede:        u.SelectAttrValue("sede", ""),
				AreaClinica: u.SelectAttrValue("area", ""),
				Nivel:       u.SelectAttrValue("nivel", ""),
			}
		}
		var adq entity.Adquisicion
		if a := el.SelectElement("adquisicion"); a != nil {
			adq.Moneda = a.SelectAttrValue("moneda", "")
			if p := a.SelectAttrValue("precio", ""); p != "" {
				precio, err := decimal.NewFromString(p)
				if err != nil {
					return nil, fmt.Errorf("equipo %d: precio %q: %w", i, p, err)
				}
				adq.PrecioCompra = &precio
			}
		}
		var riesgo entity.Riesgo
		if rg := el.SelectElement("riesgo"); rg != nil {
			riesgo.Criticidad = rg.SelectAttrValue("criticidad", "")
		}
		e, err := construirEquipo(
			el.SelectAttrValue("codigo", ""), ident,
			el.SelectAttrValue("estado", ""), "",
			loc, adq, entity.Vida{}, riesgo,
		)
		if err != nil {
			return nil, fmt.Errorf("equipo %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func textoDe(el *etree.Element, hijo string) string {
	if h := el.SelectElement(hijo); h != nil {
		return strings.TrimSpace(h.Text())
	}
	return ""
}

func construirEquipo(
	id string,
	ident entity.Identificacion,
	estado, condicion string,
	loc entity.Localizacion,
	adq entity.Adquisicion,
	vida entity.Vida,
	riesgo entity.Riesgo,
) (*entity.Equipment, error) {
	if id == "" {
		return nil, fmt.Errorf("código IC vacío")
	}
	if ident.Nombre == "" {
		return nil, fmt.Errorf("equipo %s sin nombre", id)
	}
	es := entity.EstadoEquipo(estado)
	if estado == "" {
		es = entity.EquipoOperativo
	}
	if !es.EsValido() {
		return nil, fmt.Errorf("equipo %s: estado %q inválido", id, estado)
	}
	now := time.Now().UTC()
	return &entity.Equipment{
		ID:               id,
		Identificacion:   ident,
		EstadoSistema:    es,
		CondicionIngreso: condicion,
		Localizacion:     loc,
		Adquisicion:      adq,
		Vida:             vida,
		Riesgo:           riesgo,
		Metadata: entity.Metadata{
			CreadoEn:       now,
			CreadoPor:      seedUser,
			ActualizadoEn:  now,
			ActualizadoPor: seedUser,
		},
	}, nil
}

// limpiarInventario borra órdenes y equipos en rondas de tamaño fijo para no
// retener locks largos sobre tablas grandes. Devuelve el total de filas.
func limpiarInventario(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	total := 0
	for _, tabla := range []string{"ordenes_trabajo", "equipos"} {
		for {
			tag, err := pool.Exec(ctx, fmt.Sprintf(
				`DELETE FROM %s WHERE ctid IN (SELECT ctid FROM %s LIMIT %d)`,
				tabla, tabla, lote,
			))
			if err != nil {
				return total, fmt.Errorf("borrar %s: %w", tabla, err)
			}
			n := int(tag.RowsAffected())
			total += n
			if n < lote {
				break
			}
		}
	}
	return total, nil
}

// insertarEquipos carga todo en una sola transacción: o entra el inventario
// completo o no entra nada.
func insertarEquipos(ctx context.Context, pool *pgxpool.Pool, equipos []*entity.Equipment) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	repo := postgres.NewEquipmentRepository(tx)
	for _, e := range equipos {
		if err := repo.Create(ctx, e); err != nil {
			return fmt.Errorf("equipo %s: %w", e.ID, err)
		}
	}
	return tx.Commit(ctx)
}

func verificarInventario(ctx context.Context, pool *pgxpool.Pool) error {
	repo := postgres.NewEquipmentRepository(pool)
	equipos, err := repo.List(ctx, 50)
	if err != nil {
		return err
	}
	for _, e := range equipos {
		fmt.Printf("%-12s %-40s %s\n", e.ID, e.Identificacion.Nombre, e.EstadoSistema)
	}
	fmt.Printf("total: %d equipos (máximo 50 listados)\n", len(equipos))
	return nil
}
