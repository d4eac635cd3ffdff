package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"coffeefinder-api/internal/config"
	"coffeefinder-api/internal/models"
	"coffeefinder-api/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	targetPostgres = "postgres"
	targetElastic  = "elastic"
)

// csv columns: name,address,tags,lat,lon
const csvColumns = 5

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	target := flag.String("target", targetPostgres, "Where to import: postgres or elastic")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *file == "" {
		log.Fatal().Msg("--file flag is required")
	}

	log.Info().Str("file", *file).Str("target", *target).Msg("starting import")

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open file")
	}
	defer f.Close()

	records, err := parseCSV(f)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse CSV")
	}
	log.Info().Int("records", len(records)).Msg("parsed CSV")

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	ctx := context.Background()
	switch *target {
	case targetPostgres:
		err = importPostgres(ctx, cfg, records)
	case targetElastic:
		err = importElastic(ctx, cfg, records)
	default:
		err = fmt.Errorf("unknown target %q", *target)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	log.Info().Int("records", len(records)).Msg("successfully imported")
}

func parseCSV(r io.Reader) ([]repository.ShopRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.TrimLeadingSpace = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []repository.ShopRecord
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < csvColumns {
			return nil, fmt.Errorf("line %d: invalid record length: %d, expected at least %d columns", line, len(record), csvColumns)
		}

		lat, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid latitude: %s", line, record[3])
		}

		lon, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid longitude: %s", line, record[4])
		}

		coord := models.Coordinate{Latitude: lat, Longitude: lon}
		if err := coord.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var tags []string
		if record[2] != "" {
			tags = strings.Split(record[2], ";")
		}

		records = append(records, repository.ShopRecord{
			Name:       record[0],
			Address:    record[1],
			Tags:       tags,
			Coordinate: coord,
		})
	}

	return records, nil
}

func importPostgres(ctx context.Context, cfg config.Config, records []repository.ShopRecord) error {
	if cfg.DBSource == "" {
		return errors.New("DB_SOURCE is not set")
	}

	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	// Ensure table exists
	if _, err := conn.Exec(ctx, repository.Schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	before, err := countShops(ctx, conn)
	if err != nil {
		return err
	}

	if err := insertRecords(ctx, conn, records); err != nil {
		return fmt.Errorf("failed to insert records: %w", err)
	}

	return verifyImport(ctx, conn, before+len(records))
}

func insertRecords(ctx context.Context, conn *pgx.Conn, records []repository.ShopRecord) error {
	// Use CopyFrom for bulk insert
	_, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"coffee_shops"},
		[]string{"name", "address", "tags", "geom"},
		pgx.CopyFromSlice(len(records), func(i int) ([]interface{}, error) {
			r := records[i]
			tags := r.Tags
			if tags == nil {
				tags = []string{}
			}
			return []interface{}{r.Name, r.Address, tags, r.EWKT()}, nil
		}),
	)
	return err
}

func countShops(ctx context.Context, conn *pgx.Conn) (int, error) {
	var count int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM coffee_shops").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

func verifyImport(ctx context.Context, conn *pgx.Conn, expectedCount int) error {
	count, err := countShops(ctx, conn)
	if err != nil {
		return err
	}

	if count != expectedCount {
		return fmt.Errorf("record count mismatch: expected %d, got %d", expectedCount, count)
	}

	// Check a sample geom
	var geom string
	err = conn.QueryRow(ctx, "SELECT ST_AsText(geom) FROM coffee_shops ORDER BY id DESC LIMIT 1").Scan(&geom)
	if err != nil {
		return fmt.Errorf("failed to check geom: %w", err)
	}

	log.Info().Str("geom", geom).Msg("sample geom")
	return nil
}

func importElastic(ctx context.Context, cfg config.Config, records []repository.ShopRecord) error {
	client, err := repository.NewElasticClient(repository.NewHTTPClient(cfg.HTTPTimeout), cfg.ElasticURL)
	if err != nil {
		return err
	}

	repo := repository.NewElasticSearcher(client, cfg.ElasticIndex, cfg.SearchLimit)
	if err := repo.EnsureIndex(ctx); err != nil {
		return err
	}

	indexed, err := repo.IndexShops(ctx, records)
	if err != nil {
		return err
	}
	log.Info().Int("indexed", indexed).Str("index", cfg.ElasticIndex).Msg("indexed shops")
	return nil
}
