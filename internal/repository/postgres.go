package repository

import (
	"context"
	"fmt"

	"coffeefinder-api/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SourcePostgres tags places read from the coffee_shops table.
const SourcePostgres = "postgres"

// Schema creates the coffee_shops table used by PostgresSearcher and the importer.
const Schema = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS coffee_shops (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL DEFAULT '',
		address VARCHAR(512) NOT NULL DEFAULT '',
		tags TEXT[] NOT NULL DEFAULT '{}',
		name_tsvector TSVECTOR GENERATED ALWAYS AS (to_tsvector('simple', name)) STORED,
		geom GEOGRAPHY(POINT, 4326) NOT NULL
	);
	CREATE INDEX IF NOT EXISTS coffee_shops_geom_idx ON coffee_shops USING GIST (geom);
	CREATE INDEX IF NOT EXISTS coffee_shops_name_tsvector_idx ON coffee_shops USING GIN (name_tsvector);
	CREATE INDEX IF NOT EXISTS coffee_shops_tags_idx ON coffee_shops USING GIN (tags);
`

// PostgresSearcher searches coffee shops stored in PostGIS
type PostgresSearcher struct {
	db    *pgxpool.Pool
	limit int
}

// NewPostgresSearcher creates a new PostGIS place searcher returning at most limit places
func NewPostgresSearcher(db *pgxpool.Pool, limit int) *PostgresSearcher {
	return &PostgresSearcher{db: db, limit: limit}
}

// SearchPlaces returns the shops matching query by tag or name inside region, nearest to the center first
func (r *PostgresSearcher) SearchPlaces(ctx context.Context, query string, region models.Region) ([]models.Place, error) {
	sql := `
		SELECT
			name,
			address,
			ST_Y(geom::geometry) AS latitude,
			ST_X(geom::geometry) AS longitude
		FROM coffee_shops
		WHERE (
			lower($1) = ANY(tags)
			OR name_tsvector @@ plainto_tsquery('simple', $1)
			OR name ILIKE '%' || $1 || '%'
		)
		AND ST_Intersects(geom, ST_MakeEnvelope($2, $3, $4, $5, 4326)::geography)
		ORDER BY geom <-> ST_SetSRID(ST_MakePoint($6, $7), 4326)::geography
		LIMIT $8
	`

	b := region.Bound()
	rows, err := r.db.Query(ctx, sql,
		query,
		b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat(),
		region.Center.Longitude, region.Center.Latitude,
		r.limit,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute search query: %w", err)
	}
	defer rows.Close()

	places := []models.Place{}
	for rows.Next() {
		place := models.Place{Source: SourcePostgres}
		err := rows.Scan(
			&place.Name,
			&place.Address,
			&place.Coordinate.Latitude,
			&place.Coordinate.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan place: %w", err)
		}
		places = append(places, place)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return places, nil
}
