package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"coffeefinder-api/internal/models"

	"github.com/olivere/elastic/v7"
	"github.com/rs/zerolog/log"
)

// SourceElastic tags places read from Elasticsearch.
const SourceElastic = "elastic"

// ElasticMapping is the index mapping expected by ElasticSearcher.
const ElasticMapping = `{
	"mappings": {
		"properties": {
			"name":     {"type": "text"},
			"address":  {"type": "text"},
			"tags":     {"type": "keyword"},
			"location": {"type": "geo_point"}
		}
	}
}`

// elasticShop is the document stored per coffee shop
type elasticShop struct {
	Name     string           `json:"name"`
	Address  string           `json:"address"`
	Tags     []string         `json:"tags"`
	Location elastic.GeoPoint `json:"location"`
}

// ElasticSearcher searches coffee shops indexed in Elasticsearch
type ElasticSearcher struct {
	client *elastic.Client
	index  string
	limit  int
}

// NewElasticClient connects to a single Elasticsearch node without sniffing
func NewElasticClient(httpClient *http.Client, url string) (*elastic.Client, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetHttpClient(httpClient),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to create elastic client: %w", err)
	}
	return client, nil
}

// NewElasticSearcher creates a new Elasticsearch place searcher returning at most limit places
func NewElasticSearcher(client *elastic.Client, index string, limit int) *ElasticSearcher {
	return &ElasticSearcher{client: client, index: index, limit: limit}
}

// EnsureIndex creates the index with ElasticMapping when it does not exist yet
func (r *ElasticSearcher) EnsureIndex(ctx context.Context) error {
	exists, err := r.client.IndexExists(r.index).Do(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to check index %q: %w", r.index, err)
	}
	if exists {
		return nil
	}

	created, err := r.client.CreateIndex(r.index).BodyString(ElasticMapping).Do(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to create index %q: %w", r.index, err)
	}
	if !created.Acknowledged {
		log.Warn().Str("index", r.index).Msg("create index was not acknowledged")
	}
	return nil
}

// SearchPlaces returns shops matching query by name or tag inside region, nearest to the center first
func (r *ElasticSearcher) SearchPlaces(ctx context.Context, query string, region models.Region) ([]models.Place, error) {
	b := region.Bound()

	q := elastic.NewBoolQuery().
		Should(
			elastic.NewMatchQuery("name", query),
			elastic.NewTermQuery("tags", query),
		).
		MinimumNumberShouldMatch(1).
		Filter(elastic.NewGeoBoundingBoxQuery("location").
			TopLeft(b.Max.Lat(), b.Min.Lon()).
			BottomRight(b.Min.Lat(), b.Max.Lon()))

	result, err := r.client.Search().
		Index(r.index).
		Query(q).
		SortBy(elastic.NewGeoDistanceSort("location").
			Point(region.Center.Latitude, region.Center.Longitude).
			Asc().
			Unit("m").
			DistanceType("arc").
			IgnoreUnmapped(true)).
		Size(r.limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: elastic search failed: %w", err)
	}

	places := []models.Place{}
	if result.Hits == nil {
		return places, nil
	}
	for _, hit := range result.Hits.Hits {
		var doc elasticShop
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			log.Warn().Err(err).Str("id", hit.Id).Msg("skipping malformed elastic hit")
			continue
		}
		places = append(places, models.Place{
			Name:       doc.Name,
			Coordinate: models.Coordinate{Latitude: doc.Location.Lat, Longitude: doc.Location.Lon},
			Address:    doc.Address,
			Source:     SourceElastic,
		})
	}

	return places, nil
}

// IndexShops bulk indexes shops and refreshes the index so they are searchable right away
func (r *ElasticSearcher) IndexShops(ctx context.Context, shops []ShopRecord) (int, error) {
	if len(shops) == 0 {
		return 0, nil
	}

	bulk := r.client.Bulk().Index(r.index).Refresh("true")
	for _, s := range shops {
		bulk.Add(elastic.NewBulkIndexRequest().Doc(elasticShop{
			Name:     s.Name,
			Address:  s.Address,
			Tags:     normalizeTags(s.Tags),
			Location: elastic.GeoPoint{Lat: s.Coordinate.Latitude, Lon: s.Coordinate.Longitude},
		}))
	}

	resp, err := bulk.Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("repository: elastic bulk index failed: %w", err)
	}
	if failed := resp.Failed(); len(failed) > 0 {
		reason := ""
		if failed[0].Error != nil {
			reason = failed[0].Error.Reason
		}
		return len(shops) - len(failed), fmt.Errorf("repository: %d of %d shops were not indexed: %s", len(failed), len(shops), reason)
	}
	return len(shops), nil
}
