package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/fadedpez/bankroll/pkg/entities"
)

// ElasticsearchConfig holds configuration options for the Elasticsearch sink
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
}

const (
	playsIndexSuffix  = "_plays"
	errorsIndexSuffix = "_errors"
)

const playsMapping = `{
	"mappings": {
		"properties": {
			"id": { "type": "keyword" },
			"user_id": { "type": "keyword" },
			"guild_id": { "type": "keyword" },
			"game": { "type": "keyword" },
			"wager": { "type": "long" },
			"delta": { "type": "long" },
			"outcome": { "type": "keyword" },
			"balance_after": { "type": "long" },
			"played_at": { "type": "date" }
		}
	}
}`

const errorsMapping = `{
	"mappings": {
		"properties": {
			"id": { "type": "keyword" },
			"context": { "type": "keyword" },
			"message": { "type": "text" },
			"guild_id": { "type": "keyword" },
			"user_id": { "type": "keyword" },
			"command": { "type": "keyword" },
			"occurred_at": { "type": "date" }
		}
	}
}`

// ElasticsearchSink indexes play results and error reports
type ElasticsearchSink struct {
	client      *elasticsearch.Client
	indexPrefix string
}

// NewElasticsearchSink creates the client and makes sure both indices exist
func NewElasticsearchSink(ctx context.Context, config *ElasticsearchConfig) (*ElasticsearchSink, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	prefix := config.IndexPrefix
	if prefix == "" {
		prefix = "bankroll"
	}

	sink := &ElasticsearchSink{
		client:      client,
		indexPrefix: prefix,
	}

	if err := sink.initIndices(ctx); err != nil {
		return nil, fmt.Errorf("error initializing indices: %w", err)
	}

	return sink, nil
}

func (s *ElasticsearchSink) PlaysIndex() string {
	return s.indexPrefix + playsIndexSuffix
}

func (s *ElasticsearchSink) ErrorsIndex() string {
	return s.indexPrefix + errorsIndexSuffix
}

// initIndices creates the indices if they don't exist
func (s *ElasticsearchSink) initIndices(ctx context.Context) error {
	for index, mapping := range map[string]string{
		s.PlaysIndex():  playsMapping,
		s.ErrorsIndex(): errorsMapping,
	} {
		res, err := esapi.IndicesExistsRequest{Index: []string{index}}.Do(ctx, s.client)
		if err != nil {
			return fmt.Errorf("error checking if index %s exists: %w", index, err)
		}
		res.Body.Close()

		if res.StatusCode != http.StatusNotFound {
			continue
		}

		res, err = esapi.IndicesCreateRequest{
			Index: index,
			Body:  strings.NewReader(mapping),
		}.Do(ctx, s.client)
		if err != nil {
			return fmt.Errorf("error creating index %s: %w", index, err)
		}
		res.Body.Close()

		if res.IsError() {
			return fmt.Errorf("error creating index %s: %s", index, res.String())
		}
	}
	return nil
}

func (s *ElasticsearchSink) index(ctx context.Context, index, id string, doc interface{}) error {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling document: %w", err)
	}

	res, err := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(jsonData),
	}.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("error indexing document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}
	return nil
}

// IndexPlay indexes a play result under its ID
func (s *ElasticsearchSink) IndexPlay(ctx context.Context, play *entities.PlayResult) error {
	return s.index(ctx, s.PlaysIndex(), play.ID, play)
}

// IndexError indexes an error report under its ID
func (s *ElasticsearchSink) IndexError(ctx context.Context, report *entities.ErrorReport) error {
	return s.index(ctx, s.ErrorsIndex(), report.ID, report)
}

// PruneOlderThan deletes plays and error reports older than cutoff
func (s *ElasticsearchSink) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var total int64
	for index, field := range map[string]string{
		s.PlaysIndex():  "played_at",
		s.ErrorsIndex(): "occurred_at",
	} {
		query := fmt.Sprintf(`{"query":{"range":{"%s":{"lt":"%s"}}}}`, field, cutoff.UTC().Format(time.RFC3339))

		res, err := s.client.DeleteByQuery(
			[]string{index},
			strings.NewReader(query),
			s.client.DeleteByQuery.WithContext(ctx),
			s.client.DeleteByQuery.WithRefresh(true),
		)
		if err != nil {
			return total, fmt.Errorf("error pruning %s: %w", index, err)
		}

		var result struct {
			Deleted int64 `json:"deleted"`
		}
		decodeErr := json.NewDecoder(res.Body).Decode(&result)
		res.Body.Close()

		if res.IsError() {
			return total, fmt.Errorf("error pruning %s: %s", index, res.String())
		}
		if decodeErr != nil {
			return total, fmt.Errorf("error parsing prune response: %w", decodeErr)
		}
		total += result.Deleted
	}
	return total, nil
}
