package elastic

import (
	"fmt"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/sirdesai22/hackathon-docsync/internal/logger"
)

func Connect(url string) (*es.Client, error) {
	cfg := es.Config{
		Addresses: []string{url},
	}
	client, err := es.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Elasticsearch: %w", err)
	}
	logger.Info().Str("url", url).Msg("✅ Connected to Elasticsearch")
	return client, nil
}
