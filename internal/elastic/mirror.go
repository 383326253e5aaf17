package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/sirdesai22/hackathon-docsync/internal/denorm"
	"github.com/sirdesai22/hackathon-docsync/internal/logger"
	"github.com/sirdesai22/hackathon-docsync/internal/metrics"
)

// Mirror keeps a searchable copy of the event documents.
type Mirror struct {
	ES *es.Client
}

func NewMirror(c *es.Client) *Mirror {
	return &Mirror{ES: c}
}

// ReindexResult summarises one bulk run.
type ReindexResult struct {
	Indexed uint64 `json:"indexed"`
	Failed  uint64 `json:"failed"`
}

// ReindexEvents recreates the events index and bulk-indexes every event.
func (m *Mirror) ReindexEvents(ctx context.Context, events []denorm.EventDoc) (*ReindexResult, error) {
	if err := resetIndex(ctx, m.ES, IdxEvents, eventsMapping); err != nil {
		return nil, err
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client: m.ES, Index: IdxEvents, FlushBytes: 5 << 20, NumWorkers: 2, Refresh: "true",
	})
	if err != nil {
		return nil, fmt.Errorf("bulk indexer: %w", err)
	}

	for _, e := range events {
		doc, err := BuildEventDoc(e)
		if err != nil {
			_ = bi.Close(ctx)
			return nil, fmt.Errorf("build event doc %d: %w", e.ID, err)
		}
		if err := m.add(ctx, bi, strconv.FormatInt(e.ID, 10), doc); err != nil {
			_ = bi.Close(ctx)
			return nil, err
		}
	}

	if err := bi.Close(ctx); err != nil {
		return nil, err
	}
	stats := bi.Stats()
	logger.Info().Uint64("ok", stats.NumFlushed).Uint64("failed", stats.NumFailed).Msg("🔎 Search mirror reindexed")
	return &ReindexResult{Indexed: stats.NumFlushed, Failed: stats.NumFailed}, nil
}

func (m *Mirror) add(ctx context.Context, bi esutil.BulkIndexer, docID string, body []byte) error {
	item := esutil.BulkIndexerItem{
		Action:     "index",
		DocumentID: docID,
		Body:       bytes.NewReader(body),
		OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
			metrics.MirroredDocuments.WithLabelValues("indexed").Inc()
		},
		OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
			msg := ""
			switch {
			case err != nil:
				msg = err.Error()
			case res.Error.Reason != "":
				msg = fmt.Sprintf("%s: %s", res.Error.Type, res.Error.Reason)
			default:
				msg = fmt.Sprintf("status=%d failed to index", res.Status)
			}
			metrics.MirroredDocuments.WithLabelValues("failed").Inc()
			logger.Warn().Str("index", IdxEvents).Str("id", docID).Str("reason", msg).Msg("💀 Event not mirrored")
		},
	}
	return bi.Add(ctx, item)
}

// SearchHit is one matching event with its relevance score.
type SearchHit struct {
	Score float64  `json:"score"`
	Event EventDoc `json:"event"`
}

func searchBody(q string, size int) ([]byte, error) {
	return json.Marshal(map[string]any{
		"size": size,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^3", "venue_name", "workshop_titles^2", "sponsor_names", "event_type", "skill_levels"},
			},
		},
	})
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Score  float64  `json:"_score"`
			Source EventDoc `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchEvents runs a multi_match query over the mirrored events.
func (m *Mirror) SearchEvents(ctx context.Context, q string, size int) ([]SearchHit, error) {
	body, err := searchBody(q, size)
	if err != nil {
		return nil, err
	}
	res, err := m.ES.Search(
		m.ES.Search.WithContext(ctx),
		m.ES.Search.WithIndex(IdxEvents),
		m.ES.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search events: %s", strings.TrimSpace(res.String()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	hits := make([]SearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, SearchHit{Score: h.Score, Event: h.Source})
	}
	return hits, nil
}
