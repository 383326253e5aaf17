package elastic

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	es "github.com/elastic/go-elasticsearch/v8"
)

const IdxEvents = "events_v1"

const eventsMapping = `{"settings":{"number_of_shards":1},"mappings":{"dynamic":"strict","properties":{
	"event_id":{"type":"long"},"name":{"type":"text"},"event_type":{"type":"keyword"},
	"start_date":{"type":"date"},"end_date":{"type":"date"},"max_participants":{"type":"integer"},
	"venue_name":{"type":"text"},"workshop_titles":{"type":"text"},"skill_levels":{"type":"keyword"},
	"sponsor_names":{"type":"text"},"registration_count":{"type":"integer"}
}}}`

// EnsureIndex creates the events index when it does not exist yet.
func EnsureIndex(ctx context.Context, c *es.Client) error {
	exists, err := c.Indices.Exists([]string{IdxEvents}, c.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", IdxEvents, err)
	}
	exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}
	return create(ctx, c, IdxEvents, eventsMapping)
}

// resetIndex deletes and recreates the index so a full reindex leaves no
// stale documents behind.
func resetIndex(ctx context.Context, c *es.Client, index, body string) error {
	res, err := c.Indices.Delete([]string{index}, c.Indices.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete index %s: %w", index, err)
	}
	res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete index %s: %s", index, res.Status())
	}
	return create(ctx, c, index, body)
}

func create(ctx context.Context, c *es.Client, index, body string) error {
	res, err := c.Indices.Create(index, c.Indices.Create.WithBody(bytes.NewBufferString(body)), c.Indices.Create.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", index, res.Status())
	}
	return nil
}
