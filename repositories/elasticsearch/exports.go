package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"varanno/api/models"
	"varanno/api/models/indexes"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esutil"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// EnsureExportIndex creates the export index with its mapping if it does
// not exist yet.
func EnsureExportIndex(ctx context.Context, cfg *models.Config, es *es7.Client) error {
	index := cfg.Elasticsearch.ExportIndex

	res, err := es.Indices.Exists([]string{index}, es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return errors.Wrapf(err, "checking index %s", index)
	}
	res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}
	if res.StatusCode != 404 {
		return errors.Errorf("checking index %s: %s", index, res.Status())
	}

	body, err := json.Marshal(map[string]interface{}{
		"mappings": indexes.EXPORTED_VARIANT_INDEX_MAPPING,
	})
	if err != nil {
		return errors.Wrap(err, "encoding mapping")
	}

	res, err = es.Indices.Create(index,
		es.Indices.Create.WithContext(ctx),
		es.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return errors.Wrapf(err, "creating index %s", index)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.Errorf("creating index %s: %s", index, readError(res.Body))
	}
	fmt.Printf("[%s] - Created index %s\n", time.Now(), index)
	return nil
}

// DeleteExportedVariantsBySessionId removes a previous publication of
// the session so a republish replaces it.
func DeleteExportedVariantsBySessionId(ctx context.Context, cfg *models.Config, es *es7.Client, sessionId string) error {
	var buf bytes.Buffer
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"sessionId": sessionId,
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return errors.Wrap(err, "encoding query")
	}

	res, err := es.DeleteByQuery(
		[]string{cfg.Elasticsearch.ExportIndex},
		&buf,
		es.DeleteByQuery.WithContext(ctx),
		es.DeleteByQuery.WithConflicts("proceed"),
		es.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return errors.Wrap(err, "deleting previous export")
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return errors.Errorf("deleting previous export: %s", readError(res.Body))
	}
	return nil
}

// IndexExportedVariants bulk indexes every document and waits for the
// indexer to drain.
func IndexExportedVariants(ctx context.Context, cfg *models.Config, es *es7.Client, docs []indexes.ExportedVariant) (esutil.BulkIndexerStats, error) {
	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:   cfg.Elasticsearch.ExportIndex,
		Client:  es,
		Refresh: "wait_for",
	})
	if err != nil {
		return esutil.BulkIndexerStats{}, errors.Wrap(err, "creating bulk indexer")
	}

	for _, doc := range docs {
		data, marshallErr := json.Marshal(doc)
		if marshallErr != nil {
			return esutil.BulkIndexerStats{}, errors.Wrapf(marshallErr, "encoding row %d", doc.RowPosition)
		}

		addErr := bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: fmt.Sprintf("%s-%d", doc.SessionId, doc.RowPosition),
			Body:       bytes.NewReader(data),

			// OnFailure is called for each failed operation
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					fmt.Printf("ERROR: %s", err)
				} else {
					fmt.Printf("ERROR: %s: %s", res.Error.Type, res.Error.Reason)
				}
			},
		})
		if addErr != nil {
			return bi.Stats(), errors.Wrap(addErr, "queueing document")
		}
	}

	if err := bi.Close(ctx); err != nil {
		return bi.Stats(), errors.Wrap(err, "flushing bulk indexer")
	}
	return bi.Stats(), nil
}

// GetExportedVariantsBySessionId reads a published export back in row order.
func GetExportedVariantsBySessionId(ctx context.Context, cfg *models.Config, es *es7.Client, sessionId string, size int) ([]indexes.ExportedVariant, error) {
	var buf bytes.Buffer
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"sessionId": sessionId,
			},
		},
		"sort": map[string]string{
			"rowPosition": "asc",
		},
		"size": size,
	}
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, errors.Wrap(err, "encoding query")
	}

	if cfg.Debug {
		// view the outbound elasticsearch query
		fmt.Println(buf.String())
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(cfg.Elasticsearch.ExportIndex),
		es.Search.WithBody(&buf),
		es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, errors.Wrap(err, "searching exports")
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return []indexes.ExportedVariant{}, nil
	}
	if res.IsError() {
		return nil, errors.Errorf("searching exports: %s", readError(res.Body))
	}

	result := make(map[string]interface{})
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "decoding search response")
	}

	// gather data from "hits"
	allDocHits := []map[string]interface{}{}
	if hits, ok := result["hits"].(map[string]interface{}); ok {
		mapstructure.Decode(hits["hits"], &allDocHits)
	}

	docs := make([]indexes.ExportedVariant, 0, len(allDocHits))
	for _, hit := range allDocHits {
		var doc indexes.ExportedVariant
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
			Result:           &doc,
		})
		if err != nil {
			return nil, errors.Wrap(err, "creating decoder")
		}
		if err := decoder.Decode(hit["_source"]); err != nil {
			fmt.Printf("[%s] - Skipping undecodable export document : %v..\n", time.Now(), err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func readError(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 4096))
	return strings.TrimSpace(string(raw))
}
