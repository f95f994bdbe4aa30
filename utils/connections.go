package utils

import (
	"fmt"
	"time"

	"varanno/api/models"

	"github.com/cenkalti/backoff"
	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/pkg/errors"
)

// CreateEsConnection returns nil, nil when no Elasticsearch url is configured;
// publishing exports is then unavailable but everything else works.
func CreateEsConnection(cfg *models.Config) (*es7.Client, error) {
	if !cfg.IsElasticsearchEnabled() {
		return nil, nil
	}

	var (
		clusterURLs  = []string{cfg.Elasticsearch.Url}
		retryBackoff = backoff.NewExponentialBackOff()
	)

	esCfg := es7.Config{
		Addresses: clusterURLs,
		Username:  cfg.Elasticsearch.Username,
		Password:  cfg.Elasticsearch.Password,

		RetryOnStatus: []int{502, 503, 504, 429},

		// Configure the backoff function
		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},

		// Retry up to 5 attempts
		MaxRetries: 5,
	}

	es7Client, err := es7.NewClient(esCfg)
	if err != nil {
		return nil, errors.Wrap(err, "creating elasticsearch client")
	}

	fmt.Printf("Using ES7 Client Version %s\n", es7.Version)

	return es7Client, nil
}
