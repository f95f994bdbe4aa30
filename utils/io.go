package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Jeffail/gabs"
	"github.com/pkg/errors"
)

// maximum response body accepted from a remote JSON api
const maxJsonBodyBytes = 16 << 20

type HttpStatusError struct {
	Url        string
	StatusCode int
}

func (e *HttpStatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.Url, e.StatusCode)
}

// GetJsonContainer performs a GET request and parses the body into a gabs
// container. Any non-2xx status is an error.
func GetJsonContainer(ctx context.Context, client *http.Client, url string, userAgent string) (*gabs.Container, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s", url)
	}
	request.Header.Set("Accept", "application/json")
	if userAgent != "" {
		request.Header.Set("User-Agent", userAgent)
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", url)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		// drain so the connection can be reused
		io.Copy(io.Discard, io.LimitReader(response.Body, maxJsonBodyBytes))
		return nil, &HttpStatusError{Url: url, StatusCode: response.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxJsonBodyBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "reading body of %s", url)
	}

	container, err := gabs.ParseJSON(body)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing body of %s", url)
	}
	return container, nil
}
