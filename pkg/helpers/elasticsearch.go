package helpers

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// NewESClient builds the client backing the user-search index that feeds
// the share page's member picker. Basic auth is optional; timeout bounds
// both dialing and response headers so a slow cluster cannot stall a
// search request past its handler deadline.
func NewESClient(addrs []string, username, password string, timeout time.Duration) (*elasticsearch.Client, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: timeout,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}
