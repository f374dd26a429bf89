package client

import (
	"net/http"
	"time"

	"github.com/handboekai/handboek-api/common/config"
)

// HTTPClient is used for upstream generation calls. Streaming responses hold
// the connection open for the full generation, so the overall timeout covers
// the whole exchange while the transport bounds the connect phase: an
// upstream that never answers headers fails after ConnectTimeout.
var HTTPClient *http.Client

func Init() {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ResponseHeaderTimeout: time.Duration(config.ConnectTimeout) * time.Second,
	}
	HTTPClient = &http.Client{Transport: transport}
	if config.RelayTimeout != 0 {
		HTTPClient.Timeout = time.Duration(config.RelayTimeout) * time.Second
	}
}
