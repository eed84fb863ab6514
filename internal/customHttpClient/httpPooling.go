package customHttpClient

import (
	"net/http"

	"github.com/doculens/SummarizeAPI/internal/config"
)

//one pooled transport shared by every outbound caller (model providers and
//the summarize client) so connections get reused instead of re-dialed

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var pooledClient = &http.Client{Transport: customTransport}

func Pooled() *http.Client {
	return pooledClient
}
