package request

import (
	"net/http"

	"github.com/go-resty/resty/v2"
)

var Request = resty.New().SetTransport(&http.Transport{
	Proxy: http.ProxyFromEnvironment, // honors HTTP(S)_PROXY
}).SetRetryCount(3)
