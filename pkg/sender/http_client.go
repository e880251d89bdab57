package sender

import "net/http"

// HTTPClient abstracts the HTTP transport so uploads can be tested
// without a network. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
