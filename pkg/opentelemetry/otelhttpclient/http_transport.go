package otelhttpclient

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/goto/signoff/pkg/opentelemetry/otelhttpclient"

type httpTransport struct {
	roundTripper http.RoundTripper
	name         string
	duration     metric.Float64Histogram
}

// NewHTTPTransport traces outgoing requests and records their latency under the given client name
func NewHTTPTransport(baseTransport http.RoundTripper, name string) http.RoundTripper {
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}

	duration, err := otel.Meter(instrumentationName).Float64Histogram(
		"signoff.http.client.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration of outgoing HTTP requests"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &httpTransport{
		roundTripper: otelhttp.NewTransport(baseTransport),
		name:         name,
		duration:     duration,
	}
}

func (t *httpTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.roundTripper.RoundTrip(req)

	if t.duration != nil {
		attrs := []attribute.KeyValue{
			attribute.String("client", t.name),
			attribute.String("method", req.Method),
			attribute.String("host", req.URL.Host),
		}
		if resp != nil {
			attrs = append(attrs, attribute.Int("status_code", resp.StatusCode))
		}
		t.duration.Record(req.Context(), float64(time.Since(start).Milliseconds()), metric.WithAttributes(attrs...))
	}
	return resp, err
}

// New returns a copy of client whose transport is instrumented under name
func New(name string, client *http.Client) *http.Client {
	var c http.Client
	if client != nil {
		c = *client
	}
	c.Transport = NewHTTPTransport(c.Transport, name)
	return &c
}
