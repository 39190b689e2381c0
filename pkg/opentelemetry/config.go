package opentelemetry

import "time"

type Config struct {
	Enabled        bool              `mapstructure:"enabled" default:"false"`
	ServiceName    string            `mapstructure:"service_name" default:"signoff"`
	ServiceVersion string            `mapstructure:"service_version"`
	Labels         map[string]string `mapstructure:"labels"`
	OTLP           struct {
		Headers  map[string]string `mapstructure:"headers"`
		Endpoint string            `mapstructure:"endpoint" default:"127.0.0.1:4317"`
	} `mapstructure:"otlp"`
	// SamplingFraction is the percentage of traces kept, 0 or 100 keeps every trace
	SamplingFraction int           `mapstructure:"sampling_fraction" default:"100"`
	MetricInterval   time.Duration `mapstructure:"metric_interval" default:"15s"`
}
