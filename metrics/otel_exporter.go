package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter exports today's delivery counters in Prometheus format
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector

	meter           metric.Meter
	requestsGauge   metric.Int64ObservableGauge
	processingGauge metric.Float64ObservableGauge
}

// NewOTelExporter creates an OpenTelemetry metrics exporter backed by the
// stat collector
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"telehook",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.requestsGauge, err = oe.meter.Int64ObservableGauge(
		"telehook.requests.today",
		metric.WithDescription("Today's request counters per webhook and result"),
		metric.WithUnit("{requests}"),
		metric.WithInt64Callback(oe.observeRequests),
	)
	if err != nil {
		return fmt.Errorf("creating requests gauge: %w", err)
	}

	oe.processingGauge, err = oe.meter.Float64ObservableGauge(
		"telehook.processing_time.today",
		metric.WithDescription("Today's processing time per webhook in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithFloat64Callback(oe.observeProcessingTime),
	)
	if err != nil {
		return fmt.Errorf("creating processing time gauge: %w", err)
	}

	return nil
}

// observeRequests reports the counter fields of every bucket
func (oe *OTelExporter) observeRequests(ctx context.Context, observer metric.Int64Observer) error {
	snapshot, err := oe.collector.Collect(ctx)
	if err != nil {
		return err
	}

	for _, stat := range append(snapshot.PerWebhook, snapshot.Global) {
		id := webhookAttr(stat.WebhookID)
		observer.Observe(stat.TotalRequests, metric.WithAttributes(
			id, attribute.String("result", "total")))
		observer.Observe(stat.SuccessfulRequests, metric.WithAttributes(
			id, attribute.String("result", "success")))
		observer.Observe(stat.FailedRequests, metric.WithAttributes(
			id, attribute.String("result", "failed")))
		observer.Observe(stat.ValidationFailures, metric.WithAttributes(
			id, attribute.String("result", "validation_failed")))
		observer.Observe(stat.TelegramFailures, metric.WithAttributes(
			id, attribute.String("result", "telegram_failed")))
	}

	return nil
}

// observeProcessingTime reports min/avg/max per bucket
func (oe *OTelExporter) observeProcessingTime(ctx context.Context, observer metric.Float64Observer) error {
	snapshot, err := oe.collector.Collect(ctx)
	if err != nil {
		return err
	}

	for _, stat := range append(snapshot.PerWebhook, snapshot.Global) {
		if stat.TotalRequests == 0 {
			continue
		}
		id := webhookAttr(stat.WebhookID)
		observer.Observe(float64(stat.MinProcessingMs), metric.WithAttributes(
			id, attribute.String("aggregation", "min")))
		observer.Observe(stat.AvgProcessingMs(), metric.WithAttributes(
			id, attribute.String("aggregation", "avg")))
		observer.Observe(float64(stat.MaxProcessingMs), metric.WithAttributes(
			id, attribute.String("aggregation", "max")))
	}

	return nil
}

func webhookAttr(id int64) attribute.KeyValue {
	if id == 0 {
		return attribute.String("webhook.id", "global")
	}
	return attribute.String("webhook.id", strconv.FormatInt(id, 10))
}

// Handler serves Prometheus-formatted metrics
func (oe *OTelExporter) Handler() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
