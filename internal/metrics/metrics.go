package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "doctor_booking"

// Collector метрики записи к врачам и HTTP API
type Collector struct {
	registry *prometheus.Registry

	bookingAttempts   *prometheus.CounterVec
	statusTransitions *prometheus.CounterVec
	eventsPublished   *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		bookingAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_attempts_total",
				Help:      "Booking attempts by outcome",
			},
			[]string{"outcome"},
		),
		statusTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_status_transitions_total",
				Help:      "Booking status changes by target status",
			},
			[]string{"status"},
		),
		eventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_published_total",
				Help:      "Booking events sent to the broker",
			},
			[]string{"type", "result"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	c.registry.MustRegister(
		c.bookingAttempts,
		c.statusTransitions,
		c.eventsPublished,
		c.httpRequests,
		c.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// ObserveBooking учитывает попытку записи с исходом outcome
func (c *Collector) ObserveBooking(outcome string) {
	c.bookingAttempts.WithLabelValues(outcome).Inc()
}

// ObserveTransition учитывает смену статуса записи
func (c *Collector) ObserveTransition(to model.BookingStatus) {
	c.statusTransitions.WithLabelValues(string(to)).Inc()
}

func (c *Collector) ObserveEvent(eventType model.BookingEventType, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.eventsPublished.WithLabelValues(string(eventType), result).Inc()
}

func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler отдаёт метрики в формате Prometheus
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry нужен тестам и внешним сборщикам
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
