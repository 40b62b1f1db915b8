package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	currency "github.com/malusev998/currency-agency"
)

type (
	Metrics struct {
		RequestsTotal   *prometheus.CounterVec
		RequestDuration *prometheus.HistogramVec
		RatesStored     prometheus.Gauge
	}

	instrumentingUpdateService struct {
		metrics *Metrics
		next    currency.UpdateService
	}

	instrumentingRateService struct {
		metrics *Metrics
		next    currency.RateService
	}
)

// NewMetrics registers the service collectors with registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "currency_agency",
				Name:      "requests_total",
				Help:      "Total number of service requests",
			},
			[]string{"method", "code"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "currency_agency",
				Name:      "request_duration_seconds",
				Help:      "Service request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),

		RatesStored: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "currency_agency",
				Name:      "rates_stored",
				Help:      "Number of rates held by the last updated agency",
			},
		),
	}
}

func (m *Metrics) observe(method string, begin time.Time, err error) {
	code := "ok"
	if err != nil {
		code = string(currency.StatusCode(err))
	}

	m.RequestsTotal.WithLabelValues(method, code).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(time.Since(begin).Seconds())
}

func NewInstrumentingUpdateService(metrics *Metrics, s currency.UpdateService) currency.UpdateService {
	return &instrumentingUpdateService{
		metrics: metrics,
		next:    s,
	}
}

func NewInstrumentingRateService(metrics *Metrics, s currency.RateService) currency.RateService {
	return &instrumentingRateService{
		metrics: metrics,
		next:    s,
	}
}

func (s *instrumentingUpdateService) Update(agencyID uuid.UUID) (n int, err error) {
	defer func(begin time.Time) {
		s.metrics.observe("update", begin, err)
		if n > 0 {
			s.metrics.RatesStored.Set(float64(n))
		}
	}(time.Now())
	return s.next.Update(agencyID)
}

func (s *instrumentingRateService) GetRate(agencyID uuid.UUID, from, to string, at *time.Time) (rate currency.Rate, err error) {
	defer func(begin time.Time) {
		s.metrics.observe("rate", begin, err)
	}(time.Now())
	return s.next.GetRate(agencyID, from, to, at)
}

func (s *instrumentingRateService) Convert(agencyID uuid.UUID, from, to, amount string, at *time.Time) (converted currency.Money, err error) {
	defer func(begin time.Time) {
		s.metrics.observe("convert", begin, err)
	}(time.Now())
	return s.next.Convert(agencyID, from, to, amount, at)
}
