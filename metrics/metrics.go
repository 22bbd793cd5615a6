// Package metrics records what an analysis run did, for DogStatsD and for the
// Prometheus node exporter's textfile collector.
package metrics

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/buildkite/lexan/lexer"
	"github.com/buildkite/lexan/logger"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// The default port for dogstatsd
	defaultDogStatsdPort = 8125

	namespace = "lexan"
)

type CollectorConfig struct {
	Datadog     bool
	DatadogHost string

	// TextfilePath, if set, is where Stop writes the Prometheus metrics.
	TextfilePath string
}

type Collector struct {
	config CollectorConfig
	logger logger.Logger
	client *statsd.Client

	registry         *prometheus.Registry
	tokensClassified *prometheus.CounterVec
	tokensByKind     *prometheus.CounterVec
	tableEntries     prometheus.Gauge
	malformedEntries prometheus.Counter
	phaseDurations   *prometheus.HistogramVec
}

func NewCollector(l logger.Logger, c CollectorConfig) *Collector {
	col := &Collector{
		config:   c,
		logger:   l,
		registry: prometheus.NewRegistry(),
		tokensClassified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_classified_total",
			Help:      "Count of tokens classified, by which rule matched",
		}, []string{"outcome"}),
		tokensByKind: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_by_kind_total",
			Help:      "Count of tokens classified, by assigned kind",
		}, []string{"kind"}),
		tableEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "keyword_table_entries",
			Help:      "Number of distinct lexemes in the keyword table",
		}),
		malformedEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dictionary_malformed_entries_total",
			Help:      "Count of dictionary entries skipped because they were malformed",
		}),
		phaseDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Time spent in each phase of an analysis run",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"phase"}),
	}

	col.registry.MustRegister(
		col.tokensClassified,
		col.tokensByKind,
		col.tableEntries,
		col.malformedEntries,
		col.phaseDurations,
	)

	return col
}

var portSuffixRegexp = regexp.MustCompile(`:\d+$`)

func (c *Collector) Start() error {
	if c.config.Datadog {
		if !portSuffixRegexp.MatchString(c.config.DatadogHost) {
			c.config.DatadogHost += fmt.Sprintf(":%d", defaultDogStatsdPort)
		}

		c.logger.Info("Starting datadog metrics collection to %s", c.config.DatadogHost)

		var err error
		c.client, err = statsd.New(c.config.DatadogHost, statsd.WithNamespace(namespace+"."))
		if err != nil {
			return fmt.Errorf("creating dogstatsd client: %w", err)
		}
	}
	return nil
}

// Stop flushes DogStatsD and writes the Prometheus textfile, if configured.
func (c *Collector) Stop() error {
	if c.client != nil {
		c.logger.Debug("Stopping datadog metrics collection")
		if err := c.client.Close(); err != nil {
			return fmt.Errorf("closing dogstatsd client: %w", err)
		}
		c.client = nil
	}

	if c.config.TextfilePath != "" {
		if err := c.WriteTextfile(c.config.TextfilePath); err != nil {
			return err
		}
		c.logger.Info("Metrics written to %s", c.config.TextfilePath)
	}
	return nil
}

// WriteTextfile writes every metric in the node exporter textfile format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

// RecordDictionary records the size of a freshly built keyword table.
func (c *Collector) RecordDictionary(entries, malformed int) {
	c.tableEntries.Set(float64(entries))
	c.malformedEntries.Add(float64(malformed))

	c.gauge("keyword_table.entries", float64(entries), nil)
	c.count("dictionary.malformed_entries", int64(malformed), nil)
}

// RecordResults records classification counts by outcome and by kind.
func (c *Collector) RecordResults(stats lexer.Stats) {
	for outcome, n := range map[lexer.Outcome]int{
		lexer.OutcomeKeyword:    stats.Keywords,
		lexer.OutcomeIdentifier: stats.Identifiers,
		lexer.OutcomeError:      stats.Errors,
	} {
		c.tokensClassified.WithLabelValues(outcome.String()).Add(float64(n))
		c.count("tokens.classified", int64(n), Tags{"outcome": outcome.String()})
	}

	for _, kind := range stats.Kinds() {
		n := stats.ByKind[kind]
		c.tokensByKind.WithLabelValues(kind).Add(float64(n))
		c.count("tokens.by_kind", int64(n), Tags{"kind": kind})
	}
}

// Time records how long a phase took.
func (c *Collector) Time(phase string, d time.Duration) {
	c.logger.WithFields(logger.StringField("phase", phase), logger.DurationField("duration", d)).Debug("Phase finished")
	c.phaseDurations.WithLabelValues(phase).Observe(d.Seconds())
	c.timing("phase.duration", d, Tags{"phase": phase})
}

func (c *Collector) count(name string, value int64, tags Tags) {
	if c.client == nil {
		return
	}

	c.logger.Debug("Metrics count %s=%v %v", name, value, tags.StringSlice())

	if err := c.client.Count(name, value, tags.StringSlice(), 1); err != nil {
		c.logger.Error("Metrics count failed: %v", err)
	}
}

func (c *Collector) gauge(name string, value float64, tags Tags) {
	if c.client == nil {
		return
	}

	c.logger.Debug("Metrics gauge %s=%v %v", name, value, tags.StringSlice())

	if err := c.client.Gauge(name, value, tags.StringSlice(), 1); err != nil {
		c.logger.Error("Metrics gauge failed: %v", err)
	}
}

// timing sends timing information in milliseconds.
func (c *Collector) timing(name string, value time.Duration, tags Tags) {
	if c.client == nil {
		return
	}

	c.logger.Debug("Metrics timing %s=%v %v", name, value, tags.StringSlice())

	if err := c.client.Timing(name, value, tags.StringSlice(), 1); err != nil {
		c.logger.Error("Metrics timing failed: %v", err)
	}
}

type Tags map[string]string

func (tags Tags) StringSlice() []string {
	var stringSlice []string
	for k, v := range tags {
		if k != "" && v != "" {
			stringSlice = append(stringSlice, formatName(k)+":"+formatName(v))
		}
	}
	sort.Strings(stringSlice)
	return stringSlice
}

// Datadog allows '.', '_' and alphas only.
// If we don't validate this here then the datadog error logs can fill up disk really quickly
var nameRegex = regexp.MustCompile(`[^\._a-zA-Z0-9]+`)

func formatName(name string) string {
	return nameRegex.ReplaceAllString(name, "_")
}
