// Package metrics exposes Prometheus instrumentation for the API.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rogerio-castellano/inventory-orders/internal/models"
	"github.com/rogerio-castellano/inventory-orders/internal/repo"
)

type Metrics struct {
	registry *prometheus.Registry

	ordersPlaced   prometheus.Counter
	ordersRejected *prometheus.CounterVec
	orderValue     prometheus.Counter
	itemsSold      prometheus.Counter
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New registers every collector on a private registry. The catalog, when
// given, is read at scrape time for product and low stock gauges.
func New(catalog repo.ProductRepository) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_orders_placed_total",
			Help: "Orders successfully placed.",
		}),
		ordersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_orders_rejected_total",
			Help: "Orders rejected, by reason.",
		}, []string{"reason"}),
		orderValue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_order_value_total",
			Help: "Sum of valorTotalPedido over placed orders.",
		}),
		itemsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_items_sold_total",
			Help: "Units taken out of stock by placed orders.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inventory_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.ordersPlaced,
		m.ordersRejected,
		m.orderValue,
		m.itemsSold,
		m.httpRequests,
		m.httpDuration,
	)
	if catalog != nil {
		m.registry.MustRegister(newCatalogCollector(catalog))
	}
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) OrderPlaced(order models.Order) {
	m.ordersPlaced.Inc()
	m.orderValue.Add(order.TotalAmount)
	for _, line := range order.Lines {
		m.itemsSold.Add(float64(line.Quantity))
	}
}

func (m *Metrics) OrderRejected(reason string) {
	m.ordersRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// catalogCollector reports catalog size the way the dashboard metrics did:
// total products and how many are below the low stock threshold.
type catalogCollector struct {
	catalog  repo.ProductRepository
	products *prometheus.Desc
	lowStock *prometheus.Desc
}

func newCatalogCollector(catalog repo.ProductRepository) *catalogCollector {
	return &catalogCollector{
		catalog:  catalog,
		products: prometheus.NewDesc("inventory_products", "Products in the catalog.", nil, nil),
		lowStock: prometheus.NewDesc("inventory_products_low_stock", "Products with stock below the low stock threshold.", nil, nil),
	}
}

func (c *catalogCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.products
	ch <- c.lowStock
}

func (c *catalogCollector) Collect(ch chan<- prometheus.Metric) {
	products, err := c.catalog.List(context.Background(), repo.ProductFilter{})
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.products, err)
		return
	}
	low := 0
	for _, p := range products {
		if p.LowStock() {
			low++
		}
	}
	ch <- prometheus.MustNewConstMetric(c.products, prometheus.GaugeValue, float64(len(products)))
	ch <- prometheus.MustNewConstMetric(c.lowStock, prometheus.GaugeValue, float64(low))
}
