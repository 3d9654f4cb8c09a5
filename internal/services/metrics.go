package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	productsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_products_created_total",
			Help: "Total number of products created",
		},
		[]string{"category"},
	)

	productCreateRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_product_create_rejections_total",
			Help: "Total number of rejected product creations by reason",
		},
		[]string{"reason"},
	)
)
