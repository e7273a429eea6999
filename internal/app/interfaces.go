package app

import (
	"github.com/robfig/cron/v3"

	"github.com/team2shop/storefront/config"
	"github.com/team2shop/storefront/internal/assist"
	"github.com/team2shop/storefront/internal/auth"
	"github.com/team2shop/storefront/internal/cart"
	"github.com/team2shop/storefront/internal/catalog"
	"github.com/team2shop/storefront/internal/reviews"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// CatalogProvider provides the product catalog engine
type CatalogProvider interface {
	Catalog() *catalog.Store
}

// ReviewsProvider provides the review engine
type ReviewsProvider interface {
	Reviews() *reviews.Store
}

// CartProvider provides the session cart store
type CartProvider interface {
	Carts() *cart.Store
}

// AuthProvider provides the demo identity service
type AuthProvider interface {
	Auth() *auth.Service
}

// AssistProvider provides the chat assistant client
type AssistProvider interface {
	Assist() *assist.Client
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application
// context. Services should depend on specific providers or this combined
// interface.
type AppContext interface {
	ConfigProvider
	CatalogProvider
	ReviewsProvider
	CartProvider
	AuthProvider
	AssistProvider
	SchedulerProvider
}
