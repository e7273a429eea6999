package catalog

import (
	_ "embed"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/team2shop/storefront/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed data/products.json
var seedJSON []byte

// SeedProducts decodes a fresh copy of the static seed fixture.
func SeedProducts() []domain.Product {
	var list []domain.Product
	if err := json.Unmarshal(seedJSON, &list); err != nil {
		zap.L().Error("catalog: seed fixture corrupt", zap.Error(err))
		return []domain.Product{}
	}
	return list
}
