// Package adminapi serves the admin catalog endpoints. Every route sits
// behind the JWT admin guard installed by the webserver.
package adminapi

import (
	"github.com/team2shop/storefront/internal/webserver"
)

// InitRouter registers the /api/admin endpoints.
func InitRouter() {
	webserver.AdminGET("/products", listProducts)
	webserver.AdminGET("/products/export", exportProducts)
	webserver.AdminGET("/products/:id", getProduct)
	webserver.AdminPOST("/products", createProduct)
	webserver.AdminPUT("/products/:id", updateProduct)
	webserver.AdminDELETE("/products/:id", deleteProduct)

	webserver.AdminGET("/metrics/:metric", metricRange)
}
