// Package shopapi serves the public storefront endpoints: catalog
// queries, reviews, cart, chat and the demo login.
package shopapi

import (
	"github.com/team2shop/storefront/internal/webserver"
)

// InitRouter registers the public /api endpoints.
func InitRouter() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiGET("/products/:id/recommendations", listRecommendations)
	webserver.ApiGET("/categories", listCategories)

	webserver.ApiGET("/reviews", listReviews)
	webserver.ApiPOST("/reviews", createReview)

	webserver.ApiGET("/cart", getCart)
	webserver.ApiPOST("/cart/items", addCartItem)
	webserver.ApiPUT("/cart/items/:id", setCartQuantity)
	webserver.ApiDELETE("/cart/items/:id", removeCartItem)
	webserver.ApiDELETE("/cart", clearCart)

	webserver.ApiPOST("/chat", chat)

	webserver.ApiPOST("/auth/login", login)
	webserver.ApiPOST("/auth/logout", logout)
}
