package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/onionfightclub-arch/neon-cyber-store/app/api"
	"github.com/onionfightclub-arch/neon-cyber-store/app/cart"
	"github.com/onionfightclub-arch/neon-cyber-store/app/catalog"
	"github.com/onionfightclub-arch/neon-cyber-store/app/categories"
	"github.com/onionfightclub-arch/neon-cyber-store/app/chat"
	"github.com/onionfightclub-arch/neon-cyber-store/app/views"
	"github.com/onionfightclub-arch/neon-cyber-store/services/storefront"
)

func newRouter(store storefront.Catalog, svc *storefront.Service, log logrus.FieldLogger, secureCookies bool) http.Handler {
	catalogHandler := catalog.NewCatalogHandler(store)
	categoryHandler := categories.NewCategoryHandler(store)
	cartHandler := cart.NewCartHandler(svc)
	viewHandler := views.NewViewHandler(svc)
	chatHandler := chat.NewChatHandler(svc)

	router := mux.NewRouter()
	router.Use(api.RequestLogger(log))

	router.HandleFunc("/catalog", catalogHandler.HandleGet).Methods("GET")
	router.HandleFunc("/catalog/{id}", catalogHandler.HandleGetProduct).Methods("GET")
	router.HandleFunc("/categories", categoryHandler.HandleGetAll).Methods("GET")

	// Everything below works on the visitor session.
	session := router.NewRoute().Subrouter()
	session.Use(api.Sessions(svc, secureCookies))

	session.HandleFunc("/cart", cartHandler.HandleGet).Methods("GET")
	session.HandleFunc("/cart/items", cartHandler.HandleAdd).Methods("POST")
	session.HandleFunc("/cart/items/{id}", cartHandler.HandleAdjust).Methods("PATCH")
	session.HandleFunc("/cart/items/{id}", cartHandler.HandleRemove).Methods("DELETE")

	session.HandleFunc("/view", viewHandler.HandleGet).Methods("GET")
	session.HandleFunc("/view/navigate", viewHandler.HandleNavigate).Methods("POST")
	session.HandleFunc("/view/products/{id}", viewHandler.HandleOpenProduct).Methods("POST")
	session.HandleFunc("/view/filters", viewHandler.HandleFilters).Methods("POST")

	session.HandleFunc("/chat", chatHandler.HandleGet).Methods("GET")
	session.HandleFunc("/chat", chatHandler.HandleSend).Methods("POST")

	return router
}
