package internal

import (
	"net/http"

	"welfared/internal/controllers"
	"welfared/internal/providers"
)

func InitRoutes(boardController *controllers.BoardController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/board", http.HandlerFunc(boardController.GetBoard))
	routers.Get("/summary", http.HandlerFunc(boardController.GetSummary))
	routers.Get("/window", http.HandlerFunc(boardController.GetCurrentWindow))
	routers.Get("/checkins", http.HandlerFunc(boardController.GetCheckins))
	routers.Get("/statuses", http.HandlerFunc(boardController.GetStatusCounts))
	return routers
}
