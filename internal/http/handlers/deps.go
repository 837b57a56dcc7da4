package handlers

import (
	"vrukshavalli/internal/catalog"
	"vrukshavalli/internal/config"
	"vrukshavalli/internal/email"
	"vrukshavalli/internal/notify"
	"vrukshavalli/internal/repos"
	"vrukshavalli/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	PlantHandler *PlantHandler
	CartHandler  *CartHandler
	OrderHandler *OrderHandler
	AdminHandler *AdminHandler
	FeedHandler  *FeedHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService, hub *notify.Hub, mailer email.Sender) *Deps {
	docs := repos.NewStorageRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	cat := catalog.NewStore(docs)

	pricing := services.Calculator{
		ShipThreshold: cfg.ShipThreshold,
		ShipFee:       cfg.ShipFee,
		TaxRate:       cfg.TaxRate,
	}
	cartSvc := services.NewCartService(docs, cat)
	orderSvc := services.NewOrderService(cartSvc, orderRepo, pricing, mailer, hub)

	return &Deps{
		PlantHandler: &PlantHandler{Catalog: cat},
		CartHandler:  &CartHandler{Cart: cartSvc, Pricing: pricing},
		OrderHandler: &OrderHandler{Order: orderSvc, Repo: orderRepo, Auth: auth},
		AdminHandler: &AdminHandler{OrderRepo: orderRepo, Order: orderSvc, Catalog: cat},
		FeedHandler:  &FeedHandler{Hub: hub, Auth: auth},
	}
}
