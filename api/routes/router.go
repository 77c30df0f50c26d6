package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmaher/scrapbill-backend/api/controllers"
	"github.com/dmaher/scrapbill-backend/api/middleware"
	"github.com/dmaher/scrapbill-backend/internal/delivery"
	"github.com/dmaher/scrapbill-backend/internal/dockets"
	"github.com/dmaher/scrapbill-backend/internal/forms"
	"github.com/dmaher/scrapbill-backend/internal/invoices"
	"github.com/dmaher/scrapbill-backend/internal/settings"
	"github.com/dmaher/scrapbill-backend/pkg/config"
	"github.com/dmaher/scrapbill-backend/pkg/db"
	"github.com/dmaher/scrapbill-backend/pkg/logger"
	pkgredis "github.com/dmaher/scrapbill-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	formRegistry *forms.Registry,
	invoiceService invoices.Service,
	docketService dockets.Service,
	settingsService settings.Service,
	deliveryService delivery.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.CORSAllowedOrigins),
	)

	// A typed nil *redis.Client must not reach the interface-valued
	// dependencies below.
	var redisPinger pkgredis.Pinger
	var idemStore pkgredis.IdempotencyStore
	if redisClient != nil {
		redisPinger = redisClient
		idemStore = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Route("/calculations", func(r chi.Router) {
			r.Post("/invoice", controllers.CalculateInvoice(logg))
			r.Post("/docket", controllers.CalculateDocket(logg))
		})

		r.Route("/forms", func(r chi.Router) {
			r.Post("/", controllers.FormOpen(formRegistry, logg))
			r.Put("/{sessionId}/state", controllers.FormUpdateState(formRegistry, logg))
			r.Get("/{sessionId}/totals", controllers.FormTotals(formRegistry, logg))
			r.Delete("/{sessionId}", controllers.FormClose(formRegistry, logg))
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", controllers.InvoiceCreate(invoiceService, logg))
			r.Get("/", controllers.InvoiceList(invoiceService, logg))
			r.Get("/next-number", controllers.InvoiceNextNumber(invoiceService, logg))
			r.Get("/{invoiceId}", controllers.InvoiceGet(invoiceService, logg))
			r.Put("/{invoiceId}", controllers.InvoiceUpdate(invoiceService, logg))
			r.Delete("/{invoiceId}", controllers.InvoiceDelete(invoiceService, logg))
			r.Post("/{invoiceId}/status", controllers.InvoiceSetStatus(invoiceService, logg))
			r.Get("/{invoiceId}/pdf", controllers.InvoicePDF(deliveryService, logg))
			r.Post("/{invoiceId}/email", controllers.InvoiceEmail(deliveryService, logg))
		})

		r.Route("/dockets", func(r chi.Router) {
			r.Post("/", controllers.DocketCreate(docketService, logg))
			r.Get("/", controllers.DocketList(docketService, logg))
			r.Get("/next-number", controllers.DocketNextNumber(docketService, logg))
			r.Get("/{docketId}", controllers.DocketGet(docketService, logg))
			r.Put("/{docketId}", controllers.DocketUpdate(docketService, logg))
			r.Delete("/{docketId}", controllers.DocketDelete(docketService, logg))
			r.Post("/{docketId}/status", controllers.DocketSetStatus(docketService, logg))
			r.Post("/{docketId}/print", controllers.DocketPrint(docketService, logg))
			r.Get("/{docketId}/pdf", controllers.DocketPDF(deliveryService, logg))
			r.Post("/{docketId}/email", controllers.DocketEmail(deliveryService, logg))
		})

		r.Get("/inventory/report", controllers.InventoryReport(docketService, logg))

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.SettingsList(settingsService, logg))
			r.Put("/", controllers.SettingsUpsert(settingsService, logg))
			r.Get("/selectors", controllers.SettingsSelectors(settingsService, logg))

			r.Route("/units", func(r chi.Router) {
				r.Get("/", controllers.UnitsList(settingsService, logg))
				r.Post("/", controllers.UnitsCreate(settingsService, logg))
				r.Delete("/{unitId}", controllers.UnitsDelete(settingsService, logg))
			})
			r.Route("/currencies", func(r chi.Router) {
				r.Get("/", controllers.CurrenciesList(settingsService, logg))
				r.Post("/", controllers.CurrenciesCreate(settingsService, logg))
				r.Delete("/{currencyId}", controllers.CurrenciesDelete(settingsService, logg))
			})
			r.Route("/metals", func(r chi.Router) {
				r.Get("/", controllers.MetalsList(settingsService, logg))
				r.Put("/", controllers.MetalsSave(settingsService, logg))
			})
			r.Route("/companies", func(r chi.Router) {
				r.Get("/", controllers.CompaniesList(settingsService, logg))
				r.Put("/", controllers.CompaniesSave(settingsService, logg))
				r.Delete("/{companyId}", controllers.CompaniesDelete(settingsService, logg))
			})
			r.Route("/bank-accounts", func(r chi.Router) {
				r.Get("/", controllers.BankAccountsList(settingsService, logg))
				r.Put("/", controllers.BankAccountsSave(settingsService, logg))
				r.Delete("/{bankAccountId}", controllers.BankAccountsDelete(settingsService, logg))
			})
		})
	})

	return r
}
