package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"travel-booking-platform/internal/middleware"
	"travel-booking-platform/internal/repositories"
	"travel-booking-platform/internal/services"
	"travel-booking-platform/web/static"
	"travel-booking-platform/web/templates/pages"
)

// Dependencies are the collaborators the router's handlers are built from
type Dependencies struct {
	Logger       *zap.Logger
	Store        sessions.Store
	Weather      *services.WeatherService
	Products     repositories.ProductRepository
	Tours        *repositories.TourRepository
	Catalog      services.CatalogServiceInterface
	Carts        services.CartServiceInterface
	Newsletter   services.NewsletterServiceInterface
	Contest      services.ContestServiceInterface
	Limiter      *middleware.IPRateLimiter
	UploadDir    string
	// MaxBodyBytes caps site request bodies; zero leaves them unbounded
	MaxBodyBytes int64
	Production   bool
}

// NewRouter builds the site router. Hosts starting with admin. are served by the admin router.
func NewRouter(deps Dependencies) http.Handler {
	base := NewBase(deps.Weather, deps.Logger)
	public := NewPublicHandler(base)
	newsletter := NewNewsletterHandler(base, deps.Newsletter)
	vacations := NewVacationHandler(base, deps.Catalog, public.NotFound)
	cart := NewCartHandler(base, deps.Carts, public.NotFound)
	contest := NewContestHandler(base, deps.Contest)
	api := NewAPIHandler(deps.Tours, deps.Logger)
	admin := NewAdminHandler(base, deps.Products, deps.Newsletter)

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger, http.HandlerFunc(public.ServerError)))
	r.Use(middleware.SecureHeaders)
	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.AdminHost(newAdminRouter(admin, deps)))

	r.NotFound(public.NotFound)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static.Files))))

	// Uploaded contest photos
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir))))

	// Public API
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APICORS())
		r.Get("/tours", api.Tours)
		r.Put("/tour/{id}", api.UpdateTour)
		r.Delete("/tour/{id}", api.DeleteTour)
	})

	// Site pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.ShowTests(deps.Production))
		if deps.MaxBodyBytes > 0 {
			r.Use(chimiddleware.RequestSize(deps.MaxBodyBytes))
		}
		r.Use(middleware.Sessions(deps.Store, deps.Logger))
		r.Use(middleware.CartValidation(deps.Carts, deps.Logger))
		r.Use(middleware.CSRFProtection(deps.Logger))
		r.Use(middleware.RateLimit(deps.Limiter))

		r.Get("/", public.Page("", pages.Home))
		r.Get("/about", public.About)
		r.Get("/tours/hood-river", public.Page("Hood River Tour", pages.ToursHoodRiver))
		r.Get("/tours/oregon-coast", public.Page("Oregon Coast Tour", pages.ToursOregonCoast))
		r.Get("/tours/request-group-rate", public.Page("Request Group Rate", pages.RequestGroupRate))
		r.Get("/thank-you", public.Page("Thank You", pages.ThankYou))
		r.Get("/nursery-rhyme", public.Page("Nursery Rhyme", pages.NurseryRhyme))
		r.Get("/data/nursery-rhyme", public.NurseryRhymeData)
		r.Post("/process", public.Process)
		r.Post("/process-ajax", public.ProcessAjax)
		r.Get("/epic-fail", public.EpicFail)

		r.Get("/newsletter", newsletter.SignupPage)
		r.Post("/newsletter", newsletter.Subscribe)
		r.Get("/newsletter-ajax", newsletter.SignupAjaxPage)
		r.Get("/newsletter/archive", newsletter.Archive)

		r.Get("/vacations", vacations.List)
		r.Post("/vacations", vacations.Purchase)
		r.Get("/vacation/*", vacations.Detail)
		r.Get("/set-currency/{currency}", vacations.SetCurrency)
		r.Get("/notify-me-when-in-season", vacations.NotifyForm)
		r.Post("/notify-me-when-in-season", vacations.Notify)

		r.Get("/cart", cart.View)
		r.Post("/cart/add", cart.Add)
		r.Get("/cart/checkout", cart.CheckoutForm)
		r.Post("/cart/checkout", cart.Checkout)
		r.Get("/cart/thank-you", cart.ThankYou)
		r.Get("/email/cart/thank-you", cart.ThankYouEmail)

		r.Get("/contest/vacation-photo", contest.Form)
		r.Post("/contest/vacation-photo/{year}/{month}", contest.Submit)
		r.Get("/contest/vacation-photo/entries", contest.Entries)
	})

	return r
}

func newAdminRouter(admin *AdminHandler, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Sessions(deps.Store, deps.Logger))
	r.Use(middleware.CSRFProtection(deps.Logger))

	r.NotFound(admin.NotFound)
	r.Get("/", admin.Home)
	r.Get("/users", admin.Users)
	r.Post("/vacations/{sku}/season", admin.SetSeason)
	return r
}
