package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"travel-booking-platform/internal/middleware"
	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/services"
	"travel-booking-platform/internal/session"
	"travel-booking-platform/web/templates/emails"
	"travel-booking-platform/web/templates/pages"
)

const cartFullMessage = "Your cart is full. Please check out before adding more vacations."

// CartHandler handles shopping cart and checkout requests
type CartHandler struct {
	*Base
	carts    services.CartServiceInterface
	notFound http.HandlerFunc
}

// NewCartHandler creates a new cart handler
func NewCartHandler(base *Base, carts services.CartServiceInterface, notFound http.HandlerFunc) *CartHandler {
	return &CartHandler{Base: base, carts: carts, notFound: notFound}
}

// View renders the session cart with its validation messages
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	cart := middleware.GetCart(r.Context())
	if cart == nil {
		cart = &models.Cart{}
	}
	h.render(w, r, http.StatusOK, pages.Cart(h.page(r, "Cart"), h.cartView(cart, currency(r))))
}

// CheckoutForm renders the order review page for a cart with items
func (h *CartHandler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	cart := middleware.GetCart(r.Context())
	if cart.IsEmpty() {
		h.notFound(w, r)
		return
	}
	h.render(w, r, http.StatusOK, pages.CartCheckout(h.page(r, "Check Out"), h.cartView(cart, currency(r))))
}

// cartView prices every line and the total in the selected currency
func (h *CartHandler) cartView(cart *models.Cart, selected models.Currency) pages.CartView {
	view := pages.CartView{
		Cart:  cart,
		Total: selected.Format(h.carts.Total(cart, selected)),
	}
	for _, item := range cart.Items {
		view.Lines = append(view.Lines, pages.CartLine{
			Name:   item.ProductName,
			Guests: item.Guests,
			Price:  selected.Format(h.carts.Convert(item.PriceInCents, selected)),
		})
	}
	return view
}

// Add appends the posted SKU and guest count to the session cart. When the
// larger cart cannot be stored the previous cart is kept and the visitor is told.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.CartAddRequest
	if err := decodeForm(r, &req); err != nil {
		h.redirectWithFlash(w, r, "/vacations", models.NewFlash(models.FlashDanger, "Ooops!",
			"The number of guests you entered was not valid."))
		return
	}
	if err := models.ValidateRequest(&req); err != nil {
		h.redirectWithFlash(w, r, "/vacations", models.NewFlash(models.FlashDanger, "Ooops!",
			"Please choose a vacation and the number of guests."))
		return
	}

	current := middleware.GetCart(r.Context())
	cart, err := h.carts.Add(r.Context(), current, req.SKU, req.Guests)
	if err != nil {
		if !models.IsValidation(err) && !models.IsNotFound(err) {
			h.logError(r, "failed to add to cart", err)
		}
		h.redirectWithFlash(w, r, "/vacations", models.NewFlash(models.FlashDanger, "Ooops!",
			"We couldn't add that vacation to your cart."))
		return
	}

	s := middleware.GetSession(r.Context())
	if s == nil {
		http.Error(w, "Session unavailable", http.StatusInternalServerError)
		return
	}
	if err := session.SetCart(s, cart); err != nil {
		if errors.Is(err, models.ErrCartFull) {
			h.redirectWithFlash(w, r, "/cart", models.NewFlash(models.FlashDanger, "Ooops!", cartFullMessage))
			return
		}
		h.logError(r, "failed to store cart", err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}
	_ = session.SetOrder(s, nil)

	if err := s.Save(r, w); err != nil {
		h.logError(r, "failed to save cart", err)
		_ = session.SetCart(s, current)
		h.redirectWithFlash(w, r, "/cart", models.NewFlash(models.FlashDanger, "Ooops!", cartFullMessage))
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Checkout assigns the order number and billing, sends the confirmation in the
// background and renders the thank-you page. The session cart is cleared and the
// order kept for the thank-you pages.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := decodeForm(r, &req); err != nil {
		h.redirectWithFlash(w, r, "/cart", models.NewFlash(models.FlashDanger, "Validation error!",
			"The email address you entered was not valid."))
		return
	}

	cart := middleware.GetCart(r.Context())
	if cart.IsEmpty() {
		h.redirectWithFlash(w, r, "/vacations", models.NewFlash(models.FlashWarning, "Ooops!",
			"Your cart is empty."))
		return
	}
	if len(cart.Errors) > 0 {
		h.redirectWithFlash(w, r, "/cart", models.NewFlash(models.FlashDanger, "Ooops!", cart.Errors[0]))
		return
	}

	// delivery failures are logged by the notifier
	_, err := h.carts.Checkout(r.Context(), cart, req.Name, req.Email)
	switch {
	case err == nil:
	case models.IsValidation(err):
		h.redirectWithFlash(w, r, "/cart", models.NewFlash(models.FlashDanger, "Validation error!",
			"The email address you entered was not valid."))
		return
	default:
		h.logError(r, "failed to check out", err)
		http.Error(w, "Failed to check out", http.StatusInternalServerError)
		return
	}

	h.logger.Info("order placed",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("number", cart.Number),
		zap.Int("items", len(cart.Items)))

	if s := middleware.GetSession(r.Context()); s != nil {
		_ = session.SetCart(s, nil)
		if err := session.SetOrder(s, cart); err != nil {
			h.logError(r, "failed to store order", err)
		}
		h.saveSession(w, r, s)
	}

	page := h.page(r, "Thank You")
	page.Cart = nil
	h.render(w, r, http.StatusOK, pages.CartThankYou(page, cart))
}

// ThankYou renders the confirmation page for the session's last order
func (h *CartHandler) ThankYou(w http.ResponseWriter, r *http.Request) {
	order, ok := h.order(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, pages.CartThankYou(h.page(r, "Thank You"), order))
}

// ThankYouEmail renders the confirmation email body for the session's last order
func (h *CartHandler) ThankYouEmail(w http.ResponseWriter, r *http.Request) {
	order, ok := h.order(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, emails.CartThankYou(order))
}

// order loads and hydrates the checked-out order. When there is none the
// response has already been written.
func (h *CartHandler) order(w http.ResponseWriter, r *http.Request) (*models.Cart, bool) {
	s := middleware.GetSession(r.Context())
	if s == nil {
		h.notFound(w, r)
		return nil, false
	}

	order, err := session.GetOrder(s)
	if err != nil {
		h.logger.Warn("discarding unreadable order",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
		order = nil
	}
	if !order.IsCheckedOut() {
		h.notFound(w, r)
		return nil, false
	}

	if err := h.carts.Hydrate(r.Context(), order); err != nil {
		h.logError(r, "failed to load order", err)
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return nil, false
	}
	return order, true
}
