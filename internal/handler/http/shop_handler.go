package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/shop-service/internal/catalog"
	"github.com/vasiliy-maslov/shop-service/internal/session"
)

type CartResponse struct {
	Items []catalog.Product `json:"items"`
	Total int64             `json:"total"`
}

// ShopHandler serves the authenticated part of the boundary: the catalog
// and the session cart.
type ShopHandler struct {
	catalog  *catalog.Catalog
	sessions *session.Manager
}

func NewShopHandler(cat *catalog.Catalog, sessions *session.Manager) *ShopHandler {
	return &ShopHandler{catalog: cat, sessions: sessions}
}

func (h *ShopHandler) RegisterRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(RequireAuth(h.sessions))

		r.Get("/products", h.handleListProducts)
		r.Get("/cart", h.handleViewCart)
		r.Post("/cart/add/{id}", h.handleAddToCart)
		r.Post("/cart/remove/{id}", h.handleRemoveFromCart)
	})
}

func (h *ShopHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.All())
}

func (h *ShopHandler) handleViewCart(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	respondWithJSON(w, http.StatusOK, CartResponse{
		Items: h.sessions.Items(sess),
		Total: h.sessions.Total(sess),
	})
}

// handleAddToCart adds a catalog snapshot to the session cart. An unknown
// id still redirects to the cart view: the add itself is a silent no-op.
func (h *ShopHandler) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.parseProductID(w, r)
	if !ok {
		return
	}

	sess := h.sessions.Get(w, r)
	h.sessions.AddItem(sess, productID)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *ShopHandler) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.parseProductID(w, r)
	if !ok {
		return
	}

	sess := h.sessions.Get(w, r)
	h.sessions.RemoveItem(sess, productID)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *ShopHandler) parseProductID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idParam := chi.URLParam(r, "id")
	productID, err := strconv.Atoi(idParam)
	if err != nil {
		log.Warn().Str("product_id", idParam).Msg("Failed to parse id parameter from URL")
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return 0, false
	}
	return productID, true
}
