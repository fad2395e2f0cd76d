package session

import (
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/shop-service/internal/catalog"
)

// AddItem looks the product up in the catalog and appends a snapshot copy
// to the cart. An unknown id is a silent no-op: the cart is unchanged and
// no error is surfaced.
func (m *Manager) AddItem(sess *Session, productID int) {
	product, ok := m.catalog.FindByID(productID)
	if !ok {
		log.Debug().Int("product_id", productID).Msg("session: add to cart skipped, product not in catalog")
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	// Product — значение: в корзину попадает копия на момент добавления.
	sess.cart = append(sess.cart, product)
}

// RemoveItem drops every cart entry with the given product id, keeping
// the relative order of the rest.
func (m *Manager) RemoveItem(sess *Session, productID int) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	kept := sess.cart[:0]
	for _, item := range sess.cart {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	sess.cart = kept
}

// Items returns a copy of the cart contents.
func (m *Manager) Items(sess *Session) []catalog.Product {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	items := make([]catalog.Product, len(sess.cart))
	copy(items, sess.cart)
	return items
}

// Total sums the prices of the current cart entries in minor currency
// units. Integer arithmetic only.
func (m *Manager) Total(sess *Session) int64 {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	var total int64
	for _, item := range sess.cart {
		total += item.Price
	}
	return total
}
