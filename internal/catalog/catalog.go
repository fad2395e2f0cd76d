package catalog

// Product — позиция каталога. Цена хранится в минорных единицах валюты,
// чтобы суммы корзины считались точной целочисленной арифметикой.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// Catalog is the fixed, read-only product list. A single instance is
// injected into every operation that needs a lookup, so the catalog view
// and the cart always see the same data.
type Catalog struct {
	products []Product
}

func New(products []Product) *Catalog {
	owned := make([]Product, len(products))
	copy(owned, products)
	return &Catalog{products: owned}
}

// All returns a copy of the product list.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// FindByID scans the list for a product with the given id.
func (c *Catalog) FindByID(id int) (Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Default returns the demo catalog.
func Default() *Catalog {
	return New([]Product{
		{ID: 1, Name: "Smartphone Galaxy A54", Price: 157300, Description: "6.4\" AMOLED, 128 GB", ImageURL: "/static/img/products/galaxy-a54.jpg"},
		{ID: 2, Name: "Notebook IdeaPad 3", Price: 368200, Description: "15.6\" FHD, Ryzen 5, 16 GB RAM", ImageURL: "/static/img/products/ideapad-3.jpg"},
		{ID: 3, Name: "Wireless Headphones WH-CH520", Price: 24900, Description: "Bluetooth 5.2, 50 h battery", ImageURL: "/static/img/products/wh-ch520.jpg"},
		{ID: 4, Name: "Smartwatch Band 8", Price: 19990, Description: "1.62\" AMOLED, 14-day battery", ImageURL: "/static/img/products/band-8.jpg"},
		{ID: 5, Name: "Mechanical Keyboard K552", Price: 34500, Description: "TKL, red switches", ImageURL: "/static/img/products/k552.jpg"},
		{ID: 6, Name: "Gaming Mouse G502", Price: 28700, Description: "25K sensor, 11 buttons", ImageURL: "/static/img/products/g502.jpg"},
		{ID: 7, Name: "Monitor 24G2", Price: 89900, Description: "24\" IPS, 144 Hz", ImageURL: "/static/img/products/24g2.jpg"},
		{ID: 8, Name: "USB-C Hub 7-in-1", Price: 15990, Description: "HDMI, 2x USB 3.0, SD", ImageURL: "/static/img/products/usbc-hub.jpg"},
		{ID: 9, Name: "Portable SSD T7 1TB", Price: 56400, Description: "USB 3.2 Gen 2, 1050 MB/s", ImageURL: "/static/img/products/t7.jpg"},
		{ID: 10, Name: "Webcam C920", Price: 31200, Description: "1080p 30fps, stereo mics", ImageURL: "/static/img/products/c920.jpg"},
	})
}
