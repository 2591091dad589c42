package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/beautique-shop/storefront/internal/cart/model"
	"github.com/beautique-shop/storefront/internal/cart/widget"
	errx "github.com/beautique-shop/storefront/internal/core/error"
)

type addItemRequest struct {
	ProductID  *int64            `json:"product_id"`
	Attributes widget.Attributes `json:"attributes"`
}

type updateQuantityRequest struct {
	// Quantity is the raw input value: a JSON number or string.
	Quantity json.RawMessage `json:"quantity"`
}

type cartChangeResponse struct {
	Applied bool `json:"applied"`
	// Persisted is false when storage rejected the write; the change still
	// applies to the running cart.
	Persisted bool            `json:"persisted"`
	Item      *model.LineItem `json:"item,omitempty"`
	Cart      widget.View     `json:"cart"`
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Widget.View())
}

func (s *Server) openCart(w http.ResponseWriter, r *http.Request) {
	s.deps.Widget.Open()
	writeJSON(w, http.StatusOK, s.deps.Widget.View())
}

func (s *Server) closeCart(w http.ResponseWriter, r *http.Request) {
	s.deps.Widget.Close()
	writeJSON(w, http.StatusOK, s.deps.Widget.View())
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	attrs := req.Attributes
	switch {
	case req.ProductID != nil:
		p, err := s.deps.Catalog.Get(*req.ProductID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		c := p.Candidate()
		attrs = widget.Attributes{
			widget.AttrProductID: c.ID.String(),
			widget.AttrSKU:       c.SKU,
			widget.AttrName:      c.Name,
			widget.AttrBrand:     c.Brand,
			widget.AttrPrice:     c.Price.String(),
			widget.AttrImage:     c.Image,
		}
	case attrs == nil:
		writeError(w, r, errx.Invalid("product_id or attributes is required"))
		return
	}

	item, err := s.deps.Widget.AddToCart(r.Context(), attrs)
	saved, err := persisted(r, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartChangeResponse{Applied: true, Persisted: saved, Item: &item, Cart: s.deps.Widget.View()})
}

func (s *Server) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	raw := strings.TrimSpace(string(req.Quantity))
	var text string
	if err := json.Unmarshal(req.Quantity, &text); err == nil {
		raw = text
	}

	applied, err := s.deps.Widget.ChangeQuantity(r.Context(), r.PathValue("id"), raw)
	saved, err := persisted(r, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartChangeResponse{Applied: applied, Persisted: saved, Cart: s.deps.Widget.View()})
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	r = withConfirmation(r)
	removed, err := s.deps.Widget.Remove(r.Context(), r.PathValue("id"))
	saved, err := persisted(r, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartChangeResponse{Applied: removed, Persisted: saved, Cart: s.deps.Widget.View()})
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	r = withConfirmation(r)
	cleared, err := s.deps.Widget.Clear(r.Context())
	saved, err := persisted(r, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartChangeResponse{Applied: cleared, Persisted: saved, Cart: s.deps.Widget.View()})
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	data, err := s.deps.Widget.Checkout(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
