package widget

import (
	"strconv"
	"strings"

	"github.com/beautique-shop/storefront/internal/cart/model"
	"github.com/shopspring/decimal"
)

const (
	PlaceholderImage = "https://via.placeholder.com/150"
	UnknownProduct   = "Unknown Product"
)

// Attribute names carried by an add-to-cart element or its product card.
const (
	AttrProductID = "product-id"
	AttrSKU       = "sku"
	AttrName      = "product-name"
	AttrBrand     = "brand"
	AttrPrice     = "price"
	AttrImage     = "image"
)

// Attributes are the data attributes of the element that fired the event.
type Attributes map[string]string

func (a Attributes) get(name string) string {
	return strings.TrimSpace(a[name])
}

// CandidateFromAttributes builds the cart candidate, filling gaps the way the
// storefront pages do. newID supplies an id when the element carries none.
func CandidateFromAttributes(attrs Attributes, newID func() string) model.Candidate {
	c := model.Candidate{
		ID:    model.NormalizeID(attrs.get(AttrProductID)),
		SKU:   attrs.get(AttrSKU),
		Name:  attrs.get(AttrName),
		Brand: attrs.get(AttrBrand),
		Price: ParsePrice(attrs[AttrPrice]),
		Image: attrs.get(AttrImage),
	}
	if c.ID.IsZero() {
		c.ID = model.ItemID(newID())
	}
	if c.Name == "" {
		c.Name = UnknownProduct
	}
	if c.Image == "" {
		c.Image = PlaceholderImage
	}
	return c
}

// ParsePrice reads a displayed price such as "€1,034.95". Currency symbols
// and thousands separators are dropped and the leading decimal number is
// parsed; anything unparseable is zero.
func ParsePrice(s string) decimal.Decimal {
	s = strings.NewReplacer("€", "", "$", "", ",", "").Replace(s)
	num := leadingNumber(strings.TrimSpace(s), true)
	if num == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseQuantity reads the leading integer of s: "3" and "3.7" give 3,
// "abc" and "" give ok == false.
func ParseQuantity(s string) (q int, ok bool) {
	num := leadingNumber(strings.TrimSpace(s), false)
	if num == "" {
		return 0, false
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, false
	}
	return n, true
}

// leadingNumber returns the longest numeric prefix of s, or "" when s does
// not start with a number. Fractions and exponents are only accepted when
// fractional is set.
func leadingNumber(s string, fractional bool) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if fractional && i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	if fractional && i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		start := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > start {
			i = j
		}
	}
	return s[:i]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
