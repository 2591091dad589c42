package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beautique-shop/storefront/internal/cart/model"
	"github.com/beautique-shop/storefront/internal/cart/widget"
	"github.com/beautique-shop/storefront/internal/catalog"
	errx "github.com/beautique-shop/storefront/internal/core/error"
	logx "github.com/beautique-shop/storefront/pkg/logger"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

// ===================================
// Cart Tools
// ===================================

type ViewCartInput struct{}

func createViewCartTool(w *widget.Widget) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        ToolViewCart,
			Desc:        "Show the cart: line items, item count and formatted subtotal.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		func(ctx context.Context, _ *ViewCartInput) (*widget.View, error) {
			v := w.View()
			return &v, nil
		},
	)
}

type AddToCartInput struct {
	ProductID int64 `json:"product_id"`
}

type CartChangeOutput struct {
	Applied bool `json:"applied"`
	// Persisted is false when the change could not be saved to storage.
	Persisted bool            `json:"persisted"`
	Item      *model.LineItem `json:"item,omitempty"`
	Message   string          `json:"message,omitempty"`
	Cart      widget.View     `json:"cart"`
}

// changeOutput builds the tool result for a cart change. A failed storage
// write is not a tool error: the change stands in memory.
func changeOutput(w *widget.Widget, applied bool, err error) (*CartChangeOutput, error) {
	out := &CartChangeOutput{Applied: applied, Persisted: true}
	if err != nil {
		if !errors.Is(err, errx.ErrNotPersisted) {
			return nil, err
		}
		logx.Warn().Err(err).Bool("applied", applied).Msg("cart change kept in memory only")
		out.Persisted = false
		out.Message = "change applied but not saved"
	}
	out.Cart = w.View()
	return out, nil
}

func createAddToCartTool(c *catalog.Catalog, w *widget.Widget) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolAddToCart,
			Desc: "Add one unit of a catalog product to the cart. Adding a product already in the cart increases its quantity (max 10).",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {
					Type:     schema.Integer,
					Desc:     "Catalog id from search_product.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *AddToCartInput) (*CartChangeOutput, error) {
			p, err := c.Get(in.ProductID)
			if err != nil {
				if errors.Is(err, errx.ErrNotFound) {
					return &CartChangeOutput{Message: fmt.Sprintf("product %d not found", in.ProductID), Cart: w.View()}, nil
				}
				return nil, err
			}
			item, err := w.AddToCart(ctx, productAttributes(p))
			out, err := changeOutput(w, true, err)
			if err != nil {
				return nil, err
			}
			out.Item = &item
			return out, nil
		},
	)
}

type UpdateQuantityInput struct {
	ItemID   model.ItemID `json:"item_id"`
	Quantity int          `json:"quantity"`
}

func createUpdateQuantityTool(w *widget.Widget) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolUpdateQuantity,
			Desc: "Set the quantity of a cart line item. Quantities outside 1-10 are ignored.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"item_id":  {Type: schema.String, Desc: "Line item id from view_cart.", Required: true},
				"quantity": {Type: schema.Integer, Desc: "New quantity, 1 to 10.", Required: true},
			}),
		},
		func(ctx context.Context, in *UpdateQuantityInput) (*CartChangeOutput, error) {
			applied, err := w.ChangeQuantity(ctx, in.ItemID.String(), fmt.Sprint(in.Quantity))
			out, err := changeOutput(w, applied, err)
			if err != nil {
				return nil, err
			}
			if !applied {
				out.Message = "quantity unchanged"
			}
			return out, nil
		},
	)
}

type RemoveItemInput struct {
	ItemID  model.ItemID `json:"item_id"`
	Confirm bool         `json:"confirm"`
}

func createRemoveItemTool(w *widget.Widget) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolRemoveItem,
			Desc: "Remove a line item from the cart. Only set confirm after the customer agreed.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"item_id": {Type: schema.String, Desc: "Line item id from view_cart.", Required: true},
				"confirm": {Type: schema.Boolean, Desc: "Customer confirmed the removal.", Required: true},
			}),
		},
		func(ctx context.Context, in *RemoveItemInput) (*CartChangeOutput, error) {
			removed, err := w.Remove(model.WithConfirmation(ctx, in.Confirm), in.ItemID.String())
			out, err := changeOutput(w, removed, err)
			if err != nil {
				return nil, err
			}
			if !removed {
				out.Message = "item not removed"
			}
			return out, nil
		},
	)
}

type ClearCartInput struct {
	Confirm bool `json:"confirm"`
}

func createClearCartTool(w *widget.Widget) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolClearCart,
			Desc: "Remove every item from the cart. Only set confirm after the customer agreed.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"confirm": {Type: schema.Boolean, Desc: "Customer confirmed clearing the cart.", Required: true},
			}),
		},
		func(ctx context.Context, in *ClearCartInput) (*CartChangeOutput, error) {
			cleared, err := w.Clear(model.WithConfirmation(ctx, in.Confirm))
			out, err := changeOutput(w, cleared, err)
			if err != nil {
				return nil, err
			}
			if !cleared {
				out.Message = "cart not cleared"
			}
			return out, nil
		},
	)
}

type CheckoutInput struct{}

type CheckoutOutput struct {
	Ready    bool                `json:"ready"`
	Message  string              `json:"message,omitempty"`
	Checkout *model.CheckoutData `json:"checkout,omitempty"`
}

func createCheckoutTool(w *widget.Widget) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        ToolCheckout,
			Desc:        "Hand the cart over to the checkout page.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		func(ctx context.Context, _ *CheckoutInput) (*CheckoutOutput, error) {
			data, err := w.Checkout(ctx)
			if err != nil {
				if errors.Is(err, errx.ErrEmptyCart) {
					return &CheckoutOutput{Message: errx.MessageOf(err)}, nil
				}
				return nil, err
			}
			return &CheckoutOutput{Ready: true, Checkout: &data}, nil
		},
	)
}

// productAttributes renders a catalog product the way a product card exposes it.
func productAttributes(p catalog.Product) widget.Attributes {
	cand := p.Candidate()
	return widget.Attributes{
		widget.AttrProductID: cand.ID.String(),
		widget.AttrSKU:       cand.SKU,
		widget.AttrName:      strings.TrimSpace(cand.Name),
		widget.AttrBrand:     cand.Brand,
		widget.AttrPrice:     cand.Price.String(),
		widget.AttrImage:     cand.Image,
	}
}
