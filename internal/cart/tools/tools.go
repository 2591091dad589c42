// Package tools exposes the cart event surface and the product catalog as
// Eino tools, so an assistant can drive the same operations as the
// storefront pages.
package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/beautique-shop/storefront/internal/cart/widget"
	"github.com/beautique-shop/storefront/internal/catalog"
	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

const (
	ToolSearchProduct     = "search_product"
	ToolGetProductDetails = "get_product_details"
	ToolViewCart          = "view_cart"
	ToolAddToCart         = "add_to_cart"
	ToolUpdateQuantity    = "update_quantity"
	ToolRemoveItem        = "remove_item"
	ToolClearCart         = "clear_cart"
	ToolCheckout          = "checkout"
)

const runType = "CartTool"

type Deps struct {
	Catalog *catalog.Catalog
	Widget  *widget.Widget
	// Callbacks observe every Invoke.
	Callbacks []einocb.Handler
}

// Registry indexes invokable tools by name.
type Registry struct {
	tools     map[string]tool.InvokableTool
	callbacks []einocb.Handler
}

// NewRegistry builds every cart tool over deps.
func NewRegistry(deps Deps) *Registry {
	r := &Registry{tools: make(map[string]tool.InvokableTool), callbacks: deps.Callbacks}
	for name, t := range map[string]tool.InvokableTool{
		ToolSearchProduct:     createSearchProductTool(deps.Catalog),
		ToolGetProductDetails: createGetProductDetailsTool(deps.Catalog),
		ToolViewCart:          createViewCartTool(deps.Widget),
		ToolAddToCart:         createAddToCartTool(deps.Catalog, deps.Widget),
		ToolUpdateQuantity:    createUpdateQuantityTool(deps.Widget),
		ToolRemoveItem:        createRemoveItemTool(deps.Widget),
		ToolClearCart:         createClearCartTool(deps.Widget),
		ToolCheckout:          createCheckoutTool(deps.Widget),
	} {
		r.tools[name] = t
	}
	return r
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (tool.InvokableTool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Infos returns the tool descriptions in name order.
func (r *Registry) Infos(ctx context.Context) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(r.tools))
	for _, name := range r.Names() {
		info, err := r.tools[name].Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info %s: %w", name, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Invoke runs the named tool with JSON arguments, reporting the run to the
// registry's callbacks.
func (r *Registry) Invoke(ctx context.Context, name, argumentsInJSON string) (string, error) {
	t, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}
	if argumentsInJSON == "" {
		argumentsInJSON = "{}"
	}

	ctx = einocb.InitCallbacks(ctx, &einocb.RunInfo{
		Name:      name,
		Type:      runType,
		Component: components.ComponentOfTool,
	}, r.callbacks...)
	ctx = einocb.OnStart(ctx, &tool.CallbackInput{ArgumentsInJSON: argumentsInJSON})

	out, err := t.InvokableRun(ctx, argumentsInJSON)
	if err != nil {
		einocb.OnError(ctx, err)
		return "", err
	}
	einocb.OnEnd(ctx, &tool.CallbackOutput{Response: out})
	return out, nil
}
