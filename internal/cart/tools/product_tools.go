package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/beautique-shop/storefront/internal/cart/model"
	"github.com/beautique-shop/storefront/internal/catalog"
	errx "github.com/beautique-shop/storefront/internal/core/error"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

// ===================================
// Search Product Tool
// ===================================

type SearchProductInput struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

type SearchProductOutput struct {
	Products []catalog.Product `json:"products"`
	Total    int               `json:"total"`
}

func createSearchProductTool(c *catalog.Catalog) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSearchProduct,
			Desc: "Search the beauty product catalog by name, brand or SKU. Returns active products with id, price and stock.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     schema.String,
					Desc:     "Keywords matched against product name, brand and SKU. Empty lists everything.",
					Required: true,
				},
				"max_results": {
					Type: schema.Integer,
					Desc: "Maximum number of products to return (default: 10, max: 20)",
				},
			}),
		},
		func(ctx context.Context, in *SearchProductInput) (*SearchProductOutput, error) {
			limit := in.MaxResults
			if limit <= 0 {
				limit = 10
			}
			limit = min(limit, 20)

			matched := make([]catalog.Product, 0)
			for _, p := range c.Filter(in.Query) {
				if p.Status != catalog.StatusActive {
					continue
				}
				matched = append(matched, p)
			}
			if len(matched) > limit {
				matched = matched[:limit]
			}
			return &SearchProductOutput{Products: matched, Total: len(matched)}, nil
		},
	)
}

// ===================================
// Product Details Tool
// ===================================

type GetProductDetailsInput struct {
	ProductID int64 `json:"product_id"`
}

type GetProductDetailsOutput struct {
	ID           int64       `json:"id"`
	SKU          string      `json:"sku"`
	Name         string      `json:"name"`
	Brand        string      `json:"brand"`
	Category     string      `json:"category"`
	Price        json.Number `json:"price,omitempty"`
	Volume       string      `json:"volume,omitempty"`
	Description  string      `json:"description,omitempty"`
	ExpertReview string      `json:"expert_review,omitempty"`
	InStock      bool        `json:"in_stock"`
	Found        bool        `json:"found"`
}

func createGetProductDetailsTool(c *catalog.Catalog) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetProductDetails,
			Desc: "Get the full description, expert review, volume and availability of one product. Use it when the customer asks about a specific product.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {
					Type:     schema.Integer,
					Desc:     "Catalog id from search_product results.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *GetProductDetailsInput) (*GetProductDetailsOutput, error) {
			p, err := c.Get(in.ProductID)
			if errors.Is(err, errx.ErrNotFound) {
				return &GetProductDetailsOutput{ID: in.ProductID}, nil
			}
			if err != nil {
				return nil, fmt.Errorf("get product %d: %w", in.ProductID, err)
			}
			return &GetProductDetailsOutput{
				ID:           p.ID,
				SKU:          p.SKU,
				Name:         p.Name,
				Brand:        p.Brand,
				Category:     p.Category,
				Price:        model.PriceNumber(p.Price),
				Volume:       p.Volume,
				Description:  p.Description,
				ExpertReview: p.ExpertReview,
				InStock:      p.Status == catalog.StatusActive && p.StockQuantity > 0,
				Found:        true,
			}, nil
		},
	)
}
