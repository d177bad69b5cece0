package controllers

import (
	"github.com/holisticagro/agromart/app/services"
	"github.com/holisticagro/agromart/pkg/ctx"
)

// CatalogController serves the reference collections. The collection-bound
// methods return a handler for one collection.
type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

func (cc *CatalogController) List(collection string) ctx.HandlerFunc {
	return func(c *ctx.Context) {
		recs, err := cc.service.List(c.Context(), collection)
		if err != nil {
			c.Fail(err)
			return
		}
		c.Success(recs)
	}
}

func (cc *CatalogController) Show(collection string) ctx.HandlerFunc {
	return func(c *ctx.Context) {
		rec, err := cc.service.Find(c.Context(), collection, c.Param("id"))
		if err != nil {
			c.Fail(err)
			return
		}
		c.Success(rec)
	}
}

func (cc *CatalogController) Create(collection string) ctx.HandlerFunc {
	return func(c *ctx.Context) {
		rec, ok := c.BindObject()
		if !ok {
			return
		}
		out, err := cc.service.Insert(c.Context(), collection, rec)
		if err != nil {
			c.Fail(err)
			return
		}
		c.Created("Created successfully", out)
	}
}

func (cc *CatalogController) Update(collection string) ctx.HandlerFunc {
	return func(c *ctx.Context) {
		fields, ok := c.BindObject()
		if !ok {
			return
		}
		res, err := cc.service.Update(c.Context(), collection, c.Param("id"), fields)
		if err != nil {
			c.Fail(err)
			return
		}
		c.Message("Updated successfully", res)
	}
}

func (cc *CatalogController) Delete(collection string) ctx.HandlerFunc {
	return func(c *ctx.Context) {
		res, err := cc.service.Delete(c.Context(), collection, c.Param("id"))
		if err != nil {
			c.Fail(err)
			return
		}
		c.Message("Deleted successfully", res)
	}
}

// Search handles GET /search-products?title=.
func (cc *CatalogController) Search(c *ctx.Context) {
	recs, err := cc.service.SearchProducts(c.Context(), c.Query("title"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(recs)
}

// ByCategory handles GET /products/{category}.
func (cc *CatalogController) ByCategory(c *ctx.Context) {
	recs, err := cc.service.ProductsByCategory(c.Context(), c.Param("category"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(recs)
}

// ByIDs handles POST /products-by-ids.
func (cc *CatalogController) ByIDs(c *ctx.Context) {
	body, ok := c.BindObject()
	if !ok {
		return
	}
	recs, err := cc.service.ProductsByIDs(c.Context(), body)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(recs)
}
