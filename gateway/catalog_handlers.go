package gateway

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/example/freshmart/pkg/catalog"
	"github.com/gin-gonic/gin"
)

// listProducts godoc
// @Summary  List products
// @Tags     catalog
// @Param    category  query  string  false  "exact category name"
// @Param    search    query  string  false  "substring of the product name"
// @Param    page      query  int     false  "page, from 1"
// @Param    per_page  query  int     false  "page size"
// @Success  200  {object}  catalog.ProductPage
// @Router   /products [get]
func (g *Gateway) listProducts(c *gin.Context) {
	q := catalog.Query{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     queryInt(c, "page"),
		PerPage:  queryInt(c, "per_page"),
	}

	page, err := g.services.Catalog.ListProducts(c.Request.Context(), q)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// queryInt returns 0, meaning "use the default", for absent or
// non-numeric values.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

// getProduct godoc
// @Summary  Get a product
// @Tags     catalog
// @Param    id  path  int  true  "product id"
// @Success  200  {object}  catalog.ProductView
// @Failure  404  {object}  map[string]string
// @Router   /products/{id} [get]
func (g *Gateway) getProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	product, err := g.services.Catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (g *Gateway) listCategories(c *gin.Context) {
	categories, err := g.services.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (g *Gateway) createCategory(c *gin.Context) {
	var req catalog.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	category, err := g.services.Catalog.CreateCategory(c.Request.Context(), req)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": category.ID, "name": category.Name})
}

func (g *Gateway) updateCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req catalog.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	category, err := g.services.Catalog.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": category.ID, "name": category.Name})
}

func (g *Gateway) deleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := g.services.Catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// createProduct godoc
// @Summary   Create a product
// @Tags      admin
// @Security  AdminSecret
// @Param     product  body  catalog.ProductInput  true  "name and price are required"
// @Success   201  {object}  map[string]interface{}
// @Failure   400  {object}  map[string]string
// @Failure   401  {object}  map[string]string
// @Router    /products [post]
func (g *Gateway) createProduct(c *gin.Context) {
	var req catalog.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := g.services.Catalog.CreateProduct(c.Request.Context(), req)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": product.ID, "name": product.Name})
}

func (g *Gateway) updateProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req catalog.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := g.services.Catalog.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": product.ID, "name": product.Name})
}

func (g *Gateway) deleteProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := g.services.Catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (g *Gateway) exportProducts(c *gin.Context) {
	var buf bytes.Buffer
	if err := g.services.Catalog.ExportProducts(c.Request.Context(), &buf); err != nil {
		g.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Data(http.StatusOK, catalog.ExportContentType, buf.Bytes())
}
