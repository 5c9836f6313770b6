// Package docs registers the FreshMart OpenAPI document with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "AdminSecret": {"type": "apiKey", "in": "header", "name": "X-ADMIN-SECRET"},
        "SeedSecret": {"type": "apiKey", "in": "header", "name": "X-SEED-SECRET"},
        "Bearer": {"type": "apiKey", "in": "header", "name": "Authorization"}
    },
    "paths": {
        "/products": {
            "get": {
                "tags": ["catalog"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "name": "category", "in": "query", "description": "exact category name"},
                    {"type": "string", "name": "search", "in": "query", "description": "substring of the product name"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "per_page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ProductPage"}}}
            },
            "post": {
                "tags": ["admin"],
                "summary": "Create a product",
                "security": [{"AdminSecret": []}],
                "parameters": [{"name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProductInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Created"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "tags": ["catalog"],
                "summary": "Get a product",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Product"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "patch": {
                "tags": ["admin"],
                "summary": "Update a product",
                "security": [{"AdminSecret": []}],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProductInput"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Created"}}}
            },
            "delete": {
                "tags": ["admin"],
                "summary": "Delete a product",
                "security": [{"AdminSecret": []}],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Message"}}}
            }
        },
        "/products/export": {
            "get": {
                "tags": ["admin"],
                "summary": "Export all products as xlsx",
                "security": [{"AdminSecret": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/categories": {
            "get": {
                "tags": ["catalog"],
                "summary": "List categories",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Category"}}}}
            },
            "post": {
                "tags": ["admin"],
                "summary": "Create a category",
                "security": [{"AdminSecret": []}],
                "parameters": [{"name": "category", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CategoryInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Created"}}}
            }
        },
        "/categories/{id}": {
            "patch": {
                "tags": ["admin"],
                "summary": "Update a category",
                "security": [{"AdminSecret": []}],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "category", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CategoryInput"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Created"}}}
            },
            "delete": {
                "tags": ["admin"],
                "summary": "Delete a category",
                "security": [{"AdminSecret": []}],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Message"}}}
            }
        },
        "/orders": {
            "get": {
                "tags": ["admin"],
                "summary": "List orders, newest first",
                "security": [{"AdminSecret": []}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Order"}}}}
            }
        },
        "/sales": {
            "get": {
                "tags": ["admin"],
                "summary": "Sales summary",
                "security": [{"AdminSecret": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Sales"}}}
            }
        },
        "/cart": {
            "get": {
                "tags": ["cart"],
                "summary": "List the caller's cart",
                "security": [{"Bearer": []}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/CartLine"}}}}
            },
            "post": {
                "tags": ["cart"],
                "summary": "Add a product to the cart",
                "security": [{"Bearer": []}],
                "parameters": [{"name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CartRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Message"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "tags": ["cart"],
                "summary": "Empty the caller's cart",
                "security": [{"Bearer": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Message"}}}
            }
        },
        "/cart/{id}": {
            "delete": {
                "tags": ["cart"],
                "summary": "Remove a cart line",
                "security": [{"Bearer": []}],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Message"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a user",
                "parameters": [{"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Session"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [{"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Session"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/admin/seed": {
            "post": {
                "tags": ["admin"],
                "summary": "Drop all data and load the demo catalog",
                "security": [{"SeedSecret": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Message"}}}
            }
        }
    },
    "definitions": {
        "Error": {"type": "object", "properties": {"error": {"type": "string"}}},
        "Message": {"type": "object", "properties": {"message": {"type": "string"}}},
        "Created": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}},
        "Category": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "description": {"type": "string"}}
        },
        "CategoryInput": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}}
        },
        "Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "original_price": {"type": "number"},
                "image": {"type": "string"},
                "category": {"type": "string"},
                "category_id": {"type": "integer"},
                "brand": {"type": "string"},
                "rating": {"type": "number"},
                "stock": {"type": "integer"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "ProductInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "original_price": {"type": "number"},
                "image": {"type": "string"},
                "brand": {"type": "string"},
                "rating": {"type": "number"},
                "stock": {"type": "integer"},
                "category_id": {"type": "integer"},
                "category_name": {"type": "string"}
            }
        },
        "ProductPage": {
            "type": "object",
            "properties": {
                "products": {"type": "array", "items": {"$ref": "#/definitions/Product"}},
                "total": {"type": "integer"},
                "pages": {"type": "integer"},
                "current_page": {"type": "integer"}
            }
        },
        "CartRequest": {
            "type": "object",
            "properties": {"product_id": {"type": "integer"}, "quantity": {"type": "integer"}}
        },
        "CartLine": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "product": {
                    "type": "object",
                    "properties": {
                        "id": {"type": "integer"},
                        "name": {"type": "string"},
                        "price": {"type": "number"},
                        "image": {"type": "string"}
                    }
                },
                "quantity": {"type": "integer"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}
        },
        "LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "Session": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "user": {
                    "type": "object",
                    "properties": {"id": {"type": "integer"}, "email": {"type": "string"}, "name": {"type": "string"}}
                }
            }
        },
        "Order": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "total_amount": {"type": "number"},
                "status": {"type": "string"},
                "shipping_address": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "Sales": {
            "type": "object",
            "properties": {"total_sales": {"type": "number"}, "order_count": {"type": "integer"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "FreshMart API",
	Description:      "Grocery storefront: catalog, cart, auth and admin endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
