// Package docs holds the OpenAPI document served under /swagger/.
// Regenerate it from the handler annotations with:
//
//	swag init -g cmd/fashionhub/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/admin/catalog/seed": {
            "post": {
                "description": "Copies the bundled dataset into the product store. Requires an administrator.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Seed the catalog",
                "responses": {
                    "200": {
                        "description": "Rows inserted",
                        "schema": {
                            "$ref": "#/definitions/handlers.seedResponse"
                        }
                    },
                    "401": {
                        "description": "Sign in required",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Administrator access required",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Store write failed",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Signs in with email and password.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Auth"
                ],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "credentials",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Signed in",
                        "schema": {
                            "$ref": "#/definitions/models.AuthState"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Invalid email or password",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/logout": {
            "post": {
                "description": "Signs the current user out.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Auth"
                ],
                "summary": "Log out",
                "responses": {
                    "200": {
                        "description": "Signed out",
                        "schema": {
                            "$ref": "#/definitions/models.AuthState"
                        }
                    }
                }
            }
        },
        "/auth/me": {
            "get": {
                "description": "Reports whether someone is signed in and who.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Auth"
                ],
                "summary": "Current auth state",
                "responses": {
                    "200": {
                        "description": "Auth state",
                        "schema": {
                            "$ref": "#/definitions/models.AuthState"
                        }
                    }
                }
            }
        },
        "/auth/signup": {
            "post": {
                "description": "Creates an account and signs it in.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Auth"
                ],
                "summary": "Sign up",
                "parameters": [
                    {
                        "description": "Account details",
                        "name": "account",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.SignupRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Signed in",
                        "schema": {
                            "$ref": "#/definitions/models.AuthState"
                        }
                    },
                    "400": {
                        "description": "Validation error or account not created",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/cart": {
            "get": {
                "description": "Returns the cart lines with item count and total.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Cart"
                ],
                "summary": "Get the cart",
                "responses": {
                    "200": {
                        "description": "Current cart",
                        "schema": {
                            "$ref": "#/definitions/models.CartSnapshot"
                        }
                    }
                }
            },
            "delete": {
                "description": "Removes every line.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Cart"
                ],
                "summary": "Clear the cart",
                "responses": {
                    "200": {
                        "description": "Empty cart",
                        "schema": {
                            "$ref": "#/definitions/models.CartSnapshot"
                        }
                    }
                }
            }
        },
        "/cart/checkout": {
            "post": {
                "description": "Returns a receipt for the current lines and clears the cart.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Cart"
                ],
                "summary": "Check out",
                "responses": {
                    "201": {
                        "description": "Receipt",
                        "schema": {
                            "$ref": "#/definitions/models.Receipt"
                        }
                    },
                    "400": {
                        "description": "Cart is empty",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/cart/items": {
            "post": {
                "description": "Adds one unit of a catalog product, merging with an existing line.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Cart"
                ],
                "summary": "Add a product to the cart",
                "parameters": [
                    {
                        "description": "Product to add",
                        "name": "item",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.AddItemRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated cart",
                        "schema": {
                            "$ref": "#/definitions/models.CartSnapshot"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Product not found",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/cart/items/{id}": {
            "put": {
                "description": "Sets the quantity exactly. Zero or less removes the line.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Cart"
                ],
                "summary": "Set a line quantity",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Product ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "New quantity",
                        "name": "quantity",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.UpdateQuantityRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated cart",
                        "schema": {
                            "$ref": "#/definitions/models.CartSnapshot"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "description": "Removes the line for the product.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Cart"
                ],
                "summary": "Remove a cart line",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Product ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated cart",
                        "schema": {
                            "$ref": "#/definitions/models.CartSnapshot"
                        }
                    }
                }
            }
        },
        "/categories": {
            "get": {
                "description": "Lists the fixed storefront departments.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Products"
                ],
                "summary": "List categories",
                "responses": {
                    "200": {
                        "description": "Categories",
                        "schema": {
                            "type": "array",
                            "items": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/products": {
            "get": {
                "description": "Lists the catalog in stored order. q filters by a case-insensitive substring of the name, category by department (all matches every department).",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Products"
                ],
                "summary": "List products",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Name search",
                        "name": "q",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Category or all",
                        "name": "category",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Matching products",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.Product"
                            }
                        }
                    }
                }
            },
            "post": {
                "description": "Adds a product under a fresh id. Requires an administrator.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Products"
                ],
                "summary": "Create a new product",
                "parameters": [
                    {
                        "description": "Product details",
                        "name": "product",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.CreateProductRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Product created",
                        "schema": {
                            "$ref": "#/definitions/models.Product"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Sign in required",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Administrator access required",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Store write failed",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/products/{id}": {
            "get": {
                "description": "Retrieves a single product from the catalog.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Products"
                ],
                "summary": "Get a product by ID",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Product ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Product found",
                        "schema": {
                            "$ref": "#/definitions/models.Product"
                        }
                    },
                    "404": {
                        "description": "Product not found",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "description": "Removes the product. Deleting an unknown id succeeds. Requires an administrator.",
                "tags": [
                    "Products"
                ],
                "summary": "Delete a product",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Product ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Product deleted"
                    },
                    "401": {
                        "description": "Sign in required",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Administrator access required",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Store write failed",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            },
            "patch": {
                "description": "Merges the given fields into the product. Requires an administrator.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Products"
                ],
                "summary": "Update a product",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Product ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to change",
                        "name": "product",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.UpdateProductRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Product updated",
                        "schema": {
                            "$ref": "#/definitions/models.Product"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Sign in required",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Administrator access required",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Product not found",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Store write failed",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/theme": {
            "get": {
                "description": "Returns the mode, the effective scheme and its palette. The Sec-CH-Prefers-Color-Scheme header updates the host scheme.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Theme"
                ],
                "summary": "Get the theme",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Host color scheme",
                        "name": "Sec-CH-Prefers-Color-Scheme",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Theme state",
                        "schema": {
                            "$ref": "#/definitions/models.ThemeState"
                        }
                    }
                }
            },
            "put": {
                "description": "Sets light, dark or auto.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Theme"
                ],
                "summary": "Set the theme mode",
                "parameters": [
                    {
                        "description": "Theme mode",
                        "name": "mode",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.SetThemeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Theme state",
                        "schema": {
                            "$ref": "#/definitions/models.ThemeState"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/theme/toggle": {
            "post": {
                "description": "Cycles auto, light, dark and back to auto.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Theme"
                ],
                "summary": "Toggle the theme mode",
                "responses": {
                    "200": {
                        "description": "Theme state",
                        "schema": {
                            "$ref": "#/definitions/models.ThemeState"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "handlers.seedResponse": {
            "type": "object",
            "properties": {
                "inserted": {
                    "type": "integer"
                }
            }
        },
        "models.AddItemRequest": {
            "type": "object",
            "required": [
                "product_id"
            ],
            "properties": {
                "product_id": {
                    "type": "string"
                }
            }
        },
        "models.AuthState": {
            "type": "object",
            "properties": {
                "is_authenticated": {
                    "type": "boolean"
                },
                "user": {
                    "$ref": "#/definitions/models.User"
                }
            }
        },
        "models.CartLine": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "price": {
                    "type": "number"
                },
                "quantity": {
                    "type": "integer"
                }
            }
        },
        "models.CartSnapshot": {
            "type": "object",
            "properties": {
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.CartLine"
                    }
                },
                "total_items": {
                    "type": "integer"
                },
                "total_price": {
                    "type": "number"
                }
            }
        },
        "models.Category": {
            "type": "string",
            "enum": [
                "mens",
                "womens",
                "children",
                "accessories"
            ],
            "x-enum-varnames": [
                "CategoryMens",
                "CategoryWomens",
                "CategoryChildren",
                "CategoryAccessories"
            ]
        },
        "models.CreateProductRequest": {
            "type": "object",
            "required": [
                "category",
                "description",
                "image",
                "name",
                "price"
            ],
            "properties": {
                "category": {
                    "enum": [
                        "mens",
                        "womens",
                        "children",
                        "accessories"
                    ],
                    "allOf": [
                        {
                            "$ref": "#/definitions/models.Category"
                        }
                    ]
                },
                "description": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "name": {
                    "type": "string",
                    "maxLength": 200,
                    "minLength": 1
                },
                "price": {
                    "type": "number",
                    "minimum": 0
                }
            }
        },
        "models.LoginRequest": {
            "type": "object",
            "required": [
                "email",
                "password"
            ],
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string",
                    "minLength": 6
                }
            }
        },
        "models.Palette": {
            "type": "object",
            "properties": {
                "background": {
                    "type": "string"
                },
                "border": {
                    "type": "string"
                },
                "card": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                },
                "notification": {
                    "type": "string"
                },
                "primary": {
                    "type": "string"
                },
                "success": {
                    "type": "string"
                },
                "text": {
                    "type": "string"
                },
                "text_secondary": {
                    "type": "string"
                }
            }
        },
        "models.Product": {
            "type": "object",
            "properties": {
                "category": {
                    "$ref": "#/definitions/models.Category"
                },
                "created_at": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "price": {
                    "type": "number"
                }
            }
        },
        "models.Receipt": {
            "type": "object",
            "properties": {
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.CartLine"
                    }
                },
                "placed_at": {
                    "type": "string"
                },
                "total_items": {
                    "type": "integer"
                },
                "total_price": {
                    "type": "number"
                }
            }
        },
        "models.Scheme": {
            "type": "string",
            "enum": [
                "light",
                "dark"
            ],
            "x-enum-varnames": [
                "SchemeLight",
                "SchemeDark"
            ]
        },
        "models.SetThemeRequest": {
            "type": "object",
            "required": [
                "mode"
            ],
            "properties": {
                "mode": {
                    "enum": [
                        "light",
                        "dark",
                        "auto"
                    ],
                    "allOf": [
                        {
                            "$ref": "#/definitions/models.ThemeMode"
                        }
                    ]
                }
            }
        },
        "models.SignupRequest": {
            "type": "object",
            "required": [
                "confirm_password",
                "email",
                "name",
                "password"
            ],
            "properties": {
                "confirm_password": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "password": {
                    "type": "string",
                    "minLength": 6
                }
            }
        },
        "models.ThemeMode": {
            "type": "string",
            "enum": [
                "light",
                "dark",
                "auto"
            ],
            "x-enum-varnames": [
                "ThemeLight",
                "ThemeDark",
                "ThemeAuto"
            ]
        },
        "models.ThemeState": {
            "type": "object",
            "properties": {
                "effective": {
                    "$ref": "#/definitions/models.Scheme"
                },
                "mode": {
                    "$ref": "#/definitions/models.ThemeMode"
                },
                "palette": {
                    "$ref": "#/definitions/models.Palette"
                }
            }
        },
        "models.UpdateProductRequest": {
            "type": "object",
            "properties": {
                "category": {
                    "$ref": "#/definitions/models.Category"
                },
                "description": {
                    "type": "string",
                    "minLength": 1
                },
                "image": {
                    "type": "string"
                },
                "name": {
                    "type": "string",
                    "maxLength": 200,
                    "minLength": 1
                },
                "price": {
                    "type": "number",
                    "minimum": 0
                }
            }
        },
        "models.UpdateQuantityRequest": {
            "type": "object",
            "required": [
                "quantity"
            ],
            "properties": {
                "quantity": {
                    "type": "integer"
                }
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "is_admin": {
                    "type": "boolean"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "details": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "message": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8082",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "FashionHub Storefront API",
	Description:      "Catalog, cart, auth and theme state of one storefront session.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
