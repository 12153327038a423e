// Package docs holds the OpenAPI document served under /swagger/.
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
        "/api/draft": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get draft",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/main.draftResponse"}
                    }
                }
            }
        },
        "/api/draft/commit": {
            "post": {
                "produces": ["application/json"],
                "summary": "Commit draft",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/order.Order"}
                    }
                }
            }
        },
        "/api/draft/{field}": {
            "put": {
                "consumes": ["text/plain"],
                "produces": ["application/json"],
                "summary": "Update draft field",
                "parameters": [
                    {"type": "string", "description": "Field name", "name": "field", "in": "path", "required": true},
                    {"description": "Raw field text", "name": "value", "in": "body", "required": true, "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/main.draftResponse"}
                    },
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/orders": {
            "get": {
                "produces": ["application/json"],
                "summary": "List orders",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/order.Order"}}
                    }
                }
            },
            "delete": {
                "summary": "Clear orders",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/orders/sort/{by}": {
            "post": {
                "produces": ["application/json"],
                "summary": "Sort orders",
                "parameters": [
                    {"enum": ["idRev", "cusNm"], "type": "string", "description": "Sort key", "name": "by", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/order.Order"}}
                    },
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/orders/{index}": {
            "delete": {
                "summary": "Remove order",
                "parameters": [
                    {"type": "integer", "description": "Position in the current sequence", "name": "index", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "main.draftResponse": {
            "type": "object",
            "properties": {
                "draft": {"$ref": "#/definitions/order.Order"},
                "state": {"type": "string", "enum": ["empty", "editing"]}
            }
        },
        "order.Order": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "x-nullable": true},
                "bookTitles": {"type": "string"},
                "quantity": {"type": "integer", "x-nullable": true},
                "creationDate": {"type": "string"},
                "deliveryDate": {"type": "string"},
                "deliveryService": {"type": "string"},
                "deliveryMethod": {"type": "string"},
                "customerName": {"type": "string"},
                "customerContacts": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Book Orders API",
	Description:      "Records and lists book purchase orders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
