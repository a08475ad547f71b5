// Package docs holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/books/{username}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "List a user's barters",
                "parameters": [
                    {"type": "string", "description": "Book owner", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/barter.BarterResponse"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Record a barter",
                "parameters": [
                    {"type": "string", "description": "Book owner", "name": "username", "in": "path", "required": true},
                    {"description": "Barter details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/barter.CreateBarterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/barter.BarterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/books/{username}/{barterId}/progress": {
            "patch": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Simulate one business day",
                "parameters": [
                    {"type": "string", "description": "Book owner", "name": "username", "in": "path", "required": true},
                    {"type": "string", "description": "Barter ID", "name": "barterId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/barter.ProgressResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/books/{username}/{barterId}/approve": {
            "patch": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Approve a pending progression",
                "parameters": [
                    {"type": "string", "description": "Book owner", "name": "username", "in": "path", "required": true},
                    {"type": "string", "description": "Barter ID", "name": "barterId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/barter.BarterResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/marketplace/offers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["marketplace"],
                "summary": "List offers",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/offer.Offer"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["marketplace"],
                "summary": "Post an offer",
                "parameters": [
                    {"description": "Offer details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/offer.CreateOfferRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/offer.Offer"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/marketplace/offers/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["marketplace"],
                "summary": "Remove an offer",
                "parameters": [
                    {"type": "string", "description": "Offer ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/offer.DeleteResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/users/{username}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a profile",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.ProfileResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/users/{username}/preset": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Choose a demo business",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true},
                    {"description": "Preset name", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.SelectPresetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.ProfileResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/minting/presets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["minting"],
                "summary": "List demo businesses",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/popcap.PresetWithCap"}}}
                }
            }
        },
        "/minting/presets/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["minting"],
                "summary": "Get a demo business",
                "parameters": [
                    {"type": "string", "description": "Preset name (URL-encoded)", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/popcap.PresetWithCap"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/minting/finverse/auth-url": {
            "get": {
                "produces": ["application/json"],
                "tags": ["minting"],
                "summary": "Finverse consent URL",
                "parameters": [
                    {"type": "string", "description": "Opaque state echoed back on the callback", "name": "state", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/minting.AuthURLResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/minting/finverse/callback": {
            "get": {
                "produces": ["application/json"],
                "tags": ["minting"],
                "summary": "Derive a cap from Finverse transactions",
                "parameters": [
                    {"type": "string", "description": "Authorization code", "name": "code", "in": "query", "required": true},
                    {"type": "string", "description": "Record the cap on this profile", "name": "username", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/minting.FinverseCapResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "504": {"description": "Gateway Timeout", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/minting/brankas": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["minting"],
                "summary": "Derive a cap from a bank statement",
                "parameters": [
                    {"description": "Statement parameters", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/minting.BrankasCapRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/minting.BrankasCapResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "504": {"description": "Gateway Timeout", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "barter.BarterResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "fromUser": {"type": "string"},
                "toUser": {"type": "string"},
                "yourPreset": {"type": "string"},
                "otherPreset": {"type": "string"},
                "yourTokensGiven": {"type": "integer"},
                "otherTokensReceived": {"type": "integer"},
                "yourCap": {"type": "integer"},
                "otherCap": {"type": "integer"},
                "date": {"type": "string"},
                "expenseEstimate": {"type": "number"},
                "progressPending": {"type": "boolean"},
                "lastProgressNote": {"type": "string"},
                "approved": {"type": "boolean"},
                "revision": {"type": "integer"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"},
                "state": {"type": "string", "enum": ["IDLE", "PENDING_APPROVAL"]}
            }
        },
        "barter.CreateBarterRequest": {
            "type": "object",
            "required": ["toUser"],
            "properties": {
                "fromUser": {"type": "string"},
                "toUser": {"type": "string"},
                "yourPreset": {"type": "string"},
                "otherPreset": {"type": "string"},
                "yourTokensGiven": {"type": "integer", "minimum": 0},
                "otherTokensReceived": {"type": "integer", "minimum": 0},
                "yourCap": {"type": "integer", "minimum": 0},
                "otherCap": {"type": "integer", "minimum": 0},
                "date": {"type": "string"},
                "expenseEstimate": {"type": "number", "minimum": 0, "maximum": 1e15}
            }
        },
        "barter.ProgressResponse": {
            "type": "object",
            "properties": {
                "barter": {"$ref": "#/definitions/barter.BarterResponse"},
                "note": {"type": "string"}
            }
        },
        "offer.Offer": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user": {"type": "string"},
                "offer": {"type": "string"},
                "reveal": {"type": "boolean"},
                "preset": {"type": "string"},
                "tokenAmount": {"type": "integer"},
                "cap": {"type": "integer"},
                "createdAt": {"type": "string"}
            }
        },
        "offer.CreateOfferRequest": {
            "type": "object",
            "required": ["user", "offer", "preset", "tokenAmount", "cap"],
            "properties": {
                "user": {"type": "string"},
                "offer": {"type": "string"},
                "reveal": {"type": "boolean"},
                "preset": {"type": "string"},
                "tokenAmount": {"type": "integer", "minimum": 1},
                "cap": {"type": "integer", "minimum": 0}
            }
        },
        "offer.DeleteResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        },
        "user.ProfileResponse": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "presetName": {"type": "string"},
                "popTokenCap": {"type": "integer"},
                "capSource": {"type": "string", "enum": ["preset", "finverse", "brankas"]},
                "updatedAt": {"type": "string"}
            }
        },
        "user.SelectPresetRequest": {
            "type": "object",
            "required": ["preset"],
            "properties": {"preset": {"type": "string"}}
        },
        "popcap.PresetWithCap": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "businessType": {"type": "string"},
                "location": {"type": "string"},
                "businessAge": {"type": "number"},
                "units": {"type": "integer"},
                "productType": {"type": "string"},
                "currency": {"type": "string"},
                "grossMonthlyRevenue": {"type": "number"},
                "expenses": {"type": "number"},
                "depreciation": {"type": "number"},
                "liabilities": {"type": "number"},
                "netValue": {"type": "number"},
                "popModifier": {"type": "number"},
                "narrative": {"type": "string"},
                "popTokenCap": {"type": "integer"}
            }
        },
        "popcap.Derivation": {
            "type": "object",
            "properties": {
                "periodDays": {"type": "integer"},
                "sales": {"type": "string"},
                "costs": {"type": "string"},
                "avgDailySales": {"type": "string"},
                "avgDailyCost": {"type": "string"},
                "skipped": {"type": "integer"},
                "popTokenCap": {"type": "integer"}
            }
        },
        "minting.AuthURLResponse": {
            "type": "object",
            "properties": {"url": {"type": "string"}}
        },
        "minting.FinverseCapResponse": {
            "type": "object",
            "properties": {
                "popTokenCap": {"type": "integer"},
                "account": {"type": "object"},
                "derivation": {"$ref": "#/definitions/popcap.Derivation"}
            }
        },
        "minting.BrankasCapRequest": {
            "type": "object",
            "required": ["bank_code", "account_number", "start_date", "end_date"],
            "properties": {
                "bank_code": {"type": "string"},
                "account_number": {"type": "string"},
                "start_date": {"type": "string", "example": "2025-01-01"},
                "end_date": {"type": "string", "example": "2025-01-31"},
                "username": {"type": "string"}
            }
        },
        "minting.BrankasCapResponse": {
            "type": "object",
            "properties": {
                "popTokenCap": {"type": "integer"},
                "account_number": {"type": "string"},
                "derivation": {"$ref": "#/definitions/popcap.Derivation"}
            }
        },
        "response.ErrorBody": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/response.APIError"}}
        },
        "response.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "retryable": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "PoP Barter Books API",
	Description:      "Token caps from business data, bilateral barter books and a marketplace offer board.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
