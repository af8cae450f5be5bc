// Package swagger holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o cmd/server/swagger
package swagger

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
        "/api/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a customer",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.RegisterInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Customer login",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/staff/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["staff"],
                "summary": "Staff login",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/staff.LoginInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/transactions": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Create a transfer",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/transaction.CreateTransactionInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/transactions/mine": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List own transfers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/api/transactions/pending": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List pending transfers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/transactions/{id}/verify": {
            "put": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Verify a pending transfer",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/transactions/{id}/submit": {
            "post": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Submit a verified transfer",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        }
    },
    "definitions": {
        "auth.RegisterInput": {
            "type": "object",
            "required": ["username", "fullName", "idNumber", "accountNumber", "password"],
            "properties": {
                "username": {"type": "string"},
                "fullName": {"type": "string"},
                "idNumber": {"type": "string"},
                "accountNumber": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "auth.LoginInput": {
            "type": "object",
            "required": ["username", "accountNumber", "password"],
            "properties": {
                "username": {"type": "string"},
                "accountNumber": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "staff.LoginInput": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "transaction.CreateTransactionInput": {
            "type": "object",
            "required": ["fromAccountNumber", "toAccountNumber", "amount", "currency", "swiftCode", "paymentMethod"],
            "properties": {
                "fromAccountNumber": {"type": "string"},
                "toAccountNumber": {"type": "string"},
                "amount": {"type": "string"},
                "currency": {"type": "string"},
                "targetCurrency": {"type": "string"},
                "swiftCode": {"type": "string"},
                "paymentMethod": {"type": "string", "enum": ["bank_transfer", "credit_card", "debit_card", "paypal"]}
            }
        },
        "common.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        },
        "common.ProblemDetails": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "errors": {}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Enter your bearer token in the format: Bearer {token}",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Payments Portal API",
	Description:      "International payments portal: customer transfers reviewed by staff",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
