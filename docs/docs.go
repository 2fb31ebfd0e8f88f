// Package docs registers the OpenAPI description served at /swagger/*.
// Regenerate with: swag init -g cmd/travel/main.go -o docs
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
        "/available_destinations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns every destination with no reservation sharing a day with [check_in_date, check_out_date].",
                "produces": ["application/json"],
                "tags": ["availability"],
                "summary": "Search available destinations",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD", "name": "check_in_date", "in": "query", "required": true},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "check_out_date", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.availableDestinationsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/destination": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["destinations"],
                "summary": "List destinations",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.destinationsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["destinations"],
                "summary": "Create a destination",
                "parameters": [
                    {"description": "Destination", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createDestinationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Destination"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/destination/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["destinations"],
                "summary": "Get a destination",
                "parameters": [
                    {"type": "integer", "description": "Destination ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.destinationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["destinations"],
                "summary": "Update a destination",
                "parameters": [
                    {"type": "integer", "description": "Destination ID", "name": "id", "in": "path", "required": true},
                    {"description": "New values", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateDestinationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.destinationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/plain"],
                "tags": ["destinations"],
                "summary": "Delete a destination",
                "parameters": [
                    {"type": "integer", "description": "Destination ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted destination: {id}", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.tokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/logout": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "description": "Admin accounts cannot be self-registered; they come from ADMIN_USERNAME at startup or the seed file.",
                "parameters": [
                    {"description": "User registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/reservation": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Book a destination",
                "parameters": [
                    {"description": "Reservation", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createReservationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.reservationBody"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/reservation/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "List reservations of a destination",
                "parameters": [
                    {"type": "integer", "description": "Destination ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.reservationsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/unavailable_dates/{destination_id}": {
            "get": {
                "description": "Days shared by several reservations repeat unless distinct=true.",
                "produces": ["application/json"],
                "tags": ["availability"],
                "summary": "List reserved days of a destination",
                "parameters": [
                    {"type": "integer", "description": "Destination ID", "name": "destination_id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Deduplicate and sort", "name": "distinct", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.unavailableDatesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/user/{username}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a user by username",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Destination": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "location": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "discount": {"type": "integer"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "username": {"type": "string"},
                "role": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "handler.availableDestinationsResponse": {
            "type": "object",
            "properties": {
                "available_destinations": {"type": "array", "items": {"$ref": "#/definitions/domain.Destination"}}
            }
        },
        "handler.createDestinationRequest": {
            "type": "object",
            "required": ["title", "location", "price", "discount"],
            "properties": {
                "title": {"type": "string"},
                "location": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number", "minimum": 0},
                "discount": {"type": "integer", "minimum": 0, "maximum": 100}
            }
        },
        "handler.createReservationRequest": {
            "type": "object",
            "required": ["user_id", "destination_id", "check_in_date", "check_out_date", "total_price"],
            "properties": {
                "user_id": {"type": "integer"},
                "destination_id": {"type": "integer"},
                "check_in_date": {"type": "string", "example": "2024-01-01"},
                "check_out_date": {"type": "string", "example": "2024-01-03"},
                "total_price": {"type": "number", "minimum": 0}
            }
        },
        "handler.destinationResponse": {
            "type": "object",
            "properties": {
                "destination": {"$ref": "#/definitions/domain.Destination"}
            }
        },
        "handler.destinationsResponse": {
            "type": "object",
            "properties": {
                "destinations": {"type": "array", "items": {"$ref": "#/definitions/domain.Destination"}}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["name", "username", "password", "role"],
            "properties": {
                "name": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "customer"]}
            }
        },
        "handler.reservationBody": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "destination_id": {"type": "integer"},
                "check_in_date": {"type": "string"},
                "check_out_date": {"type": "string"},
                "total_price": {"type": "number"}
            }
        },
        "handler.reservationsResponse": {
            "type": "object",
            "properties": {
                "reservations": {"type": "array", "items": {"$ref": "#/definitions/handler.reservationBody"}}
            }
        },
        "handler.tokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"}
            }
        },
        "handler.unavailableDatesResponse": {
            "type": "object",
            "properties": {
                "unavailable_dates": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.updateDestinationRequest": {
            "type": "object",
            "required": ["title", "price", "discount"],
            "properties": {
                "title": {"type": "string"},
                "location": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number", "minimum": 0},
                "discount": {"type": "integer", "minimum": 0, "maximum": 100}
            }
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/domain.User"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Travel Universe Booking API",
	Description:      "Destinations, availability search and reservations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
