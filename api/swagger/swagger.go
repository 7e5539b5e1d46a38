package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Meal Gateway",
        "description": "Backend-for-frontend gateway for the campus meal reservation app",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Login and session management"},
        {"name": "Menus", "description": "Day menus and reservable meals"},
        {"name": "History", "description": "Ticket history feed"},
        {"name": "Reservations", "description": "Reservation mutations"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session token issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"},
                    "401": {"description": "Invalid credentials or inactive account"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current student profile",
                "responses": {
                    "200": {"description": "Student profile", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or invalid session"}
                }
            }
        },
        "/menus": {
            "get": {
                "tags": ["Menus"],
                "summary": "List menus for a day",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "description": "ISO date (yyyy-MM-dd), today when omitted"}
                ],
                "responses": {
                    "200": {"description": "Classified meal slots", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed date or outside the browsing window"},
                    "401": {"description": "Missing or invalid session"},
                    "502": {"description": "Meal service unreachable"}
                }
            }
        },
        "/meals/allowed": {
            "get": {
                "tags": ["Menus"],
                "summary": "List reservable meals",
                "responses": {
                    "200": {"description": "Allowed meals", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or invalid session"}
                }
            }
        },
        "/meals/status-legend": {
            "get": {
                "tags": ["Menus"],
                "summary": "Meal status legend",
                "responses": {
                    "200": {"description": "Status presentations", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tickets/history": {
            "get": {
                "tags": ["History"],
                "summary": "Meal history feed",
                "responses": {
                    "200": {"description": "Recent tickets, most recent first", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or invalid session"},
                    "502": {"description": "Meal service unreachable"}
                }
            }
        },
        "/reservations": {
            "post": {
                "tags": ["Reservations"],
                "summary": "Reserve a meal",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReservationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Reservation committed"},
                    "400": {"description": "Invalid payload"},
                    "401": {"description": "Missing or invalid session"},
                    "422": {"description": "Rejected by the meal service"}
                }
            }
        },
        "/reservations/cancel": {
            "put": {
                "tags": ["Reservations"],
                "summary": "Cancel a reservation",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReservationRequest"}}
                ],
                "responses": {
                    "204": {"description": "Reservation cancelled"},
                    "400": {"description": "Invalid payload"},
                    "401": {"description": "Missing or invalid session"},
                    "422": {"description": "Rejected by the meal service"}
                }
            }
        },
        "/tickets/{id}/justification": {
            "put": {
                "tags": ["Reservations"],
                "summary": "Justify a missed meal",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/JustificationRequest"}}
                ],
                "responses": {
                    "204": {"description": "Justification recorded"},
                    "400": {"description": "Invalid payload"},
                    "401": {"description": "Missing or invalid session"},
                    "422": {"description": "Rejected by the meal service"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ReservationRequest": {
            "type": "object",
            "required": ["meal_id", "date"],
            "properties": {
                "meal_id": {"type": "integer"},
                "date": {"type": "string", "description": "yyyy-MM-dd"}
            }
        },
        "JustificationRequest": {
            "type": "object",
            "properties": {
                "studentJustification": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
