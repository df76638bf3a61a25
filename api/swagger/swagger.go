package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Stundenplan API",
        "description": "Weekly team availability planner with live change feed",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "People", "description": "Roster management"},
        {"name": "Availability", "description": "Weekly availability marks"},
        {"name": "Assignments", "description": "Primary person per cell"},
        {"name": "Plan", "description": "Aggregated week view"},
        {"name": "Export", "description": "Week exports"},
        {"name": "Events", "description": "Change feed"}
    ],
    "paths": {
        "/people": {
            "get": {
                "tags": ["People"],
                "summary": "List people",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["People"],
                "summary": "Add a person",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePersonRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/weeks/{week}/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "List availability marks for a week",
                "parameters": [
                    {"name": "week", "in": "path", "required": true, "type": "string", "description": "Monday ISO date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid week key"}
                }
            }
        },
        "/weeks/{week}/availability/toggle": {
            "post": {
                "tags": ["Availability"],
                "summary": "Toggle one availability mark",
                "parameters": [
                    {"name": "week", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/weeks/{week}/availability/{personID}": {
            "put": {
                "tags": ["Availability"],
                "summary": "Replace a person's marks for a week",
                "parameters": [
                    {"name": "week", "in": "path", "required": true, "type": "string"},
                    {"name": "personID", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceWeekRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/weeks/{week}/assignments": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List assignments for a week",
                "parameters": [
                    {"name": "week", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/weeks/{week}/assignments/primary": {
            "put": {
                "tags": ["Assignments"],
                "summary": "Set or clear the primary person for a cell",
                "parameters": [
                    {"name": "week", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetPrimaryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/weeks/{week}/plan": {
            "get": {
                "tags": ["Plan"],
                "summary": "Aggregated plan for a week",
                "parameters": [
                    {"name": "week", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/weeks/{week}/export/xlsx": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the week as a spreadsheet",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "week", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "XLSX file"}
                }
            }
        },
        "/weeks/{week}/export/pdf": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the week as a PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "week", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF file"}
                }
            }
        },
        "/weeks/{week}/events": {
            "get": {
                "tags": ["Events"],
                "summary": "Stream change events for a week",
                "produces": ["text/event-stream"],
                "parameters": [
                    {"name": "week", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "SSE stream"}
                }
            }
        }
    },
    "definitions": {
        "CreatePersonRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}
            },
            "required": ["name"]
        },
        "ToggleRequest": {
            "type": "object",
            "properties": {
                "person_id": {"type": "string"},
                "day": {"type": "string", "enum": ["mon", "tue", "wed", "thu", "fri"]},
                "slot_id": {"type": "string"}
            },
            "required": ["person_id", "day", "slot_id"]
        },
        "ReplaceWeekRequest": {
            "type": "object",
            "properties": {
                "entries": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/AvailabilityEntry"}
                }
            }
        },
        "AvailabilityEntry": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "slot_id": {"type": "string"}
            },
            "required": ["day", "slot_id"]
        },
        "SetPrimaryRequest": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "slot_id": {"type": "string"},
                "person_id": {"type": "string", "x-nullable": true}
            },
            "required": ["day", "slot_id"]
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
