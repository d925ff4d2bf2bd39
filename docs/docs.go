package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "Goodness Glamour Booking Concierge",
    "description": "Voice, SMS and chat booking assistant for doorstep salon appointments",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/healthz": {"get": {"tags": ["health"], "summary": "Health check", "responses": {"200": {"description": "OK"}, "503": {"description": "Dependency unavailable"}}}},
    "/api/services": {"get": {"tags": ["catalog"], "summary": "List salon services", "responses": {"200": {"description": "OK"}}}},
    "/api/chat/sessions": {"post": {"tags": ["chat"], "summary": "Start a chat booking session", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/StartChatRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ChatReply"}}}}},
    "/api/chat/sessions/{id}/messages": {"post": {"tags": ["chat"], "summary": "Send a chat message", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ChatMessageRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ChatReply"}}}}},
    "/api/chat/sessions/{id}": {"delete": {"tags": ["chat"], "summary": "End a chat session", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}}}},
    "/trigger-voice-call": {"post": {"tags": ["voice"], "summary": "Ask the assistant to call a customer", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/TriggerCallRequest"}}], "responses": {"200": {"description": "OK"}, "429": {"description": "Rate limited"}}}},
    "/api/qr/generate": {"get": {"tags": ["voice"], "summary": "QR code for the voice booking page", "produces": ["image/png", "application/json"], "parameters": [{"in": "query", "name": "format", "type": "string"}, {"in": "query", "name": "scale", "type": "integer"}], "responses": {"200": {"description": "OK"}}}},
    "/api/bookings": {"get": {"tags": ["bookings"], "summary": "List bookings", "parameters": [{"in": "header", "name": "X-Admin-Key", "type": "string"}, {"in": "query", "name": "phone", "type": "string"}, {"in": "query", "name": "service", "type": "string"}, {"in": "query", "name": "source", "type": "string"}, {"in": "query", "name": "limit", "type": "integer"}, {"in": "query", "name": "offset", "type": "integer"}], "responses": {"200": {"description": "OK"}}}},
    "/api/bookings/{id}": {"get": {"tags": ["bookings"], "summary": "Get a booking", "parameters": [{"in": "header", "name": "X-Admin-Key", "type": "string"}, {"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}}
  },
  "definitions": {
    "StartChatRequest": {"type": "object", "required": ["phone"], "properties": {"session_id": {"type": "string"}, "phone": {"type": "string", "example": "+919876543210"}}},
    "ChatMessageRequest": {"type": "object", "properties": {"text": {"type": "string"}}},
    "ChatReply": {"type": "object", "properties": {"session_id": {"type": "string"}, "reply": {"type": "string"}, "step": {"type": "string"}, "booking_id": {"type": "string"}}},
    "TriggerCallRequest": {"type": "object", "required": ["phone_number"], "properties": {"phone_number": {"type": "string"}, "source": {"type": "string"}}}
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
