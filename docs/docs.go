package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Состояние сервиса и зависимостей",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/places/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Places"],
                "summary": "Поиск мест по тексту",
                "parameters": [
                    {"type": "string", "description": "Поисковый запрос (до 200 символов)", "name": "q", "in": "query", "required": true},
                    {"type": "number", "description": "Широта пользователя", "name": "lat", "in": "query"},
                    {"type": "number", "description": "Долгота пользователя", "name": "lon", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Максимальное количество результатов", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Идентификатор пользователя", "name": "X-User-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/places/reverse": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Places"],
                "summary": "Обратное геокодирование",
                "parameters": [
                    {"type": "number", "description": "Широта", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Долгота", "name": "lon", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/places/{id}/select": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Places"],
                "summary": "Выбор места пользователем",
                "parameters": [
                    {"type": "string", "description": "ID места", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Идентификатор пользователя", "name": "X-User-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/places/{id}/pickup-points": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Pickup Points"],
                "summary": "Точки посадки у места",
                "parameters": [
                    {"type": "string", "description": "ID места", "name": "id", "in": "path", "required": true},
                    {"type": "number", "description": "Широта пользователя", "name": "lat", "in": "query"},
                    {"type": "number", "description": "Долгота пользователя", "name": "lon", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Максимальное количество точек", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Pickup Points"],
                "summary": "Предложить точку посадки",
                "parameters": [
                    {"type": "string", "description": "ID места", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/pickup-points/{id}/confirm": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Pickup Points"],
                "summary": "Подтвердить точку посадки",
                "parameters": [
                    {"type": "string", "description": "ID точки посадки", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Идентификатор пользователя", "name": "X-User-ID", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/pickup-points/{id}/select": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Pickup Points"],
                "summary": "Использовать точку посадки",
                "parameters": [
                    {"type": "string", "description": "ID точки посадки", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}}
                }
            }
        },
        "/api/v1/locations/validate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Locations"],
                "summary": "Проверка координаты и привязка к дороге",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/me/inferred-places": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Personalization"],
                "summary": "Предполагаемые дом и работа",
                "parameters": [
                    {"type": "string", "description": "Идентификатор пользователя", "name": "X-User-ID", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        },
        "utils.Meta": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "limit": {"type": "integer"},
                "took_ms": {"type": "number"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/utils.Meta"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Place Resolver API",
	Description:      "Поиск, обратное геокодирование и ранжирование мест, точки посадки.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
