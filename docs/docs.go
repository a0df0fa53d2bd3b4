// Package docs registers the Swagger 2.0 document served at /swagger/*. It is
// maintained by hand alongside the @-annotations on the handlers; the route
// table is checked against the router in internal/api tests.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.resultResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.resultResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.resultResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.resultResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.resultResponse"}}
                }
            }
        },
        "/auth/password": {
            "post": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Change own password",
                "parameters": [
                    {"description": "Current and new password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.changePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.resultResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.resultResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.resultResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.resultResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.accountListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.resultResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.resultResponse"}}
                }
            },
            "post": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create user",
                "parameters": [
                    {"description": "New account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createAccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.accountResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.resultResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.resultResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get user",
                "parameters": [{"type": "integer", "description": "Account ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.accountResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.resultResponse"}}
                }
            },
            "put": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update user",
                "parameters": [
                    {"type": "integer", "description": "Account ID", "name": "id", "in": "path", "required": true},
                    {"description": "Account fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateAccountRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.accountResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.resultResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.resultResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.resultResponse"}}
                }
            },
            "delete": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Deactivate user",
                "parameters": [{"type": "integer", "description": "Account ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.resultResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.resultResponse"}}
                }
            }
        },
        "/roles": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["roles"],
                "summary": "List roles",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.roleListResponse"}}
                }
            },
            "post": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["roles"],
                "summary": "Create role",
                "parameters": [
                    {"description": "Role", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.roleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.roleResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.resultResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.resultResponse"}}
                }
            }
        },
        "/roles/{id}": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["roles"],
                "summary": "Get role",
                "parameters": [{"type": "integer", "description": "Role ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.roleResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.resultResponse"}}
                }
            },
            "put": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["roles"],
                "summary": "Rename role",
                "parameters": [
                    {"type": "integer", "description": "Role ID", "name": "id", "in": "path", "required": true},
                    {"description": "Role", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.roleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.roleResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.resultResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.resultResponse"}}
                }
            },
            "delete": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["roles"],
                "summary": "Delete role",
                "parameters": [{"type": "integer", "description": "Role ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.resultResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.resultResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.resultResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.resultResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"username": {"type": "string", "maxLength": 100}, "password": {"type": "string", "maxLength": 100}}
        },
        "handler.changePasswordRequest": {
            "type": "object",
            "required": ["current_password", "new_password"],
            "properties": {
                "current_password": {"type": "string"},
                "new_password": {"type": "string", "maxLength": 100, "minLength": 6},
                "confirm_password": {"type": "string"}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer"},
                "username": {"type": "string"},
                "role": {"type": "string"},
                "issued_at": {"type": "string"},
                "expires_at": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "session": {"$ref": "#/definitions/handler.sessionResponse"}
            }
        },
        "handler.createAccountRequest": {
            "type": "object",
            "required": ["password", "role_id", "username"],
            "properties": {
                "username": {"type": "string", "maxLength": 100},
                "password": {"type": "string", "maxLength": 100, "minLength": 6},
                "confirm_password": {"type": "string"},
                "role_id": {"type": "integer"}
            }
        },
        "handler.updateAccountRequest": {
            "type": "object",
            "required": ["active", "role_id", "username"],
            "properties": {
                "username": {"type": "string", "maxLength": 100},
                "password": {"type": "string", "maxLength": 100, "minLength": 6},
                "confirm_password": {"type": "string"},
                "role_id": {"type": "integer"},
                "active": {"type": "boolean"}
            }
        },
        "handler.accountResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "role_id": {"type": "integer"},
                "role_name": {"type": "string"},
                "active": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.accountListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.accountResponse"}},
                "total": {"type": "integer"}
            }
        },
        "handler.roleRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string", "maxLength": 50}}
        },
        "handler.roleResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.roleListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.roleResponse"}},
                "total": {"type": "integer"}
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "error": {"type": "string"}}
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}}
            }
        }
    },
    "securityDefinitions": {
        "CookieAuth": {
            "type": "apiKey",
            "name": "BookStoreAuth",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bookstore Account API",
	Description:      "Login, sessions and account administration for the bookstore catalog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
