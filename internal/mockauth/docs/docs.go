// Package docs holds the OpenAPI description served at /swagger/.
// Regenerate with: swag init -g router.go -d internal/mockauth -o internal/mockauth/docs
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
        "/auth/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register an account",
                "parameters": [{"description": "Request body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/mockauth.SignupBody"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.MessageResponse"}},
                    "400": {"description": "Email is already taken or validation error", "schema": {"$ref": "#/definitions/mockauth.errorBody"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in with email and password",
                "parameters": [{"description": "Request body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/mockauth.LoginBody"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.JwtResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/mockauth.errorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/mockauth.errorBody"}}
                }
            }
        },
        "/auth/verify-2fa": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Exchange a pending token and TOTP code for a session",
                "parameters": [{"description": "Request body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/mockauth.VerifyBody"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.JwtResponse"}},
                    "400": {"description": "Invalid token or code", "schema": {"$ref": "#/definitions/mockauth.errorBody"}}
                }
            }
        },
        "/auth/forgot-password": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Request a password reset email",
                "parameters": [{"type": "string", "description": "Account email", "name": "email", "in": "query", "required": true}],
                "responses": {
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/mockauth.errorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/mockauth.errorBody"}}
                }
            }
        },
        "/auth/reset-password": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Set a new password with a reset token or email",
                "parameters": [{"description": "Request body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/mockauth.ResetBody"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.MessageResponse"}},
                    "400": {"description": "Missing or expired token", "schema": {"$ref": "#/definitions/mockauth.errorBody"}}
                }
            }
        },
        "/auth/2fa/generate/{userId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/plain"],
                "tags": ["Two-Factor"],
                "summary": "Get the otpauth enrollment URI",
                "parameters": [{"type": "integer", "description": "User ID", "name": "userId", "in": "path", "required": true}],
                "responses": {
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/mockauth.errorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/mockauth.errorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/mockauth.errorBody"}}
                }
            }
        },
        "/auth/2fa/enable/{userId}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Two-Factor"],
                "summary": "Turn two-factor on",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "description": "TOTP code", "name": "code", "in": "query", "required": true}
                ],
                "responses": {
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/mockauth.errorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/mockauth.errorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/mockauth.errorBody"}}
                }
            }
        },
        "/auth/2fa/disable/{userId}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Two-Factor"],
                "summary": "Turn two-factor off",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "description": "TOTP code", "name": "code", "in": "query", "required": true}
                ],
                "responses": {
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/mockauth.errorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/mockauth.errorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/mockauth.errorBody"}}
                }
            }
        },
        "/client/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Client"],
                "summary": "Get the caller's profile",
                "responses": {
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/mockauth.errorBody"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Client"],
                "summary": "Update the caller's profile",
                "parameters": [{"description": "Request body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/mockauth.ProfileBody"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.User"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/mockauth.errorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/mockauth.errorBody"}}
                }
            }
        },
        "/client/change-password": {
            "put": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Client"],
                "summary": "Change the password",
                "parameters": [
                    {"type": "string", "description": "Current password", "name": "currentPassword", "in": "query", "required": true},
                    {"type": "string", "description": "New password", "name": "newPassword", "in": "query", "required": true}
                ],
                "responses": {
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/mockauth.errorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/mockauth.errorBody"}}
                }
            }
        }
    },
    "definitions": {
        "authsdk.JwtResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "id": {"type": "integer"},
                "lastName": {"type": "string"},
                "roles": {"type": "array", "items": {"type": "string"}},
                "token": {"type": "string"},
                "twoFactorEnabled": {"type": "boolean"},
                "twoFactorQrCodeUri": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "authsdk.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "authsdk.User": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "id": {"type": "integer"},
                "lastName": {"type": "string"},
                "phone": {"type": "string"},
                "role": {"type": "string"},
                "twoFactorEnabled": {"type": "boolean"}
            }
        },
        "mockauth.LoginBody": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "mockauth.ProfileBody": {
            "type": "object",
            "required": ["firstName", "lastName"],
            "properties": {
                "address": {"type": "string", "maxLength": 200},
                "firstName": {"type": "string", "maxLength": 50},
                "lastName": {"type": "string", "maxLength": 50},
                "phone": {"type": "string", "maxLength": 20}
            }
        },
        "mockauth.ResetBody": {
            "type": "object",
            "required": ["newPassword"],
            "properties": {
                "email": {"type": "string"},
                "newPassword": {"type": "string", "maxLength": 120, "minLength": 6},
                "token": {"type": "string"}
            }
        },
        "mockauth.SignupBody": {
            "type": "object",
            "required": ["email", "firstName", "lastName", "password", "role"],
            "properties": {
                "address": {"type": "string", "maxLength": 200},
                "email": {"type": "string", "maxLength": 100},
                "enableTwoFactor": {"type": "boolean"},
                "firstName": {"type": "string", "maxLength": 50},
                "lastName": {"type": "string", "maxLength": 50},
                "password": {"type": "string", "maxLength": 120, "minLength": 6},
                "phone": {"type": "string", "maxLength": 20},
                "role": {"type": "string", "enum": ["ADMIN", "AGENT", "CLIENT"]}
            }
        },
        "mockauth.VerifyBody": {
            "type": "object",
            "required": ["code", "token"],
            "properties": {
                "code": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "mockauth.errorBody": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Session token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Property Management Auth (mock)",
	Description:      "Local stand-in for the property-management authentication backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
