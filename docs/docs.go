// Package docs registra el documento OpenAPI servido en /swagger/*.
// Se regenera con `swag init -g cmd/api/main.go`; mantener en sync con los godoc de los handlers.
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
        "/api/grant-access": {
            "post": {
                "description": "El paciente declara la intención de dar acceso a un provider. La tripleta (patientWallet, providerWallet, grantAccess) es única.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["grant-access"],
                "summary": "Crear grant de acceso",
                "parameters": [
                    {
                        "description": "Grant",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/accessgrants.createGrantRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/accessgrants.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/accessgrants.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/accessgrants.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/accessgrants.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/accessgrants.messageResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/accessgrants.errorResponse"}}
                }
            }
        },
        "/api/grant-access/provider/{providerWallet}": {
            "get": {
                "description": "Todos los grants dirigidos al provider, pendientes y activos, en orden de alta.",
                "produces": ["application/json"],
                "tags": ["grant-access"],
                "summary": "Grants de un provider",
                "parameters": [
                    {"type": "string", "description": "Wallet del provider", "name": "providerWallet", "in": "path", "required": true},
                    {"type": "string", "description": "Yes o No", "name": "accepted", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/accessgrants.grantResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/accessgrants.errorResponse"}}
                }
            }
        },
        "/api/grant-access/provider/{providerWallet}/requests": {
            "get": {
                "description": "Grants del provider con el perfil del paciente resuelto contra el registro de identidad.",
                "produces": ["application/json"],
                "tags": ["grant-access"],
                "summary": "Requests de un provider con perfil del paciente",
                "parameters": [
                    {"type": "string", "description": "Wallet del provider", "name": "providerWallet", "in": "path", "required": true},
                    {"type": "string", "description": "Yes o No", "name": "accepted", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/accessgrants.providerRequestResponse"}}}
                }
            }
        },
        "/api/grant-access/patient/{patientWallet}": {
            "get": {
                "description": "Todos los grants emitidos por el paciente, pendientes y activos, en orden de alta.",
                "produces": ["application/json"],
                "tags": ["grant-access"],
                "summary": "Grants de un paciente",
                "parameters": [
                    {"type": "string", "description": "Wallet del paciente", "name": "patientWallet", "in": "path", "required": true},
                    {"type": "string", "description": "Yes o No", "name": "accepted", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/accessgrants.grantResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/accessgrants.errorResponse"}}
                }
            }
        },
        "/api/grant-access/accept/{id}": {
            "put": {
                "description": "El provider acepta el grant (accepted pasa a Yes). Re-aceptar es idempotente.",
                "produces": ["application/json"],
                "tags": ["grant-access"],
                "summary": "Aceptar grant",
                "parameters": [
                    {"type": "string", "description": "Grant ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/accessgrants.messageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/accessgrants.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/accessgrants.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/accessgrants.messageResponse"}}
                }
            }
        },
        "/api/grant-access/{id}": {
            "delete": {
                "description": "Borra el grant. Quién puede hacerlo depende de REVOKE_POLICY (any, parties, patient).",
                "produces": ["application/json"],
                "tags": ["grant-access"],
                "summary": "Revocar grant",
                "parameters": [
                    {"type": "string", "description": "Grant ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/accessgrants.messageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/accessgrants.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/accessgrants.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/accessgrants.messageResponse"}}
                }
            }
        },
        "/api/identity/{wallet}": {
            "get": {
                "description": "Resuelve el wallet contra el registro de identidad (patient/provider) y devuelve su perfil.",
                "produces": ["application/json"],
                "tags": ["identity"],
                "summary": "Rol y perfil de un wallet",
                "parameters": [
                    {"type": "string", "description": "Wallet", "name": "wallet", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/profiles.profileResponse"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "accessgrants.createGrantRequest": {
            "type": "object",
            "required": ["grantAccess", "patientWallet", "providerWallet"],
            "properties": {
                "grantAccess": {"type": "string", "enum": ["Yes", "No"]},
                "patientWallet": {"type": "string"},
                "providerWallet": {"type": "string"}
            }
        },
        "accessgrants.grantResponse": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "patientWallet": {"type": "string"},
                "providerWallet": {"type": "string"},
                "grantAccess": {"type": "string", "enum": ["Yes", "No"]},
                "accepted": {"type": "string", "enum": ["Yes", "No"]},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "accessgrants.providerRequestResponse": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "patientWallet": {"type": "string"},
                "providerWallet": {"type": "string"},
                "grantAccess": {"type": "string", "enum": ["Yes", "No"]},
                "accepted": {"type": "string", "enum": ["Yes", "No"]},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"},
                "patient": {"$ref": "#/definitions/identity.PatientInfo"}
            }
        },
        "accessgrants.messageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "data": {"$ref": "#/definitions/accessgrants.grantResponse"}
            }
        },
        "accessgrants.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "identity.PatientInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "age": {"type": "integer"},
                "bloodGroup": {"type": "string"},
                "contactNumber": {"type": "string"}
            }
        },
        "identity.ProviderInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "hospital": {"type": "string"},
                "specialization": {"type": "string"},
                "licenseNumber": {"type": "string"},
                "contactNumber": {"type": "string"}
            }
        },
        "profiles.profileResponse": {
            "type": "object",
            "properties": {
                "walletAddress": {"type": "string"},
                "role": {"type": "string", "enum": ["patient", "provider"]},
                "patient": {"$ref": "#/definitions/identity.PatientInfo"},
                "provider": {"$ref": "#/definitions/identity.ProviderInfo"}
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
	Title:            "Health Records Access API",
	Description:      "Ciclo de vida de los grants de acceso paciente -> provider.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
