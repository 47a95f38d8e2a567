// Package docs swagger document of v1 API; kept in sync with swag annotations of api/v1
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
        "/certificates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["certificates"],
                "summary": "list certificates",
                "parameters": [
                    {"type": "string", "description": "base name", "name": "name", "in": "query"},
                    {"type": "string", "description": "active or superseded", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.CertificateList"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/echo.HTTPError"}},
                    "501": {"description": "Not Implemented", "schema": {"$ref": "#/definitions/echo.HTTPError"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["certificates"],
                "summary": "issue certificate",
                "parameters": [
                    {"description": "issue request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.IssueRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/v1.Certificate"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/echo.HTTPError"}}
                }
            }
        },
        "/certificates/{certificate_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["certificates"],
                "summary": "get certificate",
                "parameters": [
                    {"type": "string", "description": "certificate id", "name": "certificate_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.Certificate"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/echo.HTTPError"}}
                }
            }
        }
    },
    "definitions": {
        "echo.HTTPError": {
            "type": "object",
            "properties": {
                "message": {}
            }
        },
        "v1.IssueRequest": {
            "type": "object",
            "required": ["Name"],
            "properties": {
                "Name": {"type": "string"},
                "Digest": {"type": "string"},
                "KeyBits": {"type": "integer", "minimum": 1024}
            }
        },
        "v1.Certificate": {
            "type": "object",
            "properties": {
                "ID": {"type": "string"},
                "Name": {"type": "string"},
                "CommonName": {"type": "string"},
                "DNSNames": {"type": "array", "items": {"type": "string"}},
                "Serial": {"type": "string"},
                "Fingerprint": {"type": "string"},
                "SignatureAlgorithm": {"type": "string"},
                "NotBefore": {"type": "string"},
                "NotAfter": {"type": "string"},
                "Status": {"type": "string"},
                "Cert": {"type": "string"},
                "Key": {"type": "string"},
                "Created": {"type": "string"}
            }
        },
        "v1.CertificateList": {
            "type": "object",
            "properties": {
                "Items": {"type": "array", "items": {"$ref": "#/definitions/v1.Certificate"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "v1",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "devcert",
	Description:      "self-signed development certificate issuer",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
