// Package docs holds the Swagger description served at /swagger when
// DOCS_ENABLED is set.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "info@bentech.app"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "description": "Checks that the process is up.",
                "produces": ["application/json"],
                "tags": ["Monitoring"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HealthResponse"}}
                }
            }
        },
        "/api/v1/ready": {
            "get": {
                "description": "Checks that the lookup store answers.",
                "produces": ["application/json"],
                "tags": ["Monitoring"],
                "summary": "Readiness Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.HealthResponse"}}
                }
            }
        },
        "/api/v1/resolve": {
            "get": {
                "description": "Runs the same resolution as the redirect route and returns it as JSON instead of redirecting.",
                "produces": ["application/json"],
                "tags": ["Redirect"],
                "summary": "Preview a short link",
                "parameters": [
                    {"type": "string", "description": "Short code", "name": "path", "in": "query", "required": true},
                    {"type": "string", "description": "Email parameter to append", "name": "email", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ResolvePreviewResponse"}},
                    "400": {"description": "Error: missing path", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Lookup store failure", "schema": {"$ref": "#/definitions/models.APIErrorResponse"}}
                }
            }
        },
        "/{path}": {
            "get": {
                "description": "Looks up the short code and answers with a 302 to its target. Unknown, over-long or reserved codes redirect to the fallback destination. A non-empty email query parameter is appended to matched targets.",
                "tags": ["Redirect"],
                "summary": "Follow a short link",
                "parameters": [
                    {"type": "string", "description": "Short code", "name": "path", "in": "path", "required": true},
                    {"type": "string", "description": "Appended to the target as ?email= or &email=", "name": "email", "in": "query"}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "500": {"description": "Lookup store failure", "schema": {"$ref": "#/definitions/models.APIErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.APIErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "error_code": {"type": "string"},
                "message": {"type": "string"},
                "status_code": {"type": "integer"}
            }
        },
        "models.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "store": {"type": "string"}
            }
        },
        "models.ResolvePreviewResponse": {
            "type": "object",
            "properties": {
                "location": {"type": "string"},
                "matched": {"type": "boolean"},
                "path": {"type": "string"},
                "status_code": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Link Redirector API",
	Description:      "Resolves short codes to their target URLs and redirects.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
