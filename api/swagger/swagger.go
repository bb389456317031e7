package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Study Roadmap API",
        "description": "Personalized study roadmap generation, monitoring, and review workflow",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Account registration and login"},
        {"name": "Students", "description": "Student profiles, performance, and habits"},
        {"name": "Roadmaps", "description": "Roadmap generation and lifecycle"},
        {"name": "Monitoring", "description": "Agent-driven weekly monitoring"},
        {"name": "Workflows", "description": "Teacher/parent feedback workflow"},
        {"name": "Registry", "description": "Reviewer registry"},
        {"name": "Dashboard", "description": "Reviewer dashboards"},
        {"name": "Notifications", "description": "User notifications"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register account",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/students": {
            "post": {
                "tags": ["Students"],
                "summary": "Create student profile",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student profile",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/students/{id}/performance": {
            "post": {
                "tags": ["Students"],
                "summary": "Record assessment result",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/students/{id}/habits": {
            "post": {
                "tags": ["Students"],
                "summary": "Record study session",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/roadmaps": {
            "post": {
                "tags": ["Roadmaps"],
                "summary": "Generate roadmap",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/roadmaps/latest": {
            "get": {
                "tags": ["Roadmaps"],
                "summary": "Latest roadmap for student",
                "parameters": [
                    {"name": "studentId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/roadmaps/{id}": {
            "get": {
                "tags": ["Roadmaps"],
                "summary": "Get roadmap",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/roadmaps/{id}/replan": {
            "post": {
                "tags": ["Roadmaps"],
                "summary": "Replan roadmap from new performance data",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/roadmaps/{id}/tasks/{taskId}": {
            "patch": {
                "tags": ["Roadmaps"],
                "summary": "Update task status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "taskId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/roadmaps/{id}/export": {
            "get": {
                "tags": ["Roadmaps"],
                "summary": "Export roadmap as PDF or CSV",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": false, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/exports/{token}": {
            "get": {
                "tags": ["Roadmaps"],
                "summary": "Download exported roadmap via signed token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "403": {"description": "Invalid or expired token"},
                    "404": {"description": "Export no longer available"}
                }
            }
        },
        "/monitoring/reports": {
            "post": {
                "tags": ["Monitoring"],
                "summary": "Generate weekly monitoring report",
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Student or roadmap missing"}
                }
            },
            "get": {
                "tags": ["Monitoring"],
                "summary": "Recent monitoring reports",
                "parameters": [
                    {"name": "studentId", "in": "query", "required": true, "type": "string"},
                    {"name": "limit", "in": "query", "required": false, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/monitoring/agents": {
            "get": {
                "tags": ["Monitoring"],
                "summary": "Monitoring agent status",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/monitoring/agents/{id}/toggle": {
            "post": {
                "tags": ["Monitoring"],
                "summary": "Toggle monitoring agent",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Unknown agent"}
                }
            }
        },
        "/workflows": {
            "post": {
                "tags": ["Workflows"],
                "summary": "Submit roadmap for review",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/workflows/pending": {
            "get": {
                "tags": ["Workflows"],
                "summary": "Pending workflows for reviewer",
                "parameters": [
                    {"name": "role", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/workflows/{id}": {
            "get": {
                "tags": ["Workflows"],
                "summary": "Workflow status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/workflows/{id}/teacher-feedback": {
            "post": {
                "tags": ["Workflows"],
                "summary": "Submit teacher feedback",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Wrong stage"}
                }
            }
        },
        "/workflows/{id}/parent-feedback": {
            "post": {
                "tags": ["Workflows"],
                "summary": "Submit parent feedback",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Wrong stage"}
                }
            }
        },
        "/registry/teachers": {
            "post": {
                "tags": ["Registry"],
                "summary": "Register teacher",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/registry/parents": {
            "post": {
                "tags": ["Registry"],
                "summary": "Register parent",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/dashboard/teachers/{id}": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Teacher dashboard",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/dashboard/parents/{id}": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Parent dashboard",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List notifications",
                "parameters": [
                    {"name": "limit", "in": "query", "required": false, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/notifications/{id}/read": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Mark notification read",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
