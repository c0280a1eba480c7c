// Package docs registers the OpenAPI document served at /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Obtain a bearer token",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Clear the client session",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/update": {
            "put": {
                "tags": ["auth"],
                "summary": "Update the authenticated user's profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/user": {
            "get": {
                "tags": ["auth"],
                "summary": "Fetch the authenticated user's profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/task": {
            "get": {
                "tags": ["tasks"],
                "summary": "List tasks the user owns or is assigned to",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "post": {
                "tags": ["tasks"],
                "summary": "Create a new task",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/task/sort": {
            "get": {
                "tags": ["tasks"],
                "summary": "Tasks bucketed by due-date window",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "filter", "in": "query", "type": "string", "description": "Today, This Week or This Month"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/task/analytics": {
            "get": {
                "tags": ["tasks"],
                "summary": "Aggregate task counts for the user",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            }
        },
        "/task/add": {
            "post": {
                "tags": ["tasks"],
                "summary": "Reassign every owned task to another user",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            }
        },
        "/task/share/{taskId}": {
            "post": {
                "tags": ["tasks"],
                "summary": "Get a shareable link for a task",
                "parameters": [{"name": "taskId", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/task/{taskId}": {
            "get": {
                "tags": ["tasks"],
                "summary": "Fetch a single task with its creator",
                "parameters": [{"name": "taskId", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "tags": ["tasks"],
                "summary": "Patch a task",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "taskId", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["tasks"],
                "summary": "Delete an owned task",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "taskId", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Task Management API",
	Description:      "Task-management backend with JWT auth, task sharing and analytics",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
