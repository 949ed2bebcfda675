// Package docs содержит описание API dashboard-shell для swagger UI (/docs/*).
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
        "/navigation": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["navigation"],
                "summary": "Пункты боковой панели для роли пользователя",
                "parameters": [
                    {"type": "string", "description": "Текущий путь, например /tasks", "name": "path", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Открыть сессию гейта",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/sessions/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Закрыть сессию гейта",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/gate": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["gate"],
                "summary": "Текущее состояние гейта сессии",
                "parameters": [{"$ref": "#/parameters/SessionID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/gate.Decision"}}
                }
            }
        },
        "/gate/evaluate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["gate"],
                "summary": "Оценить гейт (не более одного раза за сессию)",
                "parameters": [{"$ref": "#/parameters/SessionID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/gate.Decision"}}
                }
            }
        },
        "/gate/complete": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["gate"],
                "summary": "День начат: сохранить запись за сегодня",
                "parameters": [{"$ref": "#/parameters/SessionID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/gate.Decision"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/gate/dismiss": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["gate"],
                "summary": "Закрыть диалог без начала дня",
                "parameters": [{"$ref": "#/parameters/SessionID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/gate.Decision"}}
                }
            }
        },
        "/dashboard/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Статистика задач",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DashboardStats"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/dashboard/reminders": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Разослать напоминания (Admin, Manager)",
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/dashboard/aim-reminders": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Разослать напоминания о целях",
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/dashboard/reports": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Сформировать отчёты (Admin, Manager)",
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "parameters": {
        "SessionID": {"type": "string", "format": "uuid", "name": "X-Session-ID", "in": "header", "required": true}
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "OK"},
                "error": {"type": "string"},
                "data": {}
            }
        },
        "gate.Decision": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["idle", "checking", "suppressed", "prompt_pending", "resolved"]},
                "capability_checked": {"type": "boolean"},
                "should_prompt": {"type": "boolean"},
                "record_key": {"type": "string", "example": "startDayPromptShown:42:2024-06-01"}
            }
        },
        "models.DashboardStats": {
            "type": "object",
            "properties": {
                "totalTasks": {"type": "integer"},
                "completedTasks": {"type": "integer"},
                "inProgressTasks": {"type": "integer"},
                "pendingTasks": {"type": "integer"},
                "totalTasksChange": {"type": "number"},
                "completedTasksChange": {"type": "number"},
                "inProgressTasksChange": {"type": "number"},
                "pendingTasksChange": {"type": "number"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo содержит экспортируемую информацию Swagger, чтобы клиенты могли её изменить.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Dashboard Shell API",
	Description:      "BFF дашборда: навигация по роли и ежедневный гейт начала дня",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
