// Package docs registra la documentación OpenAPI del BFF para /swagger.
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
		"/health": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Healthcheck",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Iniciar sesión",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/auth/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Registrar cuenta",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/auth/logout": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Cerrar sesión",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					}
				}
			}
		},
		"/me": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Usuario actual",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/me/pets": {
			"get": {
				"tags": [
					"pets"
				],
				"summary": "Mis mascotas publicadas",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/me/alerts": {
			"get": {
				"tags": [
					"adoptions"
				],
				"summary": "Contador de alertas",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/me/adoption-requests/received": {
			"get": {
				"tags": [
					"adoptions"
				],
				"summary": "Solicitudes recibidas",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/me/adoption-requests/sent": {
			"get": {
				"tags": [
					"adoptions"
				],
				"summary": "Solicitudes enviadas",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/me/adoption-requests/seen": {
			"post": {
				"tags": [
					"adoptions"
				],
				"summary": "Marcar solicitudes como vistas",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/browse": {
			"patch": {
				"tags": [
					"pets"
				],
				"summary": "Cambiar filtros de navegación",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/pets": {
			"get": {
				"tags": [
					"pets"
				],
				"summary": "Página actual del catálogo",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"post": {
				"tags": [
					"pets"
				],
				"summary": "Publicar mascota",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/pets/refresh": {
			"post": {
				"tags": [
					"pets"
				],
				"summary": "Refrescar catálogo",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/pets/{petID}": {
			"get": {
				"tags": [
					"pets"
				],
				"summary": "Detalle de mascota",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "petID",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"pets"
				],
				"summary": "Editar mascota",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "petID",
						"in": "path",
						"required": true
					},
					{
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"pets"
				],
				"summary": "Borrar mascota",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "petID",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/pets/{petID}/adoption-requests": {
			"post": {
				"tags": [
					"adoptions"
				],
				"summary": "Solicitar adopción",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "petID",
						"in": "path",
						"required": true
					}
				]
			},
			"get": {
				"tags": [
					"adoptions"
				],
				"summary": "Solicitudes de una mascota",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "petID",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/pets/{petID}/adoption-requests/{requester}/approve": {
			"post": {
				"tags": [
					"adoptions"
				],
				"summary": "Aprobar solicitud",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "petID",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "requester",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/pets/{petID}/adoption-requests/{requester}/decline": {
			"post": {
				"tags": [
					"adoptions"
				],
				"summary": "Rechazar solicitud",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "petID",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "requester",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/preferences": {
			"get": {
				"tags": [
					"preferences"
				],
				"summary": "Preferencias",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/preferences/theme": {
			"put": {
				"tags": [
					"preferences"
				],
				"summary": "Cambiar tema",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/preferences/theme/toggle": {
			"post": {
				"tags": [
					"preferences"
				],
				"summary": "Alternar tema",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "",
	BasePath:		 "/",
	Schemes:		  []string{},
	Title:			"Pet Adoption Hub API",
	Description:	  "Backend-for-frontend local del motor de adopciones: catálogo, solicitudes, alertas y preferencias.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
