package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CourseHub API",
        "description": "Course management API: enrollment, grading and course comments",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Accounts and tokens"},
        {"name": "Courses", "description": "Course catalog"},
        {"name": "Enrollments", "description": "Student enrollment lifecycle"},
        {"name": "Grades", "description": "Score recording and rosters"},
        {"name": "Comments", "description": "Course comments"},
        {"name": "Profile", "description": "Account profile and avatar"},
        {"name": "Dashboard", "description": "Site-wide counts"},
        {"name": "Administration", "description": "Staff-only account management"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a student account",
                "responses": {
                    "201": {"description": "Token pair for the fresh account", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate account",
                "responses": {
                    "200": {"description": "Token pair", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "responses": {
                    "200": {"description": "Token pair"},
                    "401": {"description": "Invalid refresh token"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout current session",
                "responses": {
                    "204": {"description": "Logged out"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current account",
                "responses": {
                    "200": {"description": "Account info"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Site-wide counts, personalized for signed-in students",
                "responses": {
                    "200": {"description": "Totals plus the caller's average when a student"}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses by role",
                "responses": {
                    "200": {"description": "Catalog"}
                }
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Add a course",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Duplicate course code"},
                    "403": {"description": "Teachers only"}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get one course with visible enrollments, comments and permission flags",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Course detail"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/courses/{id}/enroll": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Enroll in a course",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "201": {"description": "Enrollment"},
                    "403": {"description": "Students only"}
                }
            },
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Drop a course",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Dropped"}
                }
            }
        },
        "/enrollments": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List own enrollments",
                "responses": {
                    "200": {"description": "Enrollments with averages"}
                }
            }
        },
        "/courses/{id}/enrollments": {
            "get": {
                "tags": ["Grades"],
                "summary": "List course enrollments visible to the actor",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Enrollments"}
                }
            }
        },
        "/courses/{id}/grades": {
            "put": {
                "tags": ["Grades"],
                "summary": "Record scores for a course",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Update result"},
                    "403": {"description": "Not the course teacher"}
                }
            }
        },
        "/courses/{id}/grades/export": {
            "get": {
                "tags": ["Grades"],
                "summary": "Export a grade sheet (csv or pdf)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/courses/{id}/comments": {
            "get": {
                "tags": ["Comments"],
                "summary": "List course comments",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Comments"}
                }
            },
            "post": {
                "tags": ["Comments"],
                "summary": "Comment on a course",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/comments/{id}": {
            "put": {
                "tags": ["Comments"],
                "summary": "Edit a comment (author only)",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Updated"},
                    "403": {"description": "Not the author"}
                }
            }
        },
        "/profile": {
            "get": {
                "tags": ["Profile"],
                "summary": "Get own profile",
                "responses": {
                    "200": {"description": "Profile"}
                }
            },
            "put": {
                "tags": ["Profile"],
                "summary": "Update display name",
                "responses": {
                    "200": {"description": "Profile"}
                }
            }
        },
        "/students/{id}/avatar": {
            "get": {
                "tags": ["Profile"],
                "summary": "Resolve a student's avatar URL",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Avatar URL, default image when absent"}
                }
            }
        },
        "/profile/avatar": {
            "post": {
                "tags": ["Profile"],
                "summary": "Upload avatar",
                "responses": {
                    "200": {"description": "Profile"},
                    "400": {"description": "Unsupported image"}
                }
            }
        },
        "/admin/users/{id}/role": {
            "put": {
                "tags": ["Administration"],
                "summary": "Change an account role",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Updated"},
                    "403": {"description": "Staff only"}
                }
            }
        },
        "/admin/teachers": {
            "post": {
                "tags": ["Administration"],
                "summary": "Create a teacher account",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Staff only"}
                }
            }
        }
    },
    "definitions": {
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
