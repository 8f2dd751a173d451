package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {"title": "Research Admin Gateway", "description": "Backend-for-frontend for postgraduate research administration", "version": "1.0.0"},
    "basePath": "/api/v1",
    "schemes": ["http"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "tags": [
        {"name": "Students", "description": "Student records"},
        {"name": "Catalog", "description": "Campuses, schools, departments and courses"},
        {"name": "Faculty", "description": "Supervisors, reviewers and examiners"},
        {"name": "Proposals", "description": "Proposal grade management"},
        {"name": "Books", "description": "Book grade management"},
        {"name": "Results", "description": "Final results submission"},
        {"name": "Preferences", "description": "Per-user table preferences"}
    ],
    "paths": {
        "/students": {
            "get": {"tags": ["Students"], "summary": "List students", "parameters": [{"name": "search", "in": "query", "type": "string", "required": false}, {"name": "page", "in": "query", "type": "integer", "required": false}, {"name": "limit", "in": "query", "type": "integer", "required": false}, {"name": "sort", "in": "query", "type": "string", "required": false}, {"name": "order", "in": "query", "type": "string", "required": false}, {"name": "refresh", "in": "query", "type": "boolean", "required": false}, {"name": "schoolId", "in": "query", "type": "string", "required": false}, {"name": "campusId", "in": "query", "type": "string", "required": false}, {"name": "status", "in": "query", "type": "string", "required": false}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Students"], "summary": "Create student", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.StudentRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/students/{id}": {
            "get": {"tags": ["Students"], "summary": "Get student detail", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Students"], "summary": "Update student", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.StudentRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Students"], "summary": "Delete student", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/students/{id}/status": {
            "put": {"tags": ["Students"], "summary": "Append a status record to a student", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.StatusUpdateRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/students/{id}/supervisors": {
            "post": {"tags": ["Students"], "summary": "Assign a supervisor", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AssignSupervisorRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/campuses": {
            "get": {"tags": ["Catalog"], "summary": "List campuses", "parameters": [{"name": "search", "in": "query", "type": "string", "required": false}, {"name": "page", "in": "query", "type": "integer", "required": false}, {"name": "limit", "in": "query", "type": "integer", "required": false}, {"name": "sort", "in": "query", "type": "string", "required": false}, {"name": "order", "in": "query", "type": "string", "required": false}, {"name": "refresh", "in": "query", "type": "boolean", "required": false}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Catalog"], "summary": "Create campus", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CampusRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/campuses/{id}": {
            "put": {"tags": ["Catalog"], "summary": "Update campus", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CampusRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Catalog"], "summary": "Delete campus", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/schools": {
            "get": {"tags": ["Catalog"], "summary": "List schools", "parameters": [{"name": "search", "in": "query", "type": "string", "required": false}, {"name": "page", "in": "query", "type": "integer", "required": false}, {"name": "limit", "in": "query", "type": "integer", "required": false}, {"name": "sort", "in": "query", "type": "string", "required": false}, {"name": "order", "in": "query", "type": "string", "required": false}, {"name": "refresh", "in": "query", "type": "boolean", "required": false}, {"name": "campusId", "in": "query", "type": "string", "required": false}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Catalog"], "summary": "Create school", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SchoolRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/schools/{id}": {
            "put": {"tags": ["Catalog"], "summary": "Update school", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SchoolRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Catalog"], "summary": "Delete school", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/departments": {
            "get": {"tags": ["Catalog"], "summary": "List departments", "parameters": [{"name": "search", "in": "query", "type": "string", "required": false}, {"name": "page", "in": "query", "type": "integer", "required": false}, {"name": "limit", "in": "query", "type": "integer", "required": false}, {"name": "sort", "in": "query", "type": "string", "required": false}, {"name": "order", "in": "query", "type": "string", "required": false}, {"name": "refresh", "in": "query", "type": "boolean", "required": false}, {"name": "schoolId", "in": "query", "type": "string", "required": false}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Catalog"], "summary": "Create department", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.DepartmentRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/departments/{id}": {
            "put": {"tags": ["Catalog"], "summary": "Update department", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.DepartmentRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Catalog"], "summary": "Delete department", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/courses": {
            "get": {"tags": ["Catalog"], "summary": "List courses", "parameters": [{"name": "search", "in": "query", "type": "string", "required": false}, {"name": "page", "in": "query", "type": "integer", "required": false}, {"name": "limit", "in": "query", "type": "integer", "required": false}, {"name": "sort", "in": "query", "type": "string", "required": false}, {"name": "order", "in": "query", "type": "string", "required": false}, {"name": "refresh", "in": "query", "type": "boolean", "required": false}, {"name": "schoolId", "in": "query", "type": "string", "required": false}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Catalog"], "summary": "Create course", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CourseRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/courses/{id}": {
            "put": {"tags": ["Catalog"], "summary": "Update course", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CourseRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Catalog"], "summary": "Delete course", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/faculty": {
            "get": {"tags": ["Faculty"], "summary": "List faculty", "parameters": [{"name": "search", "in": "query", "type": "string", "required": false}, {"name": "page", "in": "query", "type": "integer", "required": false}, {"name": "limit", "in": "query", "type": "integer", "required": false}, {"name": "sort", "in": "query", "type": "string", "required": false}, {"name": "order", "in": "query", "type": "string", "required": false}, {"name": "refresh", "in": "query", "type": "boolean", "required": false}, {"name": "role", "in": "query", "type": "string", "required": false}, {"name": "schoolId", "in": "query", "type": "string", "required": false}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Faculty"], "summary": "Create faculty member", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.FacultyRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/faculty/{id}": {
            "put": {"tags": ["Faculty"], "summary": "Update faculty member", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.FacultyRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Faculty"], "summary": "Delete faculty member", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/proposals": {
            "get": {"tags": ["Proposals"], "summary": "Proposal grade management", "parameters": [{"name": "search", "in": "query", "type": "string", "required": false}, {"name": "page", "in": "query", "type": "integer", "required": false}, {"name": "limit", "in": "query", "type": "integer", "required": false}, {"name": "sort", "in": "query", "type": "string", "required": false}, {"name": "order", "in": "query", "type": "string", "required": false}, {"name": "refresh", "in": "query", "type": "boolean", "required": false}, {"name": "tab", "in": "query", "type": "string", "required": false}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/proposals/{id}": {
            "get": {"tags": ["Proposals"], "summary": "Get proposal", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/proposals/{id}/status": {
            "put": {"tags": ["Proposals"], "summary": "Append a proposal status", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.StatusUpdateRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/proposals/{id}/reviewers": {
            "post": {"tags": ["Proposals"], "summary": "Assign reviewer", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AssignReviewerRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/proposals/{id}/reviewers/{reviewerId}": {
            "delete": {"tags": ["Proposals"], "summary": "Remove reviewer", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "reviewerId", "in": "path", "type": "string", "required": true}], "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/proposals/{id}/reviewers/{reviewerId}/mark": {
            "put": {"tags": ["Proposals"], "summary": "Submit reviewer mark", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "reviewerId", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ReviewerMarkRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/proposals/{id}/defenses": {
            "post": {"tags": ["Proposals"], "summary": "Schedule defense", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ScheduleDefenseRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/defenses/{id}/verdict": {
            "put": {"tags": ["Proposals"], "summary": "Record defense verdict", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.DefenseVerdictRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/books": {
            "get": {"tags": ["Books"], "summary": "Book grade management", "parameters": [{"name": "search", "in": "query", "type": "string", "required": false}, {"name": "page", "in": "query", "type": "integer", "required": false}, {"name": "limit", "in": "query", "type": "integer", "required": false}, {"name": "sort", "in": "query", "type": "string", "required": false}, {"name": "order", "in": "query", "type": "string", "required": false}, {"name": "refresh", "in": "query", "type": "boolean", "required": false}, {"name": "tab", "in": "query", "type": "string", "required": false}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/books/{id}": {
            "get": {"tags": ["Books"], "summary": "Get book", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/books/{id}/status": {
            "put": {"tags": ["Books"], "summary": "Append a book status", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.StatusUpdateRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/books/{id}/examiners": {
            "post": {"tags": ["Books"], "summary": "Assign examiner", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AssignExaminerRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/books/{id}/examiners/{examinerId}": {
            "delete": {"tags": ["Books"], "summary": "Remove examiner", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "examinerId", "in": "path", "type": "string", "required": true}], "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/books/{id}/examiners/{examinerId}/mark": {
            "put": {"tags": ["Books"], "summary": "Submit examiner mark", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "examinerId", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ExaminerMarkRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/books/{id}/vivas": {
            "post": {"tags": ["Books"], "summary": "Schedule viva", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ScheduleVivaRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/vivas/{id}/result": {
            "put": {"tags": ["Books"], "summary": "Record viva result", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.VivaResultRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/books/{id}/submission": {
            "post": {"tags": ["Books"], "summary": "Upload book submission", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "file", "in": "formData", "type": "file", "required": false}, {"name": "notes", "in": "formData", "type": "string", "required": false}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/books/{id}/report": {
            "post": {"tags": ["Books"], "summary": "Upload examination report", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "file", "in": "formData", "type": "file", "required": false}, {"name": "notes", "in": "formData", "type": "string", "required": false}], "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/results": {
            "get": {"tags": ["Results"], "summary": "Final results board", "parameters": [{"name": "search", "in": "query", "type": "string", "required": false}, {"name": "page", "in": "query", "type": "integer", "required": false}, {"name": "limit", "in": "query", "type": "integer", "required": false}, {"name": "sort", "in": "query", "type": "string", "required": false}, {"name": "order", "in": "query", "type": "string", "required": false}, {"name": "refresh", "in": "query", "type": "boolean", "required": false}, {"name": "tab", "in": "query", "type": "string", "required": false}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/results/actions/{action}": {
            "post": {"tags": ["Results"], "summary": "Apply a bulk results action", "parameters": [{"name": "action", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ResultsActionRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "207": {"description": "Some items failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "Every item failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Action not allowed in current stage", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/results/export": {
            "post": {"tags": ["Results"], "summary": "Export one stage of the results board", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ExportRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/results/download/{token}": {
            "get": {"tags": ["Results"], "summary": "Download an exported results file", "parameters": [{"name": "token", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "produces": ["text/csv", "application/pdf"]}
        },
        "/results/runs": {
            "get": {"tags": ["Results"], "summary": "Recent bulk actions", "parameters": [{"name": "limit", "in": "query", "type": "integer", "required": false}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/results/runs/{id}/items": {
            "get": {"tags": ["Results"], "summary": "Per-book outcomes of a bulk action", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/preferences": {
            "get": {"tags": ["Preferences"], "summary": "Every table preference of the caller", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/preferences/{table}": {
            "get": {"tags": ["Preferences"], "summary": "One table's preferences", "parameters": [{"name": "table", "in": "path", "type": "string", "required": true}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Preferences"], "summary": "Merge table preferences", "parameters": [{"name": "table", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdatePreferencesRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/session/logout": {
            "post": {"tags": ["Session"], "summary": "Clear the caller's cached data and preferences", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/metrics/summary": {
            "get": {"tags": ["Observability"], "summary": "Gateway metrics summary", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        }
    },
    "definitions": {
        "dto.StudentRequest": {"type": "object", "properties": {"registrationNumber": {"type": "string"}, "firstName": {"type": "string"}, "lastName": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}, "gender": {"type": "string", "enum": ["male", "female"]}, "programLevel": {"type": "string", "enum": ["masters", "doctorate"]}, "intakePeriod": {"type": "string"}, "courseId": {"type": "string"}, "schoolId": {"type": "string"}, "campusId": {"type": "string"}, "departmentId": {"type": "string"}}, "required": ["registrationNumber", "firstName", "lastName", "email", "courseId", "schoolId", "campusId"]},
        "dto.StatusUpdateRequest": {"type": "object", "properties": {"statusDefinitionId": {"type": "string"}, "startDate": {"type": "string", "format": "date-time"}, "notes": {"type": "string"}}, "required": ["statusDefinitionId"]},
        "dto.AssignSupervisorRequest": {"type": "object", "properties": {"supervisorId": {"type": "string"}}, "required": ["supervisorId"]},
        "dto.CampusRequest": {"type": "object", "properties": {"code": {"type": "string"}, "name": {"type": "string"}, "location": {"type": "string"}}, "required": ["code", "name"]},
        "dto.SchoolRequest": {"type": "object", "properties": {"code": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}, "campusId": {"type": "string"}}, "required": ["code", "name", "campusId"]},
        "dto.DepartmentRequest": {"type": "object", "properties": {"code": {"type": "string"}, "name": {"type": "string"}, "schoolId": {"type": "string"}}, "required": ["code", "name", "schoolId"]},
        "dto.CourseRequest": {"type": "object", "properties": {"code": {"type": "string"}, "name": {"type": "string"}, "level": {"type": "string", "enum": ["masters", "doctorate"]}, "schoolId": {"type": "string"}, "campusId": {"type": "string"}}, "required": ["code", "name", "schoolId", "campusId"]},
        "dto.FacultyRequest": {"type": "object", "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string", "enum": ["faculty", "supervisor"]}, "designation": {"type": "string"}, "schoolId": {"type": "string"}, "campusId": {"type": "string"}}, "required": ["name", "email", "role"]},
        "dto.AssignReviewerRequest": {"type": "object", "properties": {"reviewerId": {"type": "string"}}, "required": ["reviewerId"]},
        "dto.ReviewerMarkRequest": {"type": "object", "properties": {"grade": {"type": "number", "minimum": 0, "maximum": 100}, "feedback": {"type": "string"}}, "required": ["grade"]},
        "dto.ScheduleDefenseRequest": {"type": "object", "properties": {"scheduledDate": {"type": "string", "format": "date-time"}, "panelistIds": {"type": "array", "items": {"type": "string"}}, "venue": {"type": "string"}}, "required": ["scheduledDate", "panelistIds"]},
        "dto.DefenseVerdictRequest": {"type": "object", "properties": {"verdict": {"type": "string", "enum": ["passed", "passed with corrections", "failed"]}, "comments": {"type": "string"}}, "required": ["verdict"]},
        "dto.AssignExaminerRequest": {"type": "object", "properties": {"examinerId": {"type": "string"}, "type": {"type": "string", "enum": ["Internal", "External"]}}, "required": ["examinerId", "type"]},
        "dto.ExaminerMarkRequest": {"type": "object", "properties": {"grade": {"type": "number", "minimum": 0, "maximum": 100}, "comments": {"type": "string"}}, "required": ["grade"]},
        "dto.ScheduleVivaRequest": {"type": "object", "properties": {"scheduledDate": {"type": "string", "format": "date-time"}, "panelistIds": {"type": "array", "items": {"type": "string"}}, "venue": {"type": "string"}}, "required": ["scheduledDate", "panelistIds"]},
        "dto.VivaMarkInput": {"type": "object", "properties": {"examinerId": {"type": "string"}, "type": {"type": "string", "enum": ["Internal", "External"]}, "mark": {"type": "number", "minimum": 0, "maximum": 100}}, "required": ["examinerId", "type", "mark"]},
        "dto.VivaResultRequest": {"type": "object", "properties": {"status": {"type": "string", "enum": ["completed", "postponed", "cancelled"]}, "verdict": {"type": "string"}, "marks": {"type": "array", "items": {"$ref": "#/definitions/dto.VivaMarkInput"}}}, "required": ["status"]},
        "dto.ResultsActionRequest": {"type": "object", "properties": {"bookIds": {"type": "array", "items": {"type": "string"}}}, "required": ["bookIds"]},
        "dto.ExportRequest": {"type": "object", "properties": {"stage": {"type": "string", "enum": ["pending_approval", "approved_at_centre", "sent_to_school", "senate_approved"]}, "format": {"type": "string", "enum": ["csv", "pdf"]}, "search": {"type": "string"}}, "required": ["stage", "format"]},
        "dto.UpdatePreferencesRequest": {"type": "object", "properties": {"pageSize": {"type": "integer", "minimum": 1, "maximum": 200}, "page": {"type": "integer", "minimum": 1}, "tab": {"type": "string"}}},
        "Pagination": {"type": "object", "properties": {"page": {"type": "integer"}, "page_size": {"type": "integer"}, "total_count": {"type": "integer"}, "total_pages": {"type": "integer"}, "from": {"type": "integer"}, "to": {"type": "integer"}, "has_prev": {"type": "boolean"}, "has_next": {"type": "boolean"}}},
        "APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}}},
        "ResponseEnvelope": {"type": "object", "properties": {"data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}, "pagination": {"$ref": "#/definitions/Pagination"}, "meta": {"type": "object"}}}
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
