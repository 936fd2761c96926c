package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Enrollment API",
        "description": "Section enrollment, waitlists and registrar administration",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Students",
            "description": "Self-service enrollment and waitlists"
        },
        {
            "name": "Instructors",
            "description": "Rosters, drop history and administrative drops"
        },
        {
            "name": "Registrar",
            "description": "Section lifecycle"
        },
        {
            "name": "Catalog",
            "description": "Unscoped listings"
        },
        {
            "name": "Observability",
            "description": "Instrumentation"
        }
    ],
    "paths": {
        "/all_classes": {
            "get": {
                "tags": [
                    "Catalog"
                ],
                "summary": "List every section",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/instructor/drop_student/student/{student_id}/class/{class_code}/section/{section_number}": {
            "delete": {
                "tags": [
                    "Instructors"
                ],
                "summary": "Administratively drop a student from a section",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Student ID"
                    },
                    {
                        "name": "class_code",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Class code"
                    },
                    {
                        "name": "section_number",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Section number"
                    }
                ]
            }
        },
        "/instructor/dropped/instructor/{instructor_id}/class/{class_code}/section/{section_number}": {
            "get": {
                "tags": [
                    "Instructors"
                ],
                "summary": "List students dropped from a section",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "instructor_id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Instructor ID"
                    },
                    {
                        "name": "class_code",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Class code"
                    },
                    {
                        "name": "section_number",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Section number"
                    }
                ]
            }
        },
        "/instructor/enrollment/instructor/{instructor_id}": {
            "get": {
                "tags": [
                    "Instructors"
                ],
                "summary": "List students enrolled in the instructor's sections",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "instructor_id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Instructor ID"
                    }
                ]
            }
        },
        "/instructor/enrollment/instructor/{instructor_id}/export": {
            "get": {
                "tags": [
                    "Instructors"
                ],
                "summary": "Download the instructor roster",
                "produces": [
                    "text/csv",
                    "application/pdf"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "instructor_id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Instructor ID"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "csv",
                            "pdf"
                        ],
                        "default": "csv",
                        "description": "csv or pdf"
                    }
                ]
            }
        },
        "/instructor/waitlist_for_class/instructor/{instructor_id}/class/{class_code}/section/{section_number}": {
            "get": {
                "tags": [
                    "Instructors"
                ],
                "summary": "List a section's waitlist in join order",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "instructor_id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Instructor ID"
                    },
                    {
                        "name": "class_code",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Class code"
                    },
                    {
                        "name": "section_number",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Section number"
                    }
                ]
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": [
                    "Observability"
                ],
                "summary": "Instrumentation counters as JSON",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/registrar/change_instructor/class/{class_code}/section/{section_number}/new_instructor/{instructor_id}": {
            "put": {
                "tags": [
                    "Registrar"
                ],
                "summary": "Reassign a section to another instructor",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "class_code",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Class code"
                    },
                    {
                        "name": "section_number",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Section number"
                    },
                    {
                        "name": "instructor_id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "New instructor ID"
                    }
                ]
            }
        },
        "/registrar/freeze_enrollment/class/{class_code}/section/{section_number}": {
            "put": {
                "tags": [
                    "Registrar"
                ],
                "summary": "Turn off automatic enrollment for a section",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "class_code",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Class code"
                    },
                    {
                        "name": "section_number",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Section number"
                    }
                ]
            }
        },
        "/registrar/new_class": {
            "post": {
                "tags": [
                    "Registrar"
                ],
                "summary": "Create a section",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateSectionRequest"
                        }
                    }
                ]
            }
        },
        "/registrar/remove_class/code/{class_code}/section/{section_number}": {
            "delete": {
                "tags": [
                    "Registrar"
                ],
                "summary": "Remove a section with its enrollments, waitlist and drop history",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "class_code",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Class code"
                    },
                    {
                        "name": "section_number",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Section number"
                    }
                ]
            }
        },
        "/student/available_classes": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "List sections with open seats",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/student/drop_class/student/{student_id}/class/{class_code}/section/{section_number}": {
            "delete": {
                "tags": [
                    "Students"
                ],
                "summary": "Drop an enrolled section",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Student ID"
                    },
                    {
                        "name": "class_code",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Class code"
                    },
                    {
                        "name": "section_number",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Section number"
                    }
                ]
            }
        },
        "/student/enroll_in_class/student/{student_id}/class/{class_code}/section/{section_number}": {
            "post": {
                "tags": [
                    "Students"
                ],
                "summary": "Enroll in a section or join its waitlist when full",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Student ID"
                    },
                    {
                        "name": "class_code",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Class code"
                    },
                    {
                        "name": "section_number",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Section number"
                    }
                ]
            }
        },
        "/student/remove_from_waitlist/student/{student_id}/class/{class_code}/section/{section_number}": {
            "delete": {
                "tags": [
                    "Students"
                ],
                "summary": "Leave a section waitlist",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Student ID"
                    },
                    {
                        "name": "class_code",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Class code"
                    },
                    {
                        "name": "section_number",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Section number"
                    }
                ]
            }
        },
        "/student/waitlist_position/student/{student_id}/class/{class_code}/section/{section_number}": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "Show the student's position on a section waitlist",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Student ID"
                    },
                    {
                        "name": "class_code",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Class code"
                    },
                    {
                        "name": "section_number",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Section number"
                    }
                ]
            }
        },
        "/student_details/{student_id}": {
            "get": {
                "tags": [
                    "Catalog"
                ],
                "summary": "Get a student",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Student ID"
                    }
                ]
            }
        },
        "/student_enrollment/{student_id}": {
            "get": {
                "tags": [
                    "Catalog"
                ],
                "summary": "List a student's enrollments",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Student ID"
                    }
                ]
            }
        },
        "/waitlist": {
            "get": {
                "tags": [
                    "Catalog"
                ],
                "summary": "List every waitlist entry in join order",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "CreateSectionRequest": {
            "type": "object",
            "required": [
                "class_code",
                "section_number",
                "class_name",
                "department",
                "c_instructor_id"
            ],
            "properties": {
                "class_code": {
                    "type": "string"
                },
                "section_number": {
                    "type": "string"
                },
                "class_name": {
                    "type": "string"
                },
                "department": {
                    "type": "string"
                },
                "auto_enrollment": {
                    "type": "boolean"
                },
                "max_enrollment": {
                    "type": "integer"
                },
                "current_enrollment": {
                    "type": "integer"
                },
                "max_waitlist": {
                    "type": "integer"
                },
                "current_waitlist": {
                    "type": "integer"
                },
                "c_instructor_id": {
                    "type": "string"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
                }
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
