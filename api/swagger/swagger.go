package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Exam Seating API",
        "description": "Examination seating, invigilation and attendance administration",
        "version": "0.1.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Student roster management"},
        {"name": "Rooms", "description": "Examination venues"},
        {"name": "Exams", "description": "Exam schedule"},
        {"name": "Faculty", "description": "Faculty and lab technician roster"},
        {"name": "Allocations", "description": "Seat and invigilator allocation"},
        {"name": "Attendance", "description": "Exam-hall attendance and malpractice"},
        {"name": "Notifications", "description": "Email notifications"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "semester", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "409": {"description": "Duplicate register number"}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student detail",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Deactivate student",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No content"}
                }
            }
        },
        "/students/import": {
            "post": {
                "tags": ["Students"],
                "summary": "Import student roster from a spreadsheet",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "Import summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List rooms",
                "parameters": [
                    {"name": "block", "in": "query", "type": "string"},
                    {"name": "type", "in": "query", "type": "string", "enum": ["classroom", "lab", "drawinghall"]},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Rooms"],
                "summary": "Create room",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RoomRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms/bulk": {
            "post": {
                "tags": ["Rooms"],
                "summary": "Create several rooms in one request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/RoomRequest"}}}
                ],
                "responses": {
                    "200": {"description": "Batch summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms/{id}": {
            "get": {
                "tags": ["Rooms"],
                "summary": "Get room detail",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Rooms"],
                "summary": "Update room",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RoomRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Rooms"],
                "summary": "Deactivate room",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No content"}
                }
            }
        },
        "/exams": {
            "get": {
                "tags": ["Exams"],
                "summary": "List scheduled exams",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "semester", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "time", "in": "query", "type": "string", "enum": ["FN", "AN"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Exams"],
                "summary": "Schedule an exam",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExamRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exams/bulk": {
            "post": {
                "tags": ["Exams"],
                "summary": "Schedule several exams in one request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/ExamRequest"}}}
                ],
                "responses": {
                    "200": {"description": "Batch summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exams/{id}": {
            "get": {
                "tags": ["Exams"],
                "summary": "Get exam detail",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Exams"],
                "summary": "Update a scheduled exam",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExamRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Exams"],
                "summary": "Remove a scheduled exam",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No content"}
                }
            }
        },
        "/faculty": {
            "get": {
                "tags": ["Faculty"],
                "summary": "List faculty members",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "designation", "in": "query", "type": "string", "enum": ["faculty", "lab technician"]},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Faculty"],
                "summary": "Create faculty member",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FacultyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/faculty/{id}": {
            "get": {
                "tags": ["Faculty"],
                "summary": "Get faculty member detail",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Faculty"],
                "summary": "Update faculty member",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FacultyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Faculty"],
                "summary": "Deactivate faculty member",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No content"}
                }
            }
        },
        "/allocations/availability": {
            "get": {
                "tags": ["Allocations"],
                "summary": "Room availability for a date and slot",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "time", "in": "query", "type": "string", "enum": ["FN", "AN"], "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/allocations/seats": {
            "get": {
                "tags": ["Allocations"],
                "summary": "List seat allocations",
                "parameters": [
                    {"name": "examId", "in": "query", "type": "string"},
                    {"name": "roomId", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "time", "in": "query", "type": "string", "enum": ["FN", "AN"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Allocations"],
                "summary": "Run seat allocation for an exam",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AllocateSeatsRequest"}}
                ],
                "responses": {
                    "200": {"description": "Allocation result", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Exam not found"},
                    "409": {"description": "Selected rooms cannot seat every eligible student"},
                    "412": {"description": "No eligible students or no usable rooms"}
                }
            }
        },
        "/allocations/seats/{examId}": {
            "delete": {
                "tags": ["Allocations"],
                "summary": "Clear seat allocations for an exam",
                "parameters": [
                    {"name": "examId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No content"}
                }
            }
        },
        "/allocations/seats/{examId}/export/xlsx": {
            "get": {
                "tags": ["Allocations"],
                "summary": "Download the seating plan as an XLSX workbook",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "examId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Workbook"}
                }
            }
        },
        "/allocations/seats/{examId}/export/csv": {
            "get": {
                "tags": ["Allocations"],
                "summary": "Download the seating plan as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "examId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/allocations/seats/{examId}/export/pdf": {
            "get": {
                "tags": ["Allocations"],
                "summary": "Download the printable seating chart as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "examId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF file"}
                }
            }
        },
        "/allocations/faculty": {
            "get": {
                "tags": ["Allocations"],
                "summary": "List invigilation duties",
                "parameters": [
                    {"name": "facultyId", "in": "query", "type": "string"},
                    {"name": "roomId", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "time", "in": "query", "type": "string", "enum": ["FN", "AN"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Allocations"],
                "summary": "Run invigilator allocation for a session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AllocateFacultyRequest"}}
                ],
                "responses": {
                    "200": {"description": "Duty roster", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "No seating plan for the session"}
                }
            },
            "delete": {
                "tags": ["Allocations"],
                "summary": "Clear invigilation duties for a session",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "time", "in": "query", "type": "string", "enum": ["FN", "AN"], "required": true}
                ],
                "responses": {
                    "204": {"description": "No content"}
                }
            }
        },
        "/allocations/faculty/duties": {
            "post": {
                "tags": ["Allocations"],
                "summary": "Assign one invigilation duty by hand",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignDutyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Faculty member not found"},
                    "409": {"description": "Faculty member already on duty in the session"}
                }
            }
        },
        "/allocations/faculty/duties/{id}": {
            "put": {
                "tags": ["Allocations"],
                "summary": "Move one invigilation duty to another room or role",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateDutyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Duty not found"}
                }
            },
            "delete": {
                "tags": ["Allocations"],
                "summary": "Remove one invigilation duty",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No content"},
                    "404": {"description": "Duty not found"}
                }
            }
        },
        "/allocations/faculty/export/csv": {
            "get": {
                "tags": ["Allocations"],
                "summary": "Download the duty roster as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "time", "in": "query", "type": "string", "enum": ["FN", "AN"], "required": true}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List attendance for a session or room",
                "parameters": [
                    {"name": "roomId", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "time", "in": "query", "type": "string", "enum": ["FN", "AN"]},
                    {"name": "status", "in": "query", "type": "string", "enum": ["not_marked", "present", "absent"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/mark": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark a student present or absent",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated record", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Seat allocation not found"}
                }
            }
        },
        "/attendance/malpractice": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Report malpractice against a seat",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReportMalpracticeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated record", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/invigilator/{facultyId}": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Marking sheet for one invigilator and session",
                "parameters": [
                    {"name": "facultyId", "in": "path", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "time", "in": "query", "type": "string", "enum": ["FN", "AN"], "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No duty assigned for this session"}
                }
            }
        },
        "/attendance/report/{facultyId}": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance records marked by one invigilator",
                "parameters": [
                    {"name": "facultyId", "in": "path", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "time", "in": "query", "type": "string", "enum": ["FN", "AN"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/summary": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance summary for a session",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "time", "in": "query", "type": "string", "enum": ["FN", "AN"], "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/students/{examId}": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Email seat assignments to students of an exam",
                "parameters": [
                    {"name": "examId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Delivery summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/faculty": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Email duty assignments to invigilators of a session",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "time", "in": "query", "type": "string", "enum": ["FN", "AN"], "required": true}
                ],
                "responses": {
                    "200": {"description": "Delivery summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/absentees": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Email absence notices for a session",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "time", "in": "query", "type": "string", "enum": ["FN", "AN"], "required": true}
                ],
                "responses": {
                    "200": {"description": "Delivery summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/malpractice": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Email malpractice notices for a session",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "time", "in": "query", "type": "string", "enum": ["FN", "AN"], "required": true}
                ],
                "responses": {
                    "200": {"description": "Delivery summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/counts": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Email attendance tallies to staff on duty in a session",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "time", "in": "query", "type": "string", "enum": ["FN", "AN"], "required": true}
                ],
                "responses": {
                    "200": {"description": "Delivery summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateStudentRequest": {
            "type": "object",
            "required": ["reg_no", "name", "department", "semester"],
            "properties": {
                "reg_no": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "department": {"type": "string"},
                "semester": {"type": "string"},
                "subject": {"type": "string"},
                "subject_code": {"type": "string"},
                "exam_date": {"type": "string"},
                "exam_type": {"type": "string", "enum": ["regular", "supply"]}
            }
        },
        "UpdateStudentRequest": {
            "type": "object",
            "required": ["reg_no", "name", "department", "semester"],
            "properties": {
                "reg_no": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "department": {"type": "string"},
                "semester": {"type": "string"},
                "subject": {"type": "string"},
                "subject_code": {"type": "string"},
                "exam_date": {"type": "string"},
                "exam_type": {"type": "string", "enum": ["regular", "supply"]},
                "active": {"type": "boolean"}
            }
        },
        "RoomRequest": {
            "type": "object",
            "required": ["room_no", "capacity", "room_type"],
            "properties": {
                "room_no": {"type": "string"},
                "block": {"type": "string"},
                "floor_no": {"type": "integer"},
                "capacity": {"type": "integer"},
                "room_type": {"type": "string", "enum": ["classroom", "lab", "drawinghall"]},
                "active": {"type": "boolean"}
            }
        },
        "ExamRequest": {
            "type": "object",
            "required": ["subject", "department", "semester", "date", "time"],
            "properties": {
                "subject": {"type": "string"},
                "subject_code": {"type": "string"},
                "department": {"type": "string"},
                "semester": {"type": "string"},
                "date": {"type": "string"},
                "time": {"type": "string", "enum": ["FN", "AN"]},
                "exam_type": {"type": "string", "enum": ["regular", "supply"]}
            }
        },
        "FacultyRequest": {
            "type": "object",
            "required": ["name", "email", "department", "designation"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "department": {"type": "string"},
                "designation": {"type": "string", "enum": ["faculty", "lab technician"]},
                "active": {"type": "boolean"}
            }
        },
        "AllocateSeatsRequest": {
            "type": "object",
            "required": ["exam_id"],
            "properties": {
                "exam_id": {"type": "string"},
                "room_ids": {"type": "array", "items": {"type": "string"}},
                "room_type": {"type": "string", "enum": ["classroom", "lab", "drawinghall"]},
                "expected_total": {"type": "integer"}
            }
        },
        "UpdateDutyRequest": {
            "type": "object",
            "required": ["room_id", "role"],
            "properties": {
                "room_id": {"type": "string"},
                "role": {"type": "string", "enum": ["invigilator", "chief_invigilator", "supervisor"]}
            }
        },
        "AssignDutyRequest": {
            "type": "object",
            "required": ["faculty_id", "room_id", "date", "time"],
            "properties": {
                "faculty_id": {"type": "string"},
                "room_id": {"type": "string"},
                "date": {"type": "string"},
                "time": {"type": "string", "enum": ["FN", "AN"]},
                "role": {"type": "string", "enum": ["invigilator", "chief_invigilator", "supervisor"]}
            }
        },
        "AllocateFacultyRequest": {
            "type": "object",
            "required": ["date", "time"],
            "properties": {
                "date": {"type": "string"},
                "time": {"type": "string", "enum": ["FN", "AN"]}
            }
        },
        "MarkAttendanceRequest": {
            "type": "object",
            "required": ["allocation_id", "status"],
            "properties": {
                "allocation_id": {"type": "string"},
                "status": {"type": "string", "enum": ["present", "absent"]}
            }
        },
        "ReportMalpracticeRequest": {
            "type": "object",
            "required": ["allocation_id", "note"],
            "properties": {
                "allocation_id": {"type": "string"},
                "note": {"type": "string"}
            }
        },
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
