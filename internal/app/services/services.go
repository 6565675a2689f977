package services

// Services defined in this package:
// - AuthService: Handles login and token issuance
// - AccountService: Creates user+student accounts atomically
// - StudentService: Handles student record operations
// - CourseService: Handles course operations
// - AttendanceService: Handles attendance records
// - MarksService: Handles assessment results
// - RiskService: Aggregates metrics and drives the external classifier
// - BulkImportService: CSV ingest with per-row validation and upserts
// - BulkExportService: flattened CSV export of attendance and marks
