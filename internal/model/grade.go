package model

import "time"

// Grade represents one encoded subject grade in the `tblgrades` table.
// Grades are keyed to the student's email rather than scholar ID because
// the encoding form submits the session email along with each entry.
//
// Fields:
//  GradeID    – primary key identifier.
//  Email      – student email the grade belongs to.
//  Course     – course the subject belongs to.
//  Subject    – subject code or free-text subject name.
//  YearAndSem – school year and semester label (e.g. "2024-2025 1st Sem").
//  Grade      – numeric grade as encoded by the student.
//  AuditDate  – when the entry was recorded.
type Grade struct {
    GradeID    uint64    // tblgrades.gradeid
    Email      string    // tblgrades.email
    Course     string    // tblgrades.course
    Subject    string    // tblgrades.subject
    YearAndSem string    // tblgrades.yearandsem
    Grade      float64   // tblgrades.grade
    AuditDate  time.Time // tblgrades.auditdate
}
