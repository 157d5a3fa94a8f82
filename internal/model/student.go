package model

import "time"

// Student represents a scholar's profile as stored in the `tblstudent`
// table. The record is keyed by scholar ID but is looked up by email in
// the portal because the session identifies users by their email claim.
// Nullable columns map to pointer types so a missing value is reported
// as JSON null rather than a zero value.
//
// Fields:
//  ScholarID            – scholar number, shared with tblusers.
//  LastName/FirstName   – legal name; MiddleName may be null.
//  SchoolID             – reference into refschool.
//  Email                – contact and login email.
//  MobileNo             – contact number.
//  CourseCode/Course    – enrolled course; Course may be null for legacy rows.
//  CourseYear           – current year level (stored as text, e.g. "3rd Year").
//  GPA                  – latest grade point average, null until first encoding.
//  DateOfBirth          – birth date.
//  BatchNo              – scholarship batch number.
//  SchoolYear           – current school year label (e.g. "2024-2025").
//  EndOfScholarshipDate – expected end of the grant, null while active.
//  Status               – scholarship status label, null when unset.
type Student struct {
    ScholarID            uint64     // tblstudent.scholarid
    LastName             string     // tblstudent.lastname
    FirstName            string     // tblstudent.firstname
    MiddleName           *string    // tblstudent.middlename (nullable)
    SchoolID             string     // tblstudent.schoolid
    Email                string     // tblstudent.email
    MobileNo             string     // tblstudent.mobileno
    CourseCode           string     // tblstudent.coursecode
    CourseYear           string     // tblstudent.courseyear
    Course               *string    // tblstudent.course (nullable)
    GPA                  *float64   // tblstudent.gpa (nullable)
    DateOfBirth          time.Time  // tblstudent.dateofbirth
    BatchNo              string     // tblstudent.batchno
    SchoolYear           string     // tblstudent.schoolyear
    EndOfScholarshipDate *time.Time // tblstudent.endofscholarshipdate (nullable)
    Status               *string    // tblstudent.status (nullable)
}
