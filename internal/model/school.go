package model

// School represents a partner school row from the `refschool` reference
// table. Schools are identified by a string ID assigned by the foundation.
type School struct {
    SchoolID   string // refschool.schoolid
    SchoolName string // refschool.schoolname
    Campus     string // refschool.campus
}

// Subject represents one row of the `refschoolmasterfile` reference table,
// mapping a school and course to an offered subject.
type Subject struct {
    SchoolID           string // refschoolmasterfile.schoolid
    SchoolName         string // refschoolmasterfile.schoolname
    Course             string // refschoolmasterfile.course
    SubjectCode        string // refschoolmasterfile.subjectcode
    SubjectDescription string // refschoolmasterfile.subjectdescription
}
