package model

import "time"

// Role values stored in the `tblusers.role` column. An empty column
// defaults to RoleUser when a token is issued; other values pass
// through untouched.
const (
    RoleAdmin = "Admin"
    RoleUser  = "User"
)

// User represents an account record as stored in the `tblusers` table.
// Each field corresponds to a column in the database. The json tags are
// omitted here because these structs are primarily used internally by the
// repository layer; handlers define separate response types with
// appropriate JSON tags.
//
// Fields:
//  ScholarID    – primary key identifier of the account (scholar number).
//  Username     – display name shown in the portal header.
//  Email        – unique email address, the login identifier.
//  PasswordHash – bcrypt hashed password. The plain credential is never stored.
//  Role         – access level, RoleAdmin or RoleUser.
//  AuditDate    – timestamp of creation / last audit.
type User struct {
    ScholarID    uint64    // tblusers.scholarid
    Username     string    // tblusers.username
    Email        string    // tblusers.email
    PasswordHash string    // tblusers.password_hash
    Role         string    // tblusers.role
    AuditDate    time.Time // tblusers.auditdate
}

// DefaultRole fills in RoleUser for rows with an empty role column so
// legacy accounts still authenticate as regular users. Non-empty values
// are passed through unchanged; routing decides what to do with values
// outside the recognized set.
func DefaultRole(role string) string {
    if role == "" {
        return RoleUser
    }
    return role
}
