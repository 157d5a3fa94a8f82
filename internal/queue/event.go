package queue

// UserRegisteredEvent is published when a new account is created through
// the registration endpoint. It carries enough information for downstream
// consumers to audit-log or notify without querying the primary database.
// The password is never part of the event.
type UserRegisteredEvent struct {
    ScholarID    uint64 `json:"scholar_id"`
    Email        string `json:"email"`
    Role         string `json:"role"`
    RegisteredAt string `json:"registered_at"`
}
