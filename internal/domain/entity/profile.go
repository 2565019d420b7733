package entity

import "time"

// Profile holds a student's personal and academic details. Exactly one profile
// exists per identity, created at signup and keyed by the identity UID in the
// "users" collection. The record field names are the wire contract with the
// backend and must round-trip exactly.
type Profile struct {
	Email      string    // Login email, written once at signup.
	Name       string    // Display name, also used as the announcement author label.
	Department string    // e.g. "CSE".
	Year       string    // Academic year, kept as a string ("3").
	StudentID  string    // University-issued student number.
	CreatedAt  time.Time // When the profile record was written.
}

// Record converts the profile to its backend document representation.
func (p *Profile) Record() map[string]any {
	return map[string]any{
		"email":      p.Email,
		"name":       p.Name,
		"department": p.Department,
		"year":       p.Year,
		"studentId":  p.StudentID,
		"createdAt":  p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ProfileFromRecord rebuilds a profile from a backend document. Unknown fields
// are ignored; a missing or malformed createdAt leaves the zero time.
func ProfileFromRecord(record map[string]any) *Profile {
	profile := &Profile{
		Email:      stringField(record, "email"),
		Name:       stringField(record, "name"),
		Department: stringField(record, "department"),
		Year:       stringField(record, "year"),
		StudentID:  stringField(record, "studentId"),
	}
	if raw := stringField(record, "createdAt"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			profile.CreatedAt = ts
		}
	}

	return profile
}

// ProfileUpdate is a partial profile mutation. Nil fields are left untouched
// on both the remote record and the local copy (merge semantics, not replace).
type ProfileUpdate struct {
	Name       *string
	Department *string
	Year       *string
	StudentID  *string
}

// Record returns only the fields being changed, for a merge write.
func (u *ProfileUpdate) Record() map[string]any {
	record := make(map[string]any)
	if u.Name != nil {
		record["name"] = *u.Name
	}
	if u.Department != nil {
		record["department"] = *u.Department
	}
	if u.Year != nil {
		record["year"] = *u.Year
	}
	if u.StudentID != nil {
		record["studentId"] = *u.StudentID
	}

	return record
}

// Apply merges the update into a profile copy.
func (u *ProfileUpdate) Apply(profile *Profile) {
	if u.Name != nil {
		profile.Name = *u.Name
	}
	if u.Department != nil {
		profile.Department = *u.Department
	}
	if u.Year != nil {
		profile.Year = *u.Year
	}
	if u.StudentID != nil {
		profile.StudentID = *u.StudentID
	}
}

func stringField(record map[string]any, key string) string {
	value, _ := record[key].(string)

	return value
}
