package domain

import "errors"

// ErrAccessDenied is the single denial value for every authorization failure.
// Wrong role and wrong owner are deliberately indistinguishable so that a
// probing client learns nothing about who owns a resource.
var ErrAccessDenied = errors.New("access denied")

// Capability is a role-level authorization predicate, suitable for wiring
// into per-route middleware. Ownership-aware predicates take the resource's
// ownership facts as extra arguments and run after the resource is loaded.
type Capability func(Identity) bool

// CanCreateAssignment reports whether id may publish new assignments.
func CanCreateAssignment(id Identity) bool {
	return id.Role == RoleTeacher
}

// CanViewOwnAssignments reports whether id may list assignments it created.
func CanViewOwnAssignments(id Identity) bool {
	return id.Role == RoleTeacher
}

// CanModifyAssignment reports whether id may edit or delete a. Requires the
// teacher role and ownership of the assignment.
func CanModifyAssignment(id Identity, a *Assignment) bool {
	return id.Role == RoleTeacher && a.CreatedBy == id.UserID
}

// CanViewAvailableAssignments reports whether id may browse assignments
// published for its own class level.
func CanViewAvailableAssignments(id Identity) bool {
	return id.Role == RoleStudent
}

// CanSubmitAssignment reports whether id may submit answers.
func CanSubmitAssignment(id Identity) bool {
	return id.Role == RoleStudent
}

// CanViewOwnSubmissions reports whether id may list its own submissions.
func CanViewOwnSubmissions(id Identity) bool {
	return id.Role == RoleStudent
}

// CanViewSubmissionsForAssignment reports whether id may list every
// submission made against a. Requires ownership of the assignment.
func CanViewSubmissionsForAssignment(id Identity, a *Assignment) bool {
	return id.Role == RoleTeacher && a.CreatedBy == id.UserID
}

// CanUpdateSubmissionStatus reports whether id may change a submission's
// status. Ownership follows the submission's parent assignment, so the
// caller passes that assignment here.
func CanUpdateSubmissionStatus(id Identity, parent *Assignment) bool {
	return id.Role == RoleTeacher && parent.CreatedBy == id.UserID
}
