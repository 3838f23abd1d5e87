// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/edukit/coursehub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles known to the platform.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// UserCtx returns the caller's role (lowercased), name, Mongo ObjectID,
// and a found flag. If no principal is present or the user id is
// malformed, it returns "visitor", "", NilObjectID, false; ok=true
// always means a valid, authenticated caller with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	p, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		// Malformed id from the gateway - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(p.Role), p.Name, userID, true
}

// IsAdmin reports whether the current request's caller is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == RoleAdmin
}

// IsTeacher reports whether the current request's caller is a teacher.
func IsTeacher(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == RoleTeacher
}

// IsStudent reports whether the current request's caller is a student.
func IsStudent(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == RoleStudent
}
