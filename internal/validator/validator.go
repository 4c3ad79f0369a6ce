// Package validator collects field-level input errors and turns them into a
// common.ValidationError.
package validator

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/tasktracker/internal/common"
)

const (
	NameMinLen        = 2
	NameMaxLen        = 100
	EmailMaxLen       = 254
	PasswordMinLen    = 6
	PasswordMaxLen    = 72 // bcrypt ignores bytes past 72
	TitleMaxLen       = 200
	DescriptionMaxLen = 1000
)

var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$")

// Validator accumulates the first failure per field in check order.
type Validator struct {
	fields []common.FieldError
	seen   map[string]struct{}
}

func New() *Validator {
	return &Validator{seen: make(map[string]struct{})}
}

// Check records msg for field unless cond holds or field already failed.
func (v *Validator) Check(cond bool, field, msg string) {
	if cond {
		return
	}
	if _, ok := v.seen[field]; ok {
		return
	}
	v.seen[field] = struct{}{}
	v.fields = append(v.fields, common.FieldError{Field: field, Message: msg})
}

func (v *Validator) Valid() bool {
	return len(v.fields) == 0
}

// Err returns nil when no check failed.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return &common.ValidationError{Fields: v.fields}
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (v *Validator) CheckName(name string) {
	n := utf8.RuneCountInString(name)
	v.Check(n >= NameMinLen, "name", "Name must be at least 2 characters")
	v.Check(n <= NameMaxLen, "name", "Name must be at most 100 characters")
}

func (v *Validator) CheckEmail(email string) {
	v.Check(email != "", "email", "Email is required")
	v.Check(len(email) <= EmailMaxLen && emailRegexp.MatchString(email), "email", "Invalid email address")
	if _, err := mail.ParseAddress(email); err != nil {
		v.Check(false, "email", "Invalid email address")
	}
}

func (v *Validator) CheckPassword(password string) {
	v.Check(len(password) >= PasswordMinLen, "password", "Password must be at least 6 characters")
	v.Check(len(password) <= PasswordMaxLen, "password", "Password must be at most 72 characters")
}

func (v *Validator) CheckTitle(title string) {
	n := utf8.RuneCountInString(title)
	v.Check(n >= 1 && n <= TitleMaxLen, "title", "Title must be 1-200 characters")
}

func (v *Validator) CheckDescription(description string) {
	v.Check(utf8.RuneCountInString(description) <= DescriptionMaxLen, "description", "Description too long")
}

func (v *Validator) CheckStatus(status string) {
	v.Check(status == "pending" || status == "completed", "status", "Status must be pending or completed")
}
