// Package authz holds the permission table for every write endpoint and the
// single function that evaluates it.
package authz

import (
	"unionhub/internal/microservices/http-api/models"
	"unionhub/internal/pkg/apperrors"
)

type Resource string

type Action string

const (
	Category     Resource = "category"
	Hashtag      Resource = "hashtag"
	Announcement Resource = "announcement"
	Comment      Resource = "comment"
	Like         Resource = "like"
	College      Resource = "college"
	Department   Resource = "department"
	Leader       Resource = "leader"
	Activity     Resource = "activity"
	Notification Resource = "notification"
	Profile      Resource = "profile"
)

const (
	Read   Action = "read"
	List   Action = "list"
	Create Action = "create"
	Update Action = "update"
	Delete Action = "delete"
	Pin    Action = "pin"
	Toggle Action = "toggle"
)

// Subject is the caller. A zero Subject is anonymous.
type Subject struct {
	UserID string
	Role   string
}

func (s Subject) Authenticated() bool { return s.UserID != "" }

func (s Subject) IsAdmin() bool { return s.Authenticated() && s.Role == models.RoleAdmin }

// Predicate decides an authenticated subject's access given the owner of the target
// row ("" when the action has no owner).
type Predicate func(s Subject, ownerID string) bool

type Rule struct {
	// Anonymous lets unauthenticated callers through.
	Anonymous bool
	// Owned rules need the target's owner id and can only be fully checked by services.
	Owned bool
	Allow Predicate
}

type key struct {
	res Resource
	act Action
}

func anyone(Subject, string) bool { return true }
func authenticated(s Subject, _ string) bool { return s.Authenticated() }
func admin(s Subject, _ string) bool { return s.IsAdmin() }
func self(s Subject, ownerID string) bool { return ownerID != "" && s.UserID == ownerID }

func ownerOrAdmin(s Subject, ownerID string) bool {
	return s.IsAdmin() || self(s, ownerID)
}

var (
	adminOnly = Rule{Allow: admin}
	loggedIn  = Rule{Allow: authenticated}
	ownedBy   = Rule{Owned: true, Allow: ownerOrAdmin}
	ownOnly   = Rule{Owned: true, Allow: self}
)

// policy is the permission table. Reads are public unless listed here.
var policy = map[key]Rule{
	{Category, Create}: adminOnly,
	{Category, Update}: adminOnly,
	{Category, Delete}: adminOnly,

	{Announcement, Create}: loggedIn,
	{Announcement, Update}: ownedBy,
	{Announcement, Delete}: ownedBy,
	{Announcement, Pin}:    adminOnly,

	{Comment, Create}: loggedIn,
	{Comment, Update}: ownedBy,
	{Comment, Delete}: ownedBy,

	{Like, Toggle}: loggedIn,

	{College, Create}:    adminOnly,
	{College, Update}:    adminOnly,
	{College, Delete}:    adminOnly,
	{Department, Create}: adminOnly,
	{Department, Update}: adminOnly,
	{Department, Delete}: adminOnly,
	{Leader, Create}:     adminOnly,
	{Leader, Update}:     adminOnly,
	{Leader, Delete}:     adminOnly,

	{Activity, List}:       loggedIn,
	{Activity, Create}:     loggedIn,
	{Notification, List}:   loggedIn,
	{Notification, Update}: ownOnly,
	{Profile, Read}:        loggedIn,
	{Profile, Update}:      loggedIn,
}

var publicRead = Rule{Anonymous: true, Allow: anyone}

// Lookup returns the rule for (res, act). Unlisted reads are public; any other
// unlisted pair is denied.
func Lookup(res Resource, act Action) (Rule, bool) {
	if r, ok := policy[key{res, act}]; ok {
		return r, true
	}
	if act == Read || act == List {
		return publicRead, true
	}
	return Rule{}, false
}

// Authorize evaluates the table. Anonymous callers on a protected rule get
// UNAUTHENTICATED; authenticated callers failing the predicate get PERMISSION_DENIED.
func Authorize(s Subject, res Resource, act Action, ownerID string) error {
	rule, ok := Lookup(res, act)
	if !ok {
		return apperrors.Forbidden("You do not have permission to perform this action.")
	}
	if !rule.Anonymous && !s.Authenticated() {
		return apperrors.Unauthenticated("Authentication credentials were not provided.")
	}
	if !rule.Allow(s, ownerID) {
		return apperrors.Forbidden("You do not have permission to perform this action.")
	}
	return nil
}

// AuthorizeRole checks the part of a rule that does not depend on a row owner.
// For owned rules that is authentication only.
func AuthorizeRole(s Subject, res Resource, act Action) error {
	rule, ok := Lookup(res, act)
	if ok && rule.Owned {
		if !s.Authenticated() {
			return apperrors.Unauthenticated("Authentication credentials were not provided.")
		}
		return nil
	}
	return Authorize(s, res, act, "")
}
