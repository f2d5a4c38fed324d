package authz

import (
	"testing"

	"unionhub/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

var (
	anon  = Subject{}
	alice = Subject{UserID: "alice", Role: "user"}
	bob   = Subject{UserID: "bob", Role: "user"}
	root  = Subject{UserID: "root", Role: "admin"}
)

func TestAuthorize_Table(t *testing.T) {
	tests := []struct {
		name    string
		subject Subject
		res     Resource
		act     Action
		owner   string
		want    apperrors.Code // "" means allowed
	}{
		{"anyone reads announcements", anon, Announcement, Read, "", ""},
		{"anyone lists leaders", anon, Leader, List, "", ""},
		{"anonymous create announcement", anon, Announcement, Create, "", apperrors.CodeUnauthenticated},
		{"user creates announcement", alice, Announcement, Create, "", ""},
		{"author updates own announcement", alice, Announcement, Update, "alice", ""},
		{"other user updates announcement", bob, Announcement, Update, "alice", apperrors.CodePermissionDenied},
		{"admin updates any announcement", root, Announcement, Update, "alice", ""},
		{"anonymous deletes announcement", anon, Announcement, Delete, "alice", apperrors.CodeUnauthenticated},
		{"user pins", alice, Announcement, Pin, "alice", apperrors.CodePermissionDenied},
		{"admin pins", root, Announcement, Pin, "", ""},
		{"user creates category", alice, Category, Create, "", apperrors.CodePermissionDenied},
		{"admin deletes category", root, Category, Delete, "", ""},
		{"anonymous toggles like", anon, Like, Toggle, "", apperrors.CodeUnauthenticated},
		{"user toggles like", bob, Like, Toggle, "", ""},
		{"comment author edits", bob, Comment, Update, "bob", ""},
		{"comment other edits", alice, Comment, Delete, "bob", apperrors.CodePermissionDenied},
		{"user creates college", alice, College, Create, "", apperrors.CodePermissionDenied},
		{"admin updates leader", root, Leader, Update, "", ""},
		{"own notification", alice, Notification, Update, "alice", ""},
		{"someone else's notification", alice, Notification, Update, "bob", apperrors.CodePermissionDenied},
		{"admin cannot read others' notification", root, Notification, Update, "bob", apperrors.CodePermissionDenied},
		{"unlisted write denied", root, Hashtag, Create, "", apperrors.CodePermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.subject, tt.res, tt.act, tt.owner)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestAuthorizeRole_OwnedRulesOnlyNeedLogin(t *testing.T) {
	assert.NoError(t, AuthorizeRole(bob, Announcement, Update))
	assert.True(t, apperrors.Is(AuthorizeRole(anon, Announcement, Update), apperrors.CodeUnauthenticated))
	assert.True(t, apperrors.Is(AuthorizeRole(bob, Category, Create), apperrors.CodePermissionDenied))
	assert.NoError(t, AuthorizeRole(root, Category, Create))
}

func TestSubject_EmptyOwnerNeverMatchesSelf(t *testing.T) {
	assert.False(t, self(Subject{}, ""))
}
