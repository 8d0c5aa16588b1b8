package models

import (
	"testing"

	"github.com/google/uuid"
)

// TestUserIsManager verifies that IsManager returns true only for the
// manager role.
func TestUserIsManager(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want bool
	}{
		{name: "manager role", role: RoleManager, want: true},
		{name: "member role", role: RoleMember, want: false},
		{name: "empty role", role: Role(""), want: false},
		{name: "unknown role", role: Role("owner"), want: false},
		{name: "uppercase MANAGER", role: Role("MANAGER"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role}
			if got := u.IsManager(); got != tt.want {
				t.Errorf("User{Role: %q}.IsManager() = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

// TestUserManagerOf verifies organization-scoped manager checks.
func TestUserManagerOf(t *testing.T) {
	orgID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name string
		user User
		org  uuid.UUID
		want bool
	}{
		{
			name: "manager of own organization",
			user: User{Role: RoleManager, OrganizationID: &orgID},
			org:  orgID,
			want: true,
		},
		{
			name: "manager of another organization",
			user: User{Role: RoleManager, OrganizationID: &otherID},
			org:  orgID,
			want: false,
		},
		{
			name: "member of the organization",
			user: User{Role: RoleMember, OrganizationID: &orgID},
			org:  orgID,
			want: false,
		},
		{
			name: "manager without organization",
			user: User{Role: RoleManager},
			org:  orgID,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.ManagerOf(tt.org); got != tt.want {
				t.Errorf("ManagerOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestUserNeeds2FASetup verifies 2FA setup detection based on
// TOTPEnabled and TOTPSecret fields.
func TestUserNeeds2FASetup(t *testing.T) {
	secret := "JBSWY3DPEHPK3PXP"

	tests := []struct {
		name        string
		totpSecret  *string
		totpEnabled bool
		want        bool
	}{
		{name: "no secret and not enabled", totpSecret: nil, totpEnabled: false, want: true},
		{name: "secret set but not enabled", totpSecret: &secret, totpEnabled: false, want: true},
		{name: "secret set and enabled", totpSecret: &secret, totpEnabled: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{TOTPSecret: tt.totpSecret, TOTPEnabled: tt.totpEnabled}
			if got := u.Needs2FASetup(); got != tt.want {
				t.Errorf("Needs2FASetup() = %v, want %v", got, tt.want)
			}
		})
	}
}
