package user

import "testing"

func TestUser_passwords(t *testing.T) {
	var usr User
	if err := usr.SetPassword("s3cr3t"); err != nil {
		t.Fatalf("SetPassword() failed, %v", err)
	}
	if err := usr.CheckPassword("s3cr3t"); err != nil {
		t.Errorf("CheckPassword() failed, %v", err)
	}
	if err := usr.CheckPassword("wrong"); err == nil {
		t.Error("CheckPassword() must reject a wrong password")
	}
}

func TestUser_roleChecks(t *testing.T) {
	tests := []struct {
		name      string
		roles     []string
		isAdmin   bool
		isTeacher bool
		isStudent bool
	}{
		{name: "no roles"},
		{name: "student", roles: []string{RoleStudent}, isStudent: true},
		{name: "teacher", roles: []string{RoleTeacher}, isTeacher: true},
		{name: "admin", roles: []string{RoleAdmin}, isAdmin: true},
		{name: "principal", roles: []string{RoleAdminPrincipal}, isAdmin: true},
		{name: "teacher and admin", roles: []string{RoleTeacher, RoleAdminOwner}, isAdmin: true, isTeacher: true},
		{name: "all", roles: AllRoles, isAdmin: true, isTeacher: true, isStudent: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr := User{Roles: tt.roles}
			if got := usr.IsAdmin(); got != tt.isAdmin {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.isAdmin)
			}
			if got := usr.IsTeacher(); got != tt.isTeacher {
				t.Errorf("IsTeacher() = %v, want %v", got, tt.isTeacher)
			}
			if got := usr.IsStudent(); got != tt.isStudent {
				t.Errorf("IsStudent() = %v, want %v", got, tt.isStudent)
			}
		})
	}
}

func TestMaxRolePriority(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  int
	}{
		{name: "none", want: 0},
		{name: "unknown role", roles: []string{"lol"}, want: 0},
		{name: "student", roles: []string{RoleStudent}, want: 1},
		{name: "teacher", roles: []string{RoleTeacher}, want: 11},
		{name: "admin", roles: []string{RoleAdmin}, want: 21},
		{name: "owner beats all", roles: []string{RoleStudent, RoleAdminOwner, RoleTeacher}, want: 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxRolePriority(tt.roles); got != tt.want {
				t.Errorf("MaxRolePriority() = %v, want %v", got, tt.want)
			}
		})
	}
}
