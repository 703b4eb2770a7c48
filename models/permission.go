package models

import "strings"

// Action is one of the four verbs a role can be granted on a module.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Permission modules
const (
	ModuleUsers        = "users"
	ModuleRoles        = "roles"
	ModuleJobs         = "jobs"
	ModuleApplications = "applications"
	ModuleCompanies    = "companies"
	ModuleProfiles     = "profiles"
	ModuleAdmin        = "admin"
)

var knownModules = []string{
	ModuleUsers,
	ModuleRoles,
	ModuleJobs,
	ModuleApplications,
	ModuleCompanies,
	ModuleProfiles,
	ModuleAdmin,
}

// Modules returns every module a permission matrix may reference.
func Modules() []string {
	out := make([]string, len(knownModules))
	copy(out, knownModules)
	return out
}

func IsKnownModule(module string) bool {
	for _, m := range knownModules {
		if m == module {
			return true
		}
	}
	return false
}

func ParseAction(s string) (Action, bool) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionView, ActionCreate, ActionEdit, ActionDelete:
		return a, true
	}
	return "", false
}

// ModulePermissions holds the four action flags for one module.
type ModulePermissions struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

func (p ModulePermissions) Allows(action Action) bool {
	switch action {
	case ActionView:
		return p.View
	case ActionCreate:
		return p.Create
	case ActionEdit:
		return p.Edit
	case ActionDelete:
		return p.Delete
	}
	return false
}

// PermissionMatrix maps a module name to its action flags. A module that is
// absent from the matrix grants nothing.
type PermissionMatrix map[string]ModulePermissions

func (m PermissionMatrix) Allows(module string, action Action) bool {
	if m == nil {
		return false
	}
	perms, ok := m[module]
	if !ok {
		return false
	}
	return perms.Allows(action)
}

// Clone returns a deep copy so a snapshot can't be mutated through the role it
// was taken from.
func (m PermissionMatrix) Clone() PermissionMatrix {
	if m == nil {
		return nil
	}
	out := make(PermissionMatrix, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// UnknownModules lists the keys of m that are not recognised modules.
func (m PermissionMatrix) UnknownModules() []string {
	var unknown []string
	for k := range m {
		if !IsKnownModule(k) {
			unknown = append(unknown, k)
		}
	}
	return unknown
}

// FullAccess grants every action on every module.
func FullAccess() PermissionMatrix {
	m := make(PermissionMatrix, len(knownModules))
	for _, mod := range knownModules {
		m[mod] = ModulePermissions{View: true, Create: true, Edit: true, Delete: true}
	}
	return m
}
