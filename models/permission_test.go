package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionMatrixAllows(t *testing.T) {
	m := PermissionMatrix{
		ModuleJobs: {View: true, Create: true},
	}

	assert.True(t, m.Allows(ModuleJobs, ActionView))
	assert.True(t, m.Allows(ModuleJobs, ActionCreate))
	assert.False(t, m.Allows(ModuleJobs, ActionEdit))
	assert.False(t, m.Allows(ModuleJobs, ActionDelete))

	// absent module grants nothing
	assert.False(t, m.Allows(ModuleApplications, ActionView))
	assert.False(t, m.Allows(ModuleJobs, Action("publish")))

	var empty PermissionMatrix
	assert.False(t, empty.Allows(ModuleJobs, ActionView))
}

func TestPermissionMatrixCloneIsIndependent(t *testing.T) {
	original := PermissionMatrix{ModuleJobs: {View: true}}
	snapshot := original.Clone()

	original[ModuleJobs] = ModulePermissions{View: true, Edit: true}
	original[ModuleAdmin] = ModulePermissions{View: true}

	assert.False(t, snapshot.Allows(ModuleJobs, ActionEdit))
	assert.False(t, snapshot.Allows(ModuleAdmin, ActionView))
	assert.Nil(t, PermissionMatrix(nil).Clone())
}

func TestUnknownModules(t *testing.T) {
	m := PermissionMatrix{ModuleJobs: {}, "billing": {}}
	assert.Equal(t, []string{"billing"}, m.UnknownModules())
	assert.Empty(t, FullAccess().UnknownModules())
}

func TestFullAccessCoversEveryModule(t *testing.T) {
	full := FullAccess()
	for _, module := range Modules() {
		for _, action := range []Action{ActionView, ActionCreate, ActionEdit, ActionDelete} {
			assert.True(t, full.Allows(module, action), "%s:%s", module, action)
		}
	}
}

func TestParseAction(t *testing.T) {
	a, ok := ParseAction(" Edit ")
	assert.True(t, ok)
	assert.Equal(t, ActionEdit, a)

	_, ok = ParseAction("publish")
	assert.False(t, ok)
}

func TestRoleMatrixNeverNil(t *testing.T) {
	var r Role
	assert.NotNil(t, r.Matrix())
	assert.False(t, r.Matrix().Allows(ModuleJobs, ActionView))

	r = NewRole("  Employer ", PermissionMatrix{ModuleJobs: {View: true}})
	assert.Equal(t, "employer", r.Name)
	assert.True(t, r.Matrix().Allows(ModuleJobs, ActionView))
}

func TestJobPredicates(t *testing.T) {
	cases := []struct {
		status     JobStatus
		moderation ModerationStatus
		listed     bool
		accepts    bool
	}{
		{JobStatusOpen, ModerationApproved, true, true},
		{JobStatusOpen, ModerationPending, false, true},
		{JobStatusOpen, ModerationRejected, false, false},
		{JobStatusDraft, ModerationApproved, false, false},
		{JobStatusClosed, ModerationApproved, false, false},
	}
	for _, tc := range cases {
		job := Job{Status: tc.status, ModerationStatus: tc.moderation}
		assert.Equal(t, tc.listed, job.PubliclyListed(), "%s/%s", tc.status, tc.moderation)
		assert.Equal(t, tc.accepts, job.AcceptsApplications(), "%s/%s", tc.status, tc.moderation)
	}
}
