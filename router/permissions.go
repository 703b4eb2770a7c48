package router

import (
	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/models"
)

func op(method, path string) string { return authz.OperationID(method, path) }

func require(module string, action models.Action) authz.Declaration {
	return authz.Require(module, action)
}

// Permissions declares how every route is authorized. A route missing from
// this table is refused with a configuration error.
var Permissions = map[string]authz.Declaration{
	op("GET", "/ping"): authz.Public(),

	op("POST", "/auth/register"): authz.Public(),
	op("POST", "/auth/login"):    authz.Public(),
	op("GET", "/auth/me"):        authz.Skip(),

	op("POST", "/users"):       require(models.ModuleUsers, models.ActionCreate),
	op("GET", "/users"):        require(models.ModuleUsers, models.ActionView),
	op("GET", "/users/:id"):    require(models.ModuleUsers, models.ActionView),
	op("PATCH", "/users/:id"):  require(models.ModuleUsers, models.ActionEdit),
	op("DELETE", "/users/:id"): require(models.ModuleUsers, models.ActionDelete),

	op("POST", "/roles"):       require(models.ModuleRoles, models.ActionCreate),
	op("GET", "/roles"):        require(models.ModuleRoles, models.ActionView),
	op("GET", "/roles/:id"):    require(models.ModuleRoles, models.ActionView),
	op("PUT", "/roles/:id"):    require(models.ModuleRoles, models.ActionEdit),
	op("PATCH", "/roles/:id"):  require(models.ModuleRoles, models.ActionEdit),
	op("DELETE", "/roles/:id"): require(models.ModuleRoles, models.ActionDelete),

	op("POST", "/companies"):       require(models.ModuleCompanies, models.ActionCreate),
	op("GET", "/companies"):        require(models.ModuleCompanies, models.ActionView),
	op("GET", "/companies/my"):     require(models.ModuleCompanies, models.ActionView),
	op("GET", "/companies/:id"):    require(models.ModuleCompanies, models.ActionView),
	op("PATCH", "/companies/:id"):  require(models.ModuleCompanies, models.ActionEdit),
	op("DELETE", "/companies/:id"): require(models.ModuleCompanies, models.ActionDelete),

	op("POST", "/jobs"):             require(models.ModuleJobs, models.ActionCreate),
	op("GET", "/jobs"):              require(models.ModuleJobs, models.ActionView),
	op("GET", "/jobs/my"):           require(models.ModuleJobs, models.ActionView),
	op("GET", "/jobs/:id"):          require(models.ModuleJobs, models.ActionView),
	op("PATCH", "/jobs/:id"):        require(models.ModuleJobs, models.ActionEdit),
	op("PATCH", "/jobs/:id/status"): require(models.ModuleJobs, models.ActionEdit),
	op("DELETE", "/jobs/:id"):       require(models.ModuleJobs, models.ActionDelete),

	op("POST", "/applications"):             require(models.ModuleApplications, models.ActionCreate),
	op("GET", "/applications/my"):           require(models.ModuleApplications, models.ActionView),
	op("GET", "/applications/job/:jobId"):   require(models.ModuleApplications, models.ActionView),
	op("GET", "/applications/:id"):          require(models.ModuleApplications, models.ActionView),
	op("PATCH", "/applications/:id/status"): require(models.ModuleApplications, models.ActionEdit),
	op("DELETE", "/applications/:id"):       require(models.ModuleApplications, models.ActionDelete),

	op("POST", "/saved-jobs/:jobId"):      require(models.ModuleJobs, models.ActionView),
	op("GET", "/saved-jobs"):              require(models.ModuleJobs, models.ActionView),
	op("GET", "/saved-jobs/:jobId/check"): require(models.ModuleJobs, models.ActionView),
	op("DELETE", "/saved-jobs/:jobId"):    require(models.ModuleJobs, models.ActionView),

	op("GET", "/notifications"):              require(models.ModuleProfiles, models.ActionView),
	op("GET", "/notifications/count/unread"): require(models.ModuleProfiles, models.ActionView),
	op("GET", "/notifications/:id"):          require(models.ModuleProfiles, models.ActionView),
	op("PATCH", "/notifications/read-all"):   require(models.ModuleProfiles, models.ActionEdit),
	op("PATCH", "/notifications/:id/read"):   require(models.ModuleProfiles, models.ActionEdit),

	op("POST", "/employer-profiles"):       require(models.ModuleProfiles, models.ActionCreate),
	op("GET", "/employer-profiles/me"):     require(models.ModuleProfiles, models.ActionView),
	op("GET", "/employer-profiles/:id"):    require(models.ModuleProfiles, models.ActionView),
	op("PATCH", "/employer-profiles/me"):   require(models.ModuleProfiles, models.ActionEdit),
	op("PATCH", "/employer-profiles/:id"):  require(models.ModuleProfiles, models.ActionEdit),
	op("DELETE", "/employer-profiles/:id"): require(models.ModuleProfiles, models.ActionDelete),

	op("POST", "/job-seeker-profiles"):       require(models.ModuleProfiles, models.ActionCreate),
	op("GET", "/job-seeker-profiles/me"):     require(models.ModuleProfiles, models.ActionView),
	op("GET", "/job-seeker-profiles/:id"):    require(models.ModuleProfiles, models.ActionView),
	op("PATCH", "/job-seeker-profiles/me"):   require(models.ModuleProfiles, models.ActionEdit),
	op("PATCH", "/job-seeker-profiles/:id"):  require(models.ModuleProfiles, models.ActionEdit),
	op("DELETE", "/job-seeker-profiles/:id"): require(models.ModuleProfiles, models.ActionDelete),

	op("POST", "/conversations"):                               require(models.ModuleProfiles, models.ActionCreate),
	op("GET", "/conversations"):                                require(models.ModuleProfiles, models.ActionView),
	op("GET", "/conversations/:id"):                            require(models.ModuleProfiles, models.ActionView),
	op("POST", "/conversations/:id/messages"):                  require(models.ModuleProfiles, models.ActionCreate),
	op("GET", "/conversations/:id/messages"):                   require(models.ModuleProfiles, models.ActionView),
	op("PATCH", "/conversations/:id/messages/:messageId/read"): require(models.ModuleProfiles, models.ActionEdit),

	op("GET", "/activity-logs/my"): authz.Skip(),

	op("GET", "/admin/jobs/pending"):           require(models.ModuleAdmin, models.ActionView),
	op("GET", "/admin/companies/pending"):      require(models.ModuleAdmin, models.ActionView),
	op("PATCH", "/admin/jobs/:id/moderate"):    require(models.ModuleAdmin, models.ActionEdit),
	op("PATCH", "/admin/companies/:id/verify"): require(models.ModuleAdmin, models.ActionEdit),
	op("PATCH", "/admin/users/:id/ban"):        require(models.ModuleAdmin, models.ActionEdit),

	op("GET", "/ws/notifications"): authz.Skip(),
}

// NewRegistry loads decls into a registry.
func NewRegistry(decls map[string]authz.Declaration) (*authz.Registry, error) {
	registry := authz.NewRegistry()
	for operation, decl := range decls {
		if err := registry.Declare(operation, decl); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
