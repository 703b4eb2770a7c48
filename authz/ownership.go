package authz

import "github.com/yeremiapane/jobportal-app/utils"

// RequireOwner checks the instance-level rule shared by every owned resource:
// the actor must be the owner. verb and resource only shape the message,
// e.g. "update", "jobs".
func RequireOwner(actor Identity, ownerID uint, verb, resource string) error {
	if actor.UserID == 0 || actor.UserID != ownerID {
		return utils.Forbidden(utils.DenialOwnership, "you can only %s your own %s", verb, resource)
	}
	return nil
}

// CanDeleteApplication allows the seeker who applied or the employer who owns
// the job.
func CanDeleteApplication(actor Identity, seekerID, jobOwnerID uint) error {
	if actor.UserID != 0 && (actor.UserID == seekerID || actor.UserID == jobOwnerID) {
		return nil
	}
	return utils.Forbidden(utils.DenialOwnership, "you can only delete your own applications")
}

// CanViewApplication uses the same parties as deletion.
func CanViewApplication(actor Identity, seekerID, jobOwnerID uint) error {
	if actor.UserID != 0 && (actor.UserID == seekerID || actor.UserID == jobOwnerID) {
		return nil
	}
	return utils.Forbidden(utils.DenialOwnership, "you can only view your own applications")
}

// CanSetApplicationStatus allows only the job's owner, and never the seeker
// who submitted the application.
func CanSetApplicationStatus(actor Identity, seekerID, jobOwnerID uint) error {
	if actor.UserID == 0 || actor.UserID != jobOwnerID || actor.UserID == seekerID {
		return utils.Forbidden(utils.DenialOwnership, "you can only update applications for your own jobs")
	}
	return nil
}
