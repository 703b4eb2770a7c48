package authz

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/jobportal-app/utils"
)

type Verdict int

const (
	Continue Verdict = iota
	Allow
	Deny
)

// Request is what every stage sees.
type Request struct {
	Operation   string
	Declaration Declaration
	Declared    bool
	Identity    *Identity
}

// A Stage returns Allow, Deny (with the error to surface) or Continue.
type Stage func(ctx context.Context, req Request) (Verdict, error)

// Pipeline evaluates its stages in order; the first Allow or Deny wins. If
// every stage continues the request is denied.
type Pipeline struct {
	stages []Stage
}

func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// DefaultPipeline is public, authenticated, optional ban hook, skip,
// declared, matrix. banned may be nil.
func DefaultPipeline(banned BanChecker) *Pipeline {
	stages := []Stage{PublicStage, AuthenticatedStage}
	if banned != nil {
		stages = append(stages, BannedStage(banned))
	}
	stages = append(stages, SkipStage, DeclaredStage, MatrixStage)
	return NewPipeline(stages...)
}

func (p *Pipeline) Evaluate(ctx context.Context, req Request) error {
	for _, stage := range p.stages {
		verdict, err := stage(ctx, req)
		switch verdict {
		case Allow:
			return nil
		case Deny:
			if err == nil {
				err = utils.Forbidden(utils.DenialMatrix, "access denied")
			}
			logDenial(req, err)
			return err
		}
	}
	err := utils.Forbidden(utils.DenialMatrix, "access denied")
	logDenial(req, err)
	return err
}

func logDenial(req Request, err error) {
	fields := logrus.Fields{
		"operation":   req.Operation,
		"declaration": req.Declaration.String(),
		"kind":        utils.KindOf(err).String(),
	}
	if reason := utils.ReasonOf(err); reason != "" {
		fields["reason"] = string(reason)
	}
	if req.Identity != nil {
		fields["user_id"] = req.Identity.UserID
		fields["role"] = req.Identity.Role
	}
	if utils.IsKind(err, utils.KindConfiguration) {
		utils.ErrorLogger.WithFields(fields).Error("operation has no permission declaration")
		return
	}
	utils.InfoLogger.WithFields(fields).Warn("request denied")
}

func PublicStage(_ context.Context, req Request) (Verdict, error) {
	if req.Declared && req.Declaration.Kind == KindPublic {
		return Allow, nil
	}
	return Continue, nil
}

func AuthenticatedStage(_ context.Context, req Request) (Verdict, error) {
	if req.Identity == nil {
		return Deny, utils.Unauthorized("authentication required")
	}
	return Continue, nil
}

func SkipStage(_ context.Context, req Request) (Verdict, error) {
	if req.Declared && req.Declaration.Kind == KindSkip {
		return Allow, nil
	}
	return Continue, nil
}

// DeclaredStage fails closed when an operation is reachable without a
// declaration. This is a deployment defect, reported as a configuration
// error rather than an ordinary denial.
func DeclaredStage(_ context.Context, req Request) (Verdict, error) {
	if !req.Declared || req.Declaration.Kind != KindRequire {
		return Deny, utils.Configuration("no permission defined for %s", req.Operation)
	}
	return Continue, nil
}

func MatrixStage(_ context.Context, req Request) (Verdict, error) {
	d := req.Declaration
	if req.Identity == nil || !req.Identity.Can(d.Module, d.Action) {
		return Deny, utils.Forbidden(utils.DenialMatrix,
			"insufficient permission: you do not have permission to %s %s", d.Action, d.Module)
	}
	return Allow, nil
}

// BanChecker reports whether a user is banned.
type BanChecker interface {
	IsBanned(ctx context.Context, userID uint) (bool, error)
}

// BannedStage denies banned users. A lookup failure denies as well.
func BannedStage(checker BanChecker) Stage {
	return func(ctx context.Context, req Request) (Verdict, error) {
		if req.Identity == nil {
			return Continue, nil
		}
		banned, err := checker.IsBanned(ctx, req.Identity.UserID)
		if err != nil {
			return Deny, utils.Internal("ban lookup failed", err)
		}
		if banned {
			return Deny, utils.Forbidden(utils.DenialBanned, "account is banned")
		}
		return Continue, nil
	}
}
