package domain

// StageInputs carries the profile-derived counters the stage calculation
// needs beyond the user row itself.
type StageInputs struct {
	PublishedResumes int
	ActiveVacancies  int
}

// CalculateStage derives the registration stage from the current profile
// state. It is pure and idempotent: callers apply the result after any
// profile, resume or vacancy mutation and persist it themselves.
//
// Students reach profile_filled once name and city are set, and
// fully_activated once at least one resume is published. Employers follow
// the same ladder with company name and active vacancies. Admins and
// unknown roles keep whatever stage they already have.
func CalculateStage(u *User, in StageInputs) string {
	switch u.Role {
	case RoleStudent:
		if !filled(u.FirstName) || !filled(u.LastName) || !filled(u.City) {
			return StageAnonymous
		}
		if in.PublishedResumes > 0 {
			return StageFullyActivated
		}
		return StageProfileFilled
	case RoleEmployer:
		if !filled(u.CompanyName) || !filled(u.City) {
			return StageAnonymous
		}
		if in.ActiveVacancies > 0 {
			return StageFullyActivated
		}
		return StageProfileFilled
	default:
		return u.RegistrationStage
	}
}

// StageAtLeast reports whether stage meets the given minimum on the
// anonymous < profile_filled < fully_activated ladder.
func StageAtLeast(stage, minimum string) bool {
	return stageRank(stage) >= stageRank(minimum)
}

func stageRank(stage string) int {
	switch stage {
	case StageProfileFilled:
		return 1
	case StageFullyActivated:
		return 2
	default:
		return 0
	}
}

func filled(s *string) bool {
	return s != nil && *s != ""
}
