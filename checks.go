package gatekeeper

import "strings"

// Ownership checks for rules that need the target resource loaded first.
// Handlers call these directly after fetching the resource, independent of
// the guard: the guard settles "may this role touch this kind of thing",
// these settle "may this actor touch this particular thing".
//
// All checks are pure functions over identifiers and never hit a store.

// IsOwner reports whether the actor id and the resource's owner id refer to
// the same principal. Comparison is string-normalized; an empty id on either
// side never matches.
func IsOwner(actorID, ownerID string) bool {
	a := strings.TrimSpace(actorID)
	o := strings.TrimSpace(ownerID)
	return a != "" && a == o
}

// IsCompanyMatch reports whether two company ids refer to the same company.
// False if either side is absent.
func IsCompanyMatch(companyA, companyB string) bool {
	a := strings.TrimSpace(companyA)
	b := strings.TrimSpace(companyB)
	return a != "" && b != "" && a == b
}

// CanHRManageUser reports whether an HR actor may manage a user record
// belonging to the given company.
func CanHRManageUser(actor *Actor, targetCompanyID string) bool {
	if actor == nil || actor.Company == nil {
		return false
	}
	return IsCompanyMatch(actor.Company.ID, targetCompanyID)
}

// CanHRManageJob reports whether an HR actor may mutate a job posted by the
// given company.
func CanHRManageJob(actor *Actor, jobCompanyID string) bool {
	if actor == nil || actor.Company == nil {
		return false
	}
	return IsCompanyMatch(actor.Company.ID, jobCompanyID)
}

// CanHRReadResume reports whether an HR actor may read a resume applied to a
// job of the given company.
func CanHRReadResume(actor *Actor, jobCompanyID string) bool {
	if actor == nil || actor.Company == nil {
		return false
	}
	return IsCompanyMatch(actor.Company.ID, jobCompanyID)
}

// CanHRUpdateCompany reports whether an HR actor may update the company with
// the given id (only their own).
func CanHRUpdateCompany(actor *Actor, companyID string) bool {
	if actor == nil || actor.Company == nil {
		return false
	}
	return IsCompanyMatch(actor.Company.ID, companyID)
}

// CanUserUpdateResumeData reports whether a user may edit the data fields of
// a resume: they must own it and it must still be PENDING.
func CanUserUpdateResumeData(actorID, resumeOwnerID string, status ResumeStatus) bool {
	return IsOwner(actorID, resumeOwnerID) && status == ResumePending
}

// CanUserDeleteResume reports whether a user may withdraw a resume: owned
// and still PENDING.
func CanUserDeleteResume(actorID, resumeOwnerID string, status ResumeStatus) bool {
	return IsOwner(actorID, resumeOwnerID) && status == ResumePending
}

// CanUserManageFile reports whether a user may read or delete an uploaded
// file.
func CanUserManageFile(actorID, fileOwnerID string) bool {
	return IsOwner(actorID, fileOwnerID)
}

// CanUserDeleteAccount reports whether a user may delete the given account
// (only their own).
func CanUserDeleteAccount(actorID, targetUserID string) bool {
	return IsOwner(actorID, targetUserID)
}

// CanUserManageSubscriber reports whether a caller may mutate a subscription
// record. Subscriptions are keyed by email, so the check is an email match.
func CanUserManageSubscriber(actorEmail, subscriberEmail string) bool {
	a := strings.TrimSpace(strings.ToLower(actorEmail))
	s := strings.TrimSpace(strings.ToLower(subscriberEmail))
	return a != "" && a == s
}
