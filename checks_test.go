package gatekeeper

import "testing"

func TestIsOwner(t *testing.T) {
	if !IsOwner("u1", "u1") {
		t.Fatal("expected owner match")
	}
	if IsOwner("u1", "u2") {
		t.Fatal("expected mismatch")
	}
	if IsOwner("", "") {
		t.Fatal("expected empty ids to never match")
	}
	if !IsOwner(" u1 ", "u1") {
		t.Fatal("expected whitespace to be ignored")
	}
}

func TestIsCompanyMatch(t *testing.T) {
	if !IsCompanyMatch("c1", "c1") {
		t.Fatal("expected company match")
	}
	if IsCompanyMatch("c1", "") || IsCompanyMatch("", "c1") {
		t.Fatal("expected absent side to never match")
	}
}

func TestHRChecks(t *testing.T) {
	hr := &Actor{ID: "hr1", Role: RoleRef{Name: RoleHR}, Company: &CompanyRef{ID: "c1"}}

	if !CanHRManageJob(hr, "c1") {
		t.Fatal("expected HR to manage own company's job")
	}
	if CanHRManageJob(hr, "c2") {
		t.Fatal("expected HR denied on another company's job")
	}
	// Idempotent under repeated calls.
	if !CanHRManageJob(hr, "c1") || !CanHRManageJob(hr, "c1") {
		t.Fatal("expected repeated calls to agree")
	}

	if !CanHRManageUser(hr, "c1") || CanHRManageUser(hr, "c2") {
		t.Fatal("unexpected HR user check")
	}
	if !CanHRReadResume(hr, "c1") || CanHRReadResume(hr, "c2") {
		t.Fatal("unexpected HR resume check")
	}
	if !CanHRUpdateCompany(hr, "c1") || CanHRUpdateCompany(hr, "c2") {
		t.Fatal("unexpected HR company check")
	}

	// HR without a company can manage nothing company-scoped.
	lonely := &Actor{ID: "hr2", Role: RoleRef{Name: RoleHR}}
	if CanHRManageJob(lonely, "c1") {
		t.Fatal("expected HR without company to be denied")
	}
	if CanHRManageJob(nil, "c1") {
		t.Fatal("expected nil actor to be denied")
	}
}

func TestResumeStatusGates(t *testing.T) {
	if !CanUserUpdateResumeData("u1", "u1", ResumePending) {
		t.Fatal("expected owner to edit a pending resume")
	}
	if CanUserUpdateResumeData("u1", "u1", ResumeApproved) {
		t.Fatal("expected edits blocked once approved")
	}
	if CanUserUpdateResumeData("u1", "u2", ResumePending) {
		t.Fatal("expected non-owner to be denied regardless of status")
	}

	if !CanUserDeleteResume("u1", "u1", ResumePending) {
		t.Fatal("expected owner to withdraw a pending resume")
	}
	if CanUserDeleteResume("u1", "u1", ResumeReviewing) {
		t.Fatal("expected withdrawal blocked once reviewing")
	}
}

func TestResumeTransitions(t *testing.T) {
	legal := []struct{ from, to ResumeStatus }{
		{ResumePending, ResumeReviewing},
		{ResumePending, ResumeApproved},
		{ResumePending, ResumeRejected},
		{ResumeReviewing, ResumeApproved},
		{ResumeReviewing, ResumeRejected},
	}
	for _, tc := range legal {
		if !CanTransitionResume(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be legal", tc.from, tc.to)
		}
	}

	illegal := []struct{ from, to ResumeStatus }{
		{ResumeReviewing, ResumePending},
		{ResumeApproved, ResumeRejected},
		{ResumeApproved, ResumePending},
		{ResumeRejected, ResumeReviewing},
	}
	for _, tc := range illegal {
		if CanTransitionResume(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be illegal", tc.from, tc.to)
		}
	}

	if ResumePending.Terminal() || ResumeReviewing.Terminal() {
		t.Fatal("expected pending and reviewing to be non-terminal")
	}
	if !ResumeApproved.Terminal() || !ResumeRejected.Terminal() {
		t.Fatal("expected approved and rejected to be terminal")
	}
}

func TestUserChecks(t *testing.T) {
	if !CanUserManageFile("u1", "u1") || CanUserManageFile("u1", "u2") {
		t.Fatal("unexpected file ownership check")
	}
	if !CanUserDeleteAccount("u1", "u1") || CanUserDeleteAccount("u1", "u2") {
		t.Fatal("unexpected account ownership check")
	}
	if !CanUserManageSubscriber("User@Example.com", "user@example.com") {
		t.Fatal("expected case-insensitive email match")
	}
	if CanUserManageSubscriber("a@example.com", "b@example.com") {
		t.Fatal("expected email mismatch to be denied")
	}
}
