package gatekeeper

// ConstraintKind names one of the closed set of ownership predicates a rule
// can carry. The catalog only ever needs owner-equality and company-equality,
// so constraints are tagged variants rather than a generic field matcher.
type ConstraintKind string

const (
	// OwnerEquals matches when the resource's owner id equals the value.
	OwnerEquals ConstraintKind = "owner_equals"

	// CompanyEquals matches when the resource's company id equals the value.
	CompanyEquals ConstraintKind = "company_equals"
)

// Constraint is an equality predicate over a field of the target resource
// instance, narrowing an otherwise-broad rule to an owned or scoped subset.
type Constraint struct {
	Kind  ConstraintKind `json:"kind"`
	Value string         `json:"value"`
}

// matches evaluates the constraint against a loaded resource reference.
// When the scoped field is absent the constraint falls back to the record id:
// a User record is owned by itself and a Company record is its own scope, so
// callers need not copy ID into OwnerID or CompanyID for those subjects. A
// fully empty resource never satisfies a constraint.
func (c Constraint) matches(res Resource) bool {
	switch c.Kind {
	case OwnerEquals:
		owner := res.OwnerID
		if owner == "" {
			owner = res.ID
		}
		return owner != "" && owner == c.Value
	case CompanyEquals:
		company := res.CompanyID
		if company == "" {
			company = res.ID
		}
		return company != "" && company == c.Value
	default:
		return false
	}
}

// Rule is a single allow-rule: the actor may perform Action on Subject,
// optionally narrowed by an ownership constraint. There is no deny variant;
// an ability permits an action iff any rule matches.
type Rule struct {
	Action     Action      `json:"action"`
	Subject    SubjectType `json:"subject"`
	Constraint *Constraint `json:"constraint,omitempty"`
}

// matchesShape reports whether the rule covers the (action, subject) pair,
// ignoring any constraint.
func (r Rule) matchesShape(action Action, subject SubjectType) bool {
	if r.Action != ActionManage && r.Action != action {
		return false
	}
	if r.Subject != SubjectAll && r.Subject != subject {
		return false
	}
	return true
}

// Ability is the materialized allow-rule set for one actor, valid for the
// lifetime of one authorization decision. Abilities are immutable; build a
// new one rather than mutating rules.
type Ability struct {
	rules []Rule
}

// NewAbility creates an ability from an accumulated rule list.
func NewAbility(rules []Rule) Ability {
	return Ability{rules: rules}
}

// Rules returns a copy of the rule list, mostly for tests and debugging.
func (a Ability) Rules() []Rule {
	out := make([]Rule, len(a.rules))
	copy(out, a.rules)
	return out
}

// Can reports whether any rule covers the (action, subject) pair. This is
// the type-level query: a rule narrowed by an ownership constraint still
// answers true here, because the constraint applies to instances, not kinds.
func (a Ability) Can(action Action, subject SubjectType) bool {
	for _, r := range a.rules {
		if r.matchesShape(action, subject) {
			return true
		}
	}
	return false
}

// CanInstance reports whether any rule permits the action on the given
// loaded resource instance, evaluating ownership constraints against it.
func (a Ability) CanInstance(action Action, subject SubjectType, res Resource) bool {
	for _, r := range a.rules {
		if !r.matchesShape(action, subject) {
			continue
		}
		if r.Constraint == nil || r.Constraint.matches(res) {
			return true
		}
	}
	return false
}

// satisfies evaluates one declared requirement: instance-level when the
// requirement carries a target, type-level otherwise.
func (a Ability) satisfies(req Requirement) bool {
	if req.Target != nil {
		return a.CanInstance(req.Action, req.Subject, *req.Target)
	}
	return a.Can(req.Action, req.Subject)
}
