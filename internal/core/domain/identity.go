package domain

// VerifiedIdentity is the decoded payload of a Google ID token that passed
// signature, audience, issuer and expiry checks. It is never persisted.
type VerifiedIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	GivenName     string
	FamilyName    string
	Name          string
	Picture       string
	Audience      string
	Issuer        string
}

// ReconcileOutcome describes what Google sign-in did to the identity store.
type ReconcileOutcome string

const (
	OutcomeCreated   ReconcileOutcome = "created"
	OutcomeLinked    ReconcileOutcome = "linked"
	OutcomeUnchanged ReconcileOutcome = "unchanged"
)
