package model

import (
	"slices"
	"strings"
)

type IdentityKind string

const (
	IdentityAccount   IdentityKind = "account"
	IdentityAnonymous IdentityKind = "anon"
)

// Identity is the stable key a participant row is bound to:
// "account:<id>" for authenticated users, "anon:<session>" otherwise.
type Identity string

const EmptyIdentity Identity = ""

func AccountIdentity(accountID string) Identity {
	return Identity(string(IdentityAccount) + ":" + accountID)
}

func AnonymousIdentity(sessionID string) Identity {
	return Identity(string(IdentityAnonymous) + ":" + sessionID)
}

func (i Identity) Kind() IdentityKind {
	kind, _, _ := strings.Cut(string(i), ":")
	return IdentityKind(kind)
}

// Caller is who issues a command: the identity plus the groups the caller
// administers, as supplied by the identity provider.
type Caller struct {
	Identity Identity
	AdminOf  []string
}

func (c Caller) AdministersGroup(groupID *string) bool {
	if groupID == nil {
		return false
	}
	return slices.Contains(c.AdminOf, *groupID)
}
