package core

// AccessLevel gates what a resolved tenant scope may do. A profile
// without a company resolves to AccessNone and every store call made
// under it short-circuits to empty results.
type AccessLevel string

const (
	AccessNone   AccessLevel = "none"
	AccessMember AccessLevel = "member"
	AccessOwner  AccessLevel = "owner"
)

func (l AccessLevel) IsValid() bool {
	switch l {
	case AccessNone, AccessMember, AccessOwner:
		return true
	}
	return false
}

// CanWrite reports whether the level permits mutating tenant data.
func (l AccessLevel) CanWrite() bool {
	return l == AccessMember || l == AccessOwner
}

// CanManage reports whether the level permits destructive or
// approval operations (account deletion, mission approval).
func (l AccessLevel) CanManage() bool {
	return l == AccessOwner
}
