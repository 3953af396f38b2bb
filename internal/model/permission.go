package model

import (
	"sort"
	"strconv"
	"strings"
)

// Permission is a single capability flag granted to a user. The numeric
// values are part of the access-token contract: they appear verbatim in the
// "permissions" claim and in the refresh/login responses, so they must not
// be renumbered.
type Permission int

const (
	PermissionPersonalRead  Permission = 1   // read own todos
	PermissionPersonalWrite Permission = 2   // create/update/delete own todos
	PermissionUsersListing  Permission = 3   // list users without full admin rights
	PermissionAdmin         Permission = 100 // full user management
)

// DefaultPermissions are granted on self-service registration. Elevated
// permissions can only be assigned through the admin endpoints.
func DefaultPermissions() []Permission {
	return []Permission{PermissionPersonalRead, PermissionPersonalWrite}
}

// HasPermission reports whether the set contains p. Permissions are an
// unordered set; duplicates carry no meaning.
func HasPermission(set []Permission, p Permission) bool {
	for _, have := range set {
		if have == p {
			return true
		}
	}
	return false
}

// EncodePermissions serializes a permission set into the comma-delimited
// form used by the users.permissions column. The output is sorted and
// de-duplicated so that equal sets always produce equal column values.
func EncodePermissions(set []Permission) string {
	seen := make(map[Permission]bool, len(set))
	uniq := make([]Permission, 0, len(set))
	for _, p := range set {
		if !seen[p] {
			seen[p] = true
			uniq = append(uniq, p)
		}
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })
	parts := make([]string, len(uniq))
	for i, p := range uniq {
		parts[i] = strconv.Itoa(int(p))
	}
	return strings.Join(parts, ",")
}

// ParsePermissions decodes the comma-delimited column value back into a
// permission set. Blank segments are skipped; a malformed segment fails the
// whole parse rather than silently dropping a grant.
func ParsePermissions(raw string) ([]Permission, error) {
	if strings.TrimSpace(raw) == "" {
		return []Permission{}, nil
	}
	parts := strings.Split(raw, ",")
	set := make([]Permission, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		set = append(set, Permission(n))
	}
	return set, nil
}
