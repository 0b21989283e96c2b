package access

// Authorize is the single authorization decision of the API. Unknown roles and
// unknown permissions are denied.
func Authorize(role Role, p Permission) bool {
	for _, r := range grants[p] {
		if r == role {
			return true
		}
	}
	return false
}
