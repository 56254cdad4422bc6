package utils

// Authorize reports whether role is in the allowed set. Pure function so
// the role policy can be tested without any request machinery.
func Authorize(role string, allowedRoles ...string) bool {
	for _, allowed := range allowedRoles {
		if allowed == role {
			return true
		}
	}
	return false
}
