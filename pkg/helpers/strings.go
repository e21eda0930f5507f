package helpers

// CoalesceString returns the first non-empty value
func CoalesceString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
