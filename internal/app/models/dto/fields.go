package dto

// A pointer field that is nil, or points at a zero value, counts as "not provided".

func providedString(p *string) (string, bool) {
	if p == nil || *p == "" {
		return "", false
	}
	return *p, true
}

func providedID(p *int64) (int64, bool) {
	if p == nil || *p <= 0 {
		return 0, false
	}
	return *p, true
}

// firstID returns the first positive id, or 0.
func firstID(ids ...int64) int64 {
	for _, id := range ids {
		if id > 0 {
			return id
		}
	}
	return 0
}

func int64Ptr(v int64) *int64 {
	return &v
}
