package laxjson

// Version identifies the laxjson release.
const Version = "v1"

// MustFix runs Fix and panics if it returns an internal invariant error,
// for callers that have already decided a broken invariant is fatal to
// their process. Mirrors the teacher's Must(tpl, err)-style helper.
func MustFix(result *FixResult, err error) *FixResult {
	if err != nil {
		rootLog.Errorf("invariant violation: %v", err)
		panic(err)
	}
	return result
}
