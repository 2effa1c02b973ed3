package plan

// ApplyMergePatch applies an RFC 7396 JSON merge patch to target and returns
// the result. Objects are merged key by key, null deletes a key and any other
// value replaces the target wholesale. Neither argument is modified.
func ApplyMergePatch(target, patch interface{}) interface{} {
	patchObj, ok := patch.(map[string]interface{})
	if !ok {
		return patch
	}

	targetObj, _ := target.(map[string]interface{})
	merged := make(map[string]interface{}, len(targetObj)+len(patchObj))
	for k, v := range targetObj {
		merged[k] = v
	}

	for k, v := range patchObj {
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = ApplyMergePatch(merged[k], v)
	}
	return merged
}
