package bridge

import "unicode"

// jsMemberName converts an exported Go method name to the JS member
// convention: "Wcwidth" becomes "wcwidth", "URLPath" becomes "urlPath".
func jsMemberName(goName string) string {
	r := []rune(goName)
	for i := 0; i < len(r); i++ {
		if !unicode.IsUpper(r[i]) {
			break
		}
		// Keep the capital that starts the next word of an acronym run.
		if i > 0 && i+1 < len(r) && unicode.IsLower(r[i+1]) {
			break
		}
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}
