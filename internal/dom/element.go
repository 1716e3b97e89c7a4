package dom

// textFieldTypes are the input types edited as plain text.
var textFieldTypes = map[string]bool{
	"":         true,
	"text":     true,
	"search":   true,
	"email":    true,
	"url":      true,
	"tel":      true,
	"number":   true,
	"password": true,
}

// IsTextField reports whether el is an input edited as text. Password fields
// count only when excludePassword is false.
func IsTextField(el Element, excludePassword bool) bool {
	if el == nil || el.Kind() != KindInput {
		return false
	}
	t := el.InputType()
	if excludePassword && t == "password" {
		return false
	}
	return textFieldTypes[t]
}

// IsEditableText reports whether el is a text input or a textarea.
func IsEditableText(el Element) bool {
	if el == nil {
		return false
	}
	return IsTextField(el, false) || el.Kind() == KindTextArea
}

// CanSelect reports whether el may host a text selection.
func CanSelect(el Element) bool {
	if el == nil {
		return false
	}
	switch el.Kind() {
	case KindButton, KindEmbed, KindImage, KindMedia:
		return false
	}
	return !el.UserSelectNone()
}

// SameView reports whether a and b refer to the same view. A nil view only
// equals nil.
func SameView(a, b View) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}
