package editor

// Kind is the closed set of field input kinds.
type Kind int

const (
	Text Kind = iota
	Number
	Date
	DateTime
	Select
	Toggle
	TextArea
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Number:
		return "number"
	case Date:
		return "date"
	case DateTime:
		return "datetime"
	case Select:
		return "select"
	case Toggle:
		return "switch"
	case TextArea:
		return "textarea"
	default:
		return "unknown"
	}
}

// InputType is the HTML input type used to render k.
func (k Kind) InputType() string {
	switch k {
	case Number:
		return "number"
	case Date:
		return "date"
	case DateTime:
		return "datetime-local"
	case Toggle:
		return "checkbox"
	default:
		return "text"
	}
}
