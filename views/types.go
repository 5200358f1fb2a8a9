package views

// ButtonVariant selects the style of a CTAButton.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota
	ButtonSecondary
)

func (v ButtonVariant) class() string {
	if v == ButtonSecondary {
		return "btn btn-secondary"
	}
	return "btn btn-primary"
}

// CardProps describes a linked summary card.
type CardProps struct {
	Eyebrow string // small label above the title, e.g. a category
	Title   string
	Href    string
	Body    string
	Meta    string // trailing line, e.g. "5 min read"
}
