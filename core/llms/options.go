package llms

// PromptOptions collects the per-exchange request parameters shared by all
// model clients.
type PromptOptions struct {
	// Instructions overrides the client's default system instruction when
	// non-empty.
	Instructions string

	// Turns is the prior conversation passed as context, earliest first. The
	// new user contribution is passed separately as the prompt.
	Turns []Turn

	// Image is an optional inline payload attached to the new user
	// contribution.
	Image *Image
}

type PromptOption func(*PromptOptions)

func WithInstructions(instructions string) PromptOption {
	return func(o *PromptOptions) {
		o.Instructions = instructions
	}
}

func WithTurns(turns ...Turn) PromptOption {
	return func(o *PromptOptions) {
		o.Turns = turns
	}
}

func WithImage(image *Image) PromptOption {
	return func(o *PromptOptions) {
		o.Image = image
	}
}
