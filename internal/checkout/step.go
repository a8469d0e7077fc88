package checkout

// Step is the wizard position of a checkout session.
type Step string

const (
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
)
