package paymentdto

type InitiateOutput struct {
	OrderID    string
	PaymentURL string
}

const (
	OutcomeCompleted          = "completed"
	OutcomeAlreadyProcessed   = "alreadyprocessed"
	OutcomeCancelled          = "cancelled"
	OutcomeFailed             = "failed"
	OutcomeVerificationFailed = "verificationfailed"
	OutcomeError              = "error"
)

// CallbackResult is what the payer sees: a redirect path, never an error body.
type CallbackResult struct {
	Redirect string
	Outcome  string
	Detail   string
}

type ReconcileOutput struct {
	Checked   int
	Completed int
	Failed    int
	Expired   int
	Pending   int
}
