package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/bistro/pkg/mail"
	"github.com/shashiranjanraj/bistro/pkg/queue"
)

// PaymentReceiptJob mails a checkout receipt. Dispatched after a payment
// is recorded and processed off the request path.
type PaymentReceiptJob struct {
	Email         string  `json:"email"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transactionId"`
}

func (j *PaymentReceiptJob) Handle() error {
	return mail.To(j.Email).
		Subject("Your Bistro receipt").
		Body(fmt.Sprintf(
			"<p>Thanks for your order!</p><p>Amount: $%.2f<br>Reference: %s</p>",
			j.Amount, j.TransactionID,
		)).
		Send()
}

// RegisterAll registers every queued job type with the worker registry.
// Called once at boot before workers start.
func RegisterAll() {
	queue.Register(fmt.Sprintf("%T", &PaymentReceiptJob{}), func() queue.Job { return &PaymentReceiptJob{} })
}
