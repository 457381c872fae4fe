/*
classify.go - Cancellation and pending-payment derivation

PURPOSE:
  The calendar encodes billing intent in two out-of-band fields: the
  event status and a color tag. Staff mark a late cancellation that must
  still be billed by cancelling the event and tagging it grey. Classify
  recomputes both flags identically regardless of where the raw event
  came from, so no upstream representation can leak through.
*/
package payroll

// Calendar color convention for cancellations.
const (
	// StatusCancelled is the raw status value marking a cancelled event.
	StatusCancelled = "cancelled"

	// ColorGrey marks a cancelled event that is still billed
	// (late cancellation, compensation owed).
	ColorGrey = "8"
)

// Classify derives the billing flags from a raw event's status and
// color tag. Pending-payment requires both: a non-cancelled grey event
// is an ordinary session, and an event without a color tag is never
// pending-payment.
func Classify(status, colorID string) (cancelled, pendingPayment bool) {
	cancelled = status == StatusCancelled
	pendingPayment = cancelled && colorID == ColorGrey
	return cancelled, pendingPayment
}
