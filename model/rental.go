// model/rental.go
package model

import "time"

type RentalStatus string

const (
	RentalActive   RentalStatus = "active"
	RentalReturned RentalStatus = "returned"
)

// Rental is one checkout episode. It shrinks via partial returns until
// CurrentRentedQty hits zero, then flips to returned (terminal).
// Revision is bumped on every mutation so a holder return racing a
// manager forced return loses cleanly instead of double-applying.
type Rental struct {
	ID               int64        `json:"id"`
	UserID           int64        `json:"user_id"`
	ItemID           int64        `json:"item_id"`
	CurrentRentedQty int64        `json:"current_rented_qty"`
	DueDate          time.Time    `json:"due_date"`
	Status           RentalStatus `json:"status"`
	BrokenLog        int64        `json:"broken_log"`
	ReturnProofURL   *string      `json:"return_proof_url,omitempty"`
	Revision         int64        `json:"revision"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}
