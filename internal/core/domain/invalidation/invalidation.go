// Package invalidation models the fan-out of a "data changed" event to the
// page cache and the product catalog cache.
package invalidation

import "time"

// State tracks an invalidation request through its lifecycle. Authorization
// happens at the HTTP layer; a rejected request never reaches the fan-out.
type State string

const (
	StateReceived   State = "received"
	StateAuthorized State = "authorized"
	StateFanningOut State = "fanning_out"
	StateDone       State = "done"
	StateRejected   State = "rejected"
)

// Result reports the two fan-out legs independently. The legs are not
// transactional: one failing does not roll back the other.
type Result struct {
	Revalidated       bool      `json:"revalidated"`
	ProductsRefreshed bool      `json:"productsRefreshed"`
	Path              string    `json:"path"`
	Timestamp         time.Time `json:"timestamp"`
}
